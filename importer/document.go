package importer

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Document is the declarative description of the fictitious organization.
// Every record carries a document-scoped guid; cross-references between
// sections use those guids, never storage ids.
type Document struct {
	XMLName xml.Name `xml:"sampleData"`

	Campuses              []XCampus               `xml:"campuses>campus"`
	Locations             []XLocation             `xml:"locations>location"`
	Classrooms            []XClassroom            `xml:"checkinAreas>classroom"`
	Families              []XFamily               `xml:"families>family"`
	Relationships         []XRelationship         `xml:"relationships>relationship"`
	Groups                []XGroup                `xml:"groups>group"`
	SecurityRoles         []XSecurityRole         `xml:"securityRoles>securityRole"`
	Connections           []XConnection           `xml:"connections>connection"`
	Following             []XFollowing            `xml:"following>follow"`
	FinancialGateways     []XFinancialGateway     `xml:"financialGateways>gateway"`
	RegistrationTemplates []XRegistrationTemplate `xml:"registrationTemplates>registrationTemplate"`
	RegistrationInstances []XRegistrationInstance `xml:"registrationInstances>registrationInstance"`
}

func ParseDocument(r io.Reader) (*Document, error) {
	var doc Document
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse sample data document: %w", err)
	}
	return &doc, nil
}

type XCampus struct {
	Guid         string `xml:"guid,attr"`
	Name         string `xml:"name,attr"`
	ShortCode    string `xml:"shortCode,attr"`
	LocationGuid string `xml:"locationGuid,attr"`
}

type XLocation struct {
	Guid               string `xml:"guid,attr"`
	Name               string `xml:"name,attr"`
	LocationType       string `xml:"locationType,attr"`
	ParentLocationGuid string `xml:"parentLocationGuid,attr"`
	Street1            string `xml:"street1,attr"`
	Street2            string `xml:"street2,attr"`
	City               string `xml:"city,attr"`
	State              string `xml:"state,attr"`
	PostalCode         string `xml:"postalCode,attr"`
	Country            string `xml:"country,attr"`
	Latitude           string `xml:"latitude,attr"`
	Longitude          string `xml:"longitude,attr"`
}

// XClassroom declares a check-in area with an age band. Age bounds are
// fractional years so nursery rooms can declare bands like 0.0-1.5.
type XClassroom struct {
	Guid         string  `xml:"guid,attr"`
	Name         string  `xml:"name,attr"`
	MinAge       float64 `xml:"minAge,attr"`
	MaxAge       float64 `xml:"maxAge,attr"`
	LocationGuid string  `xml:"locationGuid,attr"`
}

type XFamily struct {
	Guid       string       `xml:"guid,attr"`
	Name       string       `xml:"name,attr"`
	CampusGuid string       `xml:"campusGuid,attr"`
	Members    []XPerson    `xml:"members>person"`
	Address    *XAddress    `xml:"address"`
	Attendance *XAttendance `xml:"attendance"`
}

type XAddress struct {
	AddressType string `xml:"addressType,attr"`
	Street1     string `xml:"street1,attr"`
	Street2     string `xml:"street2,attr"`
	City        string `xml:"city,attr"`
	State       string `xml:"state,attr"`
	PostalCode  string `xml:"postalCode,attr"`
	Country     string `xml:"country,attr"`
	Latitude    string `xml:"latitude,attr"`
	Longitude   string `xml:"longitude,attr"`
}

// XAttendance configures fabricated weekly attendance for a family's
// children across a date range.
type XAttendance struct {
	StartDate                     string `xml:"startDate,attr"`
	EndDate                       string `xml:"endDate,attr"`
	PercentAttendance             int    `xml:"percentAttendance,attr"`
	PercentAttendedRegularService int    `xml:"percentAttendedRegularService,attr"`
	Schedule                      string `xml:"schedule,attr"`
	AltSchedule                   string `xml:"altSchedule,attr"`
}

type XPerson struct {
	Guid             string `xml:"guid,attr"`
	FirstName        string `xml:"firstName,attr"`
	NickName         string `xml:"nickName,attr"`
	MiddleName       string `xml:"middleName,attr"`
	LastName         string `xml:"lastName,attr"`
	Gender           string `xml:"gender,attr"`
	MaritalStatus    string `xml:"maritalStatus,attr"`
	BirthDate        string `xml:"birthDate,attr"`
	Age              string `xml:"age,attr"`
	Email            string `xml:"email,attr"`
	EmailActive      string `xml:"emailActive,attr"`
	RecordType       string `xml:"recordType,attr"`
	RecordStatus     string `xml:"recordStatus,attr"`
	ConnectionStatus string `xml:"connectionStatus,attr"`
	FamilyRole       string `xml:"familyRole,attr"`
	PhotoUrl         string `xml:"photoUrl,attr"`
	Deceased         string `xml:"deceased,attr"`

	Phones        []XPhone     `xml:"phones>phone"`
	PreviousNames []XPrevName  `xml:"previousNames>previousName"`
	Attributes    []XAttribute `xml:"attributes>attribute"`
	Notes         []XNote      `xml:"notes>note"`
	Giving        *XGiving     `xml:"giving"`
}

type XPhone struct {
	Type     string `xml:"type,attr"`
	Number   string `xml:"number,attr"`
	Unlisted string `xml:"unlisted,attr"`
}

type XPrevName struct {
	LastName string `xml:"lastName,attr"`
}

type XAttribute struct {
	Key   string `xml:"key,attr"`
	Value string `xml:"value,attr"`
}

type XNote struct {
	Type string `xml:"type,attr"`
	Text string `xml:"text,attr"`
}

// XGiving configures fabricated contribution history for one person.
type XGiving struct {
	StartGiving        string          `xml:"startGiving,attr"`
	EndGiving          string          `xml:"endGiving,attr"`
	PercentGive        int             `xml:"percentGive,attr"`
	GrowRatePercent    int             `xml:"growRatePercent,attr"`
	GrowFrequencyWeeks int             `xml:"growFrequencyWeeks,attr"`
	Frequency          string          `xml:"frequency,attr"`
	CurrencyType       string          `xml:"currencyType,attr"`
	Amounts            []XGivingAmount `xml:"amount"`
	CheckImages        []XCheckImage   `xml:"checkImages>checkImage"`
}

type XGivingAmount struct {
	Account string `xml:"account,attr"`
	Amount  string `xml:"amount,attr"`
}

type XCheckImage struct {
	Url string `xml:"url,attr"`
}

type XRelationship struct {
	PersonGuid   string `xml:"personGuid,attr"`
	RelatesTo    string `xml:"relatesToGuid,attr"`
	Relationship string `xml:"relationship,attr"`
}

type XGroup struct {
	Guid                string         `xml:"guid,attr"`
	Name                string         `xml:"name,attr"`
	Type                string         `xml:"type,attr"`
	Topic               string         `xml:"topic,attr"`
	CampusGuid          string         `xml:"campusGuid,attr"`
	MeetingLocationGuid string         `xml:"meetingLocationGuid,attr"`
	Schedule            string         `xml:"schedule,attr"`
	Members             []XGroupMember `xml:"members>groupMember"`
	Attributes          []XAttribute   `xml:"attributes>attribute"`
	Children            []XGroup       `xml:"group"`
}

type XGroupMember struct {
	PersonGuid string `xml:"personGuid,attr"`
	Role       string `xml:"role,attr"`
}

type XSecurityRole struct {
	Guid    string         `xml:"guid,attr"`
	Name    string         `xml:"name,attr"`
	Members []XGroupMember `xml:"members>groupMember"`
}

type XConnection struct {
	Guid        string `xml:"guid,attr"`
	PersonGuid  string `xml:"personGuid,attr"`
	Opportunity string `xml:"opportunity,attr"`
	Status      string `xml:"status,attr"`
	Comment     string `xml:"comment,attr"`
}

type XFollowing struct {
	PersonGuid  string `xml:"personGuid,attr"`
	FollowsGuid string `xml:"followsGuid,attr"`
}

type XFinancialGateway struct {
	Guid      string `xml:"guid,attr"`
	Name      string `xml:"name,attr"`
	EntryType string `xml:"entryType,attr"`
}

type XRegistrationTemplate struct {
	Guid                     string `xml:"guid,attr"`
	Name                     string `xml:"name,attr"`
	GroupType                string `xml:"groupType,attr"`
	RegistrationTerm         string `xml:"registrationTerm,attr"`
	RegistrantTerm           string `xml:"registrantTerm,attr"`
	AllowMultipleRegistrants string `xml:"allowMultipleRegistrants,attr"`
	Cost                     string `xml:"cost,attr"`

	Forms     []XRegistrationForm     `xml:"forms>form"`
	Fees      []XRegistrationFee      `xml:"fees>fee"`
	Discounts []XRegistrationDiscount `xml:"discounts>discount"`
}

type XRegistrationForm struct {
	Name   string                   `xml:"name,attr"`
	Fields []XRegistrationFormField `xml:"fields>field"`
}

type XRegistrationFormField struct {
	Name       string `xml:"name,attr"`
	IsRequired string `xml:"isRequired,attr"`
}

type XRegistrationFee struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
	Cost string `xml:"cost,attr"`
}

type XRegistrationDiscount struct {
	Code  string `xml:"code,attr"`
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

type XRegistrationInstance struct {
	Guid               string `xml:"guid,attr"`
	TemplateGuid       string `xml:"templateGuid,attr"`
	Name               string `xml:"name,attr"`
	Start              string `xml:"start,attr"`
	End                string `xml:"end,attr"`
	MaxAttendees       int    `xml:"maxAttendees,attr"`
	Account            string `xml:"account,attr"`
	PlacementGroupGuid string `xml:"placementGroupGuid,attr"`
}
