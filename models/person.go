package models

import (
	"time"
)

type Person struct {
	ID                      int           `gorm:"primary_key" json:"id"`
	Guid                    string        `gorm:"size:36;uniqueIndex;not null" json:"guid"`
	FirstName               string        `gorm:"size:255;not null" json:"first_name"`
	NickName                string        `gorm:"size:255" json:"nick_name"`
	MiddleName              string        `gorm:"size:255" json:"middle_name"`
	LastName                string        `gorm:"size:255;not null" json:"last_name"`
	Gender                  Gender        `gorm:"size:32;not null" json:"gender"`
	MaritalStatus           MaritalStatus `gorm:"size:32" json:"marital_status"`
	BirthDate               *time.Time    `json:"birth_date"`
	BirthYear               int           `json:"birth_year"`
	Email                   string        `gorm:"size:255" json:"email"`
	IsEmailActive           *bool         `json:"is_email_active"`
	RecordTypeValueId       int           `gorm:"index" json:"record_type_value_id"`
	RecordStatusValueId     int           `gorm:"index" json:"record_status_value_id"`
	ConnectionStatusValueId int           `gorm:"index" json:"connection_status_value_id"`
	GivingGroupId           *int          `gorm:"index" json:"giving_group_id"`
	GivingLeaderId          *int          `gorm:"index" json:"giving_leader_id"`
	PrimaryFamilyId         *int          `gorm:"index" json:"primary_family_id"`
	PhotoId                 *int          `json:"photo_id"`
	IsDeceased              *bool         `json:"is_deceased"`
	CreatedByAliasId        int           `json:"created_by_alias_id"`
	CreatedAt               time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

// Age at the reference time, preserving the "birthday not yet reached this
// year" adjustment. Returns -1 when no birth date is known.
func (p *Person) Age(now time.Time) int {
	if p.BirthDate == nil {
		return -1
	}
	return AgeAt(*p.BirthDate, now)
}

func AgeAt(birthDate time.Time, now time.Time) int {
	age := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() ||
		(now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// PersonAlias is the indirection every relationship, attendance and
// financial record points at. The primary alias maps a person to itself.
type PersonAlias struct {
	ID            int       `gorm:"primary_key" json:"id"`
	Guid          string    `gorm:"size:36;uniqueIndex;not null" json:"guid"`
	PersonId      int       `gorm:"index;not null" json:"person_id"`
	AliasPersonId int       `gorm:"index;not null" json:"alias_person_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type PhoneNumber struct {
	ID              int    `gorm:"primary_key" json:"id"`
	PersonId        int    `gorm:"index;not null" json:"person_id"`
	Number          string `gorm:"size:32;not null" json:"number"`
	NumberTypeValue string `gorm:"size:64" json:"number_type_value"`
	IsUnlisted      *bool  `json:"is_unlisted"`
}

type PersonPreviousName struct {
	ID       int    `gorm:"primary_key" json:"id"`
	PersonId int    `gorm:"index;not null" json:"person_id"`
	LastName string `gorm:"size:255;not null" json:"last_name"`
}

type AttributeValue struct {
	ID           int    `gorm:"primary_key" json:"id"`
	PersonId     int    `gorm:"index;not null" json:"person_id"`
	AttributeKey string `gorm:"size:255;not null" json:"attribute_key"`
	Value        string `gorm:"type:text" json:"value"`
}

type UserLogin struct {
	ID       int       `gorm:"primary_key" json:"id"`
	PersonId int       `gorm:"index;not null" json:"person_id"`
	UserName string    `gorm:"size:255;uniqueIndex;not null" json:"user_name"`
	Password string    `gorm:"size:255;not null" json:"password"`
	IsActive *bool     `json:"is_active"`
	Created  time.Time `gorm:"autoCreateTime" json:"created"`
}

type Note struct {
	ID       int       `gorm:"primary_key" json:"id"`
	PersonId int       `gorm:"index;not null" json:"person_id"`
	NoteType string    `gorm:"size:64" json:"note_type"`
	Text     string    `gorm:"type:text" json:"text"`
	Created  time.Time `gorm:"autoCreateTime" json:"created"`
}

// BinaryFile holds fetched photo and check-image bytes.
type BinaryFile struct {
	ID       int    `gorm:"primary_key" json:"id"`
	Guid     string `gorm:"size:36;uniqueIndex;not null" json:"guid"`
	FileName string `gorm:"size:255" json:"file_name"`
	MimeType string `gorm:"size:128" json:"mime_type"`
	Content  []byte `gorm:"type:mediumblob" json:"-"`
}

type Following struct {
	ID                    int `gorm:"primary_key" json:"id"`
	PersonAliasId         int `gorm:"index;not null" json:"person_alias_id"`
	FollowedPersonAliasId int `gorm:"index;not null" json:"followed_person_alias_id"`
}

type ConnectionRequest struct {
	ID              int       `gorm:"primary_key" json:"id"`
	Guid            string    `gorm:"size:36;uniqueIndex" json:"guid"`
	PersonAliasId   int       `gorm:"index;not null" json:"person_alias_id"`
	OpportunityName string    `gorm:"size:255;not null" json:"opportunity_name"`
	StatusValueId   int       `gorm:"index" json:"status_value_id"`
	Comments        string    `gorm:"type:text" json:"comments"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}
