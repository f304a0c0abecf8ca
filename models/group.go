package models

import (
	"time"
)

// GroupType distinguishes families, relationship containers, serving teams,
// small groups, security roles and check-in areas. Role rows hang off the
// type so a "Member" of a small group and an "Adult" of a family stay
// distinct.
type GroupType struct {
	ID              int       `gorm:"primary_key" json:"id"`
	Guid            string    `gorm:"size:36;uniqueIndex;not null" json:"guid"`
	Name            string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	TakesAttendance *bool     `json:"takes_attendance"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type GroupTypeRole struct {
	ID          int    `gorm:"primary_key" json:"id"`
	GroupTypeId int    `gorm:"index;not null" json:"group_type_id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	IsLeader    *bool  `json:"is_leader"`
}

type Group struct {
	ID             int       `gorm:"primary_key" json:"id"`
	Guid           string    `gorm:"size:36;uniqueIndex;not null" json:"guid"`
	GroupTypeId    int       `gorm:"index;not null" json:"group_type_id"`
	ParentGroupId  *int      `gorm:"index" json:"parent_group_id"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	Description    string    `gorm:"type:text" json:"description"`
	CampusId       *int      `gorm:"index" json:"campus_id"`
	LocationId     *int      `gorm:"index" json:"location_id"`
	ScheduleId     *int      `gorm:"index" json:"schedule_id"`
	IsSecurityRole *bool     `json:"is_security_role"`
	IsActive       *bool     `json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type GroupMember struct {
	ID              int       `gorm:"primary_key" json:"id"`
	GroupId         int       `gorm:"index;not null" json:"group_id"`
	PersonId        int       `gorm:"index;not null" json:"person_id"`
	GroupTypeRoleId int       `gorm:"index;not null" json:"group_type_role_id"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// GroupAttributeValue carries document-declared custom attributes on
// non-family groups (topic, meeting day, and the like).
type GroupAttributeValue struct {
	ID           int    `gorm:"primary_key" json:"id"`
	GroupId      int    `gorm:"index;not null" json:"group_id"`
	AttributeKey string `gorm:"size:255;not null" json:"attribute_key"`
	Value        string `gorm:"type:text" json:"value"`
}
