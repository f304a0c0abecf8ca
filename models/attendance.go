package models

import "time"

// Attendance records a child checked into a classroom group for one service.
type Attendance struct {
	ID               int       `gorm:"primary_key" json:"id"`
	PersonAliasId    int       `gorm:"index;not null" json:"person_alias_id"`
	GroupId          int       `gorm:"index;not null" json:"group_id"`
	LocationId       int       `gorm:"index;not null" json:"location_id"`
	ScheduleId       int       `gorm:"index;not null" json:"schedule_id"`
	StartDateTime    time.Time `gorm:"index;not null" json:"start_date_time"`
	AttendanceCodeId int       `gorm:"index" json:"attendance_code_id"`
	DidAttend        *bool     `json:"did_attend"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type AttendanceCode struct {
	ID            int       `gorm:"primary_key" json:"id"`
	Code          string    `gorm:"size:16;not null" json:"code"`
	IssueDateTime time.Time `gorm:"not null" json:"issue_date_time"`
}
