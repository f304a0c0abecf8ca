package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Location struct {
	ID               int          `gorm:"primary_key" json:"id"`
	Guid             string       `gorm:"size:36;uniqueIndex;not null" json:"guid"`
	Name             string       `gorm:"size:255" json:"name"`
	LocationType     LocationType `gorm:"size:32" json:"location_type"`
	ParentLocationId *int         `gorm:"index" json:"parent_location_id"`

	// Address specialization. Blank for rooms and buildings.
	Street1    string           `gorm:"size:255" json:"street1"`
	Street2    string           `gorm:"size:255" json:"street2"`
	City       string           `gorm:"size:128" json:"city"`
	State      string           `gorm:"size:64" json:"state"`
	PostalCode string           `gorm:"size:32" json:"postal_code"`
	Country    string           `gorm:"size:8" json:"country"`
	Latitude   *decimal.Decimal `gorm:"type:decimal(10,7)" json:"latitude"`
	Longitude  *decimal.Decimal `gorm:"type:decimal(10,7)" json:"longitude"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type Campus struct {
	ID         int       `gorm:"primary_key" json:"id"`
	Guid       string    `gorm:"size:36;uniqueIndex;not null" json:"guid"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	ShortCode  string    `gorm:"size:32" json:"short_code"`
	LocationId *int      `gorm:"index" json:"location_id"`
	IsActive   *bool     `json:"is_active"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Schedule is deliberately thin: the pipeline only ever asks for the start
// time of day of a named service. A real calendar subsystem is out of scope.
type Schedule struct {
	ID             int    `gorm:"primary_key" json:"id"`
	Name           string `gorm:"size:255;uniqueIndex;not null" json:"name"`
	StartTimeOfDay string `gorm:"size:8;not null" json:"start_time_of_day"` // "HH:MM"
}
