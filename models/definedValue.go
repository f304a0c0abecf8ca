package models

import "time"

// DefinedType groups reusable classification values: record types, record
// statuses, connection statuses, currency types, topics, phone number types.
type DefinedType struct {
	ID   int    `gorm:"primary_key" json:"id"`
	Name string `gorm:"size:255;uniqueIndex;not null" json:"name"`
}

type DefinedValue struct {
	ID            int       `gorm:"primary_key" json:"id"`
	DefinedTypeId int       `gorm:"index:idx_defined_value_type_value,unique;not null" json:"defined_type_id"`
	Value         string    `gorm:"size:255;index:idx_defined_value_type_value,unique;not null" json:"value"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Well-known defined type names seeded by the importer.
const (
	DefinedTypeRecordType       = "Record Type"
	DefinedTypeRecordStatus     = "Record Status"
	DefinedTypeConnectionStatus = "Connection Status"
	DefinedTypeCurrencyType     = "Currency Type"
	DefinedTypePhoneType        = "Phone Type"
	DefinedTypeGroupTopic       = "Group Topic"
	DefinedTypeConnectionState  = "Connection Request State"
)
