package models

import (
	"fmt"
)

type Gender string

const (
	GenderMale    Gender = "Male"
	GenderFemale  Gender = "Female"
	GenderUnknown Gender = "Unknown"
)

func ParseGender(s string) (Gender, error) {
	switch s {
	case "M", "Male", "m", "male":
		return GenderMale, nil
	case "F", "Female", "f", "female":
		return GenderFemale, nil
	case "":
		return GenderUnknown, nil
	}
	return "", fmt.Errorf("invalid gender %q", s)
}

type MaritalStatus string

const (
	MaritalStatusMarried  MaritalStatus = "Married"
	MaritalStatusSingle   MaritalStatus = "Single"
	MaritalStatusDivorced MaritalStatus = "Divorced"
	MaritalStatusUnknown  MaritalStatus = "Unknown"
)

func ParseMaritalStatus(s string) (MaritalStatus, error) {
	switch s {
	case "Married", "married":
		return MaritalStatusMarried, nil
	case "Single", "single":
		return MaritalStatusSingle, nil
	case "Divorced", "divorced":
		return MaritalStatusDivorced, nil
	case "":
		return MaritalStatusUnknown, nil
	}
	return "", fmt.Errorf("invalid marital status %q", s)
}

type RecordStatus string

const (
	RecordStatusActive   RecordStatus = "Active"
	RecordStatusInactive RecordStatus = "Inactive"
	RecordStatusPending  RecordStatus = "Pending"
)

// ParseRecordStatus defaults to Pending for an absent attribute.
func ParseRecordStatus(s string) (RecordStatus, error) {
	switch s {
	case "Active", "active":
		return RecordStatusActive, nil
	case "Inactive", "inactive":
		return RecordStatusInactive, nil
	case "Pending", "pending", "":
		return RecordStatusPending, nil
	}
	return "", fmt.Errorf("invalid record status %q", s)
}

type FamilyRole string

const (
	FamilyRoleAdult FamilyRole = "Adult"
	FamilyRoleChild FamilyRole = "Child"
)

func ParseFamilyRole(s string) (FamilyRole, error) {
	switch s {
	case "Adult", "adult":
		return FamilyRoleAdult, nil
	case "Child", "child":
		return FamilyRoleChild, nil
	}
	return "", fmt.Errorf("invalid family role %q", s)
}

type BatchStatus string

const (
	BatchStatusOpen    BatchStatus = "Open"
	BatchStatusClosed  BatchStatus = "Closed"
	BatchStatusPending BatchStatus = "Pending"
)

type LocationType string

const (
	LocationTypeRoom     LocationType = "Room"
	LocationTypeBuilding LocationType = "Building"
	LocationTypeCampus   LocationType = "Campus"
)

func ParseLocationType(s string) (LocationType, error) {
	switch s {
	case "Room", "room":
		return LocationTypeRoom, nil
	case "Building", "building":
		return LocationTypeBuilding, nil
	case "Campus", "campus":
		return LocationTypeCampus, nil
	}
	return "", fmt.Errorf("invalid location type %q", s)
}

type AddressType string

const (
	AddressTypeHome     AddressType = "Home"
	AddressTypeWork     AddressType = "Work"
	AddressTypePrevious AddressType = "Previous"
)

func ParseAddressType(s string) (AddressType, error) {
	switch s {
	case "Home", "home", "":
		return AddressTypeHome, nil
	case "Work", "work":
		return AddressTypeWork, nil
	case "Previous", "previous":
		return AddressTypePrevious, nil
	}
	return "", fmt.Errorf("invalid address type %q", s)
}

type GivingFrequency string

const (
	GivingFrequencyOnce    GivingFrequency = "one-time"
	GivingFrequencyWeekly  GivingFrequency = "weekly"
	GivingFrequencyMonthly GivingFrequency = "monthly"
)

func ParseGivingFrequency(s string) (GivingFrequency, error) {
	switch s {
	case "one-time", "onetime", "once":
		return GivingFrequencyOnce, nil
	case "weekly", "":
		return GivingFrequencyWeekly, nil
	case "monthly":
		return GivingFrequencyMonthly, nil
	}
	return "", fmt.Errorf("invalid giving frequency %q", s)
}

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "Percentage"
	DiscountTypeAmount     DiscountType = "Amount"
)

func ParseDiscountType(s string) (DiscountType, error) {
	switch s {
	case "Percentage", "percentage", "percent":
		return DiscountTypePercentage, nil
	case "Amount", "amount":
		return DiscountTypeAmount, nil
	}
	return "", fmt.Errorf("invalid discount type %q", s)
}

type RegistrationFeeType string

const (
	RegistrationFeeTypeSingle   RegistrationFeeType = "Single"
	RegistrationFeeTypeMultiple RegistrationFeeType = "Multiple"
)

func ParseRegistrationFeeType(s string) (RegistrationFeeType, error) {
	switch s {
	case "Single", "single", "":
		return RegistrationFeeTypeSingle, nil
	case "Multiple", "multiple":
		return RegistrationFeeTypeMultiple, nil
	}
	return "", fmt.Errorf("invalid registration fee type %q", s)
}
