package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type RegistrationTemplate struct {
	ID                           int                            `gorm:"primary_key" json:"id"`
	Guid                         string                         `gorm:"size:36;uniqueIndex;not null" json:"guid"`
	Name                         string                         `gorm:"size:255;not null" json:"name"`
	RegistrationTerm             string                         `gorm:"size:64" json:"registration_term"`
	RegistrantTerm               string                         `gorm:"size:64" json:"registrant_term"`
	GroupTypeId                  *int                           `gorm:"index" json:"group_type_id"`
	AllowMultipleRegistrants     *bool                          `json:"allow_multiple_registrants"`
	Cost                         decimal.Decimal                `gorm:"type:decimal(20,2);default:0" json:"cost"`
	ConfirmationEmailTemplate    string                         `gorm:"type:text" json:"confirmation_email_template"`
	ReminderEmailTemplate        string                         `gorm:"type:text" json:"reminder_email_template"`
	PaymentReminderEmailTemplate string                         `gorm:"type:text" json:"payment_reminder_email_template"`
	SuccessText                  string                         `gorm:"type:text" json:"success_text"`
	Forms                        []RegistrationTemplateForm     `gorm:"foreignKey:TemplateId" json:"forms"`
	Fees                         []RegistrationTemplateFee      `gorm:"foreignKey:TemplateId" json:"fees"`
	Discounts                    []RegistrationTemplateDiscount `gorm:"foreignKey:TemplateId" json:"discounts"`
	CreatedAt                    time.Time                      `gorm:"autoCreateTime" json:"created_at"`
}

type RegistrationTemplateForm struct {
	ID         int                             `gorm:"primary_key" json:"id"`
	TemplateId int                             `gorm:"index;not null" json:"template_id"`
	Name       string                          `gorm:"size:255;not null" json:"name"`
	Order      int                             `json:"order"`
	Fields     []RegistrationTemplateFormField `gorm:"foreignKey:FormId" json:"fields"`
}

type RegistrationTemplateFormField struct {
	ID         int    `gorm:"primary_key" json:"id"`
	FormId     int    `gorm:"index;not null" json:"form_id"`
	FieldName  string `gorm:"size:255;not null" json:"field_name"`
	IsRequired *bool  `json:"is_required"`
	Order      int    `json:"order"`
}

type RegistrationTemplateFee struct {
	ID         int                 `gorm:"primary_key" json:"id"`
	TemplateId int                 `gorm:"index;not null" json:"template_id"`
	Name       string              `gorm:"size:255;not null" json:"name"`
	FeeType    RegistrationFeeType `gorm:"size:16;not null" json:"fee_type"`
	CostValue  string              `gorm:"size:512" json:"cost_value"`
}

type RegistrationTemplateDiscount struct {
	ID           int             `gorm:"primary_key" json:"id"`
	TemplateId   int             `gorm:"index;not null" json:"template_id"`
	Code         string          `gorm:"size:64;not null" json:"code"`
	DiscountType DiscountType    `gorm:"size:16;not null" json:"discount_type"`
	Value        decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"value"`
}

type RegistrationInstance struct {
	ID               int        `gorm:"primary_key" json:"id"`
	Guid             string     `gorm:"size:36;uniqueIndex;not null" json:"guid"`
	TemplateId       int        `gorm:"index;not null" json:"template_id"`
	Name             string     `gorm:"size:255;not null" json:"name"`
	StartDateTime    *time.Time `json:"start_date_time"`
	EndDateTime      *time.Time `json:"end_date_time"`
	MaxAttendees     int        `json:"max_attendees"`
	AccountId        *int       `gorm:"index" json:"account_id"`
	PlacementGroupId *int       `gorm:"index" json:"placement_group_id"`
	IsActive         *bool      `json:"is_active"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
