package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type FinancialAccount struct {
	ID              int    `gorm:"primary_key" json:"id"`
	Guid            string `gorm:"size:36;uniqueIndex" json:"guid"`
	Name            string `gorm:"size:255;uniqueIndex;not null" json:"name"`
	IsTaxDeductible *bool  `json:"is_tax_deductible"`
}

type FinancialGateway struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Guid      string    `gorm:"size:36;uniqueIndex;not null" json:"guid"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	EntryType string    `gorm:"size:64" json:"entry_type"`
	IsActive  *bool     `json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// FinancialBatch aggregates one generation date's transactions. Generated
// batches are historical backfill, so they are born Closed and their
// ControlAmount must always equal the sum of their transaction details.
type FinancialBatch struct {
	ID            int             `gorm:"primary_key" json:"id"`
	Guid          string          `gorm:"size:36;uniqueIndex;not null" json:"guid"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	BatchDate     time.Time       `gorm:"index;not null" json:"batch_date"`
	Status        BatchStatus     `gorm:"size:16;not null" json:"status"`
	ControlAmount decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"control_amount"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type FinancialTransaction struct {
	ID                      int                          `gorm:"primary_key" json:"id"`
	Guid                    string                       `gorm:"size:36;uniqueIndex;not null" json:"guid"`
	BatchId                 int                          `gorm:"index;not null" json:"batch_id"`
	AuthorizedPersonAliasId int                          `gorm:"index;not null" json:"authorized_person_alias_id"`
	TransactionDateTime     time.Time                    `gorm:"index;not null" json:"transaction_date_time"`
	CurrencyTypeValueId     int                          `gorm:"index" json:"currency_type_value_id"`
	CheckImageId            *int                         `json:"check_image_id"`
	Summary                 string                       `gorm:"size:255" json:"summary"`
	Details                 []FinancialTransactionDetail `gorm:"foreignKey:TransactionId" json:"details"`
	CreatedAt               time.Time                    `gorm:"autoCreateTime" json:"created_at"`
}

// TotalAmount sums the line items; it is what batch control amounts are
// reconciled against.
func (t *FinancialTransaction) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, d := range t.Details {
		total = total.Add(d.Amount)
	}
	return total
}

type FinancialTransactionDetail struct {
	ID            int             `gorm:"primary_key" json:"id"`
	TransactionId int             `gorm:"index;not null" json:"transaction_id"`
	AccountId     int             `gorm:"index;not null" json:"account_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
}
