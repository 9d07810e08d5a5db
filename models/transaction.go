package models

import "time"

// Transaction is the immutable record of one completed checkout. It is
// written to the ledger exactly once and never updated.
type Transaction struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	TransactionID string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"transaction_id"`
	TableID       string    `gorm:"type:varchar(64);not null;index" json:"table_id"`
	TableName     string    `gorm:"type:varchar(100)" json:"table_name"`
	AmountDue     int64     `gorm:"not null" json:"amount_due"`
	AmountPaid    int64     `gorm:"not null" json:"amount_paid"`
	Change        int64     `gorm:"not null" json:"change"`
	Partial       bool      `gorm:"not null;default:false" json:"partial"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}
