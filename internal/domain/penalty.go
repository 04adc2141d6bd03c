package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PenaltyStatus string

const (
	PenaltyUnpaid PenaltyStatus = "unpaid"
	PenaltyPaid   PenaltyStatus = "paid"
	PenaltyWaived PenaltyStatus = "waived"
)

func (s PenaltyStatus) Valid() bool {
	return s == PenaltyUnpaid || s == PenaltyPaid || s == PenaltyWaived
}

// PenaltyOrigin tells system-assessed penalties apart from ones an admin entered.
type PenaltyOrigin string

const (
	PenaltySystem PenaltyOrigin = "system"
	PenaltyManual PenaltyOrigin = "manual"
)

const (
	ReasonLost    = "Equipment lost"
	ReasonDamaged = "Equipment damaged"
	ReasonLate    = "Late return"
)

type Penalty struct {
	ID                  int64           `json:"id" gorm:"primaryKey"`
	UserID              int64           `json:"user_id" gorm:"not null;index"`
	BorrowedEquipmentID int64           `json:"borrowed_equipment_id" gorm:"not null;index"`
	Amount              decimal.Decimal `json:"amount" gorm:"type:numeric(10,2);not null"`
	Reason              string          `json:"reason" gorm:"type:text;not null"`
	Status              PenaltyStatus   `json:"status" gorm:"type:varchar(16);not null;index"`
	Origin              PenaltyOrigin   `json:"origin" gorm:"type:varchar(16);not null"`
	IssuedAt            time.Time       `json:"issued_at" gorm:"not null"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

func (Penalty) TableName() string { return "penalties" }
