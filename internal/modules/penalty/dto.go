package penalty

import "github.com/shopspring/decimal"

// CreatePenaltyRequest accepts amount as a JSON number or a numeric string.
type CreatePenaltyRequest struct {
	UserID              int64            `json:"user_id" validate:"required,gt=0"`
	BorrowedEquipmentID int64            `json:"borrowed_equipment_id" validate:"required,gt=0"`
	Amount              *decimal.Decimal `json:"amount" validate:"required"`
	Reason              string           `json:"reason" validate:"required"`
	Status              *string          `json:"status,omitempty" validate:"omitempty,oneof=unpaid paid waived"`
}

// UpdatePenaltyRequest is a partial update; omitted fields are left as is.
type UpdatePenaltyRequest struct {
	Amount *decimal.Decimal `json:"amount,omitempty"`
	Reason *string          `json:"reason,omitempty"`
	Status *string          `json:"status,omitempty" validate:"omitempty,oneof=unpaid paid waived"`
}
