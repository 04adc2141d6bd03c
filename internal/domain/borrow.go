package domain

import "time"

type BorrowStatus string

const (
	BorrowPending  BorrowStatus = "pending"
	BorrowBorrowed BorrowStatus = "borrowed"
	BorrowReturned BorrowStatus = "returned"
	BorrowLost     BorrowStatus = "lost"
	BorrowDamaged  BorrowStatus = "damaged"
	BorrowRejected BorrowStatus = "rejected"
)

// IsOutcome reports whether s closes a borrowed record.
func (s BorrowStatus) IsOutcome() bool {
	return s == BorrowReturned || s == BorrowLost || s == BorrowDamaged
}

// BorrowRecord is one borrow-ledger entry. ClosedAt is set when the record
// reaches returned, lost or damaged; for returns it holds the effective
// return timestamp.
type BorrowRecord struct {
	ID          int64        `json:"id" gorm:"primaryKey"`
	UserID      int64        `json:"user_id" gorm:"not null;index"`
	EquipmentID int64        `json:"equipment_id" gorm:"not null;index"`
	Notes       string       `json:"notes,omitempty" gorm:"type:text"`
	DueDate     *time.Time   `json:"due_date"`
	BorrowDate  time.Time    `json:"borrow_date" gorm:"not null"`
	ClosedAt    *time.Time   `json:"closed_at,omitempty"`
	Status      BorrowStatus `json:"status" gorm:"type:varchar(16);not null;index"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	User      *User      `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Equipment *Equipment `json:"equipment,omitempty" gorm:"foreignKey:EquipmentID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (BorrowRecord) TableName() string { return "borrowed_equipment" }
