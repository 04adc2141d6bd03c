package domain

import "time"

type EquipmentStatus string

const (
	EquipmentAvailable EquipmentStatus = "available"
	EquipmentBorrowed  EquipmentStatus = "borrowed"
	EquipmentLost      EquipmentStatus = "lost"
	EquipmentDamaged   EquipmentStatus = "damaged"
)

const DefaultSport = "General"

func (s EquipmentStatus) Valid() bool {
	switch s {
	case EquipmentAvailable, EquipmentBorrowed, EquipmentLost, EquipmentDamaged:
		return true
	}
	return false
}

// Equipment is a catalog entry. Status and Quantity are maintained by staff
// and are not adjusted by borrow transitions.
type Equipment struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"not null"`
	Description string          `json:"description,omitempty" gorm:"type:text"`
	Quantity    int             `json:"quantity" gorm:"not null;default:0"`
	Status      EquipmentStatus `json:"status" gorm:"type:varchar(16);not null;index"`
	Sport       string          `json:"sport" gorm:"type:varchar(64);not null;index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Equipment) TableName() string { return "equipment" }
