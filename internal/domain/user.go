package domain

import (
	"strings"
	"time"
)

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleStaff   UserRole = "staff"
	RoleStudent UserRole = "student"

	// roleLegacyStudent is what older clients and tokens send for students.
	roleLegacyStudent = "user"
)

// ParseRole normalizes a role string. The second value is false for unknown roles.
func ParseRole(s string) (UserRole, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleAdmin):
		return RoleAdmin, true
	case string(RoleStaff):
		return RoleStaff, true
	case string(RoleStudent), roleLegacyStudent:
		return RoleStudent, true
	default:
		return "", false
	}
}

// IsStaff reports whether the role may act on other users' records.
func (r UserRole) IsStaff() bool {
	return r == RoleAdmin || r == RoleStaff
}

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"not null;uniqueIndex" validate:"required,email"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	Role         UserRole  `json:"role" gorm:"type:varchar(16);not null;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
