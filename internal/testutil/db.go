// Package testutil opens throwaway databases and seeds the fixtures shared by
// service and handler tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/database"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/domain"
	applog "github.com/Mikee100/Uni-Sporting-Equipment/internal/logger"
)

// Fixture IDs seeded by Seed.
const (
	AdminID    int64 = 1
	StaffID    int64 = 2
	StudentID  int64 = 3
	Student2ID int64 = 4

	BallID   int64 = 7
	RacketID int64 = 9
)

// NewDB returns a migrated in-memory database private to the test. It also
// lowers the application logger to error level so services built on the
// returned DB stay quiet under go test -v.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	applog.Initialize("error", "text")

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:sportequip_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Seed inserts one admin, one staff member, two students and two pieces of
// equipment.
func Seed(t *testing.T, db *gorm.DB) {
	t.Helper()
	users := []domain.User{
		{ID: AdminID, Name: "Ada Admin", Email: "admin@uni.test", PasswordHash: "x", Role: domain.RoleAdmin},
		{ID: StaffID, Name: "Sam Staff", Email: "staff@uni.test", PasswordHash: "x", Role: domain.RoleStaff},
		{ID: StudentID, Name: "Stu Dent", Email: "student@uni.test", PasswordHash: "x", Role: domain.RoleStudent},
		{ID: Student2ID, Name: "Other Student", Email: "other@uni.test", PasswordHash: "x", Role: domain.RoleStudent},
	}
	if err := db.Create(&users).Error; err != nil {
		t.Fatalf("failed to seed users: %v", err)
	}

	equipment := []domain.Equipment{
		{ID: BallID, Name: "Football", Quantity: 10, Status: domain.EquipmentAvailable, Sport: "Football"},
		{ID: RacketID, Name: "Tennis Racket", Quantity: 4, Status: domain.EquipmentAvailable, Sport: "Tennis"},
	}
	if err := db.Create(&equipment).Error; err != nil {
		t.Fatalf("failed to seed equipment: %v", err)
	}
}

// Amount parses a fixed decimal literal.
func Amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
