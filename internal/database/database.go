package database

import (
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	// Pure-Go driver registered as "sqlite" for local runs.
	_ "modernc.org/sqlite"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/domain"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/logger"
)

func Connect(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		logger.Info("connecting to PostgreSQL")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	logger.Info("using SQLite for local development", "dsn", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
}

// Models lists every table in creation order.
func Models() []any {
	return []any{
		&domain.User{},
		&domain.Equipment{},
		&domain.BorrowRecord{},
		&domain.Penalty{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
