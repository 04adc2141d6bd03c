package main

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/config"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/database"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/domain"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/logger"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/modules/user"
)

//go:embed catalog.yaml
var catalogYAML []byte

type catalog struct {
	Users []struct {
		Name     string `yaml:"name"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		Role     string `yaml:"role"`
	} `yaml:"users"`
	Equipment []struct {
		Name        string `yaml:"name"`
		Sport       string `yaml:"sport"`
		Quantity    int    `yaml:"quantity"`
		Description string `yaml:"description"`
	} `yaml:"equipment"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Initialize(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("DB connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("AutoMigrate failed", "error", err)
		os.Exit(1)
	}

	var cat catalog
	if err := yaml.Unmarshal(catalogYAML, &cat); err != nil {
		logger.Error("invalid seed catalog", "error", err)
		os.Exit(1)
	}

	if err := seed(db, &cat); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
	logger.Info("seed completed", "users", len(cat.Users), "equipment", len(cat.Equipment))
}

// seed is safe to run repeatedly: users are matched by email and equipment by
// name.
func seed(db *gorm.DB, cat *catalog) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, u := range cat.Users {
			role, ok := domain.ParseRole(u.Role)
			if !ok {
				return fmt.Errorf("user %s: unknown role %q", u.Email, u.Role)
			}
			hash, err := user.HashPassword(u.Password)
			if err != nil {
				return err
			}
			row := domain.User{Name: u.Name, Email: u.Email, PasswordHash: hash, Role: role}
			res := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).Create(&row)
			if res.Error != nil {
				return fmt.Errorf("user %s: %w", u.Email, res.Error)
			}
			if res.RowsAffected > 0 {
				logger.Info("user created", "email", u.Email, "role", role)
			}
		}

		for _, e := range cat.Equipment {
			sport := e.Sport
			if sport == "" {
				sport = domain.DefaultSport
			}
			row := domain.Equipment{
				Name:        e.Name,
				Description: e.Description,
				Quantity:    e.Quantity,
				Status:      domain.EquipmentAvailable,
				Sport:       sport,
			}
			if err := tx.Where(domain.Equipment{Name: e.Name}).FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("equipment %s: %w", e.Name, err)
			}
		}
		return nil
	})
}
