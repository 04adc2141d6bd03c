package equipment

import (
	"context"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/domain"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/logger"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/pkg/apperr"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/policy"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/repository"
)

// Service maintains the equipment catalog. Borrowing never touches it.
type Service struct {
	db        *gorm.DB
	equipment *repository.EquipmentRepository
	borrows   *repository.BorrowRepository
	log       *slog.Logger
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		db:        db,
		equipment: repository.NewEquipmentRepository(db),
		borrows:   repository.NewBorrowRepository(db),
		log:       logger.WithService("equipment"),
	}
}

type CreateInput struct {
	Name        string
	Description string
	Quantity    int
	Status      domain.EquipmentStatus
	Sport       string
}

type UpdateInput struct {
	Name        *string
	Description *string
	Quantity    *int
	Status      *domain.EquipmentStatus
	Sport       *string
}

func (s *Service) Create(ctx context.Context, caller policy.Caller, in CreateInput) (*domain.Equipment, error) {
	if err := policy.Check(caller, policy.EquipmentWrite); err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, ErrNameRequired
	}
	if in.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	if in.Status == "" {
		in.Status = domain.EquipmentAvailable
	}
	if !in.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if strings.TrimSpace(in.Sport) == "" {
		in.Sport = domain.DefaultSport
	}

	e := &domain.Equipment{
		Name:        in.Name,
		Description: in.Description,
		Quantity:    in.Quantity,
		Status:      in.Status,
		Sport:       strings.TrimSpace(in.Sport),
	}
	if err := s.equipment.Create(ctx, e); err != nil {
		return nil, apperr.FromDB(err, nil, "Failed to create equipment.")
	}
	s.log.Info("equipment created", "equipment_id", e.ID, "actor_id", caller.UserID)
	return e, nil
}

func (s *Service) Get(ctx context.Context, caller policy.Caller, id int64) (*domain.Equipment, error) {
	if err := policy.Check(caller, policy.EquipmentRead); err != nil {
		return nil, err
	}
	e, err := s.equipment.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.FromDB(err, ErrNotFound, "Failed to fetch equipment.")
	}
	return e, nil
}

// List returns the catalog; a non-empty sport narrows it.
func (s *Service) List(ctx context.Context, caller policy.Caller, sport string) ([]domain.Equipment, error) {
	if err := policy.Check(caller, policy.EquipmentRead); err != nil {
		return nil, err
	}
	items, err := s.equipment.List(ctx, strings.TrimSpace(sport))
	if err != nil {
		return nil, apperr.Internal("Failed to fetch equipment.", err)
	}
	return items, nil
}

func (s *Service) Update(ctx context.Context, caller policy.Caller, id int64, in UpdateInput) (*domain.Equipment, error) {
	if err := policy.Check(caller, policy.EquipmentWrite); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		fields["name"] = name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, ErrInvalidQuantity
		}
		fields["quantity"] = *in.Quantity
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		fields["status"] = *in.Status
	}
	if in.Sport != nil {
		sport := strings.TrimSpace(*in.Sport)
		if sport == "" {
			sport = domain.DefaultSport
		}
		fields["sport"] = sport
	}
	if len(fields) == 0 {
		return nil, ErrNoChanges
	}

	if err := s.equipment.Update(ctx, id, fields); err != nil {
		return nil, apperr.FromDB(err, ErrNotFound, "Failed to update equipment.")
	}
	return s.Get(ctx, caller, id)
}

// Delete removes a catalog entry that no borrow record references.
func (s *Service) Delete(ctx context.Context, caller policy.Caller, id int64) error {
	if err := policy.Check(caller, policy.EquipmentWrite); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		used, err := s.borrows.WithTx(tx).Referencing(ctx, "equipment_id", id)
		if err != nil {
			return err
		}
		if used {
			return ErrInUse
		}
		return s.equipment.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return apperr.FromDB(err, ErrNotFound, "Failed to delete equipment.")
	}
	s.log.Info("equipment deleted", "equipment_id", id, "actor_id", caller.UserID)
	return nil
}
