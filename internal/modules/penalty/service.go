package penalty

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/domain"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/logger"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/metrics"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/pkg/apperr"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/policy"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/repository"
)

// Service manages penalties issued by hand. Penalties produced by borrow
// outcomes are written by the borrow engine and share the same table.
type Service struct {
	db          *gorm.DB
	penalties   *repository.PenaltyRepository
	borrows     *repository.BorrowRepository
	metrics     *metrics.Metrics
	invalidator Invalidator
	log         *slog.Logger
	now         func() time.Time
}

// Invalidator drops cached views derived from the penalty ledger.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

type Option func(*Service)

func WithInvalidator(inv Invalidator) Option {
	return func(s *Service) { s.invalidator = inv }
}

func NewService(db *gorm.DB, m *metrics.Metrics, opts ...Option) *Service {
	s := &Service{
		db:        db,
		penalties: repository.NewPenaltyRepository(db),
		borrows:   repository.NewBorrowRepository(db),
		metrics:   m,
		log:       logger.WithService("penalty"),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) invalidate(ctx context.Context) {
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx)
	}
}

type CreateInput struct {
	UserID              int64
	BorrowedEquipmentID int64
	Amount              decimal.Decimal
	Reason              string
	Status              domain.PenaltyStatus
}

type UpdateInput struct {
	Amount *decimal.Decimal
	Reason *string
	Status *domain.PenaltyStatus
}

// Create issues a manual penalty against an existing borrow record owned by
// in.UserID.
func (s *Service) Create(ctx context.Context, caller policy.Caller, in CreateInput) (*domain.Penalty, error) {
	if err := policy.Check(caller, policy.PenaltyCreate); err != nil {
		return nil, err
	}

	in.Reason = strings.TrimSpace(in.Reason)
	if in.UserID <= 0 || in.BorrowedEquipmentID <= 0 || in.Reason == "" {
		return nil, ErrFieldsRequired
	}
	if !in.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if in.Status == "" {
		in.Status = domain.PenaltyUnpaid
	}
	if !in.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	p := &domain.Penalty{
		UserID:              in.UserID,
		BorrowedEquipmentID: in.BorrowedEquipmentID,
		Amount:              in.Amount,
		Reason:              in.Reason,
		Status:              in.Status,
		Origin:              domain.PenaltyManual,
		IssuedAt:            s.now(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := s.borrows.WithTx(tx).GetByID(ctx, in.BorrowedEquipmentID)
		if err != nil {
			return apperr.FromDB(err, ErrBorrowNotFound, "Failed to fetch borrowed equipment record.")
		}
		if rec.UserID != in.UserID {
			return ErrUserMismatch
		}
		return s.penalties.WithTx(tx).Create(ctx, p)
	})
	if err != nil {
		return nil, apperr.FromDB(err, nil, "Failed to create penalty.")
	}

	s.invalidate(ctx)
	s.metrics.ObservePenalty(string(p.Origin), p.Reason)
	s.log.Info("manual penalty issued",
		"penalty_id", p.ID,
		"borrow_id", p.BorrowedEquipmentID,
		"user_id", p.UserID,
		"amount", p.Amount.String(),
		"actor_id", caller.UserID,
	)
	return p, nil
}

func (s *Service) Get(ctx context.Context, caller policy.Caller, id int64) (*domain.Penalty, error) {
	if err := policy.Check(caller, policy.PenaltyGet); err != nil {
		return nil, err
	}
	p, err := s.penalties.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.FromDB(err, ErrNotFound, "Failed to fetch penalty.")
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, caller policy.Caller) ([]domain.Penalty, error) {
	if err := policy.Check(caller, policy.PenaltyList); err != nil {
		return nil, err
	}
	ps, err := s.penalties.List(ctx)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch penalties.", err)
	}
	return ps, nil
}

// ListByUser lists one user's penalties. A zero userID means the caller.
func (s *Service) ListByUser(ctx context.Context, caller policy.Caller, userID int64) ([]domain.Penalty, error) {
	if userID == 0 {
		userID = caller.UserID
	}
	if err := policy.CheckUserScope(caller, userID, policy.PenaltyListOwn, policy.PenaltyListOtherUser); err != nil {
		return nil, err
	}
	ps, err := s.penalties.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch user penalties.", err)
	}
	return ps, nil
}

func (s *Service) Update(ctx context.Context, caller policy.Caller, id int64, in UpdateInput) (*domain.Penalty, error) {
	if err := policy.Check(caller, policy.PenaltyUpdate); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Amount != nil {
		if !in.Amount.IsPositive() {
			return nil, ErrInvalidAmount
		}
		fields["amount"] = *in.Amount
	}
	if in.Reason != nil {
		reason := strings.TrimSpace(*in.Reason)
		if reason == "" {
			return nil, ErrEmptyReason
		}
		fields["reason"] = reason
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		fields["status"] = *in.Status
	}
	if len(fields) == 0 {
		return nil, ErrNoChanges
	}

	if err := s.penalties.Update(ctx, id, fields); err != nil {
		return nil, apperr.FromDB(err, ErrNotFound, "Failed to update penalty.")
	}
	s.invalidate(ctx)
	s.log.Info("penalty updated", "penalty_id", id, "actor_id", caller.UserID)
	return s.Get(ctx, caller, id)
}

func (s *Service) Delete(ctx context.Context, caller policy.Caller, id int64) error {
	if err := policy.Check(caller, policy.PenaltyDelete); err != nil {
		return err
	}
	if err := s.penalties.Delete(ctx, id); err != nil {
		return apperr.FromDB(err, ErrNotFound, "Failed to delete penalty.")
	}
	s.invalidate(ctx)
	s.log.Info("penalty deleted", "penalty_id", id, "actor_id", caller.UserID)
	return nil
}
