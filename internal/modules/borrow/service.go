package borrow

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/domain"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/logger"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/metrics"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/pkg/apperr"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/policy"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/repository"
)

// Service is the borrow lifecycle engine. Every command runs in a single
// transaction that locks the record, checks the current state, applies the
// transition and inserts any penalties it triggers.
type Service struct {
	db        *gorm.DB
	borrows   *repository.BorrowRepository
	penalties *repository.PenaltyRepository
	users     *repository.UserRepository
	equipment *repository.EquipmentRepository

	rates       PenaltyRates
	metrics     *metrics.Metrics
	invalidator Invalidator
	log         *slog.Logger
	now         func() time.Time
}

// Invalidator drops cached views derived from the borrow ledger.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

type Option func(*Service)

func WithPenaltyRates(r PenaltyRates) Option {
	return func(s *Service) { s.rates = r }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithInvalidator is called after every committed lifecycle command.
func WithInvalidator(inv Invalidator) Option {
	return func(s *Service) { s.invalidator = inv }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(db *gorm.DB, opts ...Option) *Service {
	s := &Service{
		db:        db,
		borrows:   repository.NewBorrowRepository(db),
		penalties: repository.NewPenaltyRepository(db),
		users:     repository.NewUserRepository(db),
		equipment: repository.NewEquipmentRepository(db),
		rates:     DefaultPenaltyRates(),
		log:       logger.WithService("borrow"),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type RequestInput struct {
	EquipmentID int64
	Notes       string
	DueDate     *time.Time
}

type BorrowInput struct {
	UserID      int64
	EquipmentID int64
	Notes       string
	DueDate     *time.Time
}

// OutcomeInput closes a borrowed record. DueDate, when set, is the effective
// return timestamp used for the late-return check and replaces the stored due
// date on a return. Notes replace the stored notes only when non-nil.
type OutcomeInput struct {
	Status  domain.BorrowStatus
	DueDate *time.Time
	Notes   *string
}

type OutcomeResult struct {
	Record    *domain.BorrowRecord `json:"record"`
	Penalties []domain.Penalty     `json:"penalties"`
}

// Request files a pending request on behalf of the calling student.
func (s *Service) Request(ctx context.Context, caller policy.Caller, in RequestInput) (*domain.BorrowRecord, error) {
	const event = "request"
	if err := policy.Check(caller, policy.BorrowRequest); err != nil {
		return nil, s.finish(ctx, event, 0, caller, err)
	}
	if in.EquipmentID <= 0 {
		return nil, s.finish(ctx, event, 0, caller, ErrEquipmentRequired)
	}

	rec := &domain.BorrowRecord{
		UserID:      caller.UserID,
		EquipmentID: in.EquipmentID,
		Notes:       in.Notes,
		DueDate:     in.DueDate,
		Status:      domain.BorrowPending,
	}
	out, err := s.create(ctx, rec)
	return out, s.finish(ctx, event, rec.ID, caller, err)
}

// Borrow records equipment handed out by staff; the record starts borrowed.
func (s *Service) Borrow(ctx context.Context, caller policy.Caller, in BorrowInput) (*domain.BorrowRecord, error) {
	const event = "borrow"
	if err := policy.Check(caller, policy.BorrowRecord); err != nil {
		return nil, s.finish(ctx, event, 0, caller, err)
	}
	if in.UserID <= 0 || in.EquipmentID <= 0 {
		return nil, s.finish(ctx, event, 0, caller, ErrPartiesRequired)
	}

	rec := &domain.BorrowRecord{
		UserID:      in.UserID,
		EquipmentID: in.EquipmentID,
		Notes:       in.Notes,
		DueDate:     in.DueDate,
		Status:      domain.BorrowBorrowed,
	}
	out, err := s.create(ctx, rec)
	return out, s.finish(ctx, event, rec.ID, caller, err)
}

func (s *Service) create(ctx context.Context, rec *domain.BorrowRecord) (*domain.BorrowRecord, error) {
	var out *domain.BorrowRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.users.WithTx(tx).Exists(ctx, rec.UserID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrUserNotFound
		}

		ok, err = s.equipment.WithTx(tx).Exists(ctx, rec.EquipmentID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrEquipmentNotFound
		}

		borrows := s.borrows.WithTx(tx)
		rec.BorrowDate = s.now()
		if err := borrows.Create(ctx, rec); err != nil {
			return err
		}
		out, err = borrows.GetByID(ctx, rec.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Cancel deletes a pending request. Only the student who filed it may cancel.
func (s *Service) Cancel(ctx context.Context, caller policy.Caller, id int64) error {
	const event = "cancel"
	if err := policy.Check(caller, policy.BorrowCancel); err != nil {
		return s.finish(ctx, event, id, caller, err)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		borrows := s.borrows.WithTx(tx)
		rec, err := borrows.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if rec.UserID != caller.UserID {
			return ErrNotOwner
		}
		if rec.Status != domain.BorrowPending {
			return ErrCancelNotPending
		}
		return borrows.Delete(ctx, id)
	})
	return s.finish(ctx, event, id, caller, err)
}

func (s *Service) Approve(ctx context.Context, caller policy.Caller, id int64) (*domain.BorrowRecord, error) {
	return s.decide(ctx, caller, id, "approve", policy.BorrowApprove, domain.BorrowBorrowed)
}

func (s *Service) Reject(ctx context.Context, caller policy.Caller, id int64) (*domain.BorrowRecord, error) {
	return s.decide(ctx, caller, id, "reject", policy.BorrowReject, domain.BorrowRejected)
}

// decide moves a pending record to the status chosen by staff.
func (s *Service) decide(ctx context.Context, caller policy.Caller, id int64, event string, op policy.Operation, to domain.BorrowStatus) (*domain.BorrowRecord, error) {
	if err := policy.Check(caller, op); err != nil {
		return nil, s.finish(ctx, event, id, caller, err)
	}

	var out *domain.BorrowRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		borrows := s.borrows.WithTx(tx)
		rec, err := borrows.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if rec.Status != domain.BorrowPending {
			return ErrNotPending
		}
		if err := borrows.Update(ctx, id, map[string]any{"status": to}); err != nil {
			return err
		}
		out, err = borrows.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, s.finish(ctx, event, id, caller, err)
	}
	return out, s.finish(ctx, event, id, caller, nil)
}

// RecordOutcome closes a borrowed record as returned, lost or damaged and
// assesses the penalties that outcome triggers. The status update and the
// penalties commit together or not at all.
func (s *Service) RecordOutcome(ctx context.Context, caller policy.Caller, id int64, in OutcomeInput) (*OutcomeResult, error) {
	outcome := in.Status
	if outcome == "" {
		outcome = domain.BorrowReturned
	}
	event := string(outcome)

	if err := policy.Check(caller, policy.BorrowReturn); err != nil {
		return nil, s.finish(ctx, event, id, caller, err)
	}
	if !outcome.IsOutcome() {
		return nil, s.finish(ctx, "return", id, caller, ErrInvalidOutcome)
	}

	now := s.now()
	var result OutcomeResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		borrows := s.borrows.WithTx(tx)
		penalties := s.penalties.WithTx(tx)

		rec, err := borrows.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if rec.Status != domain.BorrowBorrowed {
			return ErrNotBorrowed
		}

		prevDue := rec.DueDate
		closedAt := now
		if outcome == domain.BorrowReturned && in.DueDate != nil {
			closedAt = *in.DueDate
		}

		fields := map[string]any{
			"status":    outcome,
			"closed_at": closedAt,
		}
		if in.Notes != nil {
			fields["notes"] = *in.Notes
		}
		if outcome == domain.BorrowReturned && in.DueDate != nil {
			fields["due_date"] = *in.DueDate
		}
		if err := borrows.Update(ctx, id, fields); err != nil {
			return err
		}

		result.Penalties = assessPenalties(rec, outcome, prevDue, closedAt, s.rates, now)
		for i := range result.Penalties {
			if err := penalties.Create(ctx, &result.Penalties[i]); err != nil {
				return err
			}
		}

		result.Record, err = borrows.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, s.finish(ctx, event, id, caller, err)
	}

	for _, p := range result.Penalties {
		s.metrics.ObservePenalty(string(p.Origin), p.Reason)
		s.log.Info("system penalty issued",
			"penalty_id", p.ID,
			"borrow_id", p.BorrowedEquipmentID,
			"user_id", p.UserID,
			"amount", p.Amount.String(),
			"reason", p.Reason,
		)
	}
	if result.Penalties == nil {
		result.Penalties = []domain.Penalty{}
	}
	return &result, s.finish(ctx, event, id, caller, nil)
}

func (s *Service) Get(ctx context.Context, caller policy.Caller, id int64) (*domain.BorrowRecord, error) {
	if err := policy.Check(caller, policy.BorrowGet); err != nil {
		return nil, err
	}
	rec, err := s.borrows.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.FromDB(err, ErrNotFound, "Failed to fetch record.")
	}
	return rec, nil
}

func (s *Service) List(ctx context.Context, caller policy.Caller) ([]domain.BorrowRecord, error) {
	if err := policy.Check(caller, policy.BorrowList); err != nil {
		return nil, err
	}
	recs, err := s.borrows.List(ctx)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch borrowed equipment.", err)
	}
	return recs, nil
}

func (s *Service) ListPending(ctx context.Context, caller policy.Caller) ([]domain.BorrowRecord, error) {
	if err := policy.Check(caller, policy.BorrowListPending); err != nil {
		return nil, err
	}
	recs, err := s.borrows.ListByStatus(ctx, domain.BorrowPending)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch pending requests.", err)
	}
	return recs, nil
}

// ListByUser lists one user's records. A zero userID means the caller.
func (s *Service) ListByUser(ctx context.Context, caller policy.Caller, userID int64) ([]domain.BorrowRecord, error) {
	if userID == 0 {
		userID = caller.UserID
	}
	if err := policy.CheckUserScope(caller, userID, policy.BorrowListOwn, policy.BorrowListOtherUser); err != nil {
		return nil, err
	}
	recs, err := s.borrows.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch user records.", err)
	}
	return recs, nil
}

// finish classifies err, records the outcome of a lifecycle command and
// returns the classified error. Success also invalidates derived caches.
func (s *Service) finish(ctx context.Context, event string, id int64, caller policy.Caller, err error) error {
	if err == nil {
		if s.invalidator != nil {
			s.invalidator.Invalidate(ctx)
		}
		s.metrics.ObserveTransition(event, "ok")
		s.log.Info("borrow transition committed",
			"event", event,
			"borrow_id", id,
			"actor_id", caller.UserID,
			"actor_role", caller.Role,
		)
		return nil
	}

	err = apperr.FromDB(err, ErrNotFound, "Failed to update borrow record.")
	kind := apperr.KindOf(err)
	s.metrics.ObserveTransition(event, kind.String())
	if kind == apperr.KindInternal {
		s.log.Error("borrow transition failed",
			"event", event,
			"borrow_id", id,
			"actor_id", caller.UserID,
			"error", err,
		)
	} else {
		s.log.Debug("borrow transition refused",
			"event", event,
			"borrow_id", id,
			"actor_id", caller.UserID,
			"reason", kind.String(),
		)
	}
	return err
}
