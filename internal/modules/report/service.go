package report

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/cache"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/domain"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/logger"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/pkg/apperr"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/policy"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/repository"
)

const summaryKey = "summary"

type Service struct {
	users     *repository.UserRepository
	equipment *repository.EquipmentRepository
	borrows   *repository.BorrowRepository
	penalties *repository.PenaltyRepository
	cache     *cache.JSONCache
	log       *slog.Logger
	now       func() time.Time
}

// NewService builds the report service. c may be nil.
func NewService(db *gorm.DB, c *cache.JSONCache) *Service {
	return &Service{
		users:     repository.NewUserRepository(db),
		equipment: repository.NewEquipmentRepository(db),
		borrows:   repository.NewBorrowRepository(db),
		penalties: repository.NewPenaltyRepository(db),
		cache:     c,
		log:       logger.WithService("report"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Summary returns the admin dashboard counters, served from cache when warm.
func (s *Service) Summary(ctx context.Context, caller policy.Caller) (*Summary, error) {
	if err := policy.Check(caller, policy.ReportSummary); err != nil {
		return nil, err
	}

	var cached Summary
	if hit, err := s.cache.Get(ctx, summaryKey, &cached); err != nil {
		s.log.Warn("report cache read failed", "error", err)
	} else if hit {
		return &cached, nil
	}

	sum, err := s.buildSummary(ctx)
	if err != nil {
		return nil, apperr.Internal("Failed to build report.", err)
	}
	if err := s.cache.Set(ctx, summaryKey, sum); err != nil {
		s.log.Warn("report cache write failed", "error", err)
	}
	return sum, nil
}

// Invalidate drops the cached summary so the next read rebuilds it. Cache
// errors are logged; the entry then lives until its TTL.
func (s *Service) Invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, summaryKey); err != nil {
		s.log.Warn("report cache invalidation failed", "error", err)
	}
}

func (s *Service) buildSummary(ctx context.Context) (*Summary, error) {
	var (
		sum Summary
		err error
	)

	counts := []struct {
		dst *int64
		fn  func() (int64, error)
	}{
		{&sum.TotalUsers, func() (int64, error) { return s.users.Count(ctx, "") }},
		{&sum.TotalStaff, func() (int64, error) { return s.users.Count(ctx, domain.RoleStaff) }},
		{&sum.TotalAdmins, func() (int64, error) { return s.users.Count(ctx, domain.RoleAdmin) }},
		{&sum.TotalStudents, func() (int64, error) { return s.users.Count(ctx, domain.RoleStudent) }},
		{&sum.TotalEquipment, func() (int64, error) { return s.equipment.Count(ctx, "") }},
		{&sum.AvailableEquipment, func() (int64, error) { return s.equipment.Count(ctx, domain.EquipmentAvailable) }},
		{&sum.LostEquipment, func() (int64, error) { return s.equipment.Count(ctx, domain.EquipmentLost) }},
		{&sum.DamagedEquipment, func() (int64, error) { return s.equipment.Count(ctx, domain.EquipmentDamaged) }},
		{&sum.ActiveBorrows, func() (int64, error) { return s.borrows.CountByStatus(ctx, domain.BorrowBorrowed) }},
		{&sum.ReturnedBorrows, func() (int64, error) { return s.borrows.CountByStatus(ctx, domain.BorrowReturned) }},
		{&sum.PendingRequests, func() (int64, error) { return s.borrows.CountByStatus(ctx, domain.BorrowPending) }},
		{&sum.OverdueBorrows, func() (int64, error) { return s.borrows.CountOverdue(ctx, s.now()) }},
		{&sum.UnpaidPenalties, func() (int64, error) { return s.penalties.CountByStatus(ctx, domain.PenaltyUnpaid) }},
		{&sum.PaidPenalties, func() (int64, error) { return s.penalties.CountByStatus(ctx, domain.PenaltyPaid) }},
		{&sum.WaivedPenalties, func() (int64, error) { return s.penalties.CountByStatus(ctx, domain.PenaltyWaived) }},
	}
	for _, c := range counts {
		if *c.dst, err = c.fn(); err != nil {
			return nil, err
		}
	}

	if sum.OutstandingPenaltyAmount, err = s.penalties.SumByStatus(ctx, domain.PenaltyUnpaid); err != nil {
		return nil, err
	}

	top, err := s.borrows.MostBorrowed(ctx)
	if err != nil {
		return nil, err
	}
	if top != nil {
		sum.MostBorrowedEquipment = &MostBorrowed{ID: top.EquipmentID, Name: top.Name, Count: top.Count}
	}
	return &sum, nil
}

// StaffSummary is the reduced dashboard shown to staff. It is always live.
func (s *Service) StaffSummary(ctx context.Context, caller policy.Caller) (*StaffSummary, error) {
	if err := policy.Check(caller, policy.ReportStaffSummary); err != nil {
		return nil, err
	}

	var (
		out StaffSummary
		err error
	)
	if out.ActiveBorrows, err = s.borrows.CountByStatus(ctx, domain.BorrowBorrowed); err != nil {
		return nil, apperr.Internal("Failed to build report.", err)
	}
	if out.PendingRequests, err = s.borrows.CountByStatus(ctx, domain.BorrowPending); err != nil {
		return nil, apperr.Internal("Failed to build report.", err)
	}
	if out.TotalEquipment, err = s.equipment.Count(ctx, ""); err != nil {
		return nil, apperr.Internal("Failed to build report.", err)
	}
	return &out, nil
}
