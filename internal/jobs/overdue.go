// Package jobs holds background work run by the scheduler or one-shot
// commands. Jobs only read the borrow ledger.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/logger"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/metrics"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/notification"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/repository"
)

// OverdueReporter finds borrowed records past their due date and reminds the
// borrowers. It never changes a record and never issues penalties.
type OverdueReporter struct {
	borrows  *repository.BorrowRepository
	notifier notification.Notifier
	metrics  *metrics.Metrics
	log      *slog.Logger
	now      func() time.Time
}

func NewOverdueReporter(db *gorm.DB, notifier notification.Notifier, m *metrics.Metrics) *OverdueReporter {
	return &OverdueReporter{
		borrows:  repository.NewBorrowRepository(db),
		notifier: notifier,
		metrics:  m,
		log:      logger.WithService("jobs.overdue"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type OverdueResult struct {
	Overdue  int
	Notified int
	Failed   int
}

func (r *OverdueReporter) Run(ctx context.Context) (OverdueResult, error) {
	var res OverdueResult

	recs, err := r.borrows.ListOverdue(ctx, r.now())
	if err != nil {
		return res, fmt.Errorf("list overdue borrows: %w", err)
	}
	res.Overdue = len(recs)
	r.metrics.SetOverdue(len(recs))

	for _, rec := range recs {
		name := fmt.Sprintf("equipment #%d", rec.EquipmentID)
		if rec.Equipment != nil {
			name = rec.Equipment.Name
		}
		msg := notification.Message{
			Type:        notification.TypeOverdueReminder,
			UserID:      rec.UserID,
			BorrowID:    rec.ID,
			EquipmentID: rec.EquipmentID,
			Title:       "Equipment overdue",
			Body:        fmt.Sprintf("Please return %s; it was due %s.", name, rec.DueDate.Format("2006-01-02")),
			DueDate:     rec.DueDate,
		}
		if err := r.notifier.Notify(ctx, msg); err != nil {
			res.Failed++
			r.log.Warn("overdue reminder failed", "borrow_id", rec.ID, "user_id", rec.UserID, "error", err)
			continue
		}
		res.Notified++
	}

	r.log.Info("overdue scan finished", "overdue", res.Overdue, "notified", res.Notified, "failed", res.Failed)
	return res, nil
}

// RunScheduled adapts Run to a cron callback.
func (r *OverdueReporter) RunScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if _, err := r.Run(ctx); err != nil {
		r.log.Error("overdue scan failed", "error", err)
	}
}
