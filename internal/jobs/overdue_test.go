package jobs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/domain"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/metrics"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/notification"
	dbtest "github.com/Mikee100/Uni-Sporting-Equipment/internal/testutil"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, msg notification.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func TestOverdueReporter(t *testing.T) {
	db := dbtest.NewDB(t)
	dbtest.Seed(t, db)

	now := time.Date(2026, 5, 10, 7, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -2)
	future := now.AddDate(0, 0, 2)

	recs := []domain.BorrowRecord{
		{UserID: dbtest.StudentID, EquipmentID: dbtest.BallID, Status: domain.BorrowBorrowed, DueDate: &past},
		{UserID: dbtest.Student2ID, EquipmentID: dbtest.RacketID, Status: domain.BorrowBorrowed, DueDate: &past},
		{UserID: dbtest.StudentID, EquipmentID: dbtest.RacketID, Status: domain.BorrowBorrowed, DueDate: &future},
		{UserID: dbtest.StudentID, EquipmentID: dbtest.BallID, Status: domain.BorrowBorrowed},
		{UserID: dbtest.StudentID, EquipmentID: dbtest.BallID, Status: domain.BorrowReturned, DueDate: &past},
	}
	require.NoError(t, db.Create(&recs).Error)

	notifier := new(mockNotifier)
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(m notification.Message) bool {
		return m.BorrowID == recs[0].ID && m.Body == "Please return Football; it was due 2026-05-08."
	})).Return(nil).Once()
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(m notification.Message) bool {
		return m.BorrowID == recs[1].ID && m.UserID == dbtest.Student2ID
	})).Return(errors.New("smtp down")).Once()

	m := metrics.New()
	job := NewOverdueReporter(db, notifier, m)
	job.now = func() time.Time { return now }

	res, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OverdueResult{Overdue: 2, Notified: 1, Failed: 1}, res)
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rr.Body.String(), "sportequip_overdue_borrows 2")
	notifier.AssertExpectations(t)

	var statuses []domain.BorrowStatus
	require.NoError(t, db.Model(&domain.BorrowRecord{}).Order("id").Pluck("status", &statuses).Error)
	assert.Equal(t, []domain.BorrowStatus{
		domain.BorrowBorrowed, domain.BorrowBorrowed, domain.BorrowBorrowed, domain.BorrowBorrowed, domain.BorrowReturned,
	}, statuses)

	var penalties int64
	require.NoError(t, db.Model(&domain.Penalty{}).Count(&penalties).Error)
	assert.Zero(t, penalties)
}
