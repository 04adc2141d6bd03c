package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/jobs"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/notification"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/testutil"
)

func TestNewRegistersOverdueScan(t *testing.T) {
	db := testutil.NewDB(t)
	job := jobs.NewOverdueReporter(db, notification.NewLogNotifier(), nil)

	s, err := New(job, "0 0 7 * * *")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Entries())

	s.Start()
	s.Stop()
}

func TestNewRejectsBadSpec(t *testing.T) {
	db := testutil.NewDB(t)
	job := jobs.NewOverdueReporter(db, notification.NewLogNotifier(), nil)

	_, err := New(job, "every morning")
	assert.Error(t, err)
}
