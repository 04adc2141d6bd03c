package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	cases := map[string]time.Time{
		"2025-03-01":                time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		"2025-03-01T10:30:00Z":      time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC),
		"2025-03-01T10:30:00+03:00": time.Date(2025, 3, 1, 7, 30, 0, 0, time.UTC),
		"2025-03-01T10:30:00":       time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC),
		" 2025-03-01 10:30:00 ":     time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC),
	}
	for in, want := range cases {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s: want %s got %s", in, want, got)
	}

	_, err := ParseDate("next tuesday")
	assert.Error(t, err)
}

func TestParseOptionalDate(t *testing.T) {
	got, err := ParseOptionalDate(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	blank := "  "
	got, err = ParseOptionalDate(&blank)
	require.NoError(t, err)
	assert.Nil(t, got)

	bad := "31/12/2025"
	_, err = ParseOptionalDate(&bad)
	assert.Error(t, err)
}
