package pkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDay(t *testing.T) {
	d := time.Date(2025, 3, 7, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "2025-03-07", FormatDay(d))
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2025-03-07")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 7, d.Day())

	_, err = ParseDay("07.03.2025")
	assert.Error(t, err)
}

func TestIsValidDay(t *testing.T) {
	assert.True(t, IsValidDay("2025-03-07"))
	assert.True(t, IsValidDay("1999-12-31"))
	assert.False(t, IsValidDay(""))
	assert.False(t, IsValidDay("2025-3-7"))
	assert.False(t, IsValidDay("2025-13-01"))
	assert.False(t, IsValidDay("not-a-date"))
	assert.False(t, IsValidDay("2025-03-07T10:00:00Z"))
}
