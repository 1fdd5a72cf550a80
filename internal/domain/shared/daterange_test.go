package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayRange(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)

	from, to, err := DayRange("2026-05-01", "2026-05-31", jakarta)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, jakarta), *from)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, jakarta), *to)

	from, to, err = DayRange("", "", nil)
	require.NoError(t, err)
	assert.Nil(t, from)
	assert.Nil(t, to)

	_, _, err = DayRange("01/05/2026", "", jakarta)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = DayRange("2026-05-02", "2026-05-01", jakarta)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = DayRange("2026-05-01", "2026-05-01", jakarta)
	assert.NoError(t, err, "a single day is a valid range")
}
