package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	for _, bad := range []string{"9:30", "25:00", "12:60", "12.30", "09:30:00", ""} {
		_, err := NewTimeStringFromString(bad)
		assert.ErrorIs(t, err, ErrInvalidTimeString, bad)
	}
}

func TestValidate_RequiresPaddedForm(t *testing.T) {
	assert.NoError(t, TimeString("09:30").Validate())

	// Без ведущего нуля строка сломала бы лексикографический порядок
	assert.ErrorIs(t, TimeString("9:30").Validate(), ErrInvalidTimeString)

	_, err := TimeString("9:30").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	assert.Equal(t, TimeString("00:00"), NewTimeStringFromMinutes(0))
	assert.Equal(t, TimeString("08:00"), NewTimeStringFromMinutes(480))
	assert.Equal(t, TimeString("23:59"), NewTimeStringFromMinutes(1439))
	// Конец дня проецируется в "24:00", а не в "00:00" следующего
	assert.Equal(t, TimeString("24:00"), NewTimeStringFromMinutes(1440))
}

func TestMinutes(t *testing.T) {
	m, err := TimeString("17:45").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 1065, m)

	_, err = TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestAddMinutes(t *testing.T) {
	ts, err := TimeString("22:30").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), ts)

	_, err = TimeString("23:00").AddMinutes(90)
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = TimeString("00:30").AddMinutes(-60)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestOrdering(t *testing.T) {
	assert.True(t, TimeString("08:00").IsBefore(TimeString("21:00")))
	assert.True(t, TimeString("21:00").IsAfter(TimeString("08:00")))
	assert.False(t, TimeString("08:00").IsBefore(TimeString("08:00")))
}
