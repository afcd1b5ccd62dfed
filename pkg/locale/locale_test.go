package locale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	f, err := New("", "")
	require.NoError(t, err)

	assert.Equal(t, DefaultTimezone, f.Location().String())
	assert.False(t, f.IsSpanish())
}

func TestNew_MatchesRegionalSpanish(t *testing.T) {
	f, err := New("es-ES", "")
	require.NoError(t, err)

	assert.True(t, f.IsSpanish())
}

func TestNew_InvalidZone(t *testing.T) {
	_, err := New("en", "Mars/Olympus_Mons")
	assert.Error(t, err)
}

func TestFormatter_English(t *testing.T) {
	f, err := New("en", "America/New_York")
	require.NoError(t, err)

	// 2024-01-15 18:05:09 UTC is 13:05:09 in New York (EST, UTC-5)
	instant := time.Date(2024, 1, 15, 18, 5, 9, 0, time.UTC)

	assert.Equal(t, "13:05:09", f.Clock(instant))
	assert.Equal(t, "1/15/2024", f.NumericDate(instant))
	assert.Equal(t, "Jan 15, 2024", f.ShortDate(instant))
	assert.Equal(t, "Monday, January 15, 2024", f.LongDate(instant))
}

func TestFormatter_Spanish(t *testing.T) {
	f, err := New("es", "America/New_York")
	require.NoError(t, err)

	instant := time.Date(2024, 1, 15, 18, 5, 9, 0, time.UTC)

	assert.Equal(t, "15/1/2024", f.NumericDate(instant))
	assert.Equal(t, "15 ene 2024", f.ShortDate(instant))
	assert.Equal(t, "Lunes, 15 de enero de 2024", f.LongDate(instant))
}

func TestFormatter_DateRollsOverInZone(t *testing.T) {
	f, err := New("en", "America/New_York")
	require.NoError(t, err)

	// 03:00 UTC on the 16th is still the 15th in New York
	instant := time.Date(2024, 1, 16, 3, 0, 0, 0, time.UTC)

	assert.Equal(t, "1/15/2024", f.NumericDate(instant))
	assert.Equal(t, "22:00:00", f.Clock(instant))
}
