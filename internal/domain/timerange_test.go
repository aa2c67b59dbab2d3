package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeRange_Overlaps(t *testing.T) {
	base := time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC)
	r := TimeRange{Start: base, DurationMinutes: 60}

	cases := []struct {
		name     string
		other    TimeRange
		overlaps bool
	}{
		{"identical", TimeRange{Start: base, DurationMinutes: 60}, true},
		{"contained", TimeRange{Start: base.Add(15 * time.Minute), DurationMinutes: 30}, true},
		{"overlaps start", TimeRange{Start: base.Add(-30 * time.Minute), DurationMinutes: 60}, true},
		{"overlaps end", TimeRange{Start: base.Add(30 * time.Minute), DurationMinutes: 60}, true},
		{"touches end", TimeRange{Start: base.Add(60 * time.Minute), DurationMinutes: 60}, false},
		{"touches start", TimeRange{Start: base.Add(-60 * time.Minute), DurationMinutes: 60}, false},
		{"disjoint", TimeRange{Start: base.Add(3 * time.Hour), DurationMinutes: 60}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlaps, r.Overlaps(tc.other))
			// Пересечение симметрично
			assert.Equal(t, tc.overlaps, tc.other.Overlaps(r))
		})
	}
}

func TestTimeRange_MinuteProjection(t *testing.T) {
	r := TimeRange{
		Start:           time.Date(2025, 10, 6, 23, 30, 0, 0, time.UTC),
		DurationMinutes: 90,
	}

	assert.Equal(t, 1410, r.StartMinuteOfDay())
	// Диапазон через полночь проецируется за пределы суток
	assert.Equal(t, 1500, r.EndMinuteOfDay())
}

func TestTimeRange_Date(t *testing.T) {
	r := TimeRange{
		Start:           time.Date(2025, 10, 6, 23, 30, 0, 0, time.UTC),
		DurationMinutes: 90,
	}

	// Дата диапазона - дата его начала, даже если конец на следующий день
	assert.Equal(t, time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC), r.Date())
}
