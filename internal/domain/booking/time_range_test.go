package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuehub/service-bookings/internal/domain"
)

func mustRange(t *testing.T, startHour, endHour int) TimeRange {
	t.Helper()
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	tr, err := NewTimeRange(day.Add(time.Duration(startHour)*time.Hour), day.Add(time.Duration(endHour)*time.Hour))
	require.NoError(t, err)
	return tr
}

func TestNewTimeRange_RejectsNonPositiveIntervals(t *testing.T) {
	at := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	_, err := NewTimeRange(at, at)
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidInterval, domain.KindOf(err))

	_, err = NewTimeRange(at.Add(time.Hour), at)
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidInterval, domain.KindOf(err))
}

func TestTimeRange_Overlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     TimeRange
		overlaps bool
	}{
		{"partial overlap", mustRange(t, 10, 11), mustRange(t, 10, 12), true},
		{"contained", mustRange(t, 10, 14), mustRange(t, 11, 12), true},
		{"identical", mustRange(t, 10, 11), mustRange(t, 10, 11), true},
		// [10:00, 11:00) and [11:00, 12:00) share only the boundary instant.
		{"touching boundaries do not overlap", mustRange(t, 10, 11), mustRange(t, 11, 12), false},
		{"disjoint", mustRange(t, 10, 11), mustRange(t, 13, 14), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.overlaps, tt.b.Overlaps(tt.a))
		})
	}
}

func TestTimeRange_OverlapHalfHourShift(t *testing.T) {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	a, err := NewTimeRange(day.Add(10*time.Hour), day.Add(11*time.Hour))
	require.NoError(t, err)
	b, err := NewTimeRange(day.Add(10*time.Hour+30*time.Minute), day.Add(11*time.Hour+30*time.Minute))
	require.NoError(t, err)

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
}

func TestTimeRange_Duration(t *testing.T) {
	tr := mustRange(t, 9, 12)
	assert.Equal(t, 3*time.Hour, tr.Duration())
}
