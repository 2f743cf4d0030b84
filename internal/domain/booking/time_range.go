package booking

import (
	"time"

	"github.com/venuehub/service-bookings/internal/domain"
)

// TimeRange is a half-open interval [Start, End). A booking occupies its venue
// from Start inclusive to End exclusive, so back-to-back bookings may touch.
type TimeRange struct {
	Start time.Time `json:"start_datetime"`
	End   time.Time `json:"end_datetime"`
}

// NewTimeRange builds a validated half-open interval.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !start.Before(end) {
		return TimeRange{}, domain.NewInvalidIntervalError("end_datetime must be after start_datetime")
	}
	return TimeRange{Start: start.UTC(), End: end.UTC()}, nil
}

// Overlaps reports whether two half-open intervals share any instant.
// [a1,a2) and [b1,b2) overlap iff a1 < b2 && b1 < a2.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Duration returns the length of the interval.
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}
