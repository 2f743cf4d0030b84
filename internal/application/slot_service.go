package application

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/venuehub/service-bookings/internal/domain/booking"
	"github.com/venuehub/service-bookings/internal/pkg/metrics"
)

// SlotService serves per-venue occupied slots. Responses carry intervals
// only; who booked them and at what price never leaves this service.
type SlotService struct {
	repo    booking.Repository
	cache   SlotCache
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewSlotService creates a new SlotService.
func NewSlotService(repo booking.Repository, cache SlotCache, m *metrics.Metrics, logger *zap.Logger) *SlotService {
	return &SlotService{repo: repo, cache: cache, metrics: m, logger: logger}
}

// GetSlots returns the occupied slots for a venue, sorted by start time.
// Cache reads and writes are fail-soft; a broken cache degrades to a
// database read on every call.
func (s *SlotService) GetSlots(ctx context.Context, venueID uuid.UUID) ([]Slot, error) {
	cached, found, err := s.cache.GetSlots(ctx, venueID)
	if err != nil {
		s.logger.Warn("slot cache read failed",
			zap.String("venue_id", venueID.String()),
			zap.Error(err),
		)
	}
	if found {
		s.metrics.SlotCacheRequest("hit")
		return cached, nil
	}
	s.metrics.SlotCacheRequest("miss")

	active, err := s.repo.FindActiveByVenue(ctx, venueID, nil)
	if err != nil {
		return nil, err
	}

	slots := make([]Slot, 0, len(active))
	for _, bk := range active {
		slots = append(slots, Slot{
			StartDatetime: bk.TimeRange().Start,
			EndDatetime:   bk.TimeRange().End,
		})
	}
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartDatetime.Before(slots[j].StartDatetime)
	})

	if err := s.cache.SetSlots(ctx, venueID, slots); err != nil {
		s.logger.Warn("slot cache write failed",
			zap.String("venue_id", venueID.String()),
			zap.Error(err),
		)
	}
	return slots, nil
}
