package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/venuehub/service-bookings/internal/domain"
)

// ConflictChecker decides whether a proposed interval may be booked at a venue.
// It is read-only; callers must hold the per-venue serialization (lock or
// storage constraint) so the check and the subsequent insert act as one unit.
type ConflictChecker struct {
	repo Repository
}

// NewConflictChecker creates a ConflictChecker over the given store.
func NewConflictChecker(repo Repository) *ConflictChecker {
	return &ConflictChecker{repo: repo}
}

// Check returns a conflict error naming the colliding booking if any active
// booking for the venue overlaps the proposed interval. excludeID, when set,
// skips one booking (reschedule support).
func (c *ConflictChecker) Check(ctx context.Context, venueID uuid.UUID, proposed TimeRange, excludeID *uuid.UUID) error {
	active, err := c.repo.FindActiveByVenue(ctx, venueID, excludeID)
	if err != nil {
		return err
	}
	for _, existing := range active {
		if proposed.Overlaps(existing.TimeRange()) {
			return domain.NewConflictError(
				fmt.Sprintf("booking conflicts with existing booking %s for this venue", existing.ID()),
			)
		}
	}
	return nil
}
