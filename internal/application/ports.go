package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/venuehub/service-bookings/internal/domain/booking"
	"github.com/venuehub/service-bookings/internal/domain/identity"
)

// Venue is the projection of a venue as served by the venues service. The
// owner id and pricing are snapshotted onto bookings at creation time.
type Venue struct {
	ID                uuid.UUID
	OwnerID           uuid.UUID
	Name              string
	PricePerHourCents int64
	Currency          string
	Active            bool
	Unavailabilities  []booking.TimeRange
}

// VenueDirectory resolves venues from the upstream venues service.
type VenueDirectory interface {
	ResolveVenue(ctx context.Context, actor identity.Actor, venueID uuid.UUID) (*Venue, error)
}

// RefundNotifier asks the payments service to refund a cancelled booking.
type RefundNotifier interface {
	IssueRefund(ctx context.Context, actor identity.Actor, b *booking.Booking) error
}

// Slot is a booked interval with all identity and pricing stripped. It is the
// only shape the availability endpoint and the occupancy cache ever hold.
type Slot struct {
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
}

// SlotCache caches per-venue occupied slots. found=false means cache miss.
// Implementations must treat cache failures as misses, never as fatal errors.
type SlotCache interface {
	GetSlots(ctx context.Context, venueID uuid.UUID) (slots []Slot, found bool, err error)
	SetSlots(ctx context.Context, venueID uuid.UUID, slots []Slot) error
	Invalidate(ctx context.Context, venueID uuid.UUID) error
}

// Lock is a held distributed lock.
type Lock interface {
	Release(ctx context.Context) error
}

// LockManager serializes booking creation per venue across instances.
type LockManager interface {
	Acquire(ctx context.Context, key string) (Lock, error)
}

// EventPublisher emits booking lifecycle events to the message bus. The key
// is the booking id, keeping per-booking ordering within a partition.
type EventPublisher interface {
	PublishEvent(ctx context.Context, eventType, key string, data interface{}) error
}
