package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows a booking listing. Nil fields are not applied.
// Ownership scoping (UserID / VenueOwnerID) is set by the application layer
// from the caller's role, never from client input.
type ListFilter struct {
	VenueID      *uuid.UUID
	UserID       *uuid.UUID
	VenueOwnerID *uuid.UUID
	Status       *BookingStatus
	From         *time.Time
	To           *time.Time
	Page         int
	PageSize     int
}

// Repository defines the persistence contract for booking aggregates.
type Repository interface {
	// Create persists a new booking. The implementation must serialize
	// creations per venue and re-verify the overlap invariant inside the
	// same transaction, returning a conflict error if another active
	// booking overlaps the new one at commit time.
	Create(ctx context.Context, b *Booking) error

	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindActiveByVenue retrieves all pending/confirmed bookings for a venue,
	// optionally excluding one booking id (reschedule support).
	FindActiveByVenue(ctx context.Context, venueID uuid.UUID, excludeID *uuid.UUID) ([]*Booking, error)

	// List retrieves bookings matching the filter, newest first.
	List(ctx context.Context, filter ListFilter) ([]*Booking, error)

	// UpdateStatus moves a booking from expectedCurrent to newStatus with
	// compare-and-swap semantics: the update applies only if the stored
	// status still equals expectedCurrent.
	UpdateStatus(ctx context.Context, id uuid.UUID, newStatus, expectedCurrent BookingStatus) (*Booking, error)

	// Delete hard-deletes a booking.
	Delete(ctx context.Context, id uuid.UUID) error
}
