package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/venuehub/service-bookings/internal/domain"
)

// Booking is the aggregate root for the booking domain. The venue owner id is
// denormalized from the venues service at creation time and is write-once:
// no method or repository path mutates it after construction.
type Booking struct {
	id           uuid.UUID
	venueID      uuid.UUID
	userID       uuid.UUID
	venueOwnerID uuid.UUID
	timeRange    TimeRange
	status       BookingStatus

	pricePerHourCents int64
	totalPriceCents   int64
	currency          string
	notes             string

	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new Booking aggregate with status=pending. The total
// price is computed from the price-per-hour snapshot and the interval length.
func NewBooking(
	venueID uuid.UUID,
	userID uuid.UUID,
	venueOwnerID uuid.UUID,
	timeRange TimeRange,
	pricePerHourCents int64,
	currency string,
	notes string,
) (*Booking, error) {
	if venueID == uuid.Nil {
		return nil, domain.NewValidationError("venue ID is required")
	}
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user ID is required")
	}
	if venueOwnerID == uuid.Nil {
		return nil, domain.NewValidationError("venue owner ID is required")
	}
	if pricePerHourCents < 0 {
		return nil, domain.NewValidationError("price per hour cannot be negative")
	}

	now := time.Now().UTC()
	return &Booking{
		id:                uuid.New(),
		venueID:           venueID,
		userID:            userID,
		venueOwnerID:      venueOwnerID,
		timeRange:         timeRange,
		status:            StatusPending,
		pricePerHourCents: pricePerHourCents,
		totalPriceCents:   TotalPriceCents(pricePerHourCents, timeRange),
		currency:          currency,
		notes:             notes,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id uuid.UUID,
	venueID uuid.UUID,
	userID uuid.UUID,
	venueOwnerID uuid.UUID,
	timeRange TimeRange,
	status BookingStatus,
	pricePerHourCents int64,
	totalPriceCents int64,
	currency string,
	notes string,
	createdAt time.Time,
	updatedAt time.Time,
) *Booking {
	return &Booking{
		id:                id,
		venueID:           venueID,
		userID:            userID,
		venueOwnerID:      venueOwnerID,
		timeRange:         timeRange,
		status:            status,
		pricePerHourCents: pricePerHourCents,
		totalPriceCents:   totalPriceCents,
		currency:          currency,
		notes:             notes,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// VenueID returns the booked venue's identifier.
func (b *Booking) VenueID() uuid.UUID { return b.venueID }

// UserID returns the customer's user ID.
func (b *Booking) UserID() uuid.UUID { return b.userID }

// VenueOwnerID returns the venue owner's user ID as resolved at creation time.
func (b *Booking) VenueOwnerID() uuid.UUID { return b.venueOwnerID }

// TimeRange returns the booked interval.
func (b *Booking) TimeRange() TimeRange { return b.timeRange }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// PricePerHourCents returns the hourly rate snapshot taken at booking time.
func (b *Booking) PricePerHourCents() int64 { return b.pricePerHourCents }

// TotalPriceCents returns the computed total price.
func (b *Booking) TotalPriceCents() int64 { return b.totalPriceCents }

// Currency returns the currency code.
func (b *Booking) Currency() string { return b.currency }

// Notes returns any additional notes for the booking.
func (b *Booking) Notes() string { return b.notes }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Behavior ---

// TransitionTo moves the booking to the target status if the state machine
// allows it. Terminal states reject every transition, including no-ops.
func (b *Booking) TransitionTo(target BookingStatus) error {
	if !b.status.CanTransitionTo(target) {
		return domain.NewInvalidStateError(string(b.status), string(target))
	}
	b.status = target
	b.updatedAt = time.Now().UTC()
	return nil
}
