package events

import "time"

// TopicBookingEvents is the Kafka topic carrying booking lifecycle events.
const TopicBookingEvents = "booking.events"

// Booking event types.
const (
	TypeBookingCreated       = "booking.created"
	TypeBookingStatusChanged = "booking.status_changed"
	TypeBookingDeleted       = "booking.deleted"
)

// BookingCreatedData is the payload for booking.created events.
type BookingCreatedData struct {
	BookingID       string    `json:"booking_id"`
	VenueID         string    `json:"venue_id"`
	UserID          string    `json:"user_id"`
	VenueOwnerID    string    `json:"venue_owner_id"`
	StartDatetime   time.Time `json:"start_datetime"`
	EndDatetime     time.Time `json:"end_datetime"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Currency        string    `json:"currency"`
}

// BookingStatusChangedData is the payload for booking.status_changed events.
type BookingStatusChangedData struct {
	BookingID      string `json:"booking_id"`
	VenueID        string `json:"venue_id"`
	PreviousStatus string `json:"previous_status"`
	NewStatus      string `json:"new_status"`
	ChangedBy      string `json:"changed_by"`
}

// BookingDeletedData is the payload for booking.deleted events.
type BookingDeletedData struct {
	BookingID string `json:"booking_id"`
	VenueID   string `json:"venue_id"`
	DeletedBy string `json:"deleted_by"`
}
