package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuehub/service-bookings/internal/domain"
	bookingDomain "github.com/venuehub/service-bookings/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	VenueID           uuid.UUID `gorm:"type:uuid;index;not null"`
	UserID            uuid.UUID `gorm:"type:uuid;index;not null"`
	VenueOwnerID      uuid.UUID `gorm:"type:uuid;index;not null"`
	StartDatetime     time.Time `gorm:"not null;index"`
	EndDatetime       time.Time `gorm:"not null"`
	Status            string    `gorm:"not null;size:20;index"`
	PricePerHourCents int64     `gorm:"not null"`
	TotalPriceCents   int64     `gorm:"not null"`
	Currency          string    `gorm:"not null;size:3;default:'USD'"`
	Notes             string    `gorm:"size:1000"`
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of booking.Repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Create persists a new booking. The insert runs in a transaction holding a
// per-venue advisory lock and re-checks the overlap invariant, so two racing
// creations for the same venue cannot both commit overlapping intervals.
func (r *GormBookingRepository) Create(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", model.VenueID.String()).Error; err != nil {
			return fmt.Errorf("failed to take venue advisory lock: %w", err)
		}

		var overlapping int64
		err := tx.Model(&BookingModel{}).
			Where("venue_id = ?", model.VenueID).
			Where("status IN ?", activeStatusStrings()).
			Where("start_datetime < ? AND ? < end_datetime", model.EndDatetime, model.StartDatetime).
			Count(&overlapping).Error
		if err != nil {
			return fmt.Errorf("failed to re-check overlap: %w", err)
		}
		if overlapping > 0 {
			return domain.NewConflictError("booking conflicts with an existing booking for this venue")
		}

		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to save booking: %w", err)
		}
		return nil
	})
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindActiveByVenue retrieves all pending/confirmed bookings for a venue.
func (r *GormBookingRepository) FindActiveByVenue(ctx context.Context, venueID uuid.UUID, excludeID *uuid.UUID) ([]*bookingDomain.Booking, error) {
	query := r.db.WithContext(ctx).
		Where("venue_id = ?", venueID).
		Where("status IN ?", activeStatusStrings())
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var models []BookingModel
	if err := query.Order("start_datetime ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find active venue bookings: %w", err)
	}
	return toDomainBookings(models)
}

// List retrieves bookings matching the filter, newest first.
func (r *GormBookingRepository) List(ctx context.Context, filter bookingDomain.ListFilter) ([]*bookingDomain.Booking, error) {
	query := r.db.WithContext(ctx).Model(&BookingModel{})

	if filter.VenueID != nil {
		query = query.Where("venue_id = ?", *filter.VenueID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.VenueOwnerID != nil {
		query = query.Where("venue_owner_id = ?", *filter.VenueOwnerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.From != nil {
		query = query.Where("start_datetime >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("start_datetime < ?", *filter.To)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var models []BookingModel
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return toDomainBookings(models)
}

// UpdateStatus moves a booking between statuses with compare-and-swap
// semantics. A concurrent transition shows up as zero affected rows and
// surfaces as an invalid transition.
func (r *GormBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus, expectedCurrent bookingDomain.BookingStatus) (*bookingDomain.Booking, error) {
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND status = ?", id, string(expectedCurrent)).
		Updates(map[string]interface{}{
			"status":     string(newStatus),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.NewInvalidStateError(string(expectedCurrent), string(newStatus))
	}
	return r.FindByID(ctx, id)
}

// Delete hard-deletes a booking.
func (r *GormBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&BookingModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("booking", id.String())
	}
	return nil
}

// --- Conversion Helpers ---

func activeStatusStrings() []string {
	out := make([]string, len(bookingDomain.ActiveStatuses))
	for i, s := range bookingDomain.ActiveStatuses {
		out[i] = string(s)
	}
	return out
}

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:                bk.ID(),
		VenueID:           bk.VenueID(),
		UserID:            bk.UserID(),
		VenueOwnerID:      bk.VenueOwnerID(),
		StartDatetime:     bk.TimeRange().Start,
		EndDatetime:       bk.TimeRange().End,
		Status:            string(bk.Status()),
		PricePerHourCents: bk.PricePerHourCents(),
		TotalPriceCents:   bk.TotalPriceCents(),
		Currency:          bk.Currency(),
		Notes:             bk.Notes(),
		CreatedAt:         bk.CreatedAt(),
		UpdatedAt:         bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}

	timeRange, err := bookingDomain.NewTimeRange(m.StartDatetime, m.EndDatetime)
	if err != nil {
		return nil, err
	}

	return bookingDomain.ReconstructBooking(
		m.ID,
		m.VenueID,
		m.UserID,
		m.VenueOwnerID,
		timeRange,
		status,
		m.PricePerHourCents,
		m.TotalPriceCents,
		m.Currency,
		m.Notes,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}
