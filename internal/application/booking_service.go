package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/venuehub/service-bookings/internal/domain"
	"github.com/venuehub/service-bookings/internal/domain/booking"
	"github.com/venuehub/service-bookings/internal/domain/identity"
	"github.com/venuehub/service-bookings/internal/events"
	"github.com/venuehub/service-bookings/internal/pkg/metrics"
)

const eventSource = "service-bookings"

// CreateBookingRequest is the input DTO for creating a booking.
type CreateBookingRequest struct {
	VenueID       uuid.UUID `json:"venue_id" binding:"required"`
	StartDatetime time.Time `json:"start_datetime" binding:"required"`
	EndDatetime   time.Time `json:"end_datetime" binding:"required"`
	Notes         string    `json:"notes"`
}

// BookingDTO is the output representation of a booking.
type BookingDTO struct {
	ID                uuid.UUID `json:"id"`
	VenueID           uuid.UUID `json:"venue_id"`
	UserID            uuid.UUID `json:"user_id"`
	VenueOwnerID      uuid.UUID `json:"venue_owner_id"`
	StartDatetime     time.Time `json:"start_datetime"`
	EndDatetime       time.Time `json:"end_datetime"`
	Status            string    `json:"status"`
	PricePerHourCents int64     `json:"price_per_hour_cents"`
	TotalPriceCents   int64     `json:"total_price_cents"`
	Currency          string    `json:"currency"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ListQuery narrows a booking listing from query parameters. Ownership
// scoping is derived from the actor's scopes, not from these fields.
type ListQuery struct {
	VenueID  *uuid.UUID
	Status   *booking.BookingStatus
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

// Policy holds booking creation rules configured at startup.
type Policy struct {
	MinDuration     time.Duration
	RejectPastStart bool
}

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	repo     booking.Repository
	checker  *booking.ConflictChecker
	venues   VenueDirectory
	refunds  RefundNotifier
	cache    SlotCache
	locks    LockManager
	producer EventPublisher
	policy   Policy
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewBookingService creates a new BookingService. locks may be nil, in which
// case creation relies solely on the repository's transactional overlap check.
func NewBookingService(
	repo booking.Repository,
	checker *booking.ConflictChecker,
	venues VenueDirectory,
	refunds RefundNotifier,
	cache SlotCache,
	locks LockManager,
	producer EventPublisher,
	policy Policy,
	m *metrics.Metrics,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repo:     repo,
		checker:  checker,
		venues:   venues,
		refunds:  refunds,
		cache:    cache,
		locks:    locks,
		producer: producer,
		policy:   policy,
		metrics:  m,
		logger:   logger,
	}
}

// CreateBooking creates a pending booking for the actor after verifying the
// interval, the venue, and the no-overlap invariant.
func (s *BookingService) CreateBooking(ctx context.Context, actor identity.Actor, req CreateBookingRequest) (*BookingDTO, error) {
	if !actor.CanCreate() {
		return nil, domain.NewForbiddenError("missing scope to create bookings")
	}

	tr, err := booking.NewTimeRange(req.StartDatetime, req.EndDatetime)
	if err != nil {
		return nil, err
	}
	if s.policy.RejectPastStart && tr.Start.Before(time.Now().UTC()) {
		return nil, domain.NewValidationError("start_datetime cannot be in the past")
	}
	if tr.Duration() < s.policy.MinDuration {
		return nil, domain.NewValidationError("booking is shorter than the minimum duration")
	}

	venue, err := s.venues.ResolveVenue(ctx, actor, req.VenueID)
	if err != nil {
		return nil, err
	}
	if !venue.Active {
		return nil, domain.NewValidationError("venue is not accepting bookings")
	}
	for _, window := range venue.Unavailabilities {
		if tr.Overlaps(window) {
			return nil, domain.NewConflictError("venue is unavailable during the requested time")
		}
	}

	if s.locks != nil {
		lock, err := s.locks.Acquire(ctx, "booking:venue:"+venue.ID.String())
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := lock.Release(ctx); err != nil {
				s.logger.Warn("failed to release venue lock",
					zap.String("venue_id", venue.ID.String()),
					zap.Error(err),
				)
			}
		}()
	}

	if err := s.checker.Check(ctx, venue.ID, tr, nil); err != nil {
		s.metrics.BookingCreated("conflict")
		return nil, err
	}

	bk, err := booking.NewBooking(
		venue.ID,
		actor.UserID,
		venue.OwnerID,
		tr,
		venue.PricePerHourCents,
		venue.Currency,
		req.Notes,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, bk); err != nil {
		if domain.IsKind(err, domain.KindConflict) {
			s.metrics.BookingCreated("conflict")
		} else {
			s.metrics.BookingCreated("error")
		}
		return nil, err
	}
	s.metrics.BookingCreated("success")

	s.invalidateSlots(ctx, bk.VenueID())

	s.publishEvent(ctx, events.TypeBookingCreated, bk.ID().String(), events.BookingCreatedData{
		BookingID:       bk.ID().String(),
		VenueID:         bk.VenueID().String(),
		UserID:          bk.UserID().String(),
		VenueOwnerID:    bk.VenueOwnerID().String(),
		StartDatetime:   bk.TimeRange().Start,
		EndDatetime:     bk.TimeRange().End,
		Status:          bk.Status().String(),
		TotalPriceCents: bk.TotalPriceCents(),
		Currency:        bk.Currency(),
	})

	s.logger.Info("booking created",
		zap.String("booking_id", bk.ID().String()),
		zap.String("venue_id", bk.VenueID().String()),
		zap.String("user_id", bk.UserID().String()),
	)
	return toBookingDTO(bk), nil
}

// UpdateStatus moves a booking through its lifecycle on behalf of the actor.
// Authorization is checked before transition validity, so callers without
// rights get a 403 regardless of the booking's current state.
func (s *BookingService) UpdateStatus(ctx context.Context, actor identity.Actor, id uuid.UUID, target booking.BookingStatus) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := booking.AuthorizeTransition(actor, bk, target); err != nil {
		return nil, err
	}

	refundDue := booking.RefundDue(actor, bk) && target == booking.StatusCancelled
	previous := bk.Status()

	if err := bk.TransitionTo(target); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateStatus(ctx, id, target, previous)
	if err != nil {
		return nil, err
	}

	s.invalidateSlots(ctx, updated.VenueID())

	if refundDue {
		if err := s.refunds.IssueRefund(ctx, actor, updated); err != nil {
			s.logger.Warn("refund request failed",
				zap.String("booking_id", updated.ID().String()),
				zap.Error(err),
			)
		}
	}

	s.publishEvent(ctx, events.TypeBookingStatusChanged, updated.ID().String(), events.BookingStatusChangedData{
		BookingID:      updated.ID().String(),
		VenueID:        updated.VenueID().String(),
		PreviousStatus: previous.String(),
		NewStatus:      updated.Status().String(),
		ChangedBy:      actor.UserID.String(),
	})

	s.logger.Info("booking status changed",
		zap.String("booking_id", updated.ID().String()),
		zap.String("from", previous.String()),
		zap.String("to", updated.Status().String()),
	)
	return toBookingDTO(updated), nil
}

// GetBooking retrieves a single booking visible to the actor. Bookings the
// actor may not see surface as not found rather than forbidden.
func (s *BookingService) GetBooking(ctx context.Context, actor identity.Actor, id uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.CanView(actor, bk) {
		return nil, domain.NewNotFoundError("booking", id.String())
	}
	return toBookingDTO(bk), nil
}

// ListBookings retrieves the bookings visible to the actor, newest first.
// Admin readers see everything; venue owners see their venues' bookings;
// customers see their own.
func (s *BookingService) ListBookings(ctx context.Context, actor identity.Actor, q ListQuery) ([]*BookingDTO, error) {
	filter := booking.ListFilter{
		VenueID:  q.VenueID,
		Status:   q.Status,
		From:     q.From,
		To:       q.To,
		Page:     q.Page,
		PageSize: q.PageSize,
	}

	switch {
	case actor.IsAdminReader():
		// unrestricted
	case actor.HasScope(identity.ScopeBookingsManage) && !actor.HasScope(identity.ScopeBookingsRead):
		ownerID := actor.UserID
		filter.VenueOwnerID = &ownerID
	case actor.HasScope(identity.ScopeBookingsRead):
		userID := actor.UserID
		filter.UserID = &userID
	default:
		return nil, domain.NewForbiddenError("missing scope to list bookings")
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]*BookingDTO, 0, len(items))
	for _, bk := range items {
		dtos = append(dtos, toBookingDTO(bk))
	}
	return dtos, nil
}

// DeleteBooking hard-deletes a booking. Admin delete scope only.
func (s *BookingService) DeleteBooking(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	if !actor.CanDelete() {
		return domain.NewForbiddenError("missing scope to delete bookings")
	}

	bk, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateSlots(ctx, bk.VenueID())

	s.publishEvent(ctx, events.TypeBookingDeleted, bk.ID().String(), events.BookingDeletedData{
		BookingID: bk.ID().String(),
		VenueID:   bk.VenueID().String(),
		DeletedBy: actor.UserID.String(),
	})

	s.logger.Info("booking deleted",
		zap.String("booking_id", bk.ID().String()),
		zap.String("deleted_by", actor.UserID.String()),
	)
	return nil
}

// invalidateSlots drops the venue's cached occupancy. Cache failures are
// logged and swallowed; the cache must never break a write path.
func (s *BookingService) invalidateSlots(ctx context.Context, venueID uuid.UUID) {
	if err := s.cache.Invalidate(ctx, venueID); err != nil {
		s.logger.Warn("failed to invalidate slot cache",
			zap.String("venue_id", venueID.String()),
			zap.Error(err),
		)
	}
}

func (s *BookingService) publishEvent(ctx context.Context, eventType, key string, data interface{}) {
	if err := s.producer.PublishEvent(ctx, eventType, key, data); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func toBookingDTO(bk *booking.Booking) *BookingDTO {
	return &BookingDTO{
		ID:                bk.ID(),
		VenueID:           bk.VenueID(),
		UserID:            bk.UserID(),
		VenueOwnerID:      bk.VenueOwnerID(),
		StartDatetime:     bk.TimeRange().Start,
		EndDatetime:       bk.TimeRange().End,
		Status:            bk.Status().String(),
		PricePerHourCents: bk.PricePerHourCents(),
		TotalPriceCents:   bk.TotalPriceCents(),
		Currency:          bk.Currency(),
		Notes:             bk.Notes(),
		CreatedAt:         bk.CreatedAt(),
		UpdatedAt:         bk.UpdatedAt(),
	}
}
