package booking

import (
	"github.com/venuehub/service-bookings/internal/domain"
	"github.com/venuehub/service-bookings/internal/domain/identity"
)

// AuthorizeTransition decides whether the actor may move the booking to the
// target status. Authorization is checked before state-machine validity, so a
// caller without rights learns nothing about the booking's current state.
//
// Rules:
//   - admin writers may request any transition
//   - confirmed / completed / no_show require the venue owner with manage scope
//   - cancelled is allowed to the booking's customer with cancel scope, and to
//     the venue owner with manage scope when the booking is already confirmed
func AuthorizeTransition(actor identity.Actor, b *Booking, target BookingStatus) error {
	if actor.IsAdminWriter() {
		return nil
	}

	switch target {
	case StatusConfirmed, StatusCompleted, StatusNoShow:
		if actor.HasScope(identity.ScopeBookingsManage) && actor.UserID == b.VenueOwnerID() {
			return nil
		}
		return domain.NewForbiddenError("not allowed to manage this booking")

	case StatusCancelled:
		if actor.HasScope(identity.ScopeBookingsCancel) && actor.UserID == b.UserID() {
			return nil
		}
		if actor.HasScope(identity.ScopeBookingsManage) &&
			actor.UserID == b.VenueOwnerID() &&
			b.Status() == StatusConfirmed {
			return nil
		}
		return domain.NewForbiddenError("not allowed to cancel this booking")

	default:
		return domain.NewForbiddenError("not allowed to set this booking status")
	}
}

// CanView reports whether the actor may read the booking at all. Customers
// see their own bookings, venue owners with manage scope see their venues'
// bookings, admin readers see everything.
func CanView(actor identity.Actor, b *Booking) bool {
	if actor.IsAdminReader() {
		return true
	}
	if actor.HasScope(identity.ScopeBookingsRead) && actor.UserID == b.UserID() {
		return true
	}
	if actor.HasScope(identity.ScopeBookingsManage) && actor.UserID == b.VenueOwnerID() {
		return true
	}
	return false
}

// RefundDue reports whether cancelling the booking at its current status by
// this actor triggers a refund. Only a venue owner cancelling an already
// confirmed booking does; customer and admin cancellations never refund.
func RefundDue(actor identity.Actor, b *Booking) bool {
	if actor.IsAdminWriter() {
		return false
	}
	return b.Status() == StatusConfirmed &&
		actor.HasScope(identity.ScopeBookingsManage) &&
		actor.UserID == b.VenueOwnerID()
}
