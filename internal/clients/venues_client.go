// Package clients holds thin HTTP clients for the sibling services. Each
// call forwards the caller's identity headers so upstream authorization is
// evaluated against the real user, not this service.
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/venuehub/service-bookings/internal/application"
	"github.com/venuehub/service-bookings/internal/domain"
	"github.com/venuehub/service-bookings/internal/domain/booking"
	"github.com/venuehub/service-bookings/internal/domain/identity"
)

const (
	headerUserID   = "X-User-Id"
	headerUsername = "X-Username"
	headerScopes   = "X-User-Scopes"
)

type venueResponse struct {
	ID                uuid.UUID `json:"id"`
	OwnerID           uuid.UUID `json:"owner_id"`
	Name              string    `json:"name"`
	PricePerHourCents int64     `json:"price_per_hour_cents"`
	Currency          string    `json:"currency"`
	IsActive          bool      `json:"is_active"`
	Unavailabilities  []struct {
		StartDatetime time.Time `json:"start_datetime"`
		EndDatetime   time.Time `json:"end_datetime"`
	} `json:"unavailabilities"`
}

// VenuesClient resolves venues from the venues service over HTTP.
type VenuesClient struct {
	baseURL string
	client  *http.Client
}

// NewVenuesClient creates a venues client with the given base URL and timeout.
func NewVenuesClient(baseURL string, timeout time.Duration) *VenuesClient {
	return &VenuesClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// ResolveVenue fetches a venue by id on behalf of the actor.
func (c *VenuesClient) ResolveVenue(ctx context.Context, actor identity.Actor, venueID uuid.UUID) (*application.Venue, error) {
	url := fmt.Sprintf("%s/api/v1/venues/%s", c.baseURL, venueID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build venue request: %w", err)
	}
	setIdentityHeaders(req, actor)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, domain.NewUpstreamError("venues", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.NewNotFoundError("venue", venueID.String())
	case resp.StatusCode >= 400:
		return nil, domain.NewUpstreamError("venues", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var body venueResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, domain.NewUpstreamError("venues", fmt.Errorf("failed to decode venue response: %w", err))
	}

	venue := &application.Venue{
		ID:                body.ID,
		OwnerID:           body.OwnerID,
		Name:              body.Name,
		PricePerHourCents: body.PricePerHourCents,
		Currency:          body.Currency,
		Active:            body.IsActive,
	}
	for _, w := range body.Unavailabilities {
		window, err := booking.NewTimeRange(w.StartDatetime, w.EndDatetime)
		if err != nil {
			return nil, domain.NewUpstreamError("venues", fmt.Errorf("invalid unavailability window: %w", err))
		}
		venue.Unavailabilities = append(venue.Unavailabilities, window)
	}
	return venue, nil
}

func setIdentityHeaders(req *http.Request, actor identity.Actor) {
	req.Header.Set(headerUserID, actor.UserID.String())
	req.Header.Set(headerUsername, actor.Username)

	scopes := actor.Scopes()
	raw := ""
	for i, s := range scopes {
		if i > 0 {
			raw += " "
		}
		raw += string(s)
	}
	req.Header.Set(headerScopes, raw)
}
