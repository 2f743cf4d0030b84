package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/venuehub/service-bookings/internal/domain"
	"github.com/venuehub/service-bookings/internal/domain/booking"
	"github.com/venuehub/service-bookings/internal/domain/identity"
)

type refundRequest struct {
	BookingID   string `json:"booking_id"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Reason      string `json:"reason"`
}

// PaymentsClient requests refunds from the payments service over HTTP.
type PaymentsClient struct {
	baseURL string
	client  *http.Client
}

// NewPaymentsClient creates a payments client with the given base URL and timeout.
func NewPaymentsClient(baseURL string, timeout time.Duration) *PaymentsClient {
	return &PaymentsClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// IssueRefund asks the payments service to refund the booking's total price.
func (c *PaymentsClient) IssueRefund(ctx context.Context, actor identity.Actor, bk *booking.Booking) error {
	payload, err := json.Marshal(refundRequest{
		BookingID:   bk.ID().String(),
		AmountCents: bk.TotalPriceCents(),
		Currency:    bk.Currency(),
		Reason:      "booking_cancelled_by_venue",
	})
	if err != nil {
		return fmt.Errorf("failed to encode refund request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/refunds", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build refund request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	setIdentityHeaders(req, actor)

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.NewUpstreamError("payments", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return domain.NewUpstreamError("payments", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	return nil
}
