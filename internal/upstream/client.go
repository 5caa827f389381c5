// Package upstream is the REST client for the reservation backend's public
// API. The backend owns all persistence and business rules; this client
// only shuttles JSON and converts failures into the display-ready error
// taxonomy.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/intermediaal/e-table-reservation/internal/domain"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	base string
	http *http.Client
	log  *zap.Logger
}

type ClientOption func(*Client)

// WithHTTPClient overrides the underlying http.Client (tests use this).
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// WithLogger attaches a logger for request failures.
func WithLogger(l *zap.Logger) ClientOption {
	return func(c *Client) { c.log = l }
}

// New builds a client for the given base URL, e.g.
// "http://localhost:3030/api".
func New(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		base: baseURL,
		http: &http.Client{Timeout: defaultTimeout},
		log:  zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Areas lists the business's bookable zones.
func (c *Client) Areas(ctx context.Context, slug string) ([]domain.Zone, error) {
	var zones []domain.Zone
	path := fmt.Sprintf("/public/business/%s/areas", url.PathEscape(slug))
	if err := c.get(ctx, path, nil, &zones); err != nil {
		return nil, err
	}
	return zones, nil
}

// Slots fetches the availability table for one date and party size.
func (c *Client) Slots(ctx context.Context, slug, date string, guests int) ([]domain.Slot, error) {
	var slots []domain.Slot
	path := fmt.Sprintf("/public/business/%s/availability/slots", url.PathEscape(slug))
	q := url.Values{"date": {date}, "guests": {strconv.Itoa(guests)}}
	if err := c.get(ctx, path, q, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// CreateReservation submits the finished draft.
func (c *Client) CreateReservation(ctx context.Context, req domain.ReservationRequest) (*domain.CreatedReservation, error) {
	var created domain.CreatedReservation
	if err := c.post(ctx, "/reservations", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Reservation fetches a reservation by its view token.
func (c *Client) Reservation(ctx context.Context, viewToken string) (*domain.Reservation, error) {
	var r domain.Reservation
	path := "/public/reservations/view/" + url.PathEscape(viewToken)
	if err := c.get(ctx, path, nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// CancelReservation cancels a reservation by its view token. The
// reservation is untouched when the upstream refuses.
func (c *Client) CancelReservation(ctx context.Context, viewToken string) error {
	path := "/public/reservations/cancel/" + url.PathEscape(viewToken)
	return c.post(ctx, path, struct{}{}, nil)
}

// Settings fetches the business's reservation settings.
func (c *Client) Settings(ctx context.Context, slug string) (*domain.ReservationSettings, error) {
	var s domain.ReservationSettings
	path := "/public/reservation-settings/" + url.PathEscape(slug)
	if err := c.get(ctx, path, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// BookingInfo fetches per-business booking limits (max party size).
func (c *Client) BookingInfo(ctx context.Context, slug string) (*domain.BookingInfo, error) {
	var info domain.BookingInfo
	path := fmt.Sprintf("/public/business/%s/booking-info", url.PathEscape(slug))
	if err := c.get(ctx, path, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &APIError{Kind: KindUnreachable, Message: msgUnreachable}
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return &APIError{Kind: KindInvalid, Message: msgInvalid}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(buf))
	if err != nil {
		return &APIError{Kind: KindUnreachable, Message: msgUnreachable}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("upstream unreachable", zap.String("url", req.URL.String()), zap.Error(err))
		return &APIError{Kind: KindUnreachable, Message: msgUnreachable}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Kind: KindUnreachable, Message: msgUnreachable}
	}

	if resp.StatusCode >= 400 {
		apiErr := classify(resp.StatusCode, raw)
		c.log.Warn("upstream error",
			zap.String("url", req.URL.String()),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Kind: KindServer, Status: resp.StatusCode, Message: msgServer}
	}
	return nil
}

// classify maps an error response onto the taxonomy, preferring the
// upstream's own message: either {"message": "..."} or a bare string body.
func classify(status int, raw []byte) *APIError {
	msg := extractMessage(raw)

	switch {
	case status == http.StatusNotFound:
		if msg == "" {
			msg = msgNotFound
		}
		return &APIError{Kind: KindNotFound, Status: status, Message: msg}
	case status >= 500:
		return &APIError{Kind: KindServer, Status: status, Message: msgServer}
	default:
		if msg == "" {
			msg = msgInvalid
		}
		return &APIError{Kind: KindInvalid, Status: status, Message: msg}
	}
}

func extractMessage(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}
