// Package api implements the HTTP client for the Hostel Hunt backend.
// It is the only place in the SDK that touches the network; the stores
// consume it and the UI layer never sees it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	slogctx "github.com/veqryn/slog-context"

	"github.com/Mitch2826/Hostel-Hunt/internal/model"
	"github.com/Mitch2826/Hostel-Hunt/internal/serviceerr"
)

const DefaultTimeout = 10 * time.Second

// RemoteError is a non-success response from the backend. Message is
// the server-provided text, empty when the body carried none.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote returned status %d", e.StatusCode)
	}

	return fmt.Sprintf("remote returned status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// NewClient builds a client for the given base URL. The timeout bounds
// every request; zero selects DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// Credentials is a successful auth response.
type Credentials struct {
	Token    string         `json:"access_token"`
	Identity model.Identity `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (Credentials, error) {
	body := map[string]string{"email": email, "password": password}

	var creds Credentials
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &creds); err != nil {
		return Credentials{}, err
	}

	return creds, nil
}

func (c *Client) Register(ctx context.Context, fullName, email, password string) (Credentials, error) {
	body := map[string]string{"fullName": fullName, "email": email, "password": password}

	var creds Credentials
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", body, &creds); err != nil {
		return Credentials{}, err
	}

	return creds, nil
}

func (c *Client) ListBookings(ctx context.Context, token string) ([]model.Booking, error) {
	var resp struct {
		Bookings []model.Booking `json:"bookings"`
	}
	if err := c.do(ctx, http.MethodGet, "/bookings/", token, nil, &resp); err != nil {
		return nil, err
	}

	return resp.Bookings, nil
}

func (c *Client) CreateBooking(ctx context.Context, token string, req model.BookingRequest) (model.Booking, error) {
	var resp struct {
		Booking model.Booking `json:"booking"`
	}
	if err := c.do(ctx, http.MethodPost, "/bookings/", token, req, &resp); err != nil {
		return model.Booking{}, err
	}

	return resp.Booking, nil
}

func (c *Client) CancelBooking(ctx context.Context, token string, bookingID int) (model.Booking, error) {
	var resp struct {
		Booking model.Booking `json:"booking"`
	}
	path := fmt.Sprintf("/bookings/%d/cancel", bookingID)
	if err := c.do(ctx, http.MethodPut, path, token, nil, &resp); err != nil {
		return model.Booking{}, err
	}

	return resp.Booking, nil
}

// Hostel fetches a single listing. A 404 maps to serviceerr.ErrNotFound.
func (c *Client) Hostel(ctx context.Context, id int) (model.Hostel, error) {
	var hostel model.Hostel
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/hostels/%d", id), "", nil, &hostel)

	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) && remoteErr.StatusCode == http.StatusNotFound {
		return model.Hostel{}, errors.Join(serviceerr.ErrNotFound, err)
	}
	if err != nil {
		return model.Hostel{}, err
	}

	return hostel, nil
}

func (c *Client) ListHostels(ctx context.Context) ([]model.Hostel, error) {
	var hostels []model.Hostel
	if err := c.do(ctx, http.MethodGet, "/hostels/", "", nil, &hostels); err != nil {
		return nil, err
	}

	return hostels, nil
}

// SearchQuery narrows a hostel search. Zero values are omitted.
type SearchQuery struct {
	Location string
	MaxPrice float64
	Page     int
	PerPage  int
}

// SearchResult is one page of search matches.
type SearchResult struct {
	Hostels []model.Hostel `json:"hostels"`
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
}

func (c *Client) SearchHostels(ctx context.Context, query SearchQuery) (SearchResult, error) {
	q := url.Values{}
	if query.Location != "" {
		q.Set("location", query.Location)
	}
	if query.MaxPrice > 0 {
		q.Set("max_price", strconv.FormatFloat(query.MaxPrice, 'f', -1, 64))
	}
	if query.Page > 0 {
		q.Set("page", strconv.Itoa(query.Page))
	}
	if query.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(query.PerPage))
	}

	path := "/search/hostels"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var result SearchResult
	if err := c.do(ctx, http.MethodGet, path, "", nil, &result); err != nil {
		return SearchResult{}, err
	}

	return result, nil
}

// do executes one request. Transport failures are joined with
// serviceerr.ErrUnavailable; non-2xx responses become a *RemoteError
// carrying the body's message field when present.
func (c *Client) do(ctx context.Context, method, path, token string, body, decodeInto any) error {
	ref, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("parsing request path: %w", err)
	}
	endpoint := c.baseURL.ResolveReference(ref)

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	slogctx.Debug(ctx, "Calling the backend", "method", method, "path", path, "request_id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Join(serviceerr.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var errBody struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)

		return &RemoteError{StatusCode: resp.StatusCode, Message: errBody.Message}
	}

	if decodeInto == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(decodeInto); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
