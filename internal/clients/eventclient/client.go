package eventclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/event-platform/internal/config"
)

const maxBodyExcerpt = 512

// ErrUpstream marks every failed call to the event service.
var ErrUpstream = errors.New("event service call failed")

// UpstreamError describes a failed event lookup. Status is zero when no
// response was received.
type UpstreamError struct {
	Status int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("%s: status %d: %s", ErrUpstream, e.Status, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", ErrUpstream, e.Err)
	default:
		return ErrUpstream.Error()
	}
}

func (e *UpstreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUpstream}
	}
	return []error{ErrUpstream, e.Err}
}

// Event is the event representation served by the event service.
type Event struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	EventType   string   `json:"eventType"`
	Budget      *float64 `json:"budget"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
}

// Client looks up events over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the configured event service.
func New(cfg config.EventClientConfig) *Client {
	return NewWithHTTPClient(cfg.BaseURL, &http.Client{Timeout: cfg.Timeout()})
}

// NewWithHTTPClient builds a client around an existing http.Client.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// GetEvent fetches an event by id, forwarding the caller's Authorization
// header value when present. Any failure yields an *UpstreamError.
func (c *Client) GetEvent(ctx context.Context, id int64, authorization string) (*Event, error) {
	url := c.baseURL + "/api/events/" + strconv.FormatInt(id, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyExcerpt))
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(excerpt)}
	}

	var event Event
	if err := json.NewDecoder(resp.Body).Decode(&event); err != nil {
		return nil, &UpstreamError{Status: resp.StatusCode, Err: fmt.Errorf("decode event: %w", err)}
	}
	return &event, nil
}
