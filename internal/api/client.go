// Package api implements the snapshot fetcher: a thin client for the
// sensor-fleet dashboard endpoints.
//
// Each method performs exactly one network round trip and returns either a
// decoded value or a *Failure. There is no internal retry and no internal
// timeout; callers bound a call with the context when they want one, or
// abandon the result (the engine discards stale results by liveness check).
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Failure is the typed result of an unsuccessful fetch. Status carries the
// HTTP status code for non-2xx responses and is 0 for transport errors.
type Failure struct {
	Reason string
	Status int
	Err    error
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Status != 0 {
		return fmt.Sprintf("%s: HTTP %d", f.Reason, f.Status)
	}
	if f.Err != nil {
		return fmt.Sprintf("%s: %v", f.Reason, f.Err)
	}
	return f.Reason
}

// Unwrap returns the underlying transport error, if any.
func (f *Failure) Unwrap() error {
	return f.Err
}

// Client fetches dashboard snapshots and per-device series over HTTP.
type Client struct {
	base string
	hc   *http.Client
}

// NewClient creates a client for the given API base URL
// (e.g. http://sensors.local:8000). Trailing slashes are stripped.
func NewClient(baseURL string) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		hc:   &http.Client{},
	}
}

// NewClientWithHTTP creates a client using the provided http.Client.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	c := NewClient(baseURL)
	if hc != nil {
		c.hc = hc
	}
	return c
}

// BaseURL returns the configured API base.
func (c *Client) BaseURL() string {
	return c.base
}

// FetchDashboard performs the primary per-cycle round trip:
// GET /api/dashboard/ decoded into a Snapshot.
func (c *Client) FetchDashboard(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	if err := c.getJSON(ctx, "/api/dashboard/", &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// FetchReadings retrieves the recent two-channel series for one device:
// GET /api/sensor/device/{id}/readings/. The server returns readings
// newest-first; they are reversed here so callers always see chronological
// order.
func (c *Client) FetchReadings(ctx context.Context, deviceID string) ([]Reading, error) {
	path := fmt.Sprintf("/api/sensor/device/%s/readings/", url.PathEscape(deviceID))
	var readings []Reading
	if err := c.getJSON(ctx, path, &readings); err != nil {
		return nil, err
	}
	for i, j := 0, len(readings)-1; i < j; i, j = i+1, j-1 {
		readings[i], readings[j] = readings[j], readings[i]
	}
	return readings, nil
}

// FetchSensorConfig retrieves the fleet's expected send cadence:
// GET /api/sensor/config/.
func (c *Client) FetchSensorConfig(ctx context.Context) (*SensorConfig, error) {
	var cfg SensorConfig
	if err := c.getJSON(ctx, "/api/sensor/config/", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// getJSON performs one GET and decodes the 2xx body into out.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return &Failure{Reason: "building request for " + path, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return &Failure{Reason: "fetching " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Failure{Reason: "fetching " + path, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Failure{Reason: "decoding response from " + path, Err: err}
	}
	return nil
}
