// Package api is the HTTP client for the game server's RPC endpoints.
// Every endpoint takes query parameters and returns a JSON snapshot of the
// game; failures are transport-level with no structured body.
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"zombierun/world"
)

// Params are the optional parameters attached to a synchronization request.
type Params struct {
	// Location, when known, is pushed to the server.
	Location *world.LatLng
	// Fortify is the one-shot fortification signal.
	Fortify bool
	// Bounds is the visible map viewport. The server uses it to restrict
	// the payload; everything still works when it is absent.
	Bounds *world.Bounds
	// Debug asks the server to include its tile overlay.
	Debug bool
}

// Client talks to one game on one server.
type Client struct {
	BaseURL string
	GameID  int64

	httpClient *http.Client
}

func NewClient(baseURL string, gameID int64) *Client {
	return &Client{
		BaseURL: baseURL,
		GameID:  gameID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (c *Client) values(p Params) url.Values {
	values := url.Values{}
	values.Set("gid", strconv.FormatInt(c.GameID, 10))
	if p.Debug {
		values.Set("d", "1")
	}
	if p.Location != nil {
		values.Set("lat", formatCoordinate(p.Location.Lat))
		values.Set("lon", formatCoordinate(p.Location.Lon))
		if p.Fortify {
			values.Set("fortify", "1")
		}
	}
	if p.Bounds != nil {
		values.Set("swLat", formatCoordinate(p.Bounds.SW.Lat))
		values.Set("swLon", formatCoordinate(p.Bounds.SW.Lon))
		values.Set("neLat", formatCoordinate(p.Bounds.NE.Lat))
		values.Set("neLon", formatCoordinate(p.Bounds.NE.Lon))
	}
	return values
}

func (c *Client) fetchSnapshot(ctx context.Context, path string, values url.Values) (*world.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+path+"?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: status %d", path, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	snapshot, err := world.DecodeSnapshot(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snapshot, nil
}

// Get fetches the game state without pushing a location.
func (c *Client) Get(ctx context.Context, p Params) (*world.Snapshot, error) {
	return c.fetchSnapshot(ctx, "/rpc/get", c.values(p))
}

// Put pushes the player's location (and the fortify signal, if set) and
// fetches the resulting game state in the same round trip.
func (c *Client) Put(ctx context.Context, p Params) (*world.Snapshot, error) {
	return c.fetchSnapshot(ctx, "/rpc/put", c.values(p))
}

// Start sets the game's destination. Only the owner may call it.
func (c *Client) Start(ctx context.Context, at world.LatLng) (*world.Snapshot, error) {
	values := url.Values{}
	values.Set("gid", strconv.FormatInt(c.GameID, 10))
	values.Set("lat", formatCoordinate(at.Lat))
	values.Set("lon", formatCoordinate(at.Lon))
	return c.fetchSnapshot(ctx, "/rpc/start", values)
}

// AddFriend asks the server to invite another player by email.
func (c *Client) AddFriend(ctx context.Context, email string) error {
	values := url.Values{}
	values.Set("gid", strconv.FormatInt(c.GameID, 10))
	values.Set("email", email)

	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/rpc/addFriend?"+values.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("addFriend: status %d", resp.StatusCode)
	}
	return nil
}
