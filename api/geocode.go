package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"zombierun/world"
)

// Geocoder resolves typed destination addresses through the OSM Nominatim
// search endpoint.
type Geocoder struct {
	BaseURL string

	httpClient *http.Client
}

func NewGeocoder() *Geocoder {
	return &Geocoder{
		BaseURL: "https://nominatim.openstreetmap.org",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type geocodeResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves address to a position, biased toward bounds when they
// are known. Returns an error when the address resolves to nothing; the
// caller re-prompts rather than giving up.
func (g *Geocoder) Geocode(ctx context.Context, address string, bounds *world.Bounds) (world.LatLng, error) {
	values := url.Values{}
	values.Set("q", address)
	values.Set("format", "json")
	values.Set("limit", "1")
	if bounds != nil {
		// viewbox is lon1,lat1,lon2,lat2.
		values.Set("viewbox", fmt.Sprintf("%f,%f,%f,%f",
			bounds.SW.Lon, bounds.SW.Lat, bounds.NE.Lon, bounds.NE.Lat))
	}

	req, err := http.NewRequestWithContext(ctx, "GET", g.BaseURL+"/search?"+values.Encode(), nil)
	if err != nil {
		return world.LatLng{}, err
	}
	req.Header.Set("User-Agent", "zombierun/1.0")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return world.LatLng{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return world.LatLng{}, fmt.Errorf("geocode: status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return world.LatLng{}, err
	}

	var results []geocodeResult
	if err := json.Unmarshal(body, &results); err != nil {
		return world.LatLng{}, fmt.Errorf("geocode: %w", err)
	}
	if len(results) == 0 {
		return world.LatLng{}, fmt.Errorf("geocode: no results for %q", address)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return world.LatLng{}, fmt.Errorf("geocode: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return world.LatLng{}, fmt.Errorf("geocode: %w", err)
	}
	return world.LatLng{Lat: lat, Lon: lon}, nil
}
