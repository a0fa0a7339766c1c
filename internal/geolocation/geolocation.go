// Package geolocation reports the current position of the host.
package geolocation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/fakhrymubarak/korean-weather/internal/config"
	"github.com/fakhrymubarak/korean-weather/internal/model"
)

// ErrDenied reports that a position could not be obtained: permission was
// refused or the lookup failed.
var ErrDenied = errors.New("geolocation denied")

// Provider is a source of the current position.
type Provider interface {
	// Available reports whether the provider can be asked at all.
	Available() bool
	// CurrentPosition blocks until a position is known or the lookup fails.
	CurrentPosition(ctx context.Context) (model.Coordinates, error)
}

// FromConfig selects a provider by geolocation.mode.
func FromConfig(client *http.Client) Provider {
	switch config.GetGeolocationMode() {
	case config.GeolocationModeIP:
		return NewIPProvider(config.GetGeolocationIPUrl(), client)
	case config.GeolocationModeStatic:
		lat, lon := config.GetStaticPosition()
		return NewStaticProvider(model.Coordinates{Latitude: lat, Longitude: lon})
	default:
		return Unavailable()
	}
}

type unavailable struct{}

// Unavailable returns a provider that cannot report a position.
func Unavailable() Provider { return unavailable{} }

func (unavailable) Available() bool { return false }

func (unavailable) CurrentPosition(context.Context) (model.Coordinates, error) {
	return model.Coordinates{}, ErrDenied
}

// StaticProvider always reports the same position.
type StaticProvider struct {
	coords model.Coordinates
}

func NewStaticProvider(coords model.Coordinates) *StaticProvider {
	return &StaticProvider{coords: coords}
}

func (p *StaticProvider) Available() bool { return true }

func (p *StaticProvider) CurrentPosition(ctx context.Context) (model.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return model.Coordinates{}, fmt.Errorf("%w: %w", ErrDenied, err)
	}
	return p.coords, nil
}

// IPProvider locates the host by its public address using an ip-api.com
// style JSON endpoint.
type IPProvider struct {
	url        string
	httpClient *http.Client
}

func NewIPProvider(url string, client *http.Client) *IPProvider {
	if client == nil {
		client = &http.Client{Timeout: config.GetHTTPTimeout()}
	}
	return &IPProvider{url: url, httpClient: client}
}

// Available is false when no lookup URL is configured.
func (p *IPProvider) Available() bool { return p.url != "" }

type ipLookupResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// CurrentPosition performs the lookup. Every failure is reported as ErrDenied.
func (p *IPProvider) CurrentPosition(ctx context.Context) (model.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return model.Coordinates{}, fmt.Errorf("%w: create request: %v", ErrDenied, err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return model.Coordinates{}, fmt.Errorf("%w: %w", ErrDenied, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.Coordinates{}, fmt.Errorf("%w: status %d", ErrDenied, resp.StatusCode)
	}

	var data ipLookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return model.Coordinates{}, fmt.Errorf("%w: decode: %v", ErrDenied, err)
	}
	if data.Status != "success" {
		return model.Coordinates{}, fmt.Errorf("%w: lookup %s: %s", ErrDenied, data.Status, data.Message)
	}
	return model.Coordinates{Latitude: data.Lat, Longitude: data.Lon}, nil
}
