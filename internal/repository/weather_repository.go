package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fakhrymubarak/korean-weather/internal/config"
	"github.com/fakhrymubarak/korean-weather/internal/model"
	"go.uber.org/zap"
)

// Custom error types
var (
	ErrExternalAPI      = errors.New("external API error")
	ErrDecode           = errors.New("malformed upstream response")
	ErrNoAirQualityData = errors.New("no air quality data")
)

// WeatherRepository defines the interface for upstream weather data access
type WeatherRepository interface {
	GetWeatherByCity(ctx context.Context, canonicalName string) (*model.WeatherResult, error)
	GetWeatherByCoordinates(ctx context.Context, coords model.Coordinates) (*model.WeatherResult, error)
	GetAirQuality(ctx context.Context, coords model.Coordinates) (*model.AirQualityResult, error)
}

// Options configures a repository. Empty URLs, client and logger fall back
// to config values. APIKey is sent as given, even when empty.
type Options struct {
	HTTPClient      *http.Client
	WeatherURL      string
	AirPollutionURL string
	APIKey          string
	Logger          *zap.SugaredLogger
}

// weatherRepository implements WeatherRepository
type weatherRepository struct {
	httpClient      *http.Client
	weatherURL      string
	airPollutionURL string
	apiKey          string
	logger          *zap.SugaredLogger
}

// NewWeatherRepository creates a new weather repository instance
func NewWeatherRepository(opts Options) WeatherRepository {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: config.GetHTTPTimeout()}
	}
	weatherURL := opts.WeatherURL
	if weatherURL == "" {
		weatherURL = config.GetOpenWeatherApiUrl()
	}
	airURL := opts.AirPollutionURL
	if airURL == "" {
		airURL = config.GetAirPollutionApiUrl()
	}
	logger := opts.Logger
	if logger == nil {
		logger = config.GetLogger()
	}
	return &weatherRepository{
		httpClient:      client,
		weatherURL:      weatherURL,
		airPollutionURL: airURL,
		apiKey:          opts.APIKey,
		logger:          logger,
	}
}

// GetWeatherByCity fetches current weather for an upstream city identifier
func (r *weatherRepository) GetWeatherByCity(ctx context.Context, canonicalName string) (*model.WeatherResult, error) {
	params := r.weatherParams()
	params.Set("q", canonicalName)
	return r.fetchWeather(ctx, params)
}

// GetWeatherByCoordinates fetches current weather for a position
func (r *weatherRepository) GetWeatherByCoordinates(ctx context.Context, coords model.Coordinates) (*model.WeatherResult, error) {
	params := r.weatherParams()
	setCoordinates(params, coords)
	return r.fetchWeather(ctx, params)
}

// GetAirQuality fetches current pollution readings for a position
func (r *weatherRepository) GetAirQuality(ctx context.Context, coords model.Coordinates) (*model.AirQualityResult, error) {
	params := url.Values{"appid": {r.apiKey}}
	setCoordinates(params, coords)

	var data model.AirPollutionResponse
	if err := r.getJSON(ctx, r.airPollutionURL, params, &data); err != nil {
		return nil, err
	}
	result, ok := data.ToAirQualityResult()
	if !ok {
		return nil, ErrNoAirQualityData
	}
	return result, nil
}

func (r *weatherRepository) weatherParams() url.Values {
	return url.Values{
		"appid": {r.apiKey},
		"units": {"metric"},
		"lang":  {"kr"},
	}
}

func (r *weatherRepository) fetchWeather(ctx context.Context, params url.Values) (*model.WeatherResult, error) {
	var data model.OpenWeatherMapResponse
	if err := r.getJSON(ctx, r.weatherURL, params, &data); err != nil {
		return nil, err
	}
	return data.ToWeatherResult(), nil
}

// getJSON issues a GET and decodes a 2xx body into out
func (r *weatherRepository) getJSON(ctx context.Context, baseURL string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrExternalAPI, err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExternalAPI, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		r.logger.Debugw("Upstream returned non-2xx", "url", baseURL, "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("%w: status %d", ErrExternalAPI, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}

func setCoordinates(params url.Values, coords model.Coordinates) {
	params.Set("lat", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
}
