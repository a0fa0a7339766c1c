package service

import (
	"context"
	"errors"
	"sync"

	"github.com/fakhrymubarak/korean-weather/internal/city"
	"github.com/fakhrymubarak/korean-weather/internal/config"
	"github.com/fakhrymubarak/korean-weather/internal/geolocation"
	"github.com/fakhrymubarak/korean-weather/internal/model"
	"github.com/fakhrymubarak/korean-weather/internal/observability"
	"github.com/fakhrymubarak/korean-weather/internal/repository"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// WeatherServiceInterface is the surface the command handler drives.
type WeatherServiceInterface interface {
	QueryByCityName(ctx context.Context, input string) (*QueryResult, error)
	QueryByGeolocation(ctx context.Context) (*QueryResult, error)
	View() View
}

// WeatherService runs city-name and geolocation queries against the
// upstream weather and air quality APIs.
//
// Starting a query cancels the one in flight. Only the most recently
// started query publishes its outcome; a superseded query still returns its
// own result or error to its caller.
type WeatherService struct {
	WeatherRepo repository.WeatherRepository
	Geolocation geolocation.Provider

	logger  *zap.SugaredLogger
	metrics *observability.Metrics
	clock   clockwork.Clock

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	state      StateKind
	current    *QueryResult
	lastErr    *QueryError
	history    []string
}

// Option customizes a WeatherService.
type Option func(*WeatherService)

func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *WeatherService) { s.logger = l }
}

func WithMetrics(m *observability.Metrics) Option {
	return func(s *WeatherService) { s.metrics = m }
}

func WithClock(c clockwork.Clock) Option {
	return func(s *WeatherService) { s.clock = c }
}

// NewWeatherService creates a service in the Idle state.
func NewWeatherService(repo repository.WeatherRepository, geo geolocation.Provider, opts ...Option) *WeatherService {
	if geo == nil {
		geo = geolocation.Unavailable()
	}
	s := &WeatherService{
		WeatherRepo: repo,
		Geolocation: geo,
		logger:      config.GetLogger(),
		clock:       clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = observability.NewMetrics()
	}
	return s
}

// Metrics returns the counters this service records into.
func (s *WeatherService) Metrics() *observability.Metrics {
	return s.metrics
}

// QueryByCityName validates a Korean region name and fetches its weather,
// then its air quality. The name is added to the history once the weather
// request has succeeded.
func (s *WeatherService) QueryByCityName(ctx context.Context, input string) (*QueryResult, error) {
	q := s.begin(ctx, observability.FlowCity)
	defer q.release()

	canonical, ok := city.ToCanonical(input)
	if input == "" || !city.IsKoreanText(input) || !ok {
		s.logger.Infow("Rejected city name", "input", input)
		return nil, s.fail(q, newQueryError(InvalidInput, errors.New("unknown Korean city name")), true)
	}

	s.advance(q, FetchingWeather)
	weather, err := timed(s, observability.EndpointWeather, func() (*model.WeatherResult, error) {
		return s.WeatherRepo.GetWeatherByCity(q.ctx, canonical)
	})
	if err != nil {
		s.logger.Warnw("Weather request failed", "city", canonical, "error", err)
		return nil, s.fail(q, newQueryError(NetworkFailure, err), true)
	}

	displayName, ok := city.ToDisplayName(weather.CityCanonicalName)
	if !ok {
		displayName = input
	}
	return s.finish(q, weather, displayName, input), nil
}

// QueryByGeolocation fetches weather and air quality for the current
// position. It never adds to the history.
func (s *WeatherService) QueryByGeolocation(ctx context.Context) (*QueryResult, error) {
	q := s.begin(ctx, observability.FlowGeolocation)
	defer q.release()

	if !s.Geolocation.Available() {
		return nil, s.fail(q, newQueryError(GeolocationUnavailable, nil), false)
	}

	coords, err := s.Geolocation.CurrentPosition(q.ctx)
	if err != nil {
		s.logger.Infow("Geolocation failed", "error", err)
		return nil, s.fail(q, newQueryError(GeolocationDenied, err), false)
	}

	s.advance(q, FetchingWeather)
	weather, err := timed(s, observability.EndpointWeather, func() (*model.WeatherResult, error) {
		return s.WeatherRepo.GetWeatherByCoordinates(q.ctx, coords)
	})
	if err != nil {
		s.logger.Warnw("Weather request failed", "lat", coords.Latitude, "lon", coords.Longitude, "error", err)
		return nil, s.fail(q, newQueryError(NetworkFailure, err), true)
	}

	displayName, _ := city.ToDisplayName(weather.CityCanonicalName)
	return s.finish(q, weather, displayName, ""), nil
}

// View returns a copy of the published state.
func (s *WeatherService) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		State:   s.state,
		Err:     s.lastErr,
		History: append([]string(nil), s.history...),
	}
	if s.current != nil {
		v.Weather = s.current.Weather
		v.AirQuality = s.current.AirQuality
		v.DisplayName = s.current.DisplayName
	}
	return v
}

// History returns the names of successful city-name queries, oldest first.
func (s *WeatherService) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.history...)
}

// query is one invocation's bookkeeping.
type query struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	flow       string
}

func (q *query) release() { q.cancel() }

// begin supersedes any in-flight query and enters Validating.
func (s *WeatherService) begin(parent context.Context, flow string) *query {
	ctx, cancel := context.WithCancel(parent)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	s.cancel = cancel
	s.state = Validating

	return &query{ctx: ctx, cancel: cancel, generation: s.generation, flow: flow}
}

// advance moves the published state forward if q is still current.
func (s *WeatherService) advance(q *query, next StateKind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if q.generation != s.generation {
		return false
	}
	s.state = next
	return true
}

// fail ends q with qerr. clearResult drops the published weather.
func (s *WeatherService) fail(q *query, qerr *QueryError, clearResult bool) *QueryError {
	s.metrics.Queries.WithLabelValues(q.flow, qerr.Kind.String()).Inc()

	s.mu.Lock()
	defer s.mu.Unlock()

	if q.generation != s.generation {
		s.logger.Debugw("Dropping superseded failure", "flow", q.flow, "kind", qerr.Kind.String())
		return qerr
	}
	s.state = Failed
	s.lastErr = qerr
	if clearResult {
		s.current = nil
	}
	s.cancel = nil
	return qerr
}

// finish fetches air quality for weather's coordinates and publishes the
// result. Air quality failures leave AirQuality nil and are not errors.
func (s *WeatherService) finish(q *query, weather *model.WeatherResult, displayName, historyEntry string) *QueryResult {
	s.advance(q, FetchingAirQuality)

	result := &QueryResult{Weather: weather, DisplayName: displayName}
	air, err := timed(s, observability.EndpointAirQuality, func() (*model.AirQualityResult, error) {
		return s.WeatherRepo.GetAirQuality(q.ctx, weather.Coordinates)
	})
	if err != nil {
		s.logger.Warnw("Air quality unavailable", "city", weather.CityCanonicalName, "error", err)
	} else {
		result.AirQuality = air
	}

	s.metrics.Queries.WithLabelValues(q.flow, observability.OutcomeSuccess).Inc()

	s.mu.Lock()
	defer s.mu.Unlock()

	if q.generation != s.generation {
		s.logger.Debugw("Dropping superseded result", "flow", q.flow, "city", weather.CityCanonicalName)
		return result
	}
	s.state = Succeeded
	s.current = result
	s.lastErr = nil
	s.cancel = nil
	if historyEntry != "" {
		s.history = append(s.history, historyEntry)
	}
	s.logger.Infow("Weather query succeeded",
		"flow", q.flow,
		"city", weather.CityCanonicalName,
		"air_quality", result.AirQuality != nil,
	)
	return result
}

// timed runs one upstream call and records its outcome and duration.
func timed[T any](s *WeatherService, endpoint string, fn func() (T, error)) (T, error) {
	start := s.clock.Now()
	res, err := fn()

	outcome := observability.OutcomeSuccess
	if err != nil {
		outcome = observability.OutcomeError
	}
	s.metrics.UpstreamRequests.WithLabelValues(endpoint, outcome).Inc()
	s.metrics.UpstreamDuration.WithLabelValues(endpoint).Observe(s.clock.Since(start).Seconds())
	return res, err
}
