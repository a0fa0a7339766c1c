package service

import (
	"github.com/fakhrymubarak/korean-weather/internal/model"
)

// StateKind is the position of a query in its lifecycle:
// Idle -> Validating -> FetchingWeather -> [FetchingAirQuality] -> Succeeded | Failed.
type StateKind int

const (
	Idle StateKind = iota
	Validating
	FetchingWeather
	FetchingAirQuality
	Succeeded
	Failed
)

func (k StateKind) String() string {
	switch k {
	case Idle:
		return "Idle"
	case Validating:
		return "Validating"
	case FetchingWeather:
		return "FetchingWeather"
	case FetchingAirQuality:
		return "FetchingAirQuality"
	case Succeeded:
		return "Succeeded"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Loading is true while a query is in flight.
func (k StateKind) Loading() bool {
	return k == Validating || k == FetchingWeather || k == FetchingAirQuality
}

// Terminal is true for the two Done states.
func (k StateKind) Terminal() bool {
	return k == Succeeded || k == Failed
}

// QueryResult is what a successful query publishes.
type QueryResult struct {
	Weather *model.WeatherResult `json:"weather"`
	// AirQuality is nil when the air quality request failed.
	AirQuality *model.AirQualityResult `json:"air_quality,omitempty"`
	// DisplayName is the Korean name, or "" for places outside the table.
	DisplayName string `json:"display_name,omitempty"`
}

// View is a consistent copy of everything the presentation layer reads.
type View struct {
	State      StateKind
	Weather    *model.WeatherResult
	AirQuality *model.AirQualityResult
	// DisplayName belongs to Weather.
	DisplayName string
	Err         *QueryError
	History     []string
}

func (v View) Loading() bool { return v.State.Loading() }
