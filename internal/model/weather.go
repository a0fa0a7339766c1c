package model

import "fmt"

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// WeatherResult is one parsed weather reading. Treat as immutable.
type WeatherResult struct {
	CityCanonicalName string  `json:"city"`
	TemperatureC      float64 `json:"temperature_c"`
	Description       string  `json:"description"`
	CloudsPercent     int     `json:"clouds_percent"`
	HumidityPercent   int     `json:"humidity_percent"`
	// RainLastHourMm is nil when no rain was recorded in the last hour.
	RainLastHourMm *float64    `json:"rain_last_hour_mm,omitempty"`
	IconID         string      `json:"icon"`
	Coordinates    Coordinates `json:"coordinates"`
}

type AirQualityResult struct {
	PM10     float64     `json:"pm10"`
	PM25     float64     `json:"pm2_5"`
	AQI      int         `json:"aqi"`
	Category AQICategory `json:"category"`
}

// AQICategory buckets the upstream 1–5 air quality index.
type AQICategory int

const (
	AQIUnknown AQICategory = iota
	AQIGood
	AQIModerate
	AQIUnhealthy
	AQIVeryUnhealthy
)

// ClassifyAQI maps the upstream index. 2 and 3 share a bucket.
func ClassifyAQI(index int) AQICategory {
	switch index {
	case 1:
		return AQIGood
	case 2, 3:
		return AQIModerate
	case 4:
		return AQIUnhealthy
	case 5:
		return AQIVeryUnhealthy
	default:
		return AQIUnknown
	}
}

func (c AQICategory) String() string {
	switch c {
	case AQIGood:
		return "Good"
	case AQIModerate:
		return "Moderate"
	case AQIUnhealthy:
		return "Unhealthy"
	case AQIVeryUnhealthy:
		return "VeryUnhealthy"
	default:
		return "Unknown"
	}
}

func (c AQICategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// IconURL returns the hosted image for an upstream icon id, or "" for none.
func IconURL(iconID string) string {
	if iconID == "" {
		return ""
	}
	return fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", iconID)
}
