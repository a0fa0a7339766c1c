package model

import "encoding/json"

// OpenWeatherMapResponse is the subset of /data/2.5/weather we read.
type OpenWeatherMapResponse struct {
	Name  string `json:"name"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Pressure  int     `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	// Rain is kept raw: its shape is not guaranteed and a bad value must not
	// fail the whole decode.
	Rain json.RawMessage `json:"rain,omitempty"`
}

// RainLastHour returns rain.1h when it is a positive number. Missing,
// malformed, or zero values all read as "no rain recorded".
func (r *OpenWeatherMapResponse) RainLastHour() *float64 {
	if len(r.Rain) == 0 {
		return nil
	}
	var rain struct {
		OneHour *float64 `json:"1h"`
	}
	if err := json.Unmarshal(r.Rain, &rain); err != nil {
		return nil
	}
	if rain.OneHour == nil || *rain.OneHour <= 0 {
		return nil
	}
	mm := *rain.OneHour
	return &mm
}

// ToWeatherResult flattens the upstream payload.
func (r *OpenWeatherMapResponse) ToWeatherResult() *WeatherResult {
	result := &WeatherResult{
		CityCanonicalName: r.Name,
		TemperatureC:      r.Main.Temp,
		CloudsPercent:     r.Clouds.All,
		HumidityPercent:   r.Main.Humidity,
		RainLastHourMm:    r.RainLastHour(),
		Coordinates: Coordinates{
			Latitude:  r.Coord.Lat,
			Longitude: r.Coord.Lon,
		},
	}
	if len(r.Weather) > 0 {
		result.Description = r.Weather[0].Description
		result.IconID = r.Weather[0].Icon
	}
	return result
}

// AirPollutionResponse is the subset of /data/2.5/air_pollution we read.
type AirPollutionResponse struct {
	List []struct {
		Main struct {
			AQI int `json:"aqi"`
		} `json:"main"`
		Components struct {
			CO   float64 `json:"co"`
			NO2  float64 `json:"no2"`
			O3   float64 `json:"o3"`
			PM25 float64 `json:"pm2_5"`
			PM10 float64 `json:"pm10"`
		} `json:"components"`
		Dt int64 `json:"dt"`
	} `json:"list"`
}

// ToAirQualityResult reads the first list entry. ok is false when the list
// is empty.
func (r *AirPollutionResponse) ToAirQualityResult() (*AirQualityResult, bool) {
	if len(r.List) == 0 {
		return nil, false
	}
	first := r.List[0]
	return &AirQualityResult{
		PM10:     first.Components.PM10,
		PM25:     first.Components.PM25,
		AQI:      first.Main.AQI,
		Category: ClassifyAQI(first.Main.AQI),
	}, true
}
