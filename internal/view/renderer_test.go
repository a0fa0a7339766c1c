package view

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fakhrymubarak/korean-weather/internal/model"
	"github.com/fakhrymubarak/korean-weather/internal/observability"
	"github.com/fakhrymubarak/korean-weather/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seoulResult(rain *float64, air *model.AirQualityResult) *service.QueryResult {
	return &service.QueryResult{
		Weather: &model.WeatherResult{
			CityCanonicalName: "Seoul",
			TemperatureC:      18.5,
			Description:       "튼구름",
			CloudsPercent:     75,
			HumidityPercent:   60,
			RainLastHourMm:    rain,
			IconID:            "04d",
		},
		AirQuality:  air,
		DisplayName: "서울",
	}
}

func TestOutcome_TextCard(t *testing.T) {
	rain := 0.8
	air := &model.AirQualityResult{PM10: 42, PM25: 21.5, AQI: 4, Category: model.AQIUnhealthy}
	r := &Renderer{}

	var buf bytes.Buffer
	require.NoError(t, r.Outcome(&buf, seoulResult(&rain, air), nil))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "서울\n"))
	assert.Contains(t, out, "온도: 18.5°C")
	assert.Contains(t, out, "날씨: 튼구름")
	assert.Contains(t, out, "☁️ : 75%")
	assert.Contains(t, out, "습도: 60%")
	assert.Contains(t, out, "1시간 강수량: 0.8 mm")
	assert.Contains(t, out, "PM10 42㎍/㎥ · PM2.5 21.5㎍/㎥ (나쁨)")
	assert.Contains(t, out, "https://openweathermap.org/img/wn/04d@2x.png")
	assert.NotContains(t, out, "\x1b[", "no color unless enabled")
}

func TestOutcome_NoRainNoAirQuality(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&Renderer{}).Outcome(&buf, seoulResult(nil, nil), nil))

	assert.Contains(t, buf.String(), MsgNoRain)
	assert.Contains(t, buf.String(), MsgNoAirQuality)
}

func TestOutcome_FallsBackToCanonicalName(t *testing.T) {
	result := seoulResult(nil, nil)
	result.DisplayName = ""

	var buf bytes.Buffer
	require.NoError(t, (&Renderer{}).Outcome(&buf, result, nil))
	assert.True(t, strings.HasPrefix(buf.String(), "Seoul\n"))
}

func TestOutcome_Errors(t *testing.T) {
	tests := []struct {
		kind service.ErrorKind
		want string
	}{
		{service.InvalidInput, MsgInvalidInput},
		{service.NetworkFailure, MsgNetworkFailure},
		{service.GeolocationUnavailable, MsgGeolocationUnavailable},
		{service.GeolocationDenied, MsgGeolocationDenied},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			var buf bytes.Buffer
			err := &service.QueryError{Kind: tt.kind}
			require.NoError(t, (&Renderer{}).Outcome(&buf, nil, err))
			assert.Equal(t, tt.want+"\n", buf.String())
		})
	}
}

func TestErrorMessage_UnknownError(t *testing.T) {
	assert.Equal(t, MsgNetworkFailure, ErrorMessage(errors.New("boom")))
}

func TestOutcome_ColorFollowsTheme(t *testing.T) {
	var light, dark bytes.Buffer
	require.NoError(t, (&Renderer{Theme: Light, Color: true}).Outcome(&light, seoulResult(nil, nil), nil))
	require.NoError(t, (&Renderer{Theme: Dark, Color: true}).Outcome(&dark, seoulResult(nil, nil), nil))

	assert.Contains(t, light.String(), Light.palette().title)
	assert.Contains(t, dark.String(), Dark.palette().title)
	assert.NotEqual(t, light.String(), dark.String())
}

func TestOutcome_JSON(t *testing.T) {
	r := &Renderer{JSON: true}
	air := &model.AirQualityResult{PM10: 10, PM25: 5, AQI: 1, Category: model.AQIGood}

	var buf bytes.Buffer
	require.NoError(t, r.Outcome(&buf, seoulResult(nil, air), nil))

	var got struct {
		Message string `json:"message"`
		Data    struct {
			Weather struct {
				City string `json:"city"`
			} `json:"weather"`
			AirQuality struct {
				Category string `json:"category"`
			} `json:"air_quality"`
			DisplayName string `json:"display_name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Success", got.Message)
	assert.Equal(t, "Seoul", got.Data.Weather.City)
	assert.Equal(t, "Good", got.Data.AirQuality.Category)
	assert.Equal(t, "서울", got.Data.DisplayName)
}

func TestOutcome_JSONError(t *testing.T) {
	var buf bytes.Buffer
	err := &service.QueryError{Kind: service.InvalidInput}
	require.NoError(t, (&Renderer{JSON: true}).Outcome(&buf, nil, err))

	var got model.Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Error", got.Message)
	require.NotNil(t, got.Error)
	assert.Equal(t, MsgInvalidInput, *got.Error)
	assert.Nil(t, got.Data)
}

func TestHistory(t *testing.T) {
	var buf bytes.Buffer
	r := &Renderer{}

	require.NoError(t, r.History(&buf, nil))
	assert.Equal(t, MsgEmptyHistory+"\n", buf.String())

	buf.Reset()
	require.NoError(t, r.History(&buf, []string{"부산", "제주"}))
	assert.Equal(t, "1. 부산\n2. 제주\n", buf.String())
}

func TestStats(t *testing.T) {
	var buf bytes.Buffer
	lines := []observability.CounterLine{{Name: "korean_weather_queries_total", Labels: "flow=city,outcome=success", Value: 3}}
	require.NoError(t, (&Renderer{}).Stats(&buf, lines))
	assert.Equal(t, "korean_weather_queries_total{flow=city,outcome=success} 3\n", buf.String())
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "좋음", CategoryLabel(model.AQIGood))
	assert.Equal(t, "보통", CategoryLabel(model.ClassifyAQI(2)))
	assert.Equal(t, "보통", CategoryLabel(model.ClassifyAQI(3)))
	assert.Equal(t, "나쁨", CategoryLabel(model.AQIUnhealthy))
	assert.Equal(t, "매우 나쁨", CategoryLabel(model.AQIVeryUnhealthy))
	assert.Equal(t, "알 수 없음", CategoryLabel(model.ClassifyAQI(99)))
}

func TestTheme(t *testing.T) {
	assert.Equal(t, Dark, Light.Toggle())
	assert.Equal(t, Light, Dark.Toggle())
	assert.Equal(t, Dark, ParseTheme(" DARK "))
	assert.Equal(t, Light, ParseTheme("solarized"))
	assert.Equal(t, "dark", Dark.String())
}
