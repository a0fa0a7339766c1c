// Package view renders query outcomes for the terminal.
package view

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/fakhrymubarak/korean-weather/internal/model"
	"github.com/fakhrymubarak/korean-weather/internal/observability"
	"github.com/fakhrymubarak/korean-weather/internal/service"
)

// Messages shown for each failure kind.
const (
	MsgInvalidInput           = "도시 이름을 한국어로 쳐주세요!"
	MsgNetworkFailure         = "날씨 정보를 가져오는 데 실패했습니다."
	MsgGeolocationUnavailable = "이 환경에서는 위치 정보를 사용할 수 없어요. 도시 이름을 입력해 주세요."
	MsgGeolocationDenied      = "현재 위치를 가져오지 못했어요. 다시 시도하거나 도시 이름을 입력해 주세요."
	MsgNoRain                 = "한 시간 동안 비가 오지 않았어요"
	MsgNoAirQuality           = "대기질 정보 없음"
	MsgEmptyHistory           = "검색 기록이 없어요"
)

// Renderer writes text cards, or JSON envelopes when JSON is set.
type Renderer struct {
	Theme Theme
	JSON  bool
	Color bool
}

func (r *Renderer) colors() palette {
	if !r.Color {
		return plain
	}
	return r.Theme.palette()
}

// Outcome renders the result of one query.
func (r *Renderer) Outcome(w io.Writer, result *service.QueryResult, err error) error {
	if r.JSON {
		return r.outcomeJSON(w, result, err)
	}
	c := r.colors()
	if err != nil {
		_, werr := fmt.Fprintf(w, "%s%s%s\n", c.error, ErrorMessage(err), c.reset)
		return werr
	}
	return r.card(w, c, result)
}

func (r *Renderer) card(w io.Writer, c palette, result *service.QueryResult) error {
	weather := result.Weather
	title := result.DisplayName
	if title == "" {
		title = weather.CityCanonicalName
	}

	lines := []string{
		fmt.Sprintf("%s%s%s", c.title, title, c.reset),
		fmt.Sprintf("%s온도: %s°C%s", c.text, formatNumber(weather.TemperatureC), c.reset),
		fmt.Sprintf("%s날씨: %s%s", c.text, weather.Description, c.reset),
		fmt.Sprintf("%s☁️ : %d%%%s", c.text, weather.CloudsPercent, c.reset),
		fmt.Sprintf("%s습도: %d%%%s", c.text, weather.HumidityPercent, c.reset),
		fmt.Sprintf("%s%s%s", c.text, RainLine(weather.RainLastHourMm), c.reset),
		fmt.Sprintf("%s%s%s", c.text, AirQualityLine(result.AirQuality), c.reset),
	}
	if icon := model.IconURL(weather.IconID); icon != "" {
		lines = append(lines, fmt.Sprintf("%s%s%s", c.muted, icon, c.reset))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) outcomeJSON(w io.Writer, result *service.QueryResult, err error) error {
	resp := model.Response{Message: "Success", Data: result}
	if err != nil {
		msg := ErrorMessage(err)
		resp = model.Response{Error: &msg, Message: "Error"}
	}
	return writeJSON(w, resp)
}

// History renders the search history, oldest first.
func (r *Renderer) History(w io.Writer, history []string) error {
	if r.JSON {
		return writeJSON(w, model.Response{Message: "Success", Data: history})
	}
	c := r.colors()
	if len(history) == 0 {
		_, err := fmt.Fprintf(w, "%s%s%s\n", c.muted, MsgEmptyHistory, c.reset)
		return err
	}
	for i, name := range history {
		if _, err := fmt.Fprintf(w, "%s%d. %s%s\n", c.text, i+1, name, c.reset); err != nil {
			return err
		}
	}
	return nil
}

// Stats renders counter samples.
func (r *Renderer) Stats(w io.Writer, lines []observability.CounterLine) error {
	if r.JSON {
		return writeJSON(w, model.Response{Message: "Success", Data: lines})
	}
	c := r.colors()
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%s%s{%s} %s%s\n", c.muted, l.Name, l.Labels, formatNumber(l.Value), c.reset); err != nil {
			return err
		}
	}
	return nil
}

// Notice renders a one-line informational message.
func (r *Renderer) Notice(w io.Writer, msg string) error {
	if r.JSON {
		return writeJSON(w, model.Response{Message: msg})
	}
	c := r.colors()
	_, err := fmt.Fprintf(w, "%s%s%s\n", c.muted, msg, c.reset)
	return err
}

// ErrorMessage maps a query error to the message shown to the user.
func ErrorMessage(err error) string {
	var qerr *service.QueryError
	if !errors.As(err, &qerr) {
		return MsgNetworkFailure
	}
	switch qerr.Kind {
	case service.InvalidInput:
		return MsgInvalidInput
	case service.GeolocationUnavailable:
		return MsgGeolocationUnavailable
	case service.GeolocationDenied:
		return MsgGeolocationDenied
	default:
		return MsgNetworkFailure
	}
}

// RainLine distinguishes recorded rain from none.
func RainLine(mm *float64) string {
	if mm == nil {
		return MsgNoRain
	}
	return fmt.Sprintf("1시간 강수량: %s mm", formatNumber(*mm))
}

// AirQualityLine summarizes readings, or says none are available.
func AirQualityLine(aq *model.AirQualityResult) string {
	if aq == nil {
		return MsgNoAirQuality
	}
	return fmt.Sprintf("미세먼지: PM10 %s㎍/㎥ · PM2.5 %s㎍/㎥ (%s)",
		formatNumber(aq.PM10), formatNumber(aq.PM25), CategoryLabel(aq.Category))
}

// CategoryLabel is the Korean label for an AQI bucket.
func CategoryLabel(c model.AQICategory) string {
	switch c {
	case model.AQIGood:
		return "좋음"
	case model.AQIModerate:
		return "보통"
	case model.AQIUnhealthy:
		return "나쁨"
	case model.AQIVeryUnhealthy:
		return "매우 나쁨"
	default:
		return "알 수 없음"
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("could not encode json: %w", err)
	}
	return nil
}
