package handler

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fakhrymubarak/korean-weather/internal/city"
	"github.com/fakhrymubarak/korean-weather/internal/observability"
	"github.com/fakhrymubarak/korean-weather/internal/service"
	"github.com/fakhrymubarak/korean-weather/internal/view"
	"go.uber.org/zap"
)

// Commands recognized besides plain city names.
const (
	CmdHere    = "/here"
	CmdHistory = "/history"
	CmdTheme   = "/theme"
	CmdStats   = "/stats"
	CmdHelp    = "/help"
	CmdQuit    = "/quit"
)

// StatsSource supplies counters for /stats.
type StatsSource interface {
	Counters() ([]observability.CounterLine, error)
}

type CommandHandler struct {
	WeatherService service.WeatherServiceInterface
	Renderer       *view.Renderer
	Stats          StatsSource
	Out            io.Writer
	Logger         *zap.SugaredLogger
}

func NewCommandHandler(svc service.WeatherServiceInterface, renderer *view.Renderer, stats StatsSource, out io.Writer, logger *zap.SugaredLogger) *CommandHandler {
	return &CommandHandler{
		WeatherService: svc,
		Renderer:       renderer,
		Stats:          stats,
		Out:            out,
		Logger:         logger,
	}
}

// Handle runs one input line. It reports whether the session should end.
func (h *CommandHandler) Handle(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)

	var err error
	switch strings.ToLower(input) {
	case CmdQuit:
		return true
	case CmdHelp:
		err = h.help()
	case CmdHistory:
		err = h.Renderer.History(h.Out, h.WeatherService.View().History)
	case CmdTheme:
		h.Renderer.Theme = h.Renderer.Theme.Toggle()
		err = h.Renderer.Notice(h.Out, "테마: "+h.Renderer.Theme.String())
	case CmdStats:
		err = h.stats()
	case CmdHere:
		result, qerr := h.WeatherService.QueryByGeolocation(ctx)
		err = h.Renderer.Outcome(h.Out, result, qerr)
	default:
		// Validation, including the empty line, is the service's job.
		result, qerr := h.WeatherService.QueryByCityName(ctx, input)
		err = h.Renderer.Outcome(h.Out, result, qerr)
	}
	if err != nil {
		h.Logger.Errorw("could not write output", "error", err)
	}
	return false
}

// Run reads commands from r until EOF, /quit, or ctx is done.
func (h *CommandHandler) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if h.Handle(ctx, scanner.Text()) {
			return nil
		}
	}
}

func (h *CommandHandler) help() error {
	names := make([]string, 0, len(city.Entries()))
	for _, e := range city.Entries() {
		names = append(names, e.KoreanName)
	}
	lines := []string{
		"도시 이름을 입력하세요: " + strings.Join(names, ", "),
		fmt.Sprintf("%s 현재 위치 날씨 · %s 검색 기록 · %s 테마 전환 · %s 통계 · %s 종료",
			CmdHere, CmdHistory, CmdTheme, CmdStats, CmdQuit),
	}
	for _, l := range lines {
		if err := h.Renderer.Notice(h.Out, l); err != nil {
			return err
		}
	}
	return nil
}

func (h *CommandHandler) stats() error {
	if h.Stats == nil {
		return h.Renderer.Stats(h.Out, nil)
	}
	lines, err := h.Stats.Counters()
	if err != nil {
		h.Logger.Warnw("could not gather stats", "error", err)
		return h.Renderer.Stats(h.Out, nil)
	}
	return h.Renderer.Stats(h.Out, lines)
}
