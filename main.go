package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fakhrymubarak/korean-weather/internal/config"
	"github.com/fakhrymubarak/korean-weather/internal/geolocation"
	"github.com/fakhrymubarak/korean-weather/internal/handler"
	"github.com/fakhrymubarak/korean-weather/internal/repository"
	"github.com/fakhrymubarak/korean-weather/internal/service"
	"github.com/fakhrymubarak/korean-weather/internal/view"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() { done <- run(ctx, os.Args[1:], os.Stdin, os.Stdout) }()

	select {
	case err := <-done:
		if err != nil {
			config.GetLogger().Errorw("Weather lookup exited with error", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		config.GetLogger().Infow("Interrupted, shutting down")
	}
	_ = config.GetLogger().Sync()
}

// run wires the app from config and serves commands from in until it ends.
func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	flags := flag.NewFlagSet("korean-weather", flag.ContinueOnError)
	flags.SetOutput(out)
	jsonOut := flags.Bool("json", false, "render outcomes as JSON")
	theme := flags.String("theme", "light", "initial theme: light or dark")
	color := flags.Bool("color", isTerminal(out), "use ANSI colors")
	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	config.SetLogLevel(config.GetLogLevel())
	logger := config.GetLogger()

	httpClient := &http.Client{Timeout: config.GetHTTPTimeout()}
	repo := repository.NewWeatherRepository(repository.Options{
		HTTPClient:      httpClient,
		WeatherURL:      config.GetOpenWeatherApiUrl(),
		AirPollutionURL: config.GetAirPollutionApiUrl(),
		APIKey:          config.GetOpenWeatherMapAPIKey(),
		Logger:          logger,
	})
	geo := geolocation.FromConfig(httpClient)
	svc := service.NewWeatherService(repo, geo, service.WithLogger(logger))

	renderer := &view.Renderer{
		Theme: view.ParseTheme(*theme),
		JSON:  *jsonOut,
		Color: *color && !*jsonOut,
	}
	h := handler.NewCommandHandler(svc, renderer, svc.Metrics(), out, logger)

	logger.Infow("Weather lookup ready",
		"geolocation", config.GetGeolocationMode(),
		"theme", renderer.Theme.String(),
		"json", renderer.JSON,
	)
	if !renderer.JSON {
		h.Handle(ctx, handler.CmdHelp)
	}
	return h.Run(ctx, in)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
