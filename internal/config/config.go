package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Geolocation modes accepted under geolocation.mode.
const (
	GeolocationModeIP     = "ip"
	GeolocationModeStatic = "static"
	GeolocationModeOff    = "off"
)

var once sync.Once
var logger *zap.SugaredLogger
var loggerOnce sync.Once
var logLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

func initConfig() {
	once.Do(func() {
		viper.Reset()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()
		setDefaults()

		root, err := getProjectRoot()
		if err != nil {
			GetLogger().Warnw("Project root not found, using defaults", "error", err)
			return
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
		viper.AddConfigPath(root)
		if err = viper.ReadInConfig(); err != nil {
			GetLogger().Warnw("Error reading config file", "error", err)
		}

		if isTestRun() {
			viper.SetConfigName("config_test")
			if err = viper.MergeInConfig(); err != nil {
				GetLogger().Warnw("Error merging test config file", "error", err)
			}
		}
	})
}

func setDefaults() {
	viper.SetDefault("openweathermap.weather_url", "https://api.openweathermap.org/data/2.5/weather")
	viper.SetDefault("openweathermap.air_pollution_url", "https://api.openweathermap.org/data/2.5/air_pollution")
	viper.SetDefault("http.timeout", "")
	viper.SetDefault("geolocation.mode", GeolocationModeIP)
	viper.SetDefault("geolocation.ip_url", "http://ip-api.com/json/")
	viper.SetDefault("log.level", "info")
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func GetOpenWeatherApiUrl() string {
	initConfig()
	return viper.GetString("openweathermap.weather_url")
}

func GetAirPollutionApiUrl() string {
	initConfig()
	return viper.GetString("openweathermap.air_pollution_url")
}

// GetOpenWeatherMapAPIKey reads the key from the environment, loading .env first.
// An empty key is returned as-is; the upstream rejects it.
func GetOpenWeatherMapAPIKey() string {
	_ = godotenv.Load()
	return os.Getenv("OPENWEATHERMAP_API_KEY")
}

// GetHTTPTimeout returns the upstream client timeout. Zero means no client
// timeout, deferring to the transport.
func GetHTTPTimeout() time.Duration {
	initConfig()
	durStr := viper.GetString("http.timeout")
	if durStr == "" {
		return 0
	}
	dur, err := time.ParseDuration(durStr)
	if err != nil || dur < 0 {
		return 0
	}
	return dur
}

// GetGeolocationMode returns one of the GeolocationMode* constants, falling
// back to off for unrecognized values.
func GetGeolocationMode() string {
	initConfig()
	switch mode := strings.ToLower(viper.GetString("geolocation.mode")); mode {
	case GeolocationModeIP, GeolocationModeStatic, GeolocationModeOff:
		return mode
	default:
		return GeolocationModeOff
	}
}

func GetGeolocationIPUrl() string {
	initConfig()
	return viper.GetString("geolocation.ip_url")
}

// GetStaticPosition returns the configured fixed latitude and longitude.
func GetStaticPosition() (lat, lon float64) {
	initConfig()
	return viper.GetFloat64("geolocation.lat"), viper.GetFloat64("geolocation.lon")
}

func GetLogLevel() string {
	initConfig()
	return viper.GetString("log.level")
}

// ReloadConfigForTest resets the config singleton and reloads Viper config. Use only in tests.
func ReloadConfigForTest() {
	once = sync.Once{}
	initConfig()
}

func GetLogger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = logLevel
		l, err := cfg.Build()
		if err != nil {
			panic(err)
		}
		logger = l.Sugar()
	})
	return logger
}

// SetLogLevel adjusts the shared logger's level. Unknown levels map to info.
func SetLogLevel(level string) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	logLevel.SetLevel(lvl)
}
