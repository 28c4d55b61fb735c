package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/weatherbar/internal/prefs"
)

// Settings captures the application settings WeatherBar reads at startup.
type Settings struct {
	WeatherURL     string `toml:"weather_url" validate:"required,url"`
	SignupURL      string `toml:"signup_url" validate:"required,url"`
	IPLocationURL  string `toml:"ip_location_url" validate:"required,url"`
	Geocoder       string `toml:"geocoder" validate:"oneof=nominatim google"`
	NominatimURL   string `toml:"nominatim_url" validate:"required,url"`
	GoogleAPIKey   string `toml:"google_api_key" validate:"required_if=Geocoder google"`
	UserAgent      string `toml:"user_agent" validate:"required"`
	PollSeconds    int    `toml:"poll_seconds" validate:"gte=30"`
	TimeoutSeconds int    `toml:"request_timeout_seconds" validate:"gte=1,lte=120"`
	Theme          string `toml:"theme"`
	LogFile        string `toml:"log_file" validate:"required"`
	ConfigPath     string `toml:"config_path" validate:"required"`
}

const (
	defaultSettingsName = "settings.toml"
	defaultWeatherURL   = "https://api.climacell.co/v3/weather/realtime"
	defaultSignupURL    = "https://developer.climacell.co/sign-up"
	defaultIPURL        = "http://ip-api.com/json/"
	defaultGeocoder     = "nominatim"
	defaultNominatimURL = "https://nominatim.openstreetmap.org"
	defaultUserAgent    = "WeatherBar/1.0"
	defaultPollSeconds  = 300
	defaultTimeout      = 10
	defaultTheme        = "Dracula"
	defaultLogName      = "weatherbar.log"

	envPrefix = "WEATHERBAR_"
)

var validate = validator.New()

// Defaults returns the settings used when no file or override is present.
func Defaults() Settings {
	return Settings{
		WeatherURL:     defaultWeatherURL,
		SignupURL:      defaultSignupURL,
		IPLocationURL:  defaultIPURL,
		Geocoder:       defaultGeocoder,
		NominatimURL:   defaultNominatimURL,
		UserAgent:      defaultUserAgent,
		PollSeconds:    defaultPollSeconds,
		TimeoutSeconds: defaultTimeout,
		Theme:          defaultTheme,
		LogFile:        filepath.Join(prefs.AppDir(), defaultLogName),
		ConfigPath:     prefs.DefaultPath(),
	}
}

// DefaultPath returns <UserConfigDir>/WeatherBar/settings.toml.
func DefaultPath() string {
	return filepath.Join(prefs.AppDir(), defaultSettingsName)
}

// Load reads settings from path (empty selects DefaultPath), applies
// WEATHERBAR_* environment overrides, fills defaults and validates. A missing
// file is not an error.
func Load(path string) (Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Settings{}, fmt.Errorf("load .env: %w", err)
	}

	resolved, err := resolvePath(path)
	if err != nil {
		return Settings{}, err
	}

	cfg := Defaults()

	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Settings{}, fmt.Errorf("read settings: %w", err)
		}
		if err := toml.Unmarshal(bytes, &cfg); err != nil {
			return Settings{}, fmt.Errorf("parse settings: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Settings{}, fmt.Errorf("open settings: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Settings{}, err
	}
	cfg.normalize()

	if err := validate.Struct(cfg); err != nil {
		return Settings{}, fmt.Errorf("validate settings: %w", err)
	}
	return cfg, nil
}

// PollInterval is the fixed refresh cadence.
func (s Settings) PollInterval() time.Duration {
	return time.Duration(s.PollSeconds) * time.Second
}

// RequestTimeout bounds each outbound HTTP request.
func (s Settings) RequestTimeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

func (s *Settings) normalize() {
	defaults := Defaults()
	s.WeatherURL = orDefault(s.WeatherURL, defaults.WeatherURL)
	s.SignupURL = orDefault(s.SignupURL, defaults.SignupURL)
	s.IPLocationURL = orDefault(s.IPLocationURL, defaults.IPLocationURL)
	s.Geocoder = strings.ToLower(orDefault(s.Geocoder, defaults.Geocoder))
	s.NominatimURL = orDefault(s.NominatimURL, defaults.NominatimURL)
	s.GoogleAPIKey = strings.TrimSpace(s.GoogleAPIKey)
	s.UserAgent = orDefault(s.UserAgent, defaults.UserAgent)
	s.Theme = orDefault(s.Theme, defaults.Theme)
	if s.PollSeconds == 0 {
		s.PollSeconds = defaults.PollSeconds
	}
	if s.TimeoutSeconds == 0 {
		s.TimeoutSeconds = defaults.TimeoutSeconds
	}
	s.LogFile = mustExpand(orDefault(s.LogFile, defaults.LogFile))
	s.ConfigPath = mustExpand(orDefault(s.ConfigPath, defaults.ConfigPath))
}

func applyEnv(s *Settings) error {
	strs := map[string]*string{
		"WEATHER_URL":     &s.WeatherURL,
		"SIGNUP_URL":      &s.SignupURL,
		"IP_LOCATION_URL": &s.IPLocationURL,
		"GEOCODER":        &s.Geocoder,
		"NOMINATIM_URL":   &s.NominatimURL,
		"GOOGLE_API_KEY":  &s.GoogleAPIKey,
		"USER_AGENT":      &s.UserAgent,
		"THEME":           &s.Theme,
		"LOG_FILE":        &s.LogFile,
		"CONFIG_PATH":     &s.ConfigPath,
	}
	for name, dest := range strs {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dest = v
		}
	}

	ints := map[string]*int{
		"POLL_SECONDS":            &s.PollSeconds,
		"REQUEST_TIMEOUT_SECONDS": &s.TimeoutSeconds,
	}
	for name, dest := range ints {
		v, ok := os.LookupEnv(envPrefix + name)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", envPrefix, name, err)
		}
		*dest = n
	}
	return nil
}

func orDefault(value, def string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return def
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultPath(), nil
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
