// Package prefs persists the WeatherBar configuration record.
// The record lives in config.json under the per-user application support
// directory and is checked structurally against the built-in default on read.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/five82/weatherbar/internal/fault"
	"github.com/five82/weatherbar/internal/weather"
)

// Record is the persisted configuration.
type Record struct {
	Location     string             `json:"location"`
	Latitude     float64            `json:"latitude"`
	Longitude    float64            `json:"longitude"`
	UnitSystem   weather.UnitSystem `json:"unit_system"`
	APIKey       string             `json:"apikey"`
	LiveLocation bool               `json:"live_location"`
}

const (
	appDirName      = "WeatherBar"
	configFileName  = "config.json"
	defaultLocation = "175 5th Avenue NYC"
	defaultLat      = 40.7410861
	defaultLon      = -73.9896297241625
)

// Default returns the built-in record. It doubles as the reference schema.
func Default() Record {
	return Record{
		Location:   defaultLocation,
		Latitude:   defaultLat,
		Longitude:  defaultLon,
		UnitSystem: weather.Metric,
	}
}

// WithLocation returns a copy of r pointing at a new place.
func (r Record) WithLocation(name string, lat, lon float64) Record {
	r.Location = name
	r.Latitude = lat
	r.Longitude = lon
	return r
}

// Check rejects values the schema check cannot see: an unknown unit system
// or coordinates off the globe.
func (r Record) Check() error {
	if !r.UnitSystem.Valid() {
		return fault.Newf(fault.ConfigInvalid, "check config", "unit system %q not supported", r.UnitSystem)
	}
	if math.IsNaN(r.Latitude) || math.IsNaN(r.Longitude) ||
		r.Latitude < -90 || r.Latitude > 90 || r.Longitude < -180 || r.Longitude > 180 {
		return fault.Newf(fault.ConfigInvalid, "check config", "coordinates %v,%v out of range", r.Latitude, r.Longitude)
	}
	return nil
}

// DefaultPath returns <UserConfigDir>/WeatherBar/config.json.
func DefaultPath() string {
	return filepath.Join(AppDir(), configFileName)
}

// AppDir returns the per-user application support directory for WeatherBar.
// On macOS this is ~/Library/Application Support/WeatherBar.
func AppDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join("~", ".config", appDirName)
	}
	return filepath.Join(base, appDirName)
}

// Store reads and writes the record at a fixed path.
type Store struct {
	path string
}

// NewStore builds a Store for path; an empty path selects DefaultPath.
func NewStore(path string) (*Store, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	return &Store{path: resolved}, nil
}

// Read loads the persisted record. It fails with fault.ConfigNotFound when no
// file exists and fault.ConfigInvalid when the content does not match the
// reference schema.
func (s *Store) Read() (Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Record{}, fault.New(fault.ConfigNotFound, "read config", err)
		}
		return Record{}, fault.New(fault.IO, "read config", err)
	}
	return Decode(data)
}

// Decode parses and schema-checks a serialized record.
func Decode(data []byte) (Record, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Record{}, fault.New(fault.ConfigInvalid, "parse config", err)
	}
	if err := Validate(raw); err != nil {
		return Record{}, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fault.New(fault.ConfigInvalid, "decode config", err)
	}
	return rec, nil
}

// Validate checks that every key of the reference record is present in raw
// with the same JSON primitive type. Extra keys are ignored.
func Validate(raw map[string]any) error {
	for key, want := range referenceSchema() {
		value, ok := raw[key]
		if !ok {
			return fault.Newf(fault.ConfigInvalid, "validate config", "missing key %q", key)
		}
		if got := jsonType(value); got != want {
			return fault.Newf(fault.ConfigInvalid, "validate config", "key %q is %s, want %s", key, got, want)
		}
	}
	return nil
}

// Save writes the record to a temp file beside the target and renames it
// into place, so readers never observe a partial write.
func (s *Store) Save(rec Record) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fault.New(fault.IO, "create config dir", err)
	}

	bytes, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fault.New(fault.IO, "marshal config", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return fault.New(fault.IO, "create temp config", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(bytes); err != nil {
		_ = tmp.Close()
		return fault.New(fault.IO, "write config", err)
	}
	if err := tmp.Close(); err != nil {
		return fault.New(fault.IO, "close config", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fault.New(fault.IO, "chmod config", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fault.New(fault.IO, "replace config", err)
	}
	return nil
}

func referenceSchema() map[string]string {
	bytes, err := json.Marshal(Default())
	if err != nil {
		panic(fmt.Sprintf("marshal reference config: %v", err))
	}
	var raw map[string]any
	if err := json.Unmarshal(bytes, &raw); err != nil {
		panic(fmt.Sprintf("unmarshal reference config: %v", err))
	}
	schema := make(map[string]string, len(raw))
	for key, value := range raw {
		schema[key] = jsonType(value)
	}
	return schema
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "bool"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultPath(), nil
	}
	return expandPath(path)
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
