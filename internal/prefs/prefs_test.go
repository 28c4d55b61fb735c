package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/five82/weatherbar/internal/fault"
	"github.com/five82/weatherbar/internal/weather"
)

func TestRead_MissingFileIsNotFound(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}

	_, err = store.Read()
	if kind := fault.KindOf(err); kind != fault.ConfigNotFound {
		t.Fatalf("Read kind = %v, want %v (err %v)", kind, fault.ConfigNotFound, err)
	}
}

func TestSave_CreatesFileAndDirsAndRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "config.json")
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}

	rec := Default().WithLocation("Melbourne", -37.81, 144.96)
	rec.UnitSystem = weather.Imperial
	rec.APIKey = "secret"
	rec.LiveLocation = true

	if err := store.Save(rec); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := store.Read()
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if loaded != rec {
		t.Fatalf("Read = %#v, want %#v", loaded, rec)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "config.json" {
		t.Fatalf("dir entries = %v, want only config.json", entries)
	}
}

func TestRead_InvalidJSONIsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("not json {{{"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}

	_, err = store.Read()
	if kind := fault.KindOf(err); kind != fault.ConfigInvalid {
		t.Fatalf("Read kind = %v, want %v", kind, fault.ConfigInvalid)
	}
}

func TestDecode_SchemaCheck(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		valid bool
	}{
		{
			name:  "exact keys any values",
			body:  `{"location":"","latitude":0,"longitude":-1.5,"unit_system":"kelvin","apikey":"","live_location":true}`,
			valid: true,
		},
		{
			name:  "extra keys ignored",
			body:  `{"location":"x","latitude":1,"longitude":2,"unit_system":"us","apikey":"k","live_location":false,"theme":"dark"}`,
			valid: true,
		},
		{
			name: "missing apikey",
			body: `{"location":"x","latitude":1,"longitude":2,"unit_system":"us","live_location":false}`,
		},
		{
			name: "missing live_location",
			body: `{"location":"x","latitude":1,"longitude":2,"unit_system":"us","apikey":""}`,
		},
		{
			name: "latitude as string",
			body: `{"location":"x","latitude":"1","longitude":2,"unit_system":"us","apikey":"","live_location":false}`,
		},
		{
			name: "live_location as number",
			body: `{"location":"x","latitude":1,"longitude":2,"unit_system":"us","apikey":"","live_location":0}`,
		},
		{
			name: "null location",
			body: `{"location":null,"latitude":1,"longitude":2,"unit_system":"us","apikey":"","live_location":false}`,
		},
		{
			name: "not an object",
			body: `[1,2,3]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.body))
			if tt.valid && err != nil {
				t.Fatalf("Decode returned error %v, want nil", err)
			}
			if !tt.valid && fault.KindOf(err) != fault.ConfigInvalid {
				t.Fatalf("Decode error = %v, want ConfigInvalid", err)
			}
		})
	}
}

func TestNewStore_DefaultAndTildePaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	store, err := NewStore("")
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}
	if store.path != DefaultPath() {
		t.Fatalf("path = %q, want %q", store.path, DefaultPath())
	}
	if filepath.Base(store.path) != "config.json" {
		t.Fatalf("path = %q, want config.json file", store.path)
	}

	store, err = NewStore("~/wb/config.json")
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}
	if want := filepath.Join(home, "wb", "config.json"); store.path != want {
		t.Fatalf("path = %q, want %q", store.path, want)
	}
}

func TestRecordCheck(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Record)
		ok   bool
	}{
		{name: "default", edit: func(*Record) {}, ok: true},
		{name: "imperial", edit: func(r *Record) { r.UnitSystem = weather.Imperial }, ok: true},
		{name: "unknown units", edit: func(r *Record) { r.UnitSystem = "metric" }},
		{name: "empty units", edit: func(r *Record) { r.UnitSystem = "" }},
		{name: "latitude off globe", edit: func(r *Record) { r.Latitude = 200 }},
		{name: "longitude off globe", edit: func(r *Record) { r.Longitude = -181 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Default()
			tt.edit(&rec)
			err := rec.Check()
			if tt.ok && err != nil {
				t.Fatalf("Check() = %v, want nil", err)
			}
			if !tt.ok && fault.KindOf(err) != fault.ConfigInvalid {
				t.Fatalf("Check() kind = %v, want ConfigInvalid", fault.KindOf(err))
			}
		})
	}
}

func TestDecode_AcceptsUnknownUnitsForCheckToReject(t *testing.T) {
	rec, err := Decode([]byte(`{"location":"x","latitude":1,"longitude":2,"unit_system":"metric","apikey":"k","live_location":false}`))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if fault.KindOf(rec.Check()) != fault.ConfigInvalid {
		t.Fatalf("Check() kind = %v, want ConfigInvalid", fault.KindOf(rec.Check()))
	}
}
