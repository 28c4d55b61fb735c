// Package config loads WeatherBar application settings.
//
// # Overview
//
// Settings are the operator-facing knobs that are not part of the persisted
// configuration record (location, units, key): provider endpoints, the
// geocoding backend, the poll interval, the theme and file locations. They are
// read once at startup and never written back.
//
// # Resolution Order
//
//  1. Built-in defaults (see Defaults)
//  2. settings.toml at the given path, or <UserConfigDir>/WeatherBar/settings.toml
//  3. WEATHERBAR_* environment variables, after an optional .env in the
//     working directory has been loaded
//  4. Empty values fall back to defaults; tilde paths are expanded
//  5. The result is validated; an invalid value is a startup error
//
// # TOML Format
//
//	weather_url = "https://api.climacell.co/v3/weather/realtime"
//	ip_location_url = "http://ip-api.com/json/"
//	geocoder = "google"
//	google_api_key = "..."
//	poll_seconds = 300
//	theme = "Slate"
//	log_file = "~/Library/Logs/WeatherBar/weatherbar.log"
//
// Every field is optional. A missing settings file is not an error.
package config
