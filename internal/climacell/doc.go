// Package climacell is the WeatherBar weather client.
//
// A single GET to the realtime endpoint carries the coordinates, unit system
// and API key from a Request value plus the fixed field list (temp,
// weather_code):
//
//	GET /v3/weather/realtime?lat=40.74&lon=-73.98&unit_system=si&apikey=...&fields=temp&fields=weather_code
//
//	{"temp": {"value": 21.3, "units": "C"}, "weather_code": {"value": "clear"}}
//
// The client never retries. Failures carry a fault.Kind so the controller
// can decide between re-prompting for a key, asking for another location,
// or showing the connection state.
package climacell
