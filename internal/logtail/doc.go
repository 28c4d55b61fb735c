// Package logtail reads the end of the WeatherBar log file for the Show Log
// view.
//
// Read keeps a ring buffer of the last N lines, so memory stays bounded no
// matter how large the file has grown. A missing file is not an error; the
// log simply has nothing to show yet.
//
// Parse understands the logger's own format:
//
//	weatherbar: 2024/06/07 08:09:10 refresh 1a2b3c4d: fetching 40.74,-73.98 (si, silent=true)
package logtail
