// Package app is the composition root for WeatherBar.
//
// Run loads settings, sends the standard logger to the log file, builds the
// HTTP clients, the location resolver and the controller, and then runs two
// loops side by side:
//
//   - the controller goroutine, which owns the configuration record and
//     serves actions one at a time
//   - the Bubble Tea program, which renders state.Store snapshots and turns
//     key presses into actions
//
// Once startup finishes, a gocron job signals a silent poll every poll
// interval (300 seconds by default). Polls go through a one-slot channel and
// are dropped rather than queued when one is already pending, so a dialog
// left open does not build up a backlog of refreshes.
//
// Either side stopping stops the other. Choosing Quit, cancelling the key
// prompt, or SIGINT/SIGTERM are clean exits; anything else is returned.
package app
