// Package state holds the menu's display state.
//
// The controller goroutine is the only writer. The UI reads a copy on its
// one-second tick:
//
//	Controller:                      UI:
//	store.SetPreferences(...)        snap := store.Snapshot()
//	store.Update(w)                  render(snap.Title, snap.UpdatedLabel())
//	store.MarkNoConnection()
//
// A failed fetch is never written here, so the last good reading stays up.
// The title's icon switches to the no-connection glyph when the controller
// asks for it explicitly, which it does for user-visible refreshes only.
//
// The zero Store is ready to use.
package state
