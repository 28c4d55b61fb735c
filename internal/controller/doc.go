// Package controller reconciles the configuration record with the user, the
// location resolver and the weather provider.
//
// A Controller is owned by a single goroutine (Run). The UI and the poll
// scheduler never touch its state; they send Actions on a channel, and the
// controller talks back through a Prompter (modal dialogs) and a Publisher
// (menu display state). Every re-prompt is a loop, and every failure from a
// lower component is dispatched on its fault.Kind.
package controller
