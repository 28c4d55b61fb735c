// Package ui renders WeatherBar as a Bubble Tea program.
//
// The top line stands in for the status-bar title. Below it a dropdown lists
// the menu: last update, Update Now, the units switch, Change Location, the
// Live Location checkbox, Show Log, About and Quit. Menu choices become
// controller.Action values on a channel; the UI never touches the controller
// directly.
//
// Dialogs travel the other way. The controller calls Prompter.Prompt, which
// sends a message into the running program and waits for the user's answer.
// Only one dialog is visible at a time; later requests queue behind it.
package ui
