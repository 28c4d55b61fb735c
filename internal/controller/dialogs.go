package controller

import (
	"context"
	"fmt"
)

// Dialog is a modal request shown by the UI. When Input is set the dialog
// carries a single-line text field seeded with Default.
type Dialog struct {
	Title   string
	Message string
	Buttons []string
	Input   bool
	Default string
	Secret  bool
}

// Answer is the user's response to a Dialog. Button indexes Dialog.Buttons
// and is Dismissed when the dialog was closed without choosing.
type Answer struct {
	Button int
	Text   string
}

// Dismissed is the Answer.Button value for a dialog closed with escape.
const Dismissed = -1

// Prompter shows a dialog and blocks until the user answers or ctx ends.
type Prompter interface {
	Prompt(ctx context.Context, d Dialog) (Answer, error)
}

const (
	connectivityTitle   = "No Connection"
	connectivityMessage = "Could not reach the service. Check your internet connection and try again."

	aboutMessage = "Weather information provided by ClimaCell API\n" +
		"Geocoding provided by OpenStreetMap Nominatim and IP-API\n\n" +
		"Conditions refresh every few minutes. Use Update Now to refresh immediately."
)

func (c *Controller) alert(ctx context.Context, title, message string) error {
	_, err := c.prompter.Prompt(ctx, Dialog{Title: title, Message: message, Buttons: []string{"OK"}})
	return err
}

func (c *Controller) confirm(ctx context.Context, title, message, yes, no string) (bool, error) {
	ans, err := c.prompter.Prompt(ctx, Dialog{Title: title, Message: message, Buttons: []string{yes, no}})
	if err != nil {
		return false, err
	}
	return ans.Button == 0, nil
}

func (c *Controller) alertConnectivity(ctx context.Context) error {
	return c.alert(ctx, connectivityTitle, connectivityMessage)
}

func signupMessage(url string) string {
	return fmt.Sprintf("Click \"Register\" or go to the following url:\n%s\n\n"+
		"Note: This application is not affiliated with ClimaCell", url)
}
