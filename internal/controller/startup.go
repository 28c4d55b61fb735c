package controller

import (
	"context"
	"log"
	"strings"

	"github.com/five82/weatherbar/internal/fault"
	"github.com/five82/weatherbar/internal/prefs"
)

// Start loads the record, makes sure an API key is present, optionally
// detects the current location, persists and performs one visible refresh.
func (c *Controller) Start(ctx context.Context) error {
	detect := false
	rec, err := c.store.Read()
	if err == nil {
		err = rec.Check()
	}
	switch fault.KindOf(err) {
	case fault.None:
		c.record = rec
	case fault.ConfigNotFound:
		log.Printf("no saved settings, starting with defaults")
		c.record = prefs.Default()
		detect = true
	default:
		log.Printf("load settings: %v", err)
		c.record = prefs.Default()
		if err := c.alert(ctx, "Something went wrong whilst loading settings", "Default settings have been applied"); err != nil {
			return err
		}
		detect = true
	}
	c.display.SetPreferences(c.record.Location, c.record.UnitSystem, c.record.LiveLocation)

	if strings.TrimSpace(c.record.APIKey) == "" {
		log.Printf("api key is missing")
		if err := c.acquireAPIKey(ctx); err != nil {
			return err
		}
	}

	if detect {
		if err := c.detectLocation(ctx); err != nil {
			return err
		}
	}

	c.persist()
	return c.Refresh(ctx, false)
}

// detectLocation offers the current IP location. Resolution failures keep
// the record unchanged.
func (c *Controller) detectLocation(ctx context.Context) error {
	res, err := c.resolver.ResolveCurrent(ctx)
	if err != nil {
		log.Printf("could not get current location: %v", err)
		return nil
	}

	ok, err := c.confirm(ctx, "Is this your location?", res.Name, "Yes", "No")
	if err != nil {
		return err
	}
	if !ok {
		chosen, adopted, err := c.promptLocation(ctx, res.Name)
		if err != nil || !adopted {
			return err
		}
		res = chosen
	}

	c.record = c.record.WithLocation(res.Name, res.Latitude, res.Longitude)
	log.Printf("location set to %q (%v, %v)", res.Name, res.Latitude, res.Longitude)
	return nil
}

// acquireAPIKey loops until the user stores a key or quits.
func (c *Controller) acquireAPIKey(ctx context.Context) error {
	for {
		ans, err := c.prompter.Prompt(ctx, Dialog{
			Title:   "ClimaCell API Key is required",
			Message: signupMessage(c.signupURL),
			Buttons: []string{"Register", "I have one", "Quit"},
		})
		if err != nil {
			return err
		}
		switch ans.Button {
		case 0:
			c.openLink(c.signupURL)
		case 1:
		case 2:
			log.Printf("quit requested from api key prompt")
			return ErrQuit
		default:
			continue
		}

		key, ok, err := c.promptKey(ctx)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		c.record.APIKey = key
		log.Printf("api key updated")
		c.persist()
		return nil
	}
}

// promptKey asks for the key until a non-blank value is entered. ok is
// false when the user backed out.
func (c *Controller) promptKey(ctx context.Context) (key string, ok bool, err error) {
	for {
		ans, err := c.prompter.Prompt(ctx, Dialog{
			Title:   "Enter your API key:",
			Message: "Paste the key from your ClimaCell account",
			Buttons: []string{"Confirm", "I don't have one"},
			Input:   true,
			Default: c.record.APIKey,
			Secret:  true,
		})
		if err != nil {
			return "", false, err
		}
		if ans.Button != 0 {
			return "", false, nil
		}
		key = strings.TrimSpace(ans.Text)
		if key == "" {
			if err := c.alert(ctx, "You did not enter an API Key", "Try again"); err != nil {
				return "", false, err
			}
			continue
		}
		return key, true, nil
	}
}
