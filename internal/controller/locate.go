package controller

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/five82/weatherbar/internal/fault"
	"github.com/five82/weatherbar/internal/location"
)

const (
	buttonApply = iota
	buttonCancel
	buttonUseCurrent
)

// ChangeLocation runs manual entry and, when a location is accepted, adopts
// it and refreshes. It does nothing in live mode.
func (c *Controller) ChangeLocation(ctx context.Context) error {
	if !c.ChangeLocationEnabled() {
		return nil
	}
	res, adopted, err := c.promptLocation(ctx, c.record.Location)
	if err != nil || !adopted {
		return err
	}
	if err := c.adoptLocation(ctx, res); err != nil {
		return err
	}
	return c.Refresh(ctx, false)
}

// adoptLocation stores res in the record and tells the user.
func (c *Controller) adoptLocation(ctx context.Context, res location.Resolved) error {
	c.record = c.record.WithLocation(res.Name, res.Latitude, res.Longitude)
	log.Printf("successfully changed location to %q", res.Name)
	c.persist()
	return c.alert(ctx, "Success!", fmt.Sprintf("Your location has been changed to %s.", res.Name))
}

// promptLocation shows the entry dialog until the user accepts a confirmed
// location or cancels. For typed input the returned Name is the user's text.
// Unclassified resolver failures are returned as errors.
func (c *Controller) promptLocation(ctx context.Context, seed string) (location.Resolved, bool, error) {
	for {
		ans, err := c.prompter.Prompt(ctx, Dialog{
			Title:   "Enter your location:",
			Message: "City, address or postcode",
			Buttons: []string{"Apply", "Cancel", "Use Current Location"},
			Input:   true,
			Default: seed,
		})
		if err != nil {
			return location.Resolved{}, false, err
		}

		var (
			res   location.Resolved
			typed string
		)
		switch ans.Button {
		case buttonApply:
			typed = strings.TrimSpace(ans.Text)
			if typed == "" {
				if err := c.alert(ctx, "Location cannot be empty", "Try again"); err != nil {
					return location.Resolved{}, false, err
				}
				continue
			}
			res, err = c.resolver.ResolveByText(ctx, typed)
		case buttonUseCurrent:
			res, err = c.resolver.ResolveCurrent(ctx)
		default:
			return location.Resolved{}, false, nil
		}

		if err != nil {
			switch fault.KindOf(err) {
			case fault.LocationNotFound:
				log.Printf("location not found: %v", err)
				if typed != "" {
					seed = typed
				}
				if err := c.alert(ctx, "Could not find your location", "Try again"); err != nil {
					return location.Resolved{}, false, err
				}
			case fault.ServiceError, fault.ConnectionError:
				log.Printf("location service unavailable: %v", err)
				if err := c.alertConnectivity(ctx); err != nil {
					return location.Resolved{}, false, err
				}
			default:
				return location.Resolved{}, false, fmt.Errorf("resolve location: %w", err)
			}
			continue
		}

		ok, err := c.confirm(ctx, "Is this your location?", res.Name, "Yes", "No")
		if err != nil {
			return location.Resolved{}, false, err
		}
		if !ok {
			seed = res.Name
			continue
		}
		if typed != "" {
			res.Name = typed
		}
		return res, true, nil
	}
}
