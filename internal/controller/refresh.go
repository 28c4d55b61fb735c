package controller

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/five82/weatherbar/internal/fault"
	"github.com/five82/weatherbar/internal/prefs"
)

// Refresh fetches current conditions. A silent refresh never opens a dialog
// for connection failures and leaves the menu showing the last reading.
func (c *Controller) Refresh(ctx context.Context, silent bool) error {
	id := uuid.NewString()[:8]

	if c.record.LiveLocation {
		res, err := c.resolver.ResolveCurrent(ctx)
		if err != nil {
			log.Printf("refresh %s: live location unavailable: %v", id, err)
		} else {
			c.live = &res
		}
	}

	for {
		req := c.Request()
		log.Printf("refresh %s: fetching %v,%v (%s, silent=%t)", id, req.Latitude, req.Longitude, req.Units, silent)

		snap, err := c.fetcher.FetchCurrent(ctx, req)
		if err == nil {
			c.current = &snap
			c.display.Update(snap)
			log.Printf("refresh %s: %s", id, snap.Title())
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		switch fault.KindOf(err) {
		case fault.InvalidKey:
			log.Printf("refresh %s: api key is not valid: %v", id, err)
			if err := c.alert(ctx, "ClimaCell API Key is not valid", "Please make sure it is correct."); err != nil {
				return err
			}
			if err := c.acquireAPIKey(ctx); err != nil {
				return err
			}

		case fault.LocationNotFound:
			log.Printf("refresh %s: no data for this location: %v", id, err)
			if err := c.alert(ctx, "Location data not found", "Please enter another location."); err != nil {
				return err
			}
			res, adopted, err := c.promptLocation(ctx, c.record.Location)
			if err != nil {
				return err
			}
			if !adopted {
				return nil
			}
			if err := c.adoptLocation(ctx, res); err != nil {
				return err
			}
			silent = false

		case fault.ConfigInvalid:
			// An unknown unit system falls back to the default and retries.
			log.Printf("refresh %s: request rejected: %v", id, err)
			if c.record.UnitSystem.Valid() {
				return nil
			}
			c.record.UnitSystem = prefs.Default().UnitSystem
			c.persist()

		default:
			log.Printf("refresh %s: weather unavailable: %v", id, err)
			if silent {
				return nil
			}
			c.display.MarkNoConnection()
			return c.alertConnectivity(ctx)
		}
	}
}
