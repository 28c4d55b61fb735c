package controller

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/five82/weatherbar/internal/climacell"
	"github.com/five82/weatherbar/internal/location"
	"github.com/five82/weatherbar/internal/prefs"
	"github.com/five82/weatherbar/internal/weather"
)

// ErrQuit is returned when the user chose Quit from the API key prompt.
var ErrQuit = errors.New("user quit")

// Action is a request sent to the controller goroutine.
type Action int

const (
	ActionPoll Action = iota
	ActionRefresh
	ActionToggleUnits
	ActionToggleLive
	ActionChangeLocation
	ActionAbout
)

func (a Action) String() string {
	switch a {
	case ActionPoll:
		return "poll"
	case ActionRefresh:
		return "refresh"
	case ActionToggleUnits:
		return "toggle units"
	case ActionToggleLive:
		return "toggle live location"
	case ActionChangeLocation:
		return "change location"
	case ActionAbout:
		return "about"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// ConfigStore persists the configuration record.
type ConfigStore interface {
	Read() (prefs.Record, error)
	Save(prefs.Record) error
}

// Resolver produces locations from text or from the current IP.
type Resolver interface {
	ResolveByText(ctx context.Context, query string) (location.Resolved, error)
	ResolveCurrent(ctx context.Context) (location.Resolved, error)
}

// Publisher receives the display state. *state.Store implements it.
type Publisher interface {
	SetPreferences(location string, units weather.UnitSystem, live bool)
	Update(w weather.Snapshot)
	ReplaceWeather(w weather.Snapshot)
	MarkNoConnection()
}

// Opener opens a URL in the user's browser.
type Opener interface {
	Open(url string) error
}

// Deps wires a Controller.
type Deps struct {
	Store     ConfigStore
	Resolver  Resolver
	Fetcher   climacell.Fetcher
	Prompter  Prompter
	Display   Publisher
	Opener    Opener
	SignupURL string
}

// Controller owns the configuration record, the live-location override and
// the latest weather reading. All methods must be called from one goroutine;
// Run is that goroutine.
type Controller struct {
	store     ConfigStore
	resolver  Resolver
	fetcher   climacell.Fetcher
	prompter  Prompter
	display   Publisher
	opener    Opener
	signupURL string

	record  prefs.Record
	live    *location.Resolved
	current *weather.Snapshot
}

// New builds a Controller holding the default record.
func New(deps Deps) (*Controller, error) {
	switch {
	case deps.Store == nil:
		return nil, errors.New("controller: config store is required")
	case deps.Resolver == nil:
		return nil, errors.New("controller: resolver is required")
	case deps.Fetcher == nil:
		return nil, errors.New("controller: weather fetcher is required")
	case deps.Prompter == nil:
		return nil, errors.New("controller: prompter is required")
	case deps.Display == nil:
		return nil, errors.New("controller: display is required")
	}
	return &Controller{
		store:     deps.Store,
		resolver:  deps.Resolver,
		fetcher:   deps.Fetcher,
		prompter:  deps.Prompter,
		display:   deps.Display,
		opener:    deps.Opener,
		signupURL: deps.SignupURL,
		record:    prefs.Default(),
	}, nil
}

// ChangeLocationEnabled reports whether manual location entry is active.
func (c *Controller) ChangeLocationEnabled() bool {
	return !c.record.LiveLocation
}

// Request assembles the weather request for the next fetch. In live mode the
// most recent live resolution overrides the stored coordinates.
func (c *Controller) Request() climacell.Request {
	lat, lon := c.record.Latitude, c.record.Longitude
	if c.record.LiveLocation && c.live != nil {
		lat, lon = c.live.Latitude, c.live.Longitude
	}
	return climacell.Request{
		Latitude:  lat,
		Longitude: lon,
		Units:     c.record.UnitSystem,
		APIKey:    c.record.APIKey,
	}
}

// Run performs Start and then Serve.
func (c *Controller) Run(ctx context.Context, actions <-chan Action, polls <-chan struct{}) error {
	if err := c.Start(ctx); err != nil {
		return err
	}
	return c.Serve(ctx, actions, polls)
}

// Serve handles menu actions and poll ticks one at a time until ctx ends or
// the action channel closes. Each value received on polls is a silent
// refresh; a nil polls channel disables polling.
func (c *Controller) Serve(ctx context.Context, actions <-chan Action, polls <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-polls:
			if err := c.Handle(ctx, ActionPoll); err != nil {
				return err
			}
		case action, ok := <-actions:
			if !ok {
				return nil
			}
			if err := c.Handle(ctx, action); err != nil {
				return err
			}
		}
	}
}

// Handle performs one action.
func (c *Controller) Handle(ctx context.Context, action Action) error {
	switch action {
	case ActionPoll:
		return c.Refresh(ctx, true)
	case ActionRefresh:
		return c.Refresh(ctx, false)
	case ActionToggleUnits:
		c.ToggleUnits()
		return nil
	case ActionToggleLive:
		return c.ToggleLiveLocation(ctx)
	case ActionChangeLocation:
		return c.ChangeLocation(ctx)
	case ActionAbout:
		return c.alert(ctx, "About", aboutMessage)
	default:
		log.Printf("ignoring unknown action %v", action)
		return nil
	}
}

// ToggleUnits flips the unit system and converts the displayed reading in
// place. No fetch is made.
func (c *Controller) ToggleUnits() {
	from := c.record.UnitSystem
	to := from.Toggle()
	c.record.UnitSystem = to

	if c.current != nil {
		converted := c.current.Convert(from, to)
		c.current = &converted
		c.display.ReplaceWeather(converted)
	}
	log.Printf("unit system changed from %s to %s", from, to)
	c.persist()
}

// ToggleLiveLocation flips live mode, persists and refreshes. Turning it off
// drops the live override so the stored coordinates are used again.
func (c *Controller) ToggleLiveLocation(ctx context.Context) error {
	c.record.LiveLocation = !c.record.LiveLocation
	if !c.record.LiveLocation {
		c.live = nil
	}
	log.Printf("live location set to %t", c.record.LiveLocation)
	c.persist()
	return c.Refresh(ctx, false)
}

// persist saves the record and republishes the menu state. Save failures
// are logged; the in-memory record stays authoritative.
func (c *Controller) persist() {
	c.display.SetPreferences(c.record.Location, c.record.UnitSystem, c.record.LiveLocation)
	if err := c.store.Save(c.record); err != nil {
		log.Printf("save config: %v", err)
	}
}

func (c *Controller) openLink(url string) {
	if c.opener == nil || url == "" {
		return
	}
	if err := c.opener.Open(url); err != nil {
		log.Printf("open %s: %v", url, err)
	}
}
