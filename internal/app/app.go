package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/weatherbar/internal/climacell"
	"github.com/five82/weatherbar/internal/config"
	"github.com/five82/weatherbar/internal/controller"
	"github.com/five82/weatherbar/internal/geocode"
	"github.com/five82/weatherbar/internal/ipapi"
	"github.com/five82/weatherbar/internal/location"
	"github.com/five82/weatherbar/internal/prefs"
	"github.com/five82/weatherbar/internal/state"
	"github.com/five82/weatherbar/internal/ui"
)

// Options configure the WeatherBar application.
type Options struct {
	SettingsPath string // empty uses <UserConfigDir>/WeatherBar/settings.toml
	ConfigPath   string // overrides config_path from settings
	PollEvery    int    // seconds; zero uses the settings value
}

// Run boots WeatherBar and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	settings, err := config.Load(opts.SettingsPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if opts.ConfigPath != "" {
		settings.ConfigPath = opts.ConfigPath
	}
	interval := settings.PollInterval()
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	logFile, err := setupLogging(settings.LogFile)
	if err != nil {
		return err
	}
	defer func() {
		log.SetOutput(os.Stderr)
		_ = logFile.Close()
	}()
	log.Printf("starting: config %s, poll every %s, geocoder %s", settings.ConfigPath, interval, settings.Geocoder)

	ctrl, display, prompter, err := build(settings)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	actions := make(chan controller.Action, 8)
	model := ui.New(ui.Options{
		Context:   ctx,
		Store:     display,
		Actions:   actions,
		LogPath:   settings.LogFile,
		ThemeName: settings.Theme,
	})
	program := ui.NewProgram(ctx, model)
	prompter.Attach(program)

	polls := make(chan struct{}, 1)
	ctrlDone := make(chan error, 1)
	go func() {
		defer program.Quit()
		ctrlDone <- serve(ctx, ctrl, actions, polls, interval)
	}()

	_, uiErr := program.Run()
	cancel()
	ctrlErr := <-ctrlDone

	if err := cleanExit(ctrlErr); err != nil {
		log.Printf("controller stopped: %v", err)
		return err
	}
	if err := cleanExit(uiErr); err != nil {
		log.Printf("ui stopped: %v", err)
		return fmt.Errorf("run ui: %w", err)
	}
	log.Printf("stopped")
	return nil
}

// serve runs the controller: startup first, then the poll schedule and the
// action loop.
func serve(ctx context.Context, ctrl *controller.Controller, actions <-chan controller.Action, polls chan struct{}, interval time.Duration) error {
	if err := ctrl.Start(ctx); err != nil {
		return err
	}
	poller, err := StartPoller(ctx, polls, interval)
	if err != nil {
		return fmt.Errorf("start poller: %w", err)
	}
	defer poller.Stop()
	return ctrl.Serve(ctx, actions, polls)
}

// build wires the controller and its collaborators from settings.
func build(settings config.Settings) (*controller.Controller, *state.Store, *ui.Prompter, error) {
	store, err := prefs.NewStore(settings.ConfigPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init config store: %w", err)
	}

	httpClient := &http.Client{Timeout: settings.RequestTimeout()}

	weatherClient, err := climacell.NewClient(settings.WeatherURL,
		climacell.WithHTTPClient(httpClient),
		climacell.WithUserAgent(settings.UserAgent),
	)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init weather client: %w", err)
	}

	geo, err := geocode.New(geocode.Options{
		Backend:      settings.Geocoder,
		NominatimURL: settings.NominatimURL,
		GoogleAPIKey: settings.GoogleAPIKey,
		UserAgent:    settings.UserAgent,
		HTTPClient:   httpClient,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init geocoder: %w", err)
	}
	resolver := location.NewResolver(ipapi.NewClient(settings.IPLocationURL, settings.UserAgent, httpClient), geo)

	display := &state.Store{}
	prompter := ui.NewPrompter()

	ctrl, err := controller.New(controller.Deps{
		Store:     store,
		Resolver:  resolver,
		Fetcher:   weatherClient,
		Prompter:  prompter,
		Display:   display,
		Opener:    browserOpener{},
		SignupURL: settings.SignupURL,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return ctrl, display, prompter, nil
}

// cleanExit filters out the errors that mean the user or the OS asked us to
// stop.
func cleanExit(err error) error {
	switch {
	case err == nil,
		errors.Is(err, controller.ErrQuit),
		errors.Is(err, context.Canceled),
		errors.Is(err, tea.ErrProgramKilled),
		errors.Is(err, tea.ErrInterrupted):
		return nil
	default:
		return err
	}
}
