package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/weatherbar/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	settingsPath := flag.String("settings", "", "override settings.toml path (optional)")
	configPath := flag.String("config", "", "override config.json path (optional)")
	pollSeconds := flag.Int("poll", 0, "refresh interval in seconds (optional, defaults to 300s)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{SettingsPath: *settingsPath, ConfigPath: *configPath}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "weatherbar: %v\n", err)
		return 1
	}
	return 0
}
