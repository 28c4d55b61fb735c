package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/weatherbar/internal/controller"
	"github.com/five82/weatherbar/internal/logtail"
)

func TestEnqueuePoll_KeepsOnePendingWhileBusy(t *testing.T) {
	polls := make(chan struct{}, 1)

	queued := 0
	for i := 0; i < 12; i++ {
		if enqueuePoll(context.Background(), polls) {
			queued++
		}
	}
	if queued != 1 || len(polls) != 1 {
		t.Fatalf("queued = %d, pending = %d after 12 ticks, want 1 and 1", queued, len(polls))
	}

	<-polls
	if !enqueuePoll(context.Background(), polls) {
		t.Fatalf("enqueuePoll after drain = false, want true")
	}
	<-polls

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if enqueuePoll(ctx, polls) {
		t.Fatalf("enqueuePoll after cancel = true, want false")
	}
}

func TestStartPoller_SendsPolls(t *testing.T) {
	polls := make(chan struct{}, 1)

	p, err := StartPoller(context.Background(), polls, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("StartPoller: %v", err)
	}
	defer p.Stop()

	select {
	case <-polls:
	case <-time.After(5 * time.Second):
		t.Fatalf("no poll within 5s")
	}
}

func TestCleanExit(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"quit", fmt.Errorf("startup: %w", controller.ErrQuit), nil},
		{"canceled", context.Canceled, nil},
		{"killed", tea.ErrProgramKilled, nil},
		{"other", boom, boom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanExit(tt.err); got != tt.want {
				t.Errorf("cleanExit(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestOpenCommand(t *testing.T) {
	const url = "https://developer.climacell.co/sign-up"
	tests := []struct {
		goos string
		name string
		args []string
	}{
		{"darwin", "open", []string{url}},
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", url}},
		{"linux", "xdg-open", []string{url}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args := openCommand(tt.goos, url)
			if name != tt.name || !reflect.DeepEqual(args, tt.args) {
				t.Errorf("openCommand(%q) = %q %v, want %q %v", tt.goos, name, args, tt.name, tt.args)
			}
		})
	}
}

func TestSetupLogging_WritesParseableLines(t *testing.T) {
	prevOut, prevPrefix, prevFlags := log.Writer(), log.Prefix(), log.Flags()
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetPrefix(prevPrefix)
		log.SetFlags(prevFlags)
	})

	path := filepath.Join(t.TempDir(), "nested", "weatherbar.log")
	closer, err := setupLogging(path)
	if err != nil {
		t.Fatalf("setupLogging: %v", err)
	}
	log.Printf("refresh 1a2b3c4d: fetching")
	log.SetOutput(os.Stderr)
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	lines, err := logtail.Read(path, 10)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("lines = %v, want one line", lines)
	}
	entry := logtail.Parse(lines[0])
	if entry.Time.IsZero() || entry.Message != "refresh 1a2b3c4d: fetching" {
		t.Fatalf("Parse(%q) = %#v", lines[0], entry)
	}
}
