// Package notify delivers desktop notifications for contact alerts.
package notify

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"time"
)

// Notifier delivers a desktop notification.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// Config controls notification content and timing.
type Config struct {
	Enabled         bool   `json:"enabled"`
	Title           string `json:"title"`
	Message         string `json:"message"`
	DurationSeconds int    `json:"durationSeconds"`
}

// DefaultConfig returns the default notification configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		Title:           "Mindful Moment",
		Message:         "Take a gentle pause",
		DurationSeconds: 3,
	}
}

const commandTimeout = 5 * time.Second

// Desktop shows notifications through the platform notification command,
// osascript on macOS and notify-send on Linux. The display duration only
// applies on Linux; osascript banners dismiss on the system schedule.
type Desktop struct {
	goos            string
	durationSeconds int
}

// NewDesktop creates a notifier for the current platform. Durations of
// zero or less fall back to the default.
func NewDesktop(durationSeconds int) (*Desktop, error) {
	if durationSeconds <= 0 {
		durationSeconds = DefaultConfig().DurationSeconds
	}
	switch runtime.GOOS {
	case "darwin", "linux":
		return &Desktop{goos: runtime.GOOS, durationSeconds: durationSeconds}, nil
	default:
		return nil, fmt.Errorf("no notification command for platform %s", runtime.GOOS)
	}
}

// Notify shows a desktop notification with the given title and message.
func (d *Desktop) Notify(ctx context.Context, title, message string) error {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	name, args := notifyCommand(d.goos, title, message, d.durationSeconds)
	cmd := exec.CommandContext(ctx, name, args...)

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("notification command timeout after %s", commandTimeout)
		}
		return fmt.Errorf("notification command failed: %w", err)
	}

	return nil
}

// notifyCommand builds the platform notification command line.
func notifyCommand(goos, title, message string, durationSeconds int) (string, []string) {
	switch goos {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q sound name \"Glass\"", message, title)
		return "osascript", []string{"-e", script}
	default:
		return "notify-send", []string{
			"--urgency=low",
			"--expire-time", strconv.Itoa(durationSeconds * 1000),
			"--icon=dialog-information",
			title,
			message,
		}
	}
}

// Nop is a Notifier that discards all notifications.
type Nop struct{}

// Notify implements Notifier and does nothing.
func (Nop) Notify(ctx context.Context, title, message string) error {
	return nil
}
