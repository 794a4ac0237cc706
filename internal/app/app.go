// Package app wires the capture, tracking and detection pipeline together.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/mindfultouch/internal/capture"
	"github.com/ayusman/mindfultouch/internal/detect"
	"github.com/ayusman/mindfultouch/internal/notify"
	"github.com/ayusman/mindfultouch/internal/store"
	"github.com/ayusman/mindfultouch/internal/tracker"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active detection.
	ActiveFPS = 15
	// IdleTimeoutMs is the time in milliseconds to wait before switching back to idle mode.
	IdleTimeoutMs = 2000
)

// settingsKeyConfig is the settings table key for the persisted detection config.
const settingsKeyConfig = "detect_config"

// Publisher receives live events and snapshots for connected UI clients.
type Publisher interface {
	Publish(v any)
}

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	Notifier     notify.Notifier
	Notify       notify.Config
	Detect       detect.Config
	Publisher    Publisher
	CameraID     int
	MotionThresh float64
}

// App is the main application that orchestrates contact detection and
// alert delivery.
type App struct {
	config    Config
	camera    capture.Camera
	motion    *capture.MotionDetector
	tracker   tracker.Tracker
	session   *detect.Session
	notifier  notify.Notifier
	enabled   bool
	mu        sync.RWMutex
	stopCh    chan struct{}
	doneCh    chan struct{}
	lastEvent *detect.Event
}

// New creates a new App instance with the given configuration.
func New(config Config) (*App, error) {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	session, err := detect.NewSession(config.Detect)
	if err != nil {
		return nil, err
	}

	a := &App{
		config:  config,
		camera:  capture.NewCamera(config.CameraID),
		motion:  capture.NewMotionDetector(motionThreshold),
		session: session,
		enabled: false,
		stopCh:  nil,
	}

	// Try MediaPipe first, fall back to mock tracker
	if mp, err := tracker.NewMediaPipeTracker(tracker.DefaultConfig()); err == nil {
		a.tracker = mp
		log.Println("Using MediaPipe landmark tracking")
	} else {
		log.Printf("MediaPipe not available (%v), using mock tracker", err)
		a.tracker = tracker.NewMockTracker()
	}

	a.notifier = config.Notifier
	if a.notifier == nil {
		if desktop, err := notify.NewDesktop(config.Notify.DurationSeconds); err == nil {
			a.notifier = desktop
		} else {
			log.Printf("Desktop notifications not available: %v", err)
			a.notifier = notify.Nop{}
		}
	}

	return a, nil
}

// SetEnabled enables or disables contact detection.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether contact detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetTracker sets the landmark tracker implementation to use.
func (a *App) SetTracker(t tracker.Tracker) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tracker = t
}

// SetCamera swaps the camera implementation. Only valid before Start.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// Config returns the active detection configuration.
func (a *App) Config() detect.Config {
	return a.session.Config()
}

// ApplyConfig validates and applies a new detection configuration, then
// persists it to the settings table.
func (a *App) ApplyConfig(cfg detect.Config) error {
	if err := a.session.ApplyConfig(cfg); err != nil {
		return err
	}

	if a.config.Store == nil {
		return nil
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return a.config.Store.Settings().Set(settingsKeyConfig, string(raw))
}

// LoadConfig restores the persisted detection configuration from the
// settings table, if one exists.
func (a *App) LoadConfig() error {
	if a.config.Store == nil {
		return nil
	}

	raw, err := a.config.Store.Settings().Get(settingsKeyConfig)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}

	var cfg detect.Config
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return err
	}
	return a.session.ApplyConfig(cfg)
}

// LastEvent returns the most recent contact event, or nil if none has
// occurred since the app started.
func (a *App) LastEvent() *detect.Event {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.lastEvent == nil {
		return nil
	}
	e := *a.lastEvent
	return &e
}

// Start begins the detection pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(IdleFPS)

	if a.config.Store != nil {
		if err := a.config.Store.Sessions().Start(a.session.ID()); err != nil {
			log.Printf("Error recording session start: %v", err)
		}
	}

	a.stopCh = make(chan struct{})
	a.doneCh = make(chan struct{})
	go a.runPipeline(a.stopCh, a.doneCh)

	log.Println("Detection pipeline started")
	return nil
}

// Stop halts the detection pipeline and releases resources. It waits for
// the pipeline goroutine to exit before closing the camera, so a tick
// mid-frame can never race the release.
func (a *App) Stop() {
	a.mu.Lock()
	stopCh, doneCh := a.stopCh, a.doneCh
	a.stopCh, a.doneCh = nil, nil
	a.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
		<-doneCh
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.config.Store != nil {
		if err := a.config.Store.Sessions().Stop(a.session.ID()); err != nil {
			log.Printf("Error recording session stop: %v", err)
		}
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.tracker != nil {
		if err := a.tracker.Close(); err != nil {
			log.Printf("Error closing tracker: %v", err)
		}
	}

	log.Println("Detection pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// Session returns the detection session.
func (a *App) Session() *detect.Session {
	return a.session
}

// Tracker returns the landmark tracker.
func (a *App) Tracker() tracker.Tracker {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.tracker
}

// RecordEvents persists the tick's events, publishes them to live
// clients, and delivers alert notifications.
func (a *App) RecordEvents(events []detect.Event) {
	for i := range events {
		event := events[i]

		a.mu.Lock()
		a.lastEvent = &event
		a.mu.Unlock()

		if a.config.Store != nil {
			err := a.config.Store.Events().Insert(&store.Event{
				ID:             uuid.New().String(),
				SessionID:      a.session.ID(),
				Type:           store.EventType(event.Type),
				Region:         event.Region.String(),
				TimestampMs:    event.TimestampMs,
				HeldDurationMs: event.HeldDurationMs,
			})
			if err != nil {
				log.Printf("Error storing event: %v", err)
			}
		}

		if a.config.Publisher != nil {
			a.config.Publisher.Publish(liveEvent{Kind: "event", Event: event})
		}

		if event.Type == detect.EventAlert && a.config.Notify.Enabled {
			a.deliverAlert(event)
		}
	}
}

// deliverAlert shows a desktop notification for an alert event.
func (a *App) deliverAlert(event detect.Event) {
	held := time.Duration(event.HeldDurationMs) * time.Millisecond
	log.Printf("Alert: %s contact held for %s", event.Region, held)

	if err := a.notifier.Notify(context.Background(), a.config.Notify.Title, a.config.Notify.Message); err != nil {
		log.Printf("Error delivering notification: %v", err)
	}
}

// liveEvent is the WebSocket payload for a contact event.
type liveEvent struct {
	Kind  string       `json:"kind"`
	Event detect.Event `json:"event"`
}

// liveSnapshot is the WebSocket payload for a per-tick detection snapshot.
type liveSnapshot struct {
	Kind     string          `json:"kind"`
	Snapshot detect.Snapshot `json:"snapshot"`
}
