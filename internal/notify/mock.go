package notify

import (
	"context"
	"sync"
)

// Recorded is a single notification captured by a Recorder.
type Recorded struct {
	Title   string
	Message string
}

// Recorder is a Notifier that captures notifications for testing.
type Recorder struct {
	mu       sync.Mutex
	recorded []Recorded
	err      error
}

// NewRecorder creates a Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// SetError makes subsequent Notify calls return err.
func (r *Recorder) SetError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Notify records the notification.
func (r *Recorder) Notify(ctx context.Context, title, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.recorded = append(r.recorded, Recorded{Title: title, Message: message})
	return nil
}

// Recorded returns all notifications captured so far.
func (r *Recorder) Recorded() []Recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Recorded, len(r.recorded))
	copy(out, r.recorded)
	return out
}
