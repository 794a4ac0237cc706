package app

import (
	"log"
	"time"

	"github.com/ayusman/mindfultouch/internal/detect"
)

// runPipeline is the main detection loop that processes frames from the camera.
// It manages the state transitions between idle and active modes based on
// motion detection.
//
// Pipeline logic:
// 1. Start in idle mode (IdleFPS=5)
// 2. On motion detected, switch to active mode (ActiveFPS=15)
// 3. Run landmark tracking and contact detection
// 4. Persist and publish any emitted events
// 5. After 2s with no motion and no contact in progress, switch back to idle
func (a *App) runPipeline(stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			// Skip processing if detection is disabled
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)
			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			}

			if !activeMode {
				frame.Close()
				continue
			}

			now := time.Now().UnixMilli()
			landmarks, err := a.Tracker().Detect(frame, now)
			frame.Close()
			if err != nil {
				log.Printf("Error tracking landmarks: %v", err)
				continue
			}

			result := a.session.Update(landmarks)
			a.RecordEvents(result.Events)

			if a.config.Publisher != nil {
				a.config.Publisher.Publish(liveSnapshot{Kind: "snapshot", Snapshot: result.Snapshot})
			}

			// A resting hand produces no motion, so stay active while any
			// region still has a contact in progress.
			if !motionDetected && time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
				if !contactInProgress(result.Snapshot) {
					activeMode = false
					a.camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}
		}
	}
}

// contactInProgress reports whether any region is past the idle state.
func contactInProgress(snapshot detect.Snapshot) bool {
	for _, region := range snapshot.Regions {
		if region.State != detect.StateIdle {
			return true
		}
	}
	return false
}
