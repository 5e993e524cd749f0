//go:build gocv
// +build gocv

package vision

import (
	"context"
	"fmt"

	"gocv.io/x/gocv"

	"dice-counter/internal/logger"
)

// Camera читает кадры с веб-камеры, ищет точки прямо на gocv.Mat
// и передаёт их обработчику по одному кадру.
type Camera struct {
	cfg      CameraConfig
	detector *BlobDetector
	overlay  *Overlay
}

// NewCamera создаёт захват кадров
func NewCamera(cfg CameraConfig, detector *BlobDetector, overlay *Overlay) *Camera {
	return &Camera{cfg: cfg.withDefaults(), detector: detector, overlay: overlay}
}

// Run крутит цикл захвата до отмены ctx, нажатия q в окне
// или MaxReadFailures неудачных чтений подряд.
func (c *Camera) Run(ctx context.Context, handle BlobFunc) error {
	log := logger.For("camera")

	webcam, err := gocv.VideoCaptureDevice(c.cfg.DeviceID)
	if err != nil {
		return fmt.Errorf("open camera %d: %w", c.cfg.DeviceID, err)
	}
	defer webcam.Close()

	var window *gocv.Window
	if c.cfg.ShowWindow {
		window = gocv.NewWindow(c.cfg.WindowName)
		defer window.Close()
	}

	frame := gocv.NewMat()
	defer frame.Close()

	failures := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		if ok := webcam.Read(&frame); !ok || frame.Empty() {
			failures++
			log.Warn().Int("failures", failures).Msg("error reading frame from the camera")
			if failures >= c.cfg.MaxReadFailures {
				return fmt.Errorf("%w: %d consecutive failures", ErrCameraReadFailed, failures)
			}
			continue
		}
		failures = 0

		blobs, err := c.detector.DetectMat(frame)
		if err != nil {
			log.Warn().Err(err).Msg("detect blobs")
			continue
		}
		annotation := handle(blobs)

		if window == nil {
			continue
		}
		c.overlay.Draw(&frame, annotation)
		window.IMShow(frame)
		if window.WaitKey(1)&0xFF == 'q' {
			return nil
		}
	}
}
