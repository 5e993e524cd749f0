//go:build !gocv
// +build !gocv

package vision

import "context"

type Camera struct {
	cfg CameraConfig
}

// NewCamera создаёт захват-заглушку (без OpenCV).
func NewCamera(cfg CameraConfig, detector *BlobDetector, overlay *Overlay) *Camera {
	return &Camera{cfg: cfg.withDefaults()}
}

// Run возвращает ошибку, если сборка без тега gocv.
func (c *Camera) Run(ctx context.Context, handle BlobFunc) error {
	_ = ctx
	_ = handle
	return ErrGoCVDisabled
}
