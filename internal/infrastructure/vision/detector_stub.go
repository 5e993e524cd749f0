//go:build !gocv
// +build !gocv

package vision

import (
	"context"

	"dice-counter/internal/domain/entity"
	"dice-counter/internal/domain/port"
)

type BlobDetector struct {
	MedianBlurKernelSize int
	MinInertiaRatio      float64
}

// NewBlobDetector создаёт детектор-заглушку (без OpenCV).
func NewBlobDetector(kernel int, minInertia float64) *BlobDetector {
	if kernel < 1 || kernel%2 == 0 {
		kernel = DefaultMedianBlurKernelSize
	}
	if minInertia <= 0 {
		minInertia = DefaultMinInertiaRatio
	}
	return &BlobDetector{
		MedianBlurKernelSize: kernel,
		MinInertiaRatio:      minInertia,
	}
}

// Detect возвращает ошибку, если сборка без тега gocv.
func (d *BlobDetector) Detect(ctx context.Context, imageData []byte) ([]entity.Blob, error) {
	_ = ctx
	_ = imageData
	return nil, ErrGoCVDisabled
}

var _ port.BlobDetector = (*BlobDetector)(nil)
