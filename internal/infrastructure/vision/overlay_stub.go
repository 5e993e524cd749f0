//go:build !gocv
// +build !gocv

package vision

import (
	"dice-counter/internal/domain/entity"
	"dice-counter/internal/domain/port"
)

type Overlay struct{}

// NewOverlay создаёт оверлей-заглушку (без OpenCV).
func NewOverlay() *Overlay {
	return &Overlay{}
}

// Render возвращает ошибку, если сборка без тега gocv.
func (o *Overlay) Render(imageData []byte, annotation entity.Annotation) ([]byte, error) {
	_ = imageData
	_ = annotation
	return nil, ErrGoCVDisabled
}

var _ port.Overlay = (*Overlay)(nil)
