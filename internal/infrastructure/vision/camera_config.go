package vision

import (
	"errors"

	"dice-counter/internal/domain/entity"
)

// ErrCameraReadFailed возвращается после слишком многих неудачных чтений подряд
var ErrCameraReadFailed = errors.New("camera read failed")

// BlobFunc получает точки одного кадра и возвращает разметку для окна
type BlobFunc func(blobs []entity.Blob) entity.Annotation

// CameraConfig настройки захвата кадров
type CameraConfig struct {
	DeviceID        int
	MaxReadFailures int
	ShowWindow      bool
	WindowName      string
}

func (c CameraConfig) withDefaults() CameraConfig {
	if c.MaxReadFailures < 1 {
		c.MaxReadFailures = 10
	}
	if c.WindowName == "" {
		c.WindowName = "frame"
	}
	return c
}
