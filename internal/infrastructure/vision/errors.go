package vision

import "errors"

// ErrGoCVDisabled возвращается заглушками, если сборка без тега gocv
var ErrGoCVDisabled = errors.New("gocv build tag is not enabled")

// Значения по умолчанию для детектора пятен
const (
	DefaultMedianBlurKernelSize = 7
	DefaultMinInertiaRatio      = 0.6
)
