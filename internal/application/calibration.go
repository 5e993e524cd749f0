package app

import (
	"errors"
	"fmt"
)

// Поддерживаемый диапазон высоты камеры над столом, см
const (
	MinCameraDistanceCm     = 30.0
	MaxCameraDistanceCm     = 40.0
	DefaultCameraDistanceCm = 40.0
)

// ErrDistanceOutOfRange возвращается политикой RangeReject
var ErrDistanceOutOfRange = errors.New("camera distance out of range")

// RangePolicy определяет, что делать с расстоянием вне диапазона 30-40 см
type RangePolicy string

const (
	RangeExtrapolate RangePolicy = "extrapolate" // линейная экстраполяция
	RangeClamp       RangePolicy = "clamp"       // прижать к границе диапазона
	RangeReject      RangePolicy = "reject"      // вернуть ErrDistanceOutOfRange
)

// Radius переводит расстояние до стола в радиус кластеризации:
// 70 px на 30 см, 50 px на 40 см. Диапазон не проверяется.
func Radius(distanceCm float64) float64 {
	return 70 - (distanceCm-30)*2
}

// CalibrationMapper применяет политику диапазона перед Radius
type CalibrationMapper struct {
	policy RangePolicy
}

// NewCalibrationMapper создаёт маппер; пустая политика означает экстраполяцию.
func NewCalibrationMapper(policy RangePolicy) (*CalibrationMapper, error) {
	switch policy {
	case "":
		policy = RangeExtrapolate
	case RangeExtrapolate, RangeClamp, RangeReject:
	default:
		return nil, fmt.Errorf("unknown range policy %q", policy)
	}
	return &CalibrationMapper{policy: policy}, nil
}

// Map возвращает радиус кластеризации для расстояния
func (m *CalibrationMapper) Map(distanceCm float64) (float64, error) {
	inRange := distanceCm >= MinCameraDistanceCm && distanceCm <= MaxCameraDistanceCm
	if inRange {
		return Radius(distanceCm), nil
	}

	switch m.policy {
	case RangeClamp:
		return Radius(min(max(distanceCm, MinCameraDistanceCm), MaxCameraDistanceCm)), nil
	case RangeReject:
		return 0, fmt.Errorf("%w: %.1f cm (supported %.0f-%.0f cm)",
			ErrDistanceOutOfRange, distanceCm, MinCameraDistanceCm, MaxCameraDistanceCm)
	default:
		return Radius(distanceCm), nil
	}
}
