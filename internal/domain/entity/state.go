package entity

import "strconv"

// DetectionState состояние распознавания в текущей сессии
type DetectionState string

const (
	StateUnstable  DetectionState = "unstable"  // кубики ещё катятся
	StateStable    DetectionState = "stable"    // значение устоялось и уже объявлено
	StateAnnounced DetectionState = "announced" // кадр, на котором значение объявлено
)

// Settled сообщает, что значение устоялось
func (s DetectionState) Settled() bool {
	return s == StateStable || s == StateAnnounced
}

// StabilityDecision — решение трекера стабильности по одному кадру
type StabilityDecision struct {
	State          DetectionState
	ShouldAnnounce bool
	Value          int // устоявшееся значение окна, 0 пока состояние нестабильно
}

// Annotation — всё, что нужно оверлею для отрисовки кадра
type Annotation struct {
	Blobs    []Blob
	Frame    DetectionFrame
	Decision StabilityDecision
}

// StatusText возвращает строку статуса для вывода поверх кадра
func (a Annotation) StatusText() string {
	if a.Decision.State.Settled() {
		return "Dice sum: " + strconv.Itoa(a.Decision.Value)
	}
	return "Loading..."
}
