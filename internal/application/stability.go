package app

import "dice-counter/internal/domain/entity"

// DefaultWindowCapacity — сколько кадров подряд сумма должна не меняться
const DefaultWindowCapacity = 60

// StabilityTracker решает, когда сумма на кубиках устоялась.
// Объявление срабатывает по переднему фронту: один раз, когда окно впервые
// заполняется одинаковыми значениями; любое изменение снова взводит триггер.
// Не потокобезопасен.
type StabilityTracker struct {
	capacity  int
	window    []int
	announced bool
	state     entity.DetectionState
}

// NewStabilityTracker создаёт трекер с окном заданной ёмкости
func NewStabilityTracker(capacity int) *StabilityTracker {
	if capacity < 1 {
		capacity = DefaultWindowCapacity
	}
	return &StabilityTracker{
		capacity: capacity,
		window:   make([]int, 0, capacity),
		state:    entity.StateUnstable,
	}
}

// Observe добавляет сумму очередного кадра и возвращает решение
func (t *StabilityTracker) Observe(total int) entity.StabilityDecision {
	if len(t.window) == t.capacity {
		copy(t.window, t.window[1:])
		t.window[len(t.window)-1] = total
	} else {
		t.window = append(t.window, total)
	}

	if !t.allEqual() {
		t.state = entity.StateUnstable
		t.announced = false
		return entity.StabilityDecision{State: t.state}
	}

	value := t.window[0]
	if !t.announced {
		t.announced = true
		t.state = entity.StateAnnounced
		return entity.StabilityDecision{State: t.state, ShouldAnnounce: true, Value: value}
	}

	t.state = entity.StateStable
	return entity.StabilityDecision{State: t.state, Value: value}
}

func (t *StabilityTracker) allEqual() bool {
	if len(t.window) < t.capacity {
		return false
	}
	for _, v := range t.window[1:] {
		if v != t.window[0] {
			return false
		}
	}
	return true
}

// State возвращает состояние после последнего Observe
func (t *StabilityTracker) State() entity.DetectionState {
	return t.state
}

// Len возвращает текущую длину окна
func (t *StabilityTracker) Len() int {
	return len(t.window)
}

// Capacity возвращает ёмкость окна
func (t *StabilityTracker) Capacity() int {
	return t.capacity
}

// Reset очищает окно и взводит триггер объявления
func (t *StabilityTracker) Reset() {
	t.window = t.window[:0]
	t.announced = false
	t.state = entity.StateUnstable
}
