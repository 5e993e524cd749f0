package port

import "context"

// Announcer интерфейс объявления итогового значения броска
type Announcer interface {
	// Announce сообщает результат; может блокироваться на время воспроизведения
	Announce(ctx context.Context, value int) error
}
