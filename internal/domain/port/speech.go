package port

import "context"

// Synthesizer интерфейс синтеза речи
type Synthesizer interface {
	// Synthesize превращает текст в аудио (MP3)
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Player интерфейс воспроизведения аудио
type Player interface {
	// Play проигрывает аудио и возвращается после окончания воспроизведения
	Play(ctx context.Context, audio []byte) error
}
