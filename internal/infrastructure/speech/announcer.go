package speech

import (
	"context"
	"fmt"

	"dice-counter/internal/domain/port"
)

// Phrase возвращает фразу, которой объявляется результат
func Phrase(value int) string {
	return fmt.Sprintf("%d rolled", value)
}

// Announcer озвучивает результат броска
type Announcer struct {
	synth  port.Synthesizer
	player port.Player
}

// NewAnnouncer создаёт голосовое объявление
func NewAnnouncer(synth port.Synthesizer, player port.Player) *Announcer {
	return &Announcer{synth: synth, player: player}
}

// Announce синтезирует фразу и блокируется до конца воспроизведения
func (a *Announcer) Announce(ctx context.Context, value int) error {
	audio, err := a.synth.Synthesize(ctx, Phrase(value))
	if err != nil {
		return fmt.Errorf("synthesize: %w", err)
	}
	if err := a.player.Play(ctx, audio); err != nil {
		return fmt.Errorf("play: %w", err)
	}
	return nil
}

var _ port.Announcer = (*Announcer)(nil)
