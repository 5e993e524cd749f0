package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"dice-counter/internal/domain/port"
)

// DefaultPlayerCommand читает MP3 из stdin
const DefaultPlayerCommand = "mpg123 -q -"

// CommandPlayer проигрывает аудио, передавая его на stdin внешнего плеера
type CommandPlayer struct {
	name string
	args []string
}

// NewCommandPlayer разбирает командную строку плеера, например "mpg123 -q -"
func NewCommandPlayer(commandLine string) (*CommandPlayer, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, errors.New("speech: empty player command")
	}
	return &CommandPlayer{name: fields[0], args: fields[1:]}, nil
}

// Play запускает плеер и ждёт окончания воспроизведения
func (p *CommandPlayer) Play(ctx context.Context, audio []byte) error {
	cmd := exec.CommandContext(ctx, p.name, p.args...)
	cmd.Stdin = bytes.NewReader(audio)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("play audio with %s: %w (%s)", p.name, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

var _ port.Player = (*CommandPlayer)(nil)
