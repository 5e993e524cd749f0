package telegram

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"

	app "dice-counter/internal/application"
	"dice-counter/internal/domain/entity"
	"dice-counter/internal/infrastructure/storage"
	"dice-counter/internal/logger"
)

func TestParseDistance(t *testing.T) {
	tests := map[string]float64{
		"35":      35,
		" 32.5 ":  32.5,
		"31,5":    31.5,
		"40 cm":   40,
		"38см":    38,
		"30 см  ": 30,
	}
	for in, want := range tests {
		got, err := parseDistance(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "   ", "high"} {
		_, err := parseDistance(in)
		require.Error(t, err, in)
	}
}

func TestFormatResult(t *testing.T) {
	require.Equal(t, "🎲 12 rolled", formatResult(12))
	require.Equal(t, "🎲 0 rolled", formatResult(0))
}

func TestFormatStatus(t *testing.T) {
	text := formatStatus(app.Status{
		DistanceCm:     35,
		Radius:         60,
		WindowCapacity: 60,
		State:          entity.StateStable,
		TotalSum:       9,
		DiceCount:      2,
	})
	require.Contains(t, text, "35.0 см")
	require.Contains(t, text, "радиус 60 px")
	require.Contains(t, text, "stable")
	require.Contains(t, text, "сумма в кадре: 9")
}

func TestSetSubscribed_WithoutSender(t *testing.T) {
	subs := storage.NewMemorySubscriberRepository()
	b := &Bot{subscribers: subs, log: logger.For("telegram")}
	ctx := context.Background()

	// анонимный администратор группы: From пустой
	msg := &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: -100500}}
	require.NotPanics(t, func() { b.setSubscribed(ctx, msg, true) })

	active, err := subs.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, int64(-100500), active[0].ID)
	require.Equal(t, int64(-100500), active[0].ChatID)

	b.setSubscribed(ctx, &tgbotapi.Message{From: &tgbotapi.User{ID: 7}, Chat: &tgbotapi.Chat{ID: -100500}}, true)
	b.setSubscribed(ctx, msg, false)

	active, err = subs.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, int64(7), active[0].ID)
}
