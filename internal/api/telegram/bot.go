package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "dice-counter/internal/application"
	"dice-counter/internal/domain/port"
	"dice-counter/internal/logger"
)

const (
	msgStart = `👋 Привет! Я считаю точки на кубиках под камерой.

🎲 Подпишитесь, и я пришлю итог каждого броска, как только кубики остановятся.
📸 Или отправьте фото кубиков — посчитаю сразу.

📋 Команды:
/subscribe — получать результаты бросков
/unsubscribe — отписаться
/calibrate <см> — высота камеры над столом (30–40)
/status — текущее состояние
/help — справка`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Закрепите камеру над белым столом на высоте 30–40 см
2️⃣ Укажите высоту командой /calibrate 35
3️⃣ Подпишитесь командой /subscribe и бросайте кубики

💡 Рекомендации:
• Хорошее равномерное освещение
• Кубики не должны касаться друг друга`

	msgSubscribed     = "✅ Вы подписаны на результаты бросков."
	msgUnsubscribed   = "❌ Вы отписались от результатов бросков."
	msgUnknownCommand = "❓ Неизвестная команда. Используйте /help для справки."
	msgSendPhoto      = "📸 Отправьте фото кубиков или команду /help."
	msgCalibrateUsage = "Использование: /calibrate <см>, например /calibrate 35"
	msgProcessing     = "⏳ Считаю точки..."
	msgPhotoError     = "⚠️ Не удалось обработать изображение. Попробуйте сделать другое фото."
)

// Bot представляет Telegram-бота
type Bot struct {
	api         *tgbotapi.BotAPI
	subscribers port.SubscriberRepository
	dice        *app.DiceService
	log         *logger.Logger
}

// NewBot создаёт нового бота
func NewBot(token string, subscribers port.SubscriberRepository, dice *app.DiceService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log := logger.For("telegram")
	log.Info().Str("account", api.Self.UserName).Msg("authorized")

	return &Bot{
		api:         api,
		subscribers: subscribers,
		dice:        dice,
		log:         log,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.Chat == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// Announce рассылает результат всем подписанным чатам
func (b *Bot) Announce(ctx context.Context, value int) error {
	subs, err := b.subscribers.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list subscribers: %w", err)
	}

	for _, sub := range subs {
		b.sendMessage(sub.ChatID, formatResult(value))
	}
	return nil
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "subscribe":
		b.setSubscribed(ctx, msg, true)
		b.sendMessage(msg.Chat.ID, msgSubscribed)

	case "unsubscribe":
		b.setSubscribed(ctx, msg, false)
		b.sendMessage(msg.Chat.ID, msgUnsubscribed)

	case "calibrate":
		distance, err := parseDistance(msg.CommandArguments())
		if err != nil {
			b.sendMessage(msg.Chat.ID, msgCalibrateUsage)
			return
		}
		if err := b.dice.Recalibrate(distance); err != nil {
			b.sendMessage(msg.Chat.ID, "⚠️ "+err.Error())
			return
		}
		b.sendMessage(msg.Chat.ID, formatStatus(b.dice.Status()))

	case "status":
		b.sendMessage(msg.Chat.ID, formatStatus(b.dice.Status()))

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

func (b *Bot) setSubscribed(ctx context.Context, msg *tgbotapi.Message, active bool) {
	userID := subscriberID(msg)
	sub, err := b.subscribers.Get(ctx, userID, msg.Chat.ID)
	if err != nil {
		b.log.Error().Err(err).Int64("user_id", userID).Msg("get subscriber")
		return
	}
	sub.SetActive(active)
	if err := b.subscribers.Save(ctx, sub); err != nil {
		b.log.Error().Err(err).Int64("user_id", userID).Msg("save subscriber")
	}
}

// subscriberID возвращает ключ подписчика. У сообщений анонимных
// администраторов и каналов нет From, тогда подписывается сам чат.
func subscriberID(msg *tgbotapi.Message) int64 {
	if msg.From != nil {
		return msg.From.ID
	}
	return msg.Chat.ID
}

// handlePhoto считает точки на присланном фото
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	b.sendMessage(msg.Chat.ID, msgProcessing)

	// Получаем файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.downloadFile(photo.FileID)
	if err != nil {
		b.log.Error().Err(err).Msg("download photo")
		b.sendMessage(msg.Chat.ID, msgPhotoError)
		return
	}

	out, err := b.dice.CountImage(ctx, imageData)
	if err != nil {
		b.log.Error().Err(err).Msg("count photo")
		b.sendMessage(msg.Chat.ID, msgPhotoError)
		return
	}

	caption := formatCount(out.Result.Frame.TotalSum, out.Result.Frame.DiceCount())
	if len(out.Annotated) == 0 {
		b.sendMessage(msg.Chat.ID, caption)
		return
	}

	reply := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileBytes{Name: "dice.png", Bytes: out.Annotated})
	reply.Caption = caption
	if _, err := b.api.Send(reply); err != nil {
		b.log.Error().Err(err).Msg("send photo")
	}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("chat_id", chatID).Msg("send message")
	}
}

func parseDistance(args string) (float64, error) {
	args = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(args), "см"))
	args = strings.TrimSpace(strings.TrimSuffix(args, "cm"))
	if args == "" {
		return 0, fmt.Errorf("missing distance")
	}
	return strconv.ParseFloat(strings.ReplaceAll(args, ",", "."), 64)
}

func formatResult(value int) string {
	return fmt.Sprintf("🎲 %d rolled", value)
}

func formatCount(sum, dice int) string {
	return fmt.Sprintf("🎲 Сумма: %d (кубиков: %d)", sum, dice)
}

func formatStatus(s app.Status) string {
	return fmt.Sprintf("📐 Высота камеры: %.1f см (радиус %.0f px)\n📊 Состояние: %s, сумма в кадре: %d, кубиков: %d\n🪟 Окно стабильности: %d кадров",
		s.DistanceCm, s.Radius, s.State, s.TotalSum, s.DiceCount, s.WindowCapacity)
}

var _ port.Announcer = (*Bot)(nil)
