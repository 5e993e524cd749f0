package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"dice-counter/config"
	"dice-counter/internal/api/telegram"
	"dice-counter/internal/api/web"
	app "dice-counter/internal/application"
	"dice-counter/internal/container"
	"dice-counter/internal/domain/entity"
	"dice-counter/internal/infrastructure/speech"
	"dice-counter/internal/infrastructure/storage"
	"dice-counter/internal/infrastructure/vision"
	"dice-counter/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log := logger.For("main")

	// Создаём хранилище подписчиков
	subscribers := storage.NewMemorySubscriberRepository()

	detector := vision.NewBlobDetector(cfg.MedianBlurKernelSize, cfg.MinInertiaRatio)
	overlay := vision.NewOverlay()

	// Собираем сервисы приложения
	appContainer, err := container.New(cfg, subscribers, detector, overlay)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build container")
	}

	if cfg.SpeechEnabled {
		player, err := speech.NewCommandPlayer(cfg.AudioPlayer)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create audio player")
		}
		tts := speech.NewGoogleTTS(cfg.SpeechEndpoint, cfg.SpeechLang, nil)
		appContainer.Dispatcher.Register(speech.NewAnnouncer(tts, player))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return appContainer.Dispatcher.Run(ctx)
	})

	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, subscribers, appContainer.DiceService)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create bot")
		}
		appContainer.Dispatcher.Register(bot)
		g.Go(func() error {
			return bot.Run(ctx)
		})
	}

	if cfg.ServeAddr != "" {
		server := web.NewServer(cfg.ServeAddr, appContainer.DiceService)
		g.Go(func() error {
			return server.Run(ctx)
		})
	}

	if cfg.CameraEnabled {
		camera := vision.NewCamera(vision.CameraConfig{
			DeviceID:        cfg.CameraDeviceID,
			MaxReadFailures: cfg.CameraMaxReadFailures,
			ShowWindow:      cfg.ShowWindow,
		}, detector, overlay)
		handle := cameraHandler(appContainer.DiceService)
		standalone := cfg.TelegramToken == "" && cfg.ServeAddr == ""
		g.Go(func() error {
			return runCamera(ctx, func(ctx context.Context) error {
				return camera.Run(ctx, handle)
			}, stop, standalone)
		})
	}

	log.Info().
		Str("session_id", appContainer.Session.ID()).
		Float64("distance_cm", cfg.CameraDistanceCm).
		Int("window", cfg.StabilityWindowCapacity).
		Msg("dice counter is running")

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("stopped with error")
	}
	appContainer.Dispatcher.Close()
}

// cameraHandler прогоняет точки кадра камеры через основную сессию
func cameraHandler(dice *app.DiceService) vision.BlobFunc {
	return func(blobs []entity.Blob) entity.Annotation {
		return dice.ProcessBlobs(blobs).Annotation(blobs)
	}
}

// runCamera крутит захват кадров. Выход из окна камеры завершает весь процесс.
// Без OpenCV камера недоступна: остальные транспорты продолжают работу,
// а если их нет, процесс завершается.
func runCamera(ctx context.Context, run func(context.Context) error, stop context.CancelFunc, standalone bool) error {
	err := run(ctx)
	if errors.Is(err, vision.ErrGoCVDisabled) {
		logger.For("main").Warn().Err(err).Msg("camera capture unavailable, build with -tags gocv")
		if standalone {
			stop()
		}
		return nil
	}

	stop()
	return err
}
