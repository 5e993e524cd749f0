package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Политики для расстояния камеры вне диапазона 30-40 см
const (
	FallbackExtrapolate = "extrapolate"
	FallbackClamp       = "clamp"
	FallbackReject      = "reject"
)

type Config struct {
	TelegramToken string `env:"TELEGRAM_TOKEN"`
	ServeAddr     string `env:"SERVE_ADDR"`

	// Физическая калибровка и распознавание
	CameraDistanceCm         float64 `env:"CAMERA_DISTANCE_CM"          envDefault:"40"`
	ClusteringRadiusFallback string  `env:"CLUSTERING_RADIUS_FALLBACK"  envDefault:"extrapolate"`
	MedianBlurKernelSize     int     `env:"MEDIAN_BLUR_KERNEL_SIZE"     envDefault:"7"`
	MinInertiaRatio          float64 `env:"MIN_INERTIA_RATIO"           envDefault:"0.6"`
	StabilityWindowCapacity  int     `env:"STABILITY_WINDOW_CAPACITY"   envDefault:"60"`

	// Камера
	CameraDeviceID        int  `env:"CAMERA_DEVICE_ID"         envDefault:"0"`
	CameraEnabled         bool `env:"CAMERA_ENABLED"           envDefault:"true"`
	CameraMaxReadFailures int  `env:"CAMERA_MAX_READ_FAILURES" envDefault:"10"`
	ShowWindow            bool `env:"SHOW_WINDOW"              envDefault:"true"`

	// Озвучка
	SpeechEnabled     bool   `env:"SPEECH_ENABLED"      envDefault:"true"`
	SpeechLang        string `env:"SPEECH_LANG"         envDefault:"en"`
	SpeechEndpoint    string `env:"SPEECH_ENDPOINT"     envDefault:"https://translate.google.com/translate_tts"`
	AudioPlayer       string `env:"AUDIO_PLAYER"        envDefault:"mpg123 -q -"`
	AnnounceQueueSize int    `env:"ANNOUNCE_QUEUE_SIZE" envDefault:"4"`

	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет значения, которые нельзя исправить молча
func (c *Config) Validate() error {
	var errs []error
	if c.MedianBlurKernelSize < 1 || c.MedianBlurKernelSize%2 == 0 {
		errs = append(errs, fmt.Errorf("MEDIAN_BLUR_KERNEL_SIZE must be a positive odd integer, got %d", c.MedianBlurKernelSize))
	}
	if c.MinInertiaRatio <= 0 || c.MinInertiaRatio > 1 {
		errs = append(errs, fmt.Errorf("MIN_INERTIA_RATIO must be in (0, 1], got %g", c.MinInertiaRatio))
	}
	if c.StabilityWindowCapacity < 1 {
		errs = append(errs, fmt.Errorf("STABILITY_WINDOW_CAPACITY must be positive, got %d", c.StabilityWindowCapacity))
	}
	if c.AnnounceQueueSize < 1 {
		errs = append(errs, fmt.Errorf("ANNOUNCE_QUEUE_SIZE must be positive, got %d", c.AnnounceQueueSize))
	}
	switch c.ClusteringRadiusFallback {
	case FallbackExtrapolate, FallbackClamp, FallbackReject:
	default:
		errs = append(errs, fmt.Errorf("unknown CLUSTERING_RADIUS_FALLBACK %q", c.ClusteringRadiusFallback))
	}
	return errors.Join(errs...)
}
