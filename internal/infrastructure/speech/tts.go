package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dice-counter/internal/domain/port"
)

// DefaultEndpoint — тот же сервис, что использует gTTS
const DefaultEndpoint = "https://translate.google.com/translate_tts"

var (
	// ErrEmptyText возвращается при попытке синтезировать пустую строку
	ErrEmptyText = errors.New("speech: empty text")

	// ErrEmptyAudio возвращается, если сервис ответил пустым телом
	ErrEmptyAudio = errors.New("speech: empty audio response")
)

// StatusError — неуспешный HTTP-ответ сервиса синтеза
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("speech: tts status %d: %s", e.StatusCode, e.Body)
}

// GoogleTTS синтезирует MP3 через HTTP-эндпоинт translate_tts
type GoogleTTS struct {
	endpoint string
	lang     string
	client   *http.Client
}

// NewGoogleTTS создаёт клиент синтеза; пустые параметры заменяются значениями по умолчанию
func NewGoogleTTS(endpoint, lang string, client *http.Client) *GoogleTTS {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if lang == "" {
		lang = "en"
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &GoogleTTS{endpoint: endpoint, lang: lang, client: client}
}

// Synthesize возвращает MP3 с озвученным текстом
func (g *GoogleTTS) Synthesize(ctx context.Context, text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("q", text)
	q.Set("tl", g.lang)
	q.Set("client", "tw-ob")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build tts request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read tts audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, ErrEmptyAudio
	}

	return audio, nil
}

var _ port.Synthesizer = (*GoogleTTS)(nil)
