package speech

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGoogleTTS_Synthesize(t *testing.T) {
	var text, lang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		text = r.URL.Query().Get("q")
		lang = r.URL.Query().Get("tl")
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3fake"))
	}))
	defer srv.Close()

	tts := NewGoogleTTS(srv.URL, "de", srv.Client())
	audio, err := tts.Synthesize(context.Background(), Phrase(7))
	require.NoError(t, err)
	require.Equal(t, []byte("ID3fake"), audio)
	require.Equal(t, "7 rolled", text)
	require.Equal(t, "de", lang)
}

func TestGoogleTTS_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "empty" {
			return
		}
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	tts := NewGoogleTTS(srv.URL, "", srv.Client())
	ctx := context.Background()

	_, err := tts.Synthesize(ctx, "   ")
	require.ErrorIs(t, err, ErrEmptyText)

	_, err = tts.Synthesize(ctx, "empty")
	require.ErrorIs(t, err, ErrEmptyAudio)

	_, err = tts.Synthesize(ctx, "3 rolled")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
}

func TestNewCommandPlayer(t *testing.T) {
	_, err := NewCommandPlayer("  ")
	require.Error(t, err)

	p, err := NewCommandPlayer(DefaultPlayerCommand)
	require.NoError(t, err)
	require.Equal(t, "mpg123", p.name)
	require.Equal(t, []string{"-q", "-"}, p.args)
}

func TestCommandPlayer_Play(t *testing.T) {
	p, err := NewCommandPlayer("cat")
	require.NoError(t, err)
	require.NoError(t, p.Play(context.Background(), []byte("audio")))

	p, err = NewCommandPlayer("definitely-not-a-player-binary")
	require.NoError(t, err)
	require.Error(t, p.Play(context.Background(), []byte("audio")))
}

type fakeSynth struct {
	text string
	err  error
}

func (s *fakeSynth) Synthesize(ctx context.Context, text string) ([]byte, error) {
	s.text = text
	return []byte("mp3:" + text), s.err
}

type fakePlayer struct {
	played []byte
}

func (p *fakePlayer) Play(ctx context.Context, audio []byte) error {
	p.played = audio
	return nil
}

func TestAnnouncer_Announce(t *testing.T) {
	synth := &fakeSynth{}
	player := &fakePlayer{}

	require.NoError(t, NewAnnouncer(synth, player).Announce(context.Background(), 0))
	require.Equal(t, "0 rolled", synth.text)
	require.Equal(t, []byte("mp3:0 rolled"), player.played)
}

func TestAnnouncer_SynthError(t *testing.T) {
	boom := errors.New("offline")
	player := &fakePlayer{}

	err := NewAnnouncer(&fakeSynth{err: boom}, player).Announce(context.Background(), 4)
	require.ErrorIs(t, err, boom)
	require.Nil(t, player.played)
}
