package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	app "dice-counter/internal/application"
	"dice-counter/internal/domain/entity"
)

func newTestServer(t *testing.T, policy app.RangePolicy) *Server {
	t.Helper()
	session, err := app.NewSession(app.SessionConfig{DistanceCm: 40, Policy: policy, WindowCapacity: 3})
	require.NoError(t, err)
	return NewServer(":0", app.NewDiceService(session, nil, nil, nil))
}

func TestServer_Status(t *testing.T) {
	s := newTestServer(t, app.RangeExtrapolate)

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/api/status", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var status app.Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	require.Equal(t, 40.0, status.DistanceCm)
	require.Equal(t, 50.0, status.Radius)
	require.Equal(t, entity.StateUnstable, status.State)
	require.NotEmpty(t, status.SessionID)
}

func TestServer_Calibrate(t *testing.T) {
	s := newTestServer(t, app.RangeReject)

	post := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/api/calibrate", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := s.app.Test(req)
		require.NoError(t, err)
		return resp
	}

	resp := post(`{"distance_cm": 30}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var status app.Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	require.Equal(t, 70.0, status.Radius)

	require.Equal(t, fiber.StatusBadRequest, post(`{}`).StatusCode)
	require.Equal(t, fiber.StatusBadRequest, post(`not json`).StatusCode)
	require.Equal(t, fiber.StatusUnprocessableEntity, post(`{"distance_cm": 55}`).StatusCode)
}

func TestServer_WebSocketRequiresUpgrade(t *testing.T) {
	s := newTestServer(t, app.RangeExtrapolate)

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/ws/frames", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

func TestFrameView(t *testing.T) {
	view := frameView(app.FrameResult{
		Frame: entity.DetectionFrame{
			Dice:     []entity.Die{{PipCount: 4, Centroid: r2.Vec{X: 12, Y: 34}}},
			TotalSum: 4,
		},
		Decision: entity.StabilityDecision{State: entity.StateAnnounced, ShouldAnnounce: true, Value: 4},
	})

	require.Equal(t, 4, view.TotalSum)
	require.Equal(t, []DieView{{PipCount: 4, X: 12, Y: 34}}, view.Dice)
	require.True(t, view.ShouldAnnounce)
	require.Equal(t, entity.StateAnnounced, view.State)
}

// countDetector возвращает столько далеко разнесённых пятен, сколько байт в кадре
type countDetector struct{}

func (countDetector) Detect(ctx context.Context, imageData []byte) ([]entity.Blob, error) {
	blobs := make([]entity.Blob, len(imageData))
	for i := range blobs {
		blobs[i] = entity.Blob{Position: r2.Vec{X: float64(i) * 500}}
	}
	return blobs, nil
}

type scriptedConn struct {
	frames [][]byte
	views  []FrameView
}

func (c *scriptedConn) ReadMessage() (int, []byte, error) {
	if len(c.frames) == 0 {
		return 0, nil, io.EOF
	}
	frame := c.frames[0]
	c.frames = c.frames[1:]
	return websocket.BinaryMessage, frame, nil
}

func (c *scriptedConn) WriteMessage(messageType int, data []byte) error {
	return errors.New("unexpected binary reply")
}

func (c *scriptedConn) WriteJSON(v interface{}) error {
	view, ok := v.(FrameView)
	if !ok {
		return errors.New("unexpected reply")
	}
	c.views = append(c.views, view)
	return nil
}

func TestServer_FramesUseOwnSession(t *testing.T) {
	session, err := app.NewSession(app.SessionConfig{DistanceCm: 40, WindowCapacity: 3})
	require.NoError(t, err)
	dice := app.NewDiceService(session, countDetector{}, nil, nil)
	s := NewServer(":0", dice)
	ctx := context.Background()

	// камера успела прислать два кадра с тремя точками
	for i := 0; i < 2; i++ {
		_, err := dice.ProcessImage(ctx, []byte("xxx"))
		require.NoError(t, err)
	}

	conn := &scriptedConn{frames: [][]byte{[]byte("x"), []byte("x"), []byte("x")}}
	s.serveFrames(ctx, conn, dice.NewStream())

	require.Len(t, conn.views, 3)
	require.True(t, conn.views[2].ShouldAnnounce)
	require.Equal(t, 1, conn.views[2].Value)

	// окно камеры не видело кадров клиента
	out, err := dice.ProcessImage(ctx, []byte("xxx"))
	require.NoError(t, err)
	require.True(t, out.Result.Decision.ShouldAnnounce)
	require.Equal(t, 3, out.Result.Decision.Value)
}
