// Package web отдаёт состояние сессии по HTTP и принимает кадры по WebSocket
package web

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	app "dice-counter/internal/application"
	"dice-counter/internal/domain/entity"
	"dice-counter/internal/logger"
)

// Server — HTTP/WebSocket транспорт для DiceService
type Server struct {
	app  *fiber.App
	addr string
	dice *app.DiceService
	log  *logger.Logger
}

// DieView — кубик в JSON-ответе
type DieView struct {
	PipCount int     `json:"pip_count"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// FrameView — итог кадра, отправляется клиенту перед размеченной картинкой
type FrameView struct {
	TotalSum       int                   `json:"total_sum"`
	Dice           []DieView             `json:"dice"`
	State          entity.DetectionState `json:"state"`
	ShouldAnnounce bool                  `json:"should_announce"`
	Value          int                   `json:"value"`
}

type calibrateRequest struct {
	DistanceCm *float64 `json:"distance_cm"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewServer создаёт сервер; addr в формате ":8080"
func NewServer(addr string, dice *app.DiceService) *Server {
	s := &Server{
		addr: addr,
		dice: dice,
		log:  logger.For("web"),
	}

	fiberApp := fiber.New(fiber.Config{
		AppName:               "Dice Counter",
		DisableStartupMessage: true,
	})

	api := fiberApp.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Post("/calibrate", s.handleCalibrate)

	fiberApp.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	fiberApp.Get("/ws/frames", websocket.New(s.handleFramesWS))

	s.app = fiberApp
	return s
}

// Run слушает addr до отмены ctx
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		if err := s.app.Shutdown(); err != nil {
			s.log.Warn().Err(err).Msg("shutdown")
		}
	}()

	s.log.Info().Str("addr", s.addr).Msg("listening")
	return s.app.Listen(s.addr)
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(s.dice.Status())
}

func (s *Server) handleCalibrate(c *fiber.Ctx) error {
	var req calibrateRequest
	if err := c.BodyParser(&req); err != nil || req.DistanceCm == nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "distance_cm is required"})
	}

	if err := s.dice.Recalibrate(*req.DistanceCm); err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, app.ErrDistanceOutOfRange) {
			status = fiber.StatusUnprocessableEntity
		}
		return c.Status(status).JSON(errorResponse{Error: err.Error()})
	}

	return c.JSON(s.dice.Status())
}

// frameConn — часть websocket-соединения, нужная потоку кадров
type frameConn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	WriteJSON(v interface{}) error
}

func (s *Server) handleFramesWS(c *websocket.Conn) {
	s.serveFrames(context.Background(), c, s.dice.NewStream())
}

// serveFrames принимает закодированные кадры (JPEG/PNG) бинарными сообщениями,
// отвечает JSON с итогом кадра и, если есть, PNG с разметкой.
// У каждого соединения своя сессия, с камерой окно не смешивается.
func (s *Server) serveFrames(ctx context.Context, conn frameConn, stream *app.FrameStream) {
	log := s.log.With().Str("session_id", stream.SessionID()).Logger()
	log.Info().Msg("frame stream opened")
	defer log.Info().Msg("frame stream closed")

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if messageType != websocket.BinaryMessage {
			continue
		}

		out, err := stream.ProcessImage(ctx, data)
		if err != nil {
			log.Warn().Err(err).Msg("process frame")
			if err := conn.WriteJSON(errorResponse{Error: err.Error()}); err != nil {
				return
			}
			continue
		}

		if err := conn.WriteJSON(frameView(out.Result)); err != nil {
			return
		}
		if len(out.Annotated) == 0 {
			continue
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, out.Annotated); err != nil {
			return
		}
	}
}

func frameView(r app.FrameResult) FrameView {
	dice := make([]DieView, 0, len(r.Frame.Dice))
	for _, d := range r.Frame.Dice {
		dice = append(dice, DieView{PipCount: d.PipCount, X: d.Centroid.X, Y: d.Centroid.Y})
	}
	return FrameView{
		TotalSum:       r.Frame.TotalSum,
		Dice:           dice,
		State:          r.Decision.State,
		ShouldAnnounce: r.Decision.ShouldAnnounce,
		Value:          r.Decision.Value,
	}
}
