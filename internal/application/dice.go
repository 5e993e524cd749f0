package app

import (
	"context"
	"errors"
	"sync"

	"dice-counter/internal/domain/entity"
	"dice-counter/internal/domain/port"
	"dice-counter/internal/logger"
)

// ErrDetectorNotConfigured возвращается, если детектор пятен не подключён
var ErrDetectorNotConfigured = errors.New("detector is not configured")

type announcementQueue interface {
	Dispatch(value int) bool
}

// DiceService связывает детектор, сессию, оверлей и объявления.
// Основной поток кадров (камера) и /status, /calibrate работают с одной сессией;
// дополнительные источники получают свою сессию через NewStream.
type DiceService struct {
	detector port.BlobDetector
	overlay  port.Overlay
	queue    announcementQueue
	log      *logger.Logger

	main *FrameStream
}

// FrameStream — один источник кадров со своим окном стабильности.
// Кадры внутри потока обрабатываются строго по одному.
type FrameStream struct {
	svc *DiceService

	mu      sync.Mutex
	session *DetectionSession
	last    FrameResult
}

// FrameOutput содержит результат кадра и картинку с разметкой
type FrameOutput struct {
	Blobs     []entity.Blob
	Result    FrameResult
	Annotated []byte
}

// Status — снимок состояния сессии для транспорта
type Status struct {
	SessionID      string                `json:"session_id"`
	DistanceCm     float64               `json:"distance_cm"`
	Radius         float64               `json:"radius"`
	WindowCapacity int                   `json:"window_capacity"`
	State          entity.DetectionState `json:"state"`
	TotalSum       int                   `json:"total_sum"`
	DiceCount      int                   `json:"dice_count"`
	SettledValue   int                   `json:"settled_value"`
}

// NewDiceService создаёт сервис; detector, overlay и queue могут быть nil
func NewDiceService(session *DetectionSession, detector port.BlobDetector, overlay port.Overlay, queue announcementQueue) *DiceService {
	s := &DiceService{
		detector: detector,
		overlay:  overlay,
		queue:    queue,
		log:      logger.For("dice"),
	}
	s.main = &FrameStream{svc: s, session: session}

	return s
}

// NewStream открывает отдельный поток кадров. Калибровка берётся у основной
// сессии на момент вызова, окно стабильности пустое.
func (s *DiceService) NewStream() *FrameStream {
	s.main.mu.Lock()
	session := s.main.session.Spawn()
	s.main.mu.Unlock()

	return &FrameStream{svc: s, session: session}
}

// ProcessImage обрабатывает кадр основного потока
func (s *DiceService) ProcessImage(ctx context.Context, imageData []byte) (*FrameOutput, error) {
	return s.main.ProcessImage(ctx, imageData)
}

// ProcessBlobs обрабатывает пятна кадра основного потока
func (s *DiceService) ProcessBlobs(blobs []entity.Blob) FrameResult {
	return s.main.ProcessBlobs(blobs)
}

// SessionID возвращает идентификатор сессии потока
func (f *FrameStream) SessionID() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.session.ID()
}

// ProcessImage находит пятна на изображении, обновляет сессию потока и рисует разметку
func (f *FrameStream) ProcessImage(ctx context.Context, imageData []byte) (*FrameOutput, error) {
	if f.svc.detector == nil {
		return nil, ErrDetectorNotConfigured
	}

	blobs, err := f.svc.detector.Detect(ctx, imageData)
	if err != nil {
		return nil, err
	}

	result := f.ProcessBlobs(blobs)

	return &FrameOutput{Blobs: blobs, Result: result, Annotated: f.svc.render(imageData, result.Annotation(blobs))}, nil
}

// ProcessBlobs обрабатывает уже найденные пятна одного кадра
func (f *FrameStream) ProcessBlobs(blobs []entity.Blob) FrameResult {
	f.mu.Lock()
	result := f.session.Process(entity.Positions(blobs))
	f.last = result
	f.mu.Unlock()

	if result.Decision.ShouldAnnounce && f.svc.queue != nil {
		f.svc.queue.Dispatch(result.Decision.Value)
	}

	return result
}

// Recalibrate меняет расстояние до стола для следующих кадров
func (s *DiceService) Recalibrate(distanceCm float64) error {
	s.main.mu.Lock()
	defer s.main.mu.Unlock()

	return s.main.session.Recalibrate(distanceCm)
}

// Status возвращает снимок состояния сессии
func (s *DiceService) Status() Status {
	m := s.main
	m.mu.Lock()
	defer m.mu.Unlock()

	return Status{
		SessionID:      m.session.ID(),
		DistanceCm:     m.session.DistanceCm(),
		Radius:         m.session.Radius(),
		WindowCapacity: m.session.WindowCapacity(),
		State:          m.session.State(),
		TotalSum:       m.last.Frame.TotalSum,
		DiceCount:      m.last.Frame.DiceCount(),
		SettledValue:   m.last.Decision.Value,
	}
}

// CountImage считает точки на одиночном фото, не трогая окно стабильности
func (s *DiceService) CountImage(ctx context.Context, imageData []byte) (*FrameOutput, error) {
	if s.detector == nil {
		return nil, ErrDetectorNotConfigured
	}

	blobs, err := s.detector.Detect(ctx, imageData)
	if err != nil {
		return nil, err
	}

	s.main.mu.Lock()
	eps := s.main.session.Radius()
	s.main.mu.Unlock()

	frame := NewDiceClusterer().Cluster(entity.Positions(blobs), eps)
	result := FrameResult{
		Frame:    frame,
		Decision: entity.StabilityDecision{State: entity.StateStable, Value: frame.TotalSum},
	}

	return &FrameOutput{Blobs: blobs, Result: result, Annotated: s.render(imageData, result.Annotation(blobs))}, nil
}

func (s *DiceService) render(imageData []byte, annotation entity.Annotation) []byte {
	if s.overlay == nil {
		return nil
	}

	annotated, err := s.overlay.Render(imageData, annotation)
	if err != nil {
		s.log.Warn().Err(err).Msg("render overlay")
		return nil
	}

	return annotated
}
