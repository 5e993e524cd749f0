package app

import (
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"

	"dice-counter/internal/domain/entity"
	"dice-counter/internal/logger"
)

// SessionConfig параметры одной сессии бросков
type SessionConfig struct {
	DistanceCm     float64
	Policy         RangePolicy
	WindowCapacity int
}

// FrameResult — результат обработки одного кадра
type FrameResult struct {
	Frame    entity.DetectionFrame
	Decision entity.StabilityDecision
}

// Annotation собирает разметку кадра для оверлея
func (r FrameResult) Annotation(blobs []entity.Blob) entity.Annotation {
	return entity.Annotation{Blobs: blobs, Frame: r.Frame, Decision: r.Decision}
}

// DetectionSession ведёт одну физическую сессию бросков: хранит радиус,
// кластеризатор и трекер стабильности. Кадры обрабатываются строго по одному.
type DetectionSession struct {
	id         string
	mapper     *CalibrationMapper
	clusterer  *DiceClusterer
	tracker    *StabilityTracker
	distanceCm float64
	radius     float64
	log        logger.Logger
}

// NewSession создаёт сессию, откалиброванную на cfg.DistanceCm
func NewSession(cfg SessionConfig) (*DetectionSession, error) {
	mapper, err := NewCalibrationMapper(cfg.Policy)
	if err != nil {
		return nil, err
	}

	s := newDetectionSession(mapper, cfg.WindowCapacity)
	if err := s.Recalibrate(cfg.DistanceCm); err != nil {
		return nil, err
	}

	return s, nil
}

func newDetectionSession(mapper *CalibrationMapper, capacity int) *DetectionSession {
	id := uuid.NewString()
	return &DetectionSession{
		id:        id,
		mapper:    mapper,
		clusterer: NewDiceClusterer(),
		tracker:   NewStabilityTracker(capacity),
		log:       logger.For("session").With().Str("session_id", id).Logger(),
	}
}

// Spawn создаёт новую сессию с той же калибровкой и пустым окном стабильности.
// Нужна для второго источника кадров: у каждого потока своё окно.
func (s *DetectionSession) Spawn() *DetectionSession {
	child := newDetectionSession(s.mapper, s.tracker.Capacity())
	child.distanceCm = s.distanceCm
	child.radius = s.radius
	child.log.Debug().Str("parent_id", s.id).Float64("eps", s.radius).Msg("session spawned")

	return child
}

// Process кластеризует точки кадра и обновляет трекер стабильности
func (s *DetectionSession) Process(positions []r2.Vec) FrameResult {
	frame := s.clusterer.Cluster(positions, s.radius)
	before := s.tracker.State()
	decision := s.tracker.Observe(frame.TotalSum)

	if decision.ShouldAnnounce {
		s.log.Info().Int("sum", decision.Value).Int("dice", frame.DiceCount()).Msg("dice settled")
	} else if before.Settled() && decision.State == entity.StateUnstable {
		s.log.Debug().Int("sum", frame.TotalSum).Msg("dice moving again")
	}

	return FrameResult{Frame: frame, Decision: decision}
}

// Recalibrate меняет радиус кластеризации, начиная со следующего кадра.
// При ошибке прежний радиус сохраняется.
func (s *DetectionSession) Recalibrate(distanceCm float64) error {
	radius, err := s.mapper.Map(distanceCm)
	if err != nil {
		s.log.Warn().Err(err).Float64("distance_cm", distanceCm).Msg("calibration rejected")
		return err
	}

	s.distanceCm = distanceCm
	s.radius = radius
	s.log.Info().Float64("distance_cm", distanceCm).Float64("eps", radius).Msg("calibrated")
	return nil
}

// ID возвращает идентификатор сессии
func (s *DetectionSession) ID() string { return s.id }

// Radius возвращает текущий радиус кластеризации
func (s *DetectionSession) Radius() float64 { return s.radius }

// DistanceCm возвращает последнее принятое расстояние до стола
func (s *DetectionSession) DistanceCm() float64 { return s.distanceCm }

// State возвращает состояние трекера стабильности
func (s *DetectionSession) State() entity.DetectionState { return s.tracker.State() }

// WindowCapacity возвращает ёмкость окна стабильности
func (s *DetectionSession) WindowCapacity() int { return s.tracker.Capacity() }
