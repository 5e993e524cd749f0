package app

import (
	"context"
	"sync"
	"time"

	"dice-counter/internal/domain/port"
	"dice-counter/internal/logger"
)

// DefaultAnnounceTimeout ограничивает одно объявление (синтез + воспроизведение)
const DefaultAnnounceTimeout = 30 * time.Second

// AnnouncementDispatcher передаёт объявления в отдельный воркер, чтобы цикл
// обработки кадров не ждал окончания звука.
type AnnouncementDispatcher struct {
	announcers []port.Announcer
	queue      chan int
	timeout    time.Duration
	log        *logger.Logger

	mu     sync.RWMutex
	closed bool
}

// NewAnnouncementDispatcher создаёт диспетчер с очередью размера queueSize
func NewAnnouncementDispatcher(queueSize int, announcers ...port.Announcer) *AnnouncementDispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	return &AnnouncementDispatcher{
		announcers: announcers,
		queue:      make(chan int, queueSize),
		timeout:    DefaultAnnounceTimeout,
		log:        logger.For("announcer"),
	}
}

// Register добавляет получателя объявлений
func (d *AnnouncementDispatcher) Register(a port.Announcer) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.announcers = append(d.announcers, a)
}

// Dispatch ставит значение в очередь и сразу возвращается.
// false, если очередь переполнена или диспетчер закрыт.
func (d *AnnouncementDispatcher) Dispatch(value int) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return false
	}
	select {
	case d.queue <- value:
		return true
	default:
		d.log.Warn().Int("sum", value).Msg("announcement queue full, dropping")
		return false
	}
}

// Run обрабатывает очередь до Close или отмены ctx.
// При отмене ctx уже поставленные объявления дочитываются перед выходом;
// начатое объявление доигрывается независимо от ctx.
func (d *AnnouncementDispatcher) Run(ctx context.Context) error {
	announceCtx := context.WithoutCancel(ctx)
	for {
		select {
		case value, ok := <-d.queue:
			if !ok {
				return nil
			}
			d.announce(announceCtx, value)
		case <-ctx.Done():
			d.drain(announceCtx)
			return nil
		}
	}
}

func (d *AnnouncementDispatcher) drain(ctx context.Context) {
	for {
		select {
		case value, ok := <-d.queue:
			if !ok {
				return
			}
			d.log.Debug().Int("sum", value).Msg("draining announcement")
			d.announce(ctx, value)
		default:
			return
		}
	}
}

// Close прекращает приём объявлений; Run дочитает очередь и завершится
func (d *AnnouncementDispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.closed = true
	close(d.queue)
}

func (d *AnnouncementDispatcher) announce(ctx context.Context, value int) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	d.mu.RLock()
	announcers := append([]port.Announcer(nil), d.announcers...)
	d.mu.RUnlock()

	for _, a := range announcers {
		if err := a.Announce(ctx, value); err != nil {
			d.log.Error().Err(err).Int("sum", value).Msg("announce failed")
		}
	}
}
