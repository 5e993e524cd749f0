package storage

import (
	"context"
	"sort"
	"sync"

	"dice-counter/internal/domain/entity"
	"dice-counter/internal/domain/port"
)

// MemorySubscriberRepository in-memory хранилище подписчиков
type MemorySubscriberRepository struct {
	mu          sync.RWMutex
	subscribers map[int64]*entity.Subscriber
}

// NewMemorySubscriberRepository создаёт новое in-memory хранилище
func NewMemorySubscriberRepository() *MemorySubscriberRepository {
	return &MemorySubscriberRepository{
		subscribers: make(map[int64]*entity.Subscriber),
	}
}

// Get возвращает подписчика по ID, создаёт нового если не найден
func (r *MemorySubscriberRepository) Get(ctx context.Context, userID, chatID int64) (*entity.Subscriber, error) {
	r.mu.RLock()
	sub, exists := r.subscribers[userID]
	r.mu.RUnlock()

	if exists {
		return sub, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Могли создать, пока ждали блокировку
	if sub, exists := r.subscribers[userID]; exists {
		return sub, nil
	}
	sub = entity.NewSubscriber(userID, chatID)
	r.subscribers[userID] = sub

	return sub, nil
}

// Save сохраняет подписчика
func (r *MemorySubscriberRepository) Save(ctx context.Context, subscriber *entity.Subscriber) error {
	r.mu.Lock()
	r.subscribers[subscriber.ID] = subscriber
	r.mu.Unlock()

	return nil
}

// SetActive включает или выключает объявления
func (r *MemorySubscriberRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sub, exists := r.subscribers[userID]; exists {
		sub.SetActive(active)
	}

	return nil
}

// ListActive возвращает копии активных подписчиков, отсортированные по ID
func (r *MemorySubscriberRepository) ListActive(ctx context.Context) ([]entity.Subscriber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	active := make([]entity.Subscriber, 0, len(r.subscribers))
	for _, sub := range r.subscribers {
		if sub.Active {
			active = append(active, *sub)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })

	return active, nil
}

// Проверка реализации интерфейса
var _ port.SubscriberRepository = (*MemorySubscriberRepository)(nil)
