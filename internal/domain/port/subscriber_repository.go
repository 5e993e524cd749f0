package port

import (
	"context"

	"dice-counter/internal/domain/entity"
)

// SubscriberRepository интерфейс хранилища подписчиков
type SubscriberRepository interface {
	// Get возвращает подписчика по ID, создаёт нового если не найден
	Get(ctx context.Context, userID, chatID int64) (*entity.Subscriber, error)

	// Save сохраняет подписчика
	Save(ctx context.Context, subscriber *entity.Subscriber) error

	// SetActive включает или выключает объявления для подписчика
	SetActive(ctx context.Context, userID int64, active bool) error

	// ListActive возвращает всех подписчиков с включёнными объявлениями
	ListActive(ctx context.Context) ([]entity.Subscriber, error)
}
