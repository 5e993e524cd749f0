package entity

// Subscriber — чат Telegram, получающий объявления результатов
type Subscriber struct {
	ID     int64 // Telegram User ID
	ChatID int64 // Telegram Chat ID
	Active bool  // получает ли чат объявления
}

// NewSubscriber создаёт неактивного подписчика
func NewSubscriber(userID, chatID int64) *Subscriber {
	return &Subscriber{
		ID:     userID,
		ChatID: chatID,
	}
}

// SetActive включает или выключает объявления
func (s *Subscriber) SetActive(active bool) {
	s.Active = active
}
