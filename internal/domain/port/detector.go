package port

import (
	"context"

	"dice-counter/internal/domain/entity"
)

// BlobDetector интерфейс детектора пятен
type BlobDetector interface {
	// Detect находит на изображении пятна, похожие на точки кубиков
	Detect(ctx context.Context, imageData []byte) ([]entity.Blob, error)
}

// Overlay интерфейс отрисовки результатов поверх кадра
type Overlay interface {
	// Render рисует пятна, количество точек кубиков и статус, возвращает новую картинку
	Render(imageData []byte, annotation entity.Annotation) ([]byte, error)
}
