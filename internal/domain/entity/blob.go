package entity

import "gonum.org/v1/gonum/spatial/r2"

// Blob — найденное детектором пятно, похожее на точку кубика
type Blob struct {
	Position r2.Vec  // центр пятна в пикселях кадра
	Radius   float64 // радиус, нужен только для отрисовки
}

// Positions возвращает координаты центров пятен
func Positions(blobs []Blob) []r2.Vec {
	positions := make([]r2.Vec, 0, len(blobs))
	for _, b := range blobs {
		positions = append(positions, b.Position)
	}
	return positions
}
