package entity

import "gonum.org/v1/gonum/spatial/r2"

// Die представляет один кубик, собранный из кластера пятен
type Die struct {
	PipCount int    // количество точек на верхней грани
	Centroid r2.Vec // среднее координат точек
}

// DetectionFrame хранит результат кластеризации одного кадра.
type DetectionFrame struct {
	Dice     []Die // кубики в порядке перечисления кластеров
	TotalSum int   // сумма точек по всем кубикам
}

// DiceCount возвращает количество кубиков в кадре
func (f DetectionFrame) DiceCount() int {
	return len(f.Dice)
}
