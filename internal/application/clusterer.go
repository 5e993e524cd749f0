package app

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"dice-counter/internal/domain/entity"
)

// DiceClusterer группирует точки в кубики: две точки принадлежат одному
// кубику, если их связывает цепочка расстояний не больше eps.
// Одиночная точка — тоже кубик с единицей.
type DiceClusterer struct{}

// NewDiceClusterer создаёт кластеризатор
func NewDiceClusterer() *DiceClusterer {
	return &DiceClusterer{}
}

// Cluster разбивает точки на кубики. Кубики упорядочены по центроиду (X, затем Y),
// но сопоставлять кубики между кадрами по индексу нельзя.
func (c *DiceClusterer) Cluster(positions []r2.Vec, eps float64) entity.DetectionFrame {
	n := len(positions)
	if n == 0 {
		return entity.DetectionFrame{Dice: []entity.Die{}}
	}

	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if r2.Norm(r2.Sub(positions[i], positions[j])) > eps {
				continue
			}
			ri, rj := find(i), find(j)
			if ri != rj {
				parent[rj] = ri
			}
		}
	}

	// Собираем кластеры в порядке первого появления корня
	index := make(map[int]int, n)
	var sums []r2.Vec
	var counts []int
	for i, p := range positions {
		root := find(i)
		k, ok := index[root]
		if !ok {
			k = len(sums)
			index[root] = k
			sums = append(sums, r2.Vec{})
			counts = append(counts, 0)
		}
		sums[k] = r2.Add(sums[k], p)
		counts[k]++
	}

	dice := make([]entity.Die, len(sums))
	total := 0
	for k := range sums {
		dice[k] = entity.Die{
			PipCount: counts[k],
			Centroid: r2.Scale(1/float64(counts[k]), sums[k]),
		}
		total += counts[k]
	}

	sort.SliceStable(dice, func(i, j int) bool {
		if dice[i].Centroid.X != dice[j].Centroid.X {
			return dice[i].Centroid.X < dice[j].Centroid.X
		}
		return dice[i].Centroid.Y < dice[j].Centroid.Y
	})

	return entity.DetectionFrame{Dice: dice, TotalSum: total}
}
