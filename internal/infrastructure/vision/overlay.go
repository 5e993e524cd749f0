//go:build gocv
// +build gocv

package vision

import (
	"errors"
	"image"
	"image/color"
	"strconv"

	"gocv.io/x/gocv"

	"dice-counter/internal/domain/entity"
	"dice-counter/internal/domain/port"
)

var (
	blobColor = color.RGBA{B: 255, A: 255}
	textColor = color.RGBA{G: 255, A: 255}
)

// Overlay рисует пятна, количество точек каждого кубика и строку статуса
type Overlay struct{}

// NewOverlay создаёт оверлей
func NewOverlay() *Overlay {
	return &Overlay{}
}

// Render рисует разметку и возвращает PNG
func (o *Overlay) Render(imageData []byte, annotation entity.Annotation) ([]byte, error) {
	mat, err := decodeToMat(imageData)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	o.Draw(&mat, annotation)

	buf, err := gocv.IMEncode(gocv.PNGFileExt, mat)
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	out := buf.GetBytes()
	if len(out) == 0 {
		return nil, errors.New("failed to encode image")
	}
	// GetBytes ссылается на память C, копируем до Close
	return append([]byte(nil), out...), nil
}

// Draw рисует разметку прямо на кадре
func (o *Overlay) Draw(mat *gocv.Mat, annotation entity.Annotation) {
	for _, b := range annotation.Blobs {
		center := image.Pt(int(b.Position.X), int(b.Position.Y))
		gocv.Circle(mat, center, int(b.Radius), blobColor, 2)
	}

	for _, d := range annotation.Frame.Dice {
		text := strconv.Itoa(d.PipCount)
		size := gocv.GetTextSize(text, gocv.FontHersheyPlain, 3, 2)
		org := image.Pt(int(d.Centroid.X)-size.X/2, int(d.Centroid.Y)+size.Y/2)
		gocv.PutText(mat, text, org, gocv.FontHersheyPlain, 3, textColor, 2)
	}

	gocv.PutText(mat, annotation.StatusText(), image.Pt(40, 50), gocv.FontHersheyPlain, 4, textColor, 4)
}

var _ port.Overlay = (*Overlay)(nil)
