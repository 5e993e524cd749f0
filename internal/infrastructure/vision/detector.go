//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/spatial/r2"

	"dice-counter/internal/domain/entity"
	"dice-counter/internal/domain/port"
)

type BlobDetector struct {
	MedianBlurKernelSize int
	MinInertiaRatio      float64
}

// NewBlobDetector создаёт детектор точек кубиков.
// kernel — размер медианного фильтра (нечётный), minInertia — минимальная округлость пятна.
func NewBlobDetector(kernel int, minInertia float64) *BlobDetector {
	if kernel < 1 || kernel%2 == 0 {
		kernel = DefaultMedianBlurKernelSize
	}
	if minInertia <= 0 {
		minInertia = DefaultMinInertiaRatio
	}
	return &BlobDetector{
		MedianBlurKernelSize: kernel,
		MinInertiaRatio:      minInertia,
	}
}

// Detect декодирует изображение и ищет на нём точки
func (d *BlobDetector) Detect(ctx context.Context, imageData []byte) ([]entity.Blob, error) {
	_ = ctx
	mat, err := decodeToMat(imageData)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	return d.DetectMat(mat)
}

// DetectMat ищет точки на уже декодированном BGR-кадре
func (d *BlobDetector) DetectMat(mat gocv.Mat) ([]entity.Blob, error) {
	if mat.Empty() {
		return nil, errors.New("empty image")
	}

	// Медианный фильтр убирает шум до перевода в серый
	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.MedianBlur(mat, &blurred, d.MedianBlurKernelSize)

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(blurred, &gray, gocv.ColorBGRToGray)

	params := gocv.NewSimpleBlobDetectorParams()
	params.SetFilterByInertia(true)
	params.SetMinInertiaRatio(d.MinInertiaRatio)

	detector := gocv.NewSimpleBlobDetectorWithParams(params)
	defer detector.Close()

	keypoints := detector.Detect(gray)
	blobs := make([]entity.Blob, 0, len(keypoints))
	for _, kp := range keypoints {
		blobs = append(blobs, entity.Blob{
			Position: r2.Vec{X: kp.X, Y: kp.Y},
			Radius:   kp.Size / 2,
		})
	}

	return blobs, nil
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), errors.New("failed to decode image")
}

var _ port.BlobDetector = (*BlobDetector)(nil)
