package similarity

import (
	"errors"
	"image"
)

// SSIM window and stabilization constants for 8-bit dynamic range.
const (
	ssimWindow = 8
	ssimC1     = (0.01 * 255) * (0.01 * 255)
	ssimC2     = (0.03 * 255) * (0.03 * 255)
)

// ErrDimensionMismatch reports frames that do not share comparison bounds.
// Frames produced by NormalizeFrame always share bounds, so hitting this
// means a caller skipped normalization.
var ErrDimensionMismatch = errors.New("similarity: frame dimensions differ")

// SSIM computes the mean structural similarity index between two grayscale
// planes. The result is in [-1, 1] where 1 means structurally identical;
// screen captures in practice land in [0, 1].
func SSIM(a, b *image.Gray) (float64, error) {
	if a == nil || b == nil {
		return 0, errors.New("similarity: nil frame")
	}
	if a.Bounds() != b.Bounds() {
		return 0, ErrDimensionMismatch
	}

	bounds := a.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width < ssimWindow || height < ssimWindow {
		return 0, errors.New("similarity: frame smaller than ssim window")
	}

	var total float64
	var windows int
	for y := 0; y+ssimWindow <= height; y += ssimWindow {
		for x := 0; x+ssimWindow <= width; x += ssimWindow {
			total += windowSSIM(a, b, bounds.Min.X+x, bounds.Min.Y+y)
			windows++
		}
	}
	return total / float64(windows), nil
}

// windowSSIM evaluates the SSIM formula over a single aligned window.
func windowSSIM(a, b *image.Gray, startX, startY int) float64 {
	const n = float64(ssimWindow * ssimWindow)

	var sumA, sumB float64
	for y := 0; y < ssimWindow; y++ {
		rowA := a.PixOffset(startX, startY+y)
		rowB := b.PixOffset(startX, startY+y)
		for x := 0; x < ssimWindow; x++ {
			sumA += float64(a.Pix[rowA+x])
			sumB += float64(b.Pix[rowB+x])
		}
	}
	meanA := sumA / n
	meanB := sumB / n

	var varA, varB, covar float64
	for y := 0; y < ssimWindow; y++ {
		rowA := a.PixOffset(startX, startY+y)
		rowB := b.PixOffset(startX, startY+y)
		for x := 0; x < ssimWindow; x++ {
			da := float64(a.Pix[rowA+x]) - meanA
			db := float64(b.Pix[rowB+x]) - meanB
			varA += da * da
			varB += db * db
			covar += da * db
		}
	}
	varA /= n - 1
	varB /= n - 1
	covar /= n - 1

	numerator := (2*meanA*meanB + ssimC1) * (2*covar + ssimC2)
	denominator := (meanA*meanA + meanB*meanB + ssimC1) * (varA + varB + ssimC2)
	return numerator / denominator
}

// Score compares two frame files and returns their structural similarity.
// This is the scorer wired into segment boundary detection.
func Score(pathA, pathB string) (float64, error) {
	frameA, err := LoadFrame(pathA)
	if err != nil {
		return 0, err
	}
	frameB, err := LoadFrame(pathB)
	if err != nil {
		return 0, err
	}
	return SSIM(frameA.Gray, frameB.Gray)
}
