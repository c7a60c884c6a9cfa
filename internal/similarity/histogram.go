package similarity

import (
	"errors"
	"image"
	"math"
)

const histogramBins = 256

// HistogramDivergence measures how far apart the color distributions of two
// frames are. Per-channel 256-bin histograms are compared with Pearson
// correlation; the result is 1 minus the mean correlation, so 0 means
// identical distributions and values near 1 mean unrelated content.
func HistogramDivergence(a, b *image.RGBA) (float64, error) {
	if a == nil || b == nil {
		return 0, errors.New("similarity: nil frame")
	}
	if a.Bounds() != b.Bounds() {
		return 0, ErrDimensionMismatch
	}

	histA := channelHistograms(a)
	histB := channelHistograms(b)

	var total float64
	for channel := 0; channel < 3; channel++ {
		total += histogramCorrelation(histA[channel], histB[channel])
	}
	return 1 - total/3, nil
}

// HistogramDivergenceFiles compares two frame files by color distribution.
func HistogramDivergenceFiles(pathA, pathB string) (float64, error) {
	frameA, err := LoadFrame(pathA)
	if err != nil {
		return 0, err
	}
	frameB, err := LoadFrame(pathB)
	if err != nil {
		return 0, err
	}
	return HistogramDivergence(frameA.RGBA, frameB.RGBA)
}

func channelHistograms(img *image.RGBA) [3][histogramBins]float64 {
	var hist [3][histogramBins]float64
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			offset := img.PixOffset(x, y)
			hist[0][img.Pix[offset]]++
			hist[1][img.Pix[offset+1]]++
			hist[2][img.Pix[offset+2]]++
		}
	}
	return hist
}

// histogramCorrelation computes the Pearson correlation of two histograms.
// Two flat histograms correlate perfectly; a flat histogram against a
// non-flat one yields 0.
func histogramCorrelation(a, b [histogramBins]float64) float64 {
	var meanA, meanB float64
	for i := 0; i < histogramBins; i++ {
		meanA += a[i]
		meanB += b[i]
	}
	meanA /= histogramBins
	meanB /= histogramBins

	var covar, varA, varB float64
	for i := 0; i < histogramBins; i++ {
		da := a[i] - meanA
		db := b[i] - meanB
		covar += da * db
		varA += da * da
		varB += db * db
	}
	if varA == 0 && varB == 0 {
		return 1
	}
	if varA == 0 || varB == 0 {
		return 0
	}
	return covar / math.Sqrt(varA*varB)
}
