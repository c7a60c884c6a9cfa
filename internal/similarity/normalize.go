package similarity

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"
)

// Comparison dimensions. Every frame is scaled to this size before scoring
// so SSIM cost stays constant regardless of recording resolution.
const (
	compareWidth  = 640
	compareHeight = 480
)

// Frame holds the normalized planes derived from a decoded frame image.
type Frame struct {
	Gray *image.Gray
	RGBA *image.RGBA
}

// LoadFrame reads an image file and normalizes it to the comparison size.
func LoadFrame(path string) (Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return Frame{}, fmt.Errorf("open frame: %w", err)
	}
	defer file.Close()

	decoded, _, err := image.Decode(file)
	if err != nil {
		return Frame{}, fmt.Errorf("decode frame %s: %w", path, err)
	}
	return NormalizeFrame(decoded), nil
}

// NormalizeFrame scales an image to the comparison size and derives the
// grayscale plane used by SSIM.
func NormalizeFrame(src image.Image) Frame {
	rgba := image.NewRGBA(image.Rect(0, 0, compareWidth, compareHeight))
	draw.ApproxBiLinear.Scale(rgba, rgba.Bounds(), src, src.Bounds(), draw.Src, nil)

	gray := image.NewGray(rgba.Bounds())
	for y := 0; y < compareHeight; y++ {
		for x := 0; x < compareWidth; x++ {
			offset := rgba.PixOffset(x, y)
			r := rgba.Pix[offset]
			g := rgba.Pix[offset+1]
			b := rgba.Pix[offset+2]
			// ITU-R BT.601 luma weights.
			gray.Pix[gray.PixOffset(x, y)] = uint8((299*uint32(r) + 587*uint32(g) + 114*uint32(b)) / 1000)
		}
	}
	return Frame{Gray: gray, RGBA: rgba}
}
