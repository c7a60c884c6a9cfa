package similarity_test

import (
	"image/color"
	"path/filepath"
	"testing"

	"recap/internal/similarity"
	"recap/internal/testsupport"
)

func TestSSIMIdenticalFrames(t *testing.T) {
	img := testsupport.SplitImage(320, 240, color.Gray{Y: 30}, color.Gray{Y: 220})
	a := similarity.NormalizeFrame(img)
	b := similarity.NormalizeFrame(img)

	score, err := similarity.SSIM(a.Gray, b.Gray)
	if err != nil {
		t.Fatalf("SSIM: %v", err)
	}
	if score < 0.999 {
		t.Fatalf("identical frames should score ~1.0, got %v", score)
	}
}

func TestSSIMDissimilarFrames(t *testing.T) {
	a := similarity.NormalizeFrame(testsupport.SplitImage(320, 240, color.Gray{Y: 10}, color.Gray{Y: 245}))
	b := similarity.NormalizeFrame(testsupport.SplitImage(320, 240, color.Gray{Y: 245}, color.Gray{Y: 10}))

	score, err := similarity.SSIM(a.Gray, b.Gray)
	if err != nil {
		t.Fatalf("SSIM: %v", err)
	}
	if score > 0.5 {
		t.Fatalf("inverted frames should score low, got %v", score)
	}
}

func TestSSIMOrderIndependent(t *testing.T) {
	a := similarity.NormalizeFrame(testsupport.SolidImage(320, 240, color.Gray{Y: 60}))
	b := similarity.NormalizeFrame(testsupport.SplitImage(320, 240, color.Gray{Y: 60}, color.Gray{Y: 200}))

	forward, err := similarity.SSIM(a.Gray, b.Gray)
	if err != nil {
		t.Fatalf("SSIM: %v", err)
	}
	reverse, err := similarity.SSIM(b.Gray, a.Gray)
	if err != nil {
		t.Fatalf("SSIM: %v", err)
	}
	if forward != reverse {
		t.Fatalf("expected symmetric score, got %v vs %v", forward, reverse)
	}
}

func TestScoreReadsFrameFiles(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "frame_000000.jpg")
	pathB := filepath.Join(dir, "frame_000001.jpg")
	img := testsupport.SplitImage(320, 240, color.RGBA{R: 255, A: 255}, color.RGBA{B: 255, A: 255})
	testsupport.WriteJPEG(t, pathA, img)
	testsupport.WriteJPEG(t, pathB, img)

	score, err := similarity.Score(pathA, pathB)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if score < 0.95 {
		t.Fatalf("same image files should score high, got %v", score)
	}
}

func TestScoreReportsUnreadableFrame(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.png")
	testsupport.WritePNG(t, good, testsupport.SolidImage(64, 64, color.Gray{Y: 128}))

	if _, err := similarity.Score(good, filepath.Join(dir, "missing.png")); err == nil {
		t.Fatal("expected error for missing frame file")
	}

	corrupt := filepath.Join(dir, "corrupt.png")
	testsupport.WriteFile(t, corrupt, 128)
	if _, err := similarity.Score(good, corrupt); err == nil {
		t.Fatal("expected error for corrupt frame file")
	}
}

func TestHistogramDivergence(t *testing.T) {
	red := similarity.NormalizeFrame(testsupport.SolidImage(320, 240, color.RGBA{R: 255, A: 255}))
	blue := similarity.NormalizeFrame(testsupport.SolidImage(320, 240, color.RGBA{B: 255, A: 255}))

	same, err := similarity.HistogramDivergence(red.RGBA, red.RGBA)
	if err != nil {
		t.Fatalf("HistogramDivergence: %v", err)
	}
	if same > 1e-9 {
		t.Fatalf("identical frames should diverge by 0, got %v", same)
	}

	diff, err := similarity.HistogramDivergence(red.RGBA, blue.RGBA)
	if err != nil {
		t.Fatalf("HistogramDivergence: %v", err)
	}
	if diff <= same {
		t.Fatalf("different content should diverge more: %v vs %v", diff, same)
	}
}
