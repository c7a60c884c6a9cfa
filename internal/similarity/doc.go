// Package similarity scores visual similarity between sampled video frames.
//
// Frames are decoded, scaled to a fixed comparison size, and reduced to
// grayscale before scoring. Two complementary measures are provided:
//
//   - SSIM: mean structural similarity over local windows, used to decide
//     segment boundaries
//   - HistogramDivergence: color distribution distance, used as a secondary
//     diagnostic when a boundary fires
//
// Both operate on the Gray planes produced by LoadGray so a pair of frames
// is only decoded once per comparison.
package similarity
