package timeline

// Metadata aggregates timeline-wide figures for the export record.
type Metadata struct {
	TotalSegments      int     `json:"total_segments"`
	TotalDuration      float64 `json:"total_duration"`
	AvgSegmentDuration float64 `json:"avg_segment_duration"`
}

// Export is the structured record a finished analysis serializes to. The
// record round-trips through JSON without loss.
type Export struct {
	Segments []TimelineSegment `json:"segments"`
	Metadata Metadata          `json:"metadata"`
}

// NewExport assembles the export record for a timeline. An empty timeline
// yields zeroed metadata rather than a division error.
func NewExport(segments []TimelineSegment) Export {
	export := Export{Segments: append([]TimelineSegment(nil), segments...)}
	if len(segments) == 0 {
		export.Segments = []TimelineSegment{}
		return export
	}

	var maxEnd, totalDuration float64
	for _, segment := range segments {
		if segment.EndTime > maxEnd {
			maxEnd = segment.EndTime
		}
		totalDuration += segment.Duration()
	}
	export.Metadata = Metadata{
		TotalSegments:      len(segments),
		TotalDuration:      maxEnd,
		AvgSegmentDuration: totalDuration / float64(len(segments)),
	}
	return export
}
