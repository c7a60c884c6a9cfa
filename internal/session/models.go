package session

import "time"

// Status enumerates the lifecycle of an analysis session.
type Status string

const (
	StatusPending      Status = "pending"
	StatusSampling     Status = "sampling"
	StatusTranscribing Status = "transcribing"
	StatusCorrelating  Status = "correlating"
	StatusCompleted    Status = "completed"
	StatusFailed       Status = "failed"
	StatusReview       Status = "review"
)

var processingStatuses = map[Status]struct{}{
	StatusSampling:     {},
	StatusTranscribing: {},
	StatusCorrelating:  {},
}

// IsProcessing reports whether the status marks an in-flight pipeline stage.
func (s Status) IsProcessing() bool {
	_, ok := processingStatuses[s]
	return ok
}

// Session is one analysis run over a single video file.
type Session struct {
	ID              string
	SourcePath      string
	Title           string
	Status          Status
	ProgressStage   string
	ProgressPercent float64
	ProgressMessage string
	ErrorMessage    string
	ExportPath      string
	SegmentCount    int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HealthSummary aggregates session counts for diagnostic output.
type HealthSummary struct {
	Total      int
	Pending    int
	Processing int
	Completed  int
	Failed     int
	Review     int
}
