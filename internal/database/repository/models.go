package repository

import "time"

// Outcome values stored for a submission.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Submission represents one settled widget request.
type Submission struct {
	ID        string
	Widget    string
	Input     string
	Outcome   string
	Detail    string
	Latency   time.Duration
	CreatedAt time.Time
}
