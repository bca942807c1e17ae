package domain

// RecognitionResult is the structured payload of a finished recognition job.
// A job without text yet is represented by a nil result, not an error.
type RecognitionResult struct {
	JobID      string  `json:"job_id"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}
