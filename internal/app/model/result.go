package model

import "time"

// ResultStatus is the terminal status of one job.
type ResultStatus string

const (
	StatusSuccess         ResultStatus = "success"
	StatusEmpty           ResultStatus = "empty"
	StatusUnrecognized    ResultStatus = "unrecognized"
	StatusServiceError    ResultStatus = "service_error"
	StatusConversionError ResultStatus = "conversion_error"
	StatusCriticalError   ResultStatus = "critical_error"
)

// IsFailure reports whether the status counts against the batch summary.
func (s ResultStatus) IsFailure() bool {
	return s != StatusSuccess
}

// TranscriptionResult is the single row emitted for each job. Immutable once
// created; corrections become new entries, existing ones are never rewritten.
type TranscriptionResult struct {
	Filename       string       `json:"filename"`
	LanguageCode   string       `json:"language"`
	DetectedFormat FormatTag    `json:"format"`
	Transcript     string       `json:"transcript"`
	Status         ResultStatus `json:"status"`
	Timestamp      time.Time    `json:"timestamp"`
}
