package repository

import "ecohspeech/internal/app/model"

// TranscriptionDAO persists the transcription history across sessions.
type TranscriptionDAO interface {
	Close() error

	// Record appends one terminal result to the history.
	Record(result model.TranscriptionResult) error

	// List returns the most recent results, newest first. limit <= 0 means
	// no limit.
	List(limit int) ([]model.TranscriptionResult, error)
}
