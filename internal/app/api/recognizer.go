// Package api defines the remote speech-to-text capability and the client
// that adapts provider failures onto the application's error taxonomy.
package api

import "context"

// RecognizeRequest carries one canonical artifact to a provider.
type RecognizeRequest struct {
	AudioPath    string
	LanguageCode string
	// EnergyThreshold is the speech/silence segmentation hint produced by
	// ambient-noise calibration. Providers without a segmentation stage
	// ignore it.
	EnergyThreshold float64
}

// Recognizer converts a canonical audio artifact into text.
type Recognizer interface {
	Recognize(ctx context.Context, req RecognizeRequest) (string, error)
}
