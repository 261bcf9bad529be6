package api

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"ecohspeech/internal/app/audio"
	apperrors "ecohspeech/internal/app/errors"
	"ecohspeech/internal/app/model"
)

const (
	// DefaultEnergyThreshold is used when ambient-noise calibration fails.
	DefaultEnergyThreshold = 300.0

	calibrationWindowSeconds = 0.5
	calibrationRatio         = 1.5
)

// Client wraps a Recognizer with ambient-noise calibration and error
// classification.
type Client struct {
	recognizer Recognizer
	logger     *zap.Logger
}

func NewClient(recognizer Recognizer, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{recognizer: recognizer, logger: logger}
}

// Transcribe sends the artifact and language code to the provider. Failures
// come back as exactly one of ErrUnrecognized, ErrServiceUnavailable, or
// ErrQuotaExceeded. A successful call with an empty transcript is
// ErrUnrecognized: silence must never report as success.
func (c *Client) Transcribe(ctx context.Context, artifact *model.CanonicalArtifact, languageCode string) (string, error) {
	threshold, err := calibrateAmbientNoise(artifact.Path)
	if err != nil {
		// Calibration is best-effort; a broken calibration primitive
		// must not sink the job.
		c.logger.Warn("ambient noise calibration failed, using default threshold",
			zap.String("artifact", artifact.Path),
			zap.Error(err))
		threshold = DefaultEnergyThreshold
	}

	text, err := c.recognizer.Recognize(ctx, RecognizeRequest{
		AudioPath:       artifact.Path,
		LanguageCode:    languageCode,
		EnergyThreshold: threshold,
	})
	if err != nil {
		return "", classify(err)
	}

	if strings.TrimSpace(text) == "" {
		return "", apperrors.ErrUnrecognized
	}
	return text, nil
}

// calibrateAmbientNoise measures the energy of the leading window of the
// artifact and derives a speech/silence threshold from it, the way desktop
// recognizers adjust_for_ambient_noise before recording.
func calibrateAmbientNoise(path string) (float64, error) {
	pcm, err := audio.DecodeWAV(path)
	if err != nil {
		return 0, err
	}
	window := int(float64(pcm.SampleRate) * calibrationWindowSeconds)
	rms := pcm.RMS(window)
	threshold := rms * calibrationRatio
	if threshold < 50 {
		threshold = 50
	}
	return threshold, nil
}

// classify maps arbitrary provider errors onto the taxonomy. Errors already
// in the taxonomy pass through untouched.
func classify(err error) error {
	switch {
	case isTaxonomy(err):
		return err
	case looksLikeRateLimit(err):
		return apperrors.Wrap(apperrors.ErrQuotaExceeded, err.Error())
	case looksLikeUnrecognized(err):
		return apperrors.Wrap(apperrors.ErrUnrecognized, err.Error())
	default:
		return apperrors.Wrap(apperrors.ErrServiceUnavailable, err.Error())
	}
}

func isTaxonomy(err error) bool {
	for _, sentinel := range []error{
		apperrors.ErrUnrecognized,
		apperrors.ErrServiceUnavailable,
		apperrors.ErrQuotaExceeded,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func looksLikeRateLimit(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "429")
}

func looksLikeUnrecognized(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "could not understand") ||
		strings.Contains(msg, "no speech")
}
