// Package convert implements the ordered conversion fallback chain that
// turns arbitrary user audio into the canonical mono 16 kHz WAV.
package convert

import (
	"context"
	"errors"
	"log"
	"os"
	"regexp"
	"time"

	"ecohspeech/internal/app/audio"
	apperrors "ecohspeech/internal/app/errors"
	"ecohspeech/internal/app/metrics"
	"ecohspeech/internal/app/model"
)

// WhatsApp-style voice note names: PTT-20230101-WA0001.opus, AUD-... variants.
var voiceNotePattern = regexp.MustCompile(`(?i)^(PTT|AUD)-\d{8}-WA\d+`)

// IsVoiceNoteName reports whether filename follows a known messaging-app
// voice-note naming convention.
func IsVoiceNoteName(filename string) bool {
	return voiceNotePattern.MatchString(filename)
}

// Chain tries conversion strategies in priority order until one survives
// validation. Attempts run strictly in sequence: the ordering encodes
// likelihood of success and the risk of silently-empty output, so it must
// stay deterministic.
type Chain struct {
	ffmpeg         *audio.FFmpeg
	validator      *Validator
	attemptTimeout time.Duration
}

// NewChain builds a chain over the given external tool and validator.
// attemptTimeout bounds each strategy's wall clock; zero means 30 s.
func NewChain(ffmpeg *audio.FFmpeg, validator *Validator, attemptTimeout time.Duration) *Chain {
	if attemptTimeout <= 0 {
		attemptTimeout = 30 * time.Second
	}
	return &Chain{ffmpeg: ffmpeg, validator: validator, attemptTimeout: attemptTimeout}
}

// strategiesFor selects and orders the strategies for one input. The
// permissive transcode joins only for voice-note names and Ogg-family
// containers, and then always first.
func (c *Chain) strategiesFor(filename string, format model.FormatTag) []Strategy {
	base := []Strategy{
		&standardStrategy{ffmpeg: c.ffmpeg},
		&inProcessStrategy{},
		&twoStageRawStrategy{ffmpeg: c.ffmpeg},
	}
	if IsVoiceNoteName(filename) || format.IsOggFamily() {
		return append([]Strategy{&permissiveStrategy{ffmpeg: c.ffmpeg}}, base...)
	}
	return base
}

// Convert runs the fallback chain. On success it returns the validated
// canonical artifact, owned by the caller. On exhaustion every intermediate
// file is removed and the error carries the full per-strategy attempt log.
func (c *Chain) Convert(ctx context.Context, inputPath, filename string, format model.FormatTag) (*model.CanonicalArtifact, error) {
	workDir, err := os.MkdirTemp("", "ecohspeech-convert-*")
	if err != nil {
		return nil, apperrors.Wrap(err, "create conversion workspace")
	}

	in := AttemptInput{
		InputPath: inputPath,
		Filename:  filename,
		Format:    format,
		WorkDir:   workDir,
	}

	var attempts []model.ConversionAttempt
	for i, strategy := range c.strategiesFor(filename, format) {
		attempt := c.tryStrategy(ctx, strategy, i, in)
		metrics.ObserveConversionAttempt(string(strategy.Kind()), string(attempt.outcome().Outcome))
		attempts = append(attempts, attempt.outcome())

		if attempt.artifact != nil {
			// Keep only the winning artifact; everything else in the
			// workspace is an intermediate.
			final, err := c.promote(attempt.artifact, workDir)
			if err != nil {
				return nil, err
			}
			log.Printf("conversion succeeded for %q via %s on attempt %d", filename, strategy.Kind(), i+1)
			return final, nil
		}

		if ctx.Err() != nil {
			break
		}
	}

	os.RemoveAll(workDir)
	return nil, &apperrors.ConversionExhaustedError{Filename: filename, Attempts: attempts}
}

type attemptResult struct {
	strategy   StrategyKind
	ordinal    int
	artifact   *model.CanonicalArtifact
	failure    model.AttemptOutcome
	diagnostic string
}

func (a attemptResult) outcome() model.ConversionAttempt {
	out := model.ConversionAttempt{
		StrategyName: string(a.strategy),
		Ordinal:      a.ordinal,
		Outcome:      a.failure,
		Diagnostic:   a.diagnostic,
	}
	if a.artifact != nil {
		out.Outcome = model.AttemptSuccess
		out.Diagnostic = "ok"
	}
	return out
}

func (c *Chain) tryStrategy(ctx context.Context, strategy Strategy, ordinal int, in AttemptInput) attemptResult {
	res := attemptResult{strategy: strategy.Kind(), ordinal: ordinal}

	attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	candidate, err := strategy.Attempt(attemptCtx, in)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
			res.failure = model.AttemptTimeout
			res.diagnostic = "timed out after " + c.attemptTimeout.String()
			return res
		}
		res.failure = model.AttemptToolFailure
		res.diagnostic = err.Error()
		return res
	}

	verdict := c.validator.Validate(ctx, candidate)
	if !verdict.Valid {
		os.Remove(candidate)
		res.failure = model.AttemptValidationFailure
		res.diagnostic = verdict.Reason
		return res
	}

	for _, w := range verdict.Warnings {
		log.Printf("conversion warning for %q (%s): %s", in.Filename, strategy.Kind(), w)
	}
	res.artifact = verdict.Artifact
	return res
}

// promote moves the winning artifact out of the conversion workspace so the
// workspace can be dropped wholesale.
func (c *Chain) promote(artifact *model.CanonicalArtifact, workDir string) (*model.CanonicalArtifact, error) {
	f, err := os.CreateTemp("", "ecohspeech-artifact-*.wav")
	if err != nil {
		os.RemoveAll(workDir)
		return nil, apperrors.Wrap(err, "allocate artifact path")
	}
	finalPath := f.Name()
	f.Close()
	os.Remove(finalPath)

	if err := os.Rename(artifact.Path, finalPath); err != nil {
		os.RemoveAll(workDir)
		return nil, apperrors.Wrap(err, "promote artifact")
	}
	os.RemoveAll(workDir)

	promoted := *artifact
	promoted.Path = finalPath
	return &promoted, nil
}
