// Package batch drives jobs end to end: sniff, convert, validate,
// transcribe, cleanup, one result per input file.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "ecohspeech/internal/app/errors"
	"ecohspeech/internal/app/model"
	"ecohspeech/internal/app/sniff"
)

// JobState tracks where a job is in its lifecycle.
type JobState string

const (
	StateCreated          JobState = "created"
	StateSniffed          JobState = "sniffed"
	StateConverting       JobState = "converting"
	StateConverted        JobState = "converted"
	StateConversionFailed JobState = "conversion_failed"
	StateTranscribing     JobState = "transcribing"
	StateDone             JobState = "done"
	StateCriticalError    JobState = "critical_error"
)

// Converter produces a validated canonical artifact or fails with a chain
// exhaustion error. *convert.Chain satisfies it.
type Converter interface {
	Convert(ctx context.Context, inputPath, filename string, format model.FormatTag) (*model.CanonicalArtifact, error)
}

// Transcriber turns a canonical artifact into text. *api.Client satisfies it.
type Transcriber interface {
	Transcribe(ctx context.Context, artifact *model.CanonicalArtifact, languageCode string) (string, error)
}

// DebugStore takes ownership of artifacts retained for user download.
// *session.Store satisfies it.
type DebugStore interface {
	RetainForDebug(artifactPath, originalFilename string) (string, error)
}

const unrecognizedGuidance = "Could not understand the audio. Try a clearer recording, a different language, or better audio quality."

// JobRunner executes one job at a time. The canonical artifact is released
// on every exit path unless RetainArtifacts transfers it to the debug store.
type JobRunner struct {
	converter Converter
	client    Transcriber
	logger    *zap.Logger

	// RetainArtifacts keeps the canonical WAV for debugging download
	// instead of deleting it after the job.
	RetainArtifacts bool
	debugStore      DebugStore
}

func NewJobRunner(converter Converter, client Transcriber, debugStore DebugStore, logger *zap.Logger) *JobRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobRunner{
		converter:  converter,
		client:     client,
		debugStore: debugStore,
		logger:     logger,
	}
}

// Run takes a job from raw bytes to a terminal TranscriptionResult. It never
// returns an error and never panics outward: unexpected faults become a
// CriticalError result after cleanup.
func (r *JobRunner) Run(ctx context.Context, job model.AudioJob) (result model.TranscriptionResult) {
	state := StateCreated
	var artifact *model.CanonicalArtifact
	var inputPath string

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("job panicked",
				zap.String("filename", job.Filename),
				zap.String("state", string(state)),
				zap.Any("panic", rec))
			result = r.terminal(job, model.StatusCriticalError,
				fmt.Sprintf("Unexpected error while processing: %v", rec))
		}
		r.cleanup(inputPath, artifact, job.Filename)
	}()

	inputPath, err := r.stageInput(job)
	if err != nil {
		state = StateCriticalError
		return r.terminal(job, model.StatusCriticalError, fmt.Sprintf("Could not stage input file: %v", err))
	}

	if job.DetectedFormat == "" {
		job.DetectedFormat = sniff.Detect(job.SourceBytes, job.Filename)
	}
	state = StateSniffed

	state = StateConverting
	artifact, err = r.converter.Convert(ctx, inputPath, job.Filename, job.DetectedFormat)
	if err != nil {
		if exhausted, ok := apperrors.IsConversionExhausted(err); ok {
			state = StateConversionFailed
			r.logger.Warn("conversion exhausted",
				zap.String("filename", job.Filename),
				zap.Int("attempts", len(exhausted.Attempts)))
			return r.terminal(job, model.StatusConversionError,
				"Could not convert the audio to a transcribable format. "+exhausted.Error())
		}
		state = StateCriticalError
		return r.terminal(job, model.StatusCriticalError, fmt.Sprintf("Conversion failed unexpectedly: %v", err))
	}
	state = StateConverted

	state = StateTranscribing
	text, err := r.client.Transcribe(ctx, artifact, job.LanguageCode)
	if err != nil {
		return r.transcriptionFailure(job, err)
	}

	state = StateDone
	return r.terminal(job, model.StatusSuccess, text)
}

func (r *JobRunner) transcriptionFailure(job model.AudioJob, err error) model.TranscriptionResult {
	switch {
	case errors.Is(err, apperrors.ErrUnrecognized):
		return r.terminal(job, model.StatusUnrecognized, unrecognizedGuidance)
	case errors.Is(err, apperrors.ErrQuotaExceeded):
		return r.terminal(job, model.StatusServiceError,
			"Transcription quota exceeded. Wait a while and re-run this file.")
	case errors.Is(err, apperrors.ErrServiceUnavailable):
		return r.terminal(job, model.StatusServiceError,
			fmt.Sprintf("Transcription service unavailable: %v", err))
	default:
		return r.terminal(job, model.StatusCriticalError, fmt.Sprintf("Unexpected transcription error: %v", err))
	}
}

func (r *JobRunner) terminal(job model.AudioJob, status model.ResultStatus, text string) model.TranscriptionResult {
	return model.TranscriptionResult{
		Filename:       job.Filename,
		LanguageCode:   job.LanguageCode,
		DetectedFormat: job.DetectedFormat,
		Transcript:     text,
		Status:         status,
		Timestamp:      time.Now(),
	}
}

// stageInput writes the job's source bytes to a private temporary file. No
// two jobs ever share a temporary path.
func (r *JobRunner) stageInput(job model.AudioJob) (string, error) {
	dir := os.TempDir()
	path := filepath.Join(dir, fmt.Sprintf("ecohspeech-input-%s-%s", uuid.NewString()[:8], sanitizeBase(job.Filename)))
	if err := os.WriteFile(path, job.SourceBytes, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

func (r *JobRunner) cleanup(inputPath string, artifact *model.CanonicalArtifact, filename string) {
	if inputPath != "" {
		os.Remove(inputPath)
	}
	if artifact == nil {
		return
	}
	if r.RetainArtifacts && r.debugStore != nil {
		if _, err := r.debugStore.RetainForDebug(artifact.Path, filename); err == nil {
			return
		}
		// Retention failed; fall through so the file is not leaked.
	}
	os.Remove(artifact.Path)
}

func sanitizeBase(name string) string {
	base := filepath.Base(name)
	out := make([]rune, 0, len(base))
	for _, c := range base {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9',
			c == '.', c == '-', c == '_':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
