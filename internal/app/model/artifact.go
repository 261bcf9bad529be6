package model

// CanonicalArtifact is the normalized mono 16 kHz s16le WAV handed to the
// transcription client. The path points at temporary storage owned by the
// job that produced it.
type CanonicalArtifact struct {
	Channels        int
	SampleRateHz    int
	DurationSeconds float64
	FrameCount      int64
	ByteSize        int64
	Path            string
}

// AttemptOutcome classifies how one conversion strategy ended.
type AttemptOutcome string

const (
	AttemptSuccess           AttemptOutcome = "success"
	AttemptToolFailure       AttemptOutcome = "tool_failure"
	AttemptValidationFailure AttemptOutcome = "validation_failure"
	AttemptTimeout           AttemptOutcome = "timeout"
)

// ConversionAttempt records one strategy tried by the fallback chain.
// Kept only for diagnostics.
type ConversionAttempt struct {
	StrategyName string
	Ordinal      int
	Outcome      AttemptOutcome
	Diagnostic   string
}
