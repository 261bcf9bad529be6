package convert

import (
	"context"
	"fmt"
	"math"
	"os"

	"ecohspeech/internal/app/model"
)

// Prober reads container metadata without decoding audio content.
// *audio.FFmpeg satisfies it.
type Prober interface {
	Probe(ctx context.Context, path string) (*model.FFProbeOutput, error)
}

// Limits are the heuristic thresholds below which an artifact is rejected.
// They are tuning parameters, not physical constraints.
type Limits struct {
	MinByteSize        int64
	MinDurationSeconds float64
	MinFrameCount      int64
}

// DefaultLimits rejects artifacts under 1 KiB, 0.1 s, or 100 frames.
func DefaultLimits() Limits {
	return Limits{
		MinByteSize:        1024,
		MinDurationSeconds: 0.1,
		MinFrameCount:      100,
	}
}

// Verdict is the accept/reject decision about a produced artifact.
// Warnings flag working-but-imperfect parameters; they never reject.
type Verdict struct {
	Valid    bool
	Reason   string
	Warnings []string
	Artifact *model.CanonicalArtifact
}

// Validator inspects candidate artifacts before they are trusted for
// transcription.
type Validator struct {
	prober Prober
	limits Limits
}

func NewValidator(prober Prober, limits Limits) *Validator {
	return &Validator{prober: prober, limits: limits}
}

// Validate applies the rejection rules in order: byte size, duration, frame
// count. Channel count and sample rate that deviate from the canonical
// parameters are soft warnings only, so a slightly-off but transcribable
// conversion is not thrown away.
func (v *Validator) Validate(ctx context.Context, path string) Verdict {
	info, err := os.Stat(path)
	if err != nil {
		return Verdict{Reason: fmt.Sprintf("artifact unreadable: %v", err)}
	}
	if info.Size() < v.limits.MinByteSize {
		return Verdict{Reason: fmt.Sprintf("too small, likely empty (%d bytes)", info.Size())}
	}

	probe, err := v.prober.Probe(ctx, path)
	if err != nil {
		return Verdict{Reason: fmt.Sprintf("metadata probe failed: %v", err)}
	}

	stream, ok := audioStream(probe)
	if !ok {
		return Verdict{Reason: "no audio stream found"}
	}

	duration := stream.Duration
	if duration == 0 {
		duration = probe.Format.Duration
	}
	if duration < v.limits.MinDurationSeconds {
		return Verdict{Reason: fmt.Sprintf("too short (%.3fs)", duration)}
	}

	frames := int64(math.Round(duration * float64(stream.SampleRate)))
	if frames < v.limits.MinFrameCount {
		return Verdict{Reason: fmt.Sprintf("insufficient frames (%d)", frames)}
	}

	var warnings []string
	if stream.Channels != 1 {
		warnings = append(warnings, fmt.Sprintf("expected mono, got %d channels", stream.Channels))
	}
	if stream.SampleRate != 16000 {
		warnings = append(warnings, fmt.Sprintf("expected 16000 Hz, got %d", stream.SampleRate))
	}

	return Verdict{
		Valid:    true,
		Warnings: warnings,
		Artifact: &model.CanonicalArtifact{
			Channels:        stream.Channels,
			SampleRateHz:    stream.SampleRate,
			DurationSeconds: duration,
			FrameCount:      frames,
			ByteSize:        info.Size(),
			Path:            path,
		},
	}
}

func audioStream(probe *model.FFProbeOutput) (model.FFProbeStream, bool) {
	for _, s := range probe.Streams {
		if s.CodecType == "audio" {
			return s, true
		}
	}
	return model.FFProbeStream{}, false
}
