package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecohspeech/internal/app/model"
)

type stubProber struct {
	out *model.FFProbeOutput
	err error
}

func (s *stubProber) Probe(context.Context, string) (*model.FFProbeOutput, error) {
	return s.out, s.err
}

func probeOutput(channels, rate int, duration float64) *model.FFProbeOutput {
	return &model.FFProbeOutput{
		Streams: []model.FFProbeStream{{
			CodecType:  "audio",
			CodecName:  "pcm_s16le",
			SampleRate: rate,
			Channels:   channels,
			Duration:   duration,
		}},
		Format: model.FFProbeFormat{Duration: duration},
	}
}

func writeBytes(t *testing.T, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "candidate.wav")
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	return path
}

func TestValidateTooSmall(t *testing.T) {
	v := NewValidator(&stubProber{}, DefaultLimits())
	verdict := v.Validate(context.Background(), writeBytes(t, 200))

	assert.False(t, verdict.Valid)
	assert.Contains(t, verdict.Reason, "too small")
}

func TestValidateMissingFile(t *testing.T) {
	v := NewValidator(&stubProber{}, DefaultLimits())
	verdict := v.Validate(context.Background(), "/nonexistent/file.wav")

	assert.False(t, verdict.Valid)
	assert.Contains(t, verdict.Reason, "unreadable")
}

func TestValidateTooShort(t *testing.T) {
	v := NewValidator(&stubProber{out: probeOutput(1, 16000, 0.05)}, DefaultLimits())
	verdict := v.Validate(context.Background(), writeBytes(t, 4096))

	assert.False(t, verdict.Valid)
	assert.Contains(t, verdict.Reason, "too short")
}

func TestValidateInsufficientFrames(t *testing.T) {
	// Long enough in seconds only because of an absurdly low sample rate.
	v := NewValidator(&stubProber{out: probeOutput(1, 80, 0.5)}, DefaultLimits())
	verdict := v.Validate(context.Background(), writeBytes(t, 4096))

	assert.False(t, verdict.Valid)
	assert.Contains(t, verdict.Reason, "insufficient frames")
}

func TestValidateProbeFailure(t *testing.T) {
	v := NewValidator(&stubProber{err: errors.New("ffprobe blew up")}, DefaultLimits())
	verdict := v.Validate(context.Background(), writeBytes(t, 4096))

	assert.False(t, verdict.Valid)
	assert.Contains(t, verdict.Reason, "probe failed")
}

func TestValidateValidCanonical(t *testing.T) {
	v := NewValidator(&stubProber{out: probeOutput(1, 16000, 2.0)}, DefaultLimits())
	verdict := v.Validate(context.Background(), writeBytes(t, 64044))

	require.True(t, verdict.Valid)
	assert.Empty(t, verdict.Warnings)
	require.NotNil(t, verdict.Artifact)
	assert.Equal(t, 1, verdict.Artifact.Channels)
	assert.Equal(t, 16000, verdict.Artifact.SampleRateHz)
	assert.Equal(t, int64(32000), verdict.Artifact.FrameCount)
	assert.Equal(t, int64(64044), verdict.Artifact.ByteSize)
}

func TestValidateWarnsWithoutRejecting(t *testing.T) {
	// Stereo 44.1 kHz is off-spec but still transcribable.
	v := NewValidator(&stubProber{out: probeOutput(2, 44100, 1.5)}, DefaultLimits())
	verdict := v.Validate(context.Background(), writeBytes(t, 300000))

	require.True(t, verdict.Valid)
	assert.Len(t, verdict.Warnings, 2)
}

func TestValidateConfigurableLimits(t *testing.T) {
	limits := Limits{MinByteSize: 10, MinDurationSeconds: 0.01, MinFrameCount: 1}
	v := NewValidator(&stubProber{out: probeOutput(1, 16000, 0.02)}, limits)
	verdict := v.Validate(context.Background(), writeBytes(t, 64))

	assert.True(t, verdict.Valid)
}
