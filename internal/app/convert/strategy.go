package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"ecohspeech/internal/app/audio"
	"ecohspeech/internal/app/model"
)

// StrategyKind is the closed set of conversion strategies. The chain holds
// these in a deliberate order, never a loose map.
type StrategyKind string

const (
	PermissiveTranscode StrategyKind = "permissive_transcode"
	StandardTranscode   StrategyKind = "standard_transcode"
	InProcessDecode     StrategyKind = "in_process_decode"
	TwoStageRaw         StrategyKind = "two_stage_raw"
)

// AttemptInput is everything one strategy needs to try a conversion.
type AttemptInput struct {
	InputPath string
	Filename  string
	Format    model.FormatTag
	WorkDir   string
}

// Strategy is one specific, ordered method of producing a canonical artifact
// from an arbitrary input file. Attempt returns the candidate path or an
// error; it never validates its own output.
type Strategy interface {
	Kind() StrategyKind
	Attempt(ctx context.Context, in AttemptInput) (string, error)
}

func candidatePath(workDir string, kind StrategyKind, ext string) string {
	return filepath.Join(workDir, fmt.Sprintf("%s-%s%s", kind, uuid.NewString()[:8], ext))
}

// permissiveStrategy shells out to ffmpeg with error-tolerant decode flags.
// Tried first for messaging-app voice notes and Ogg-family containers.
type permissiveStrategy struct {
	ffmpeg *audio.FFmpeg
}

func (s *permissiveStrategy) Kind() StrategyKind { return PermissiveTranscode }

func (s *permissiveStrategy) Attempt(ctx context.Context, in AttemptInput) (string, error) {
	out := candidatePath(in.WorkDir, s.Kind(), ".wav")
	if err := s.ffmpeg.TranscodePermissive(ctx, in.InputPath, out); err != nil {
		os.Remove(out)
		return "", err
	}
	return out, nil
}

// standardStrategy is the default-tolerance external transcode.
type standardStrategy struct {
	ffmpeg *audio.FFmpeg
}

func (s *standardStrategy) Kind() StrategyKind { return StandardTranscode }

func (s *standardStrategy) Attempt(ctx context.Context, in AttemptInput) (string, error) {
	out := candidatePath(in.WorkDir, s.Kind(), ".wav")
	if err := s.ffmpeg.TranscodeStandard(ctx, in.InputPath, out); err != nil {
		os.Remove(out)
		return "", err
	}
	return out, nil
}

// inProcessStrategy decodes without the external tool: native RIFF PCM
// decode, downmix, resample, loudness normalize, canonical export. Only WAV
// inputs qualify, but it rescues files the external tool chokes on.
type inProcessStrategy struct{}

func (s *inProcessStrategy) Kind() StrategyKind { return InProcessDecode }

func (s *inProcessStrategy) Attempt(ctx context.Context, in AttemptInput) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pcm, err := audio.DecodeWAV(in.InputPath)
	if err != nil {
		return "", fmt.Errorf("in-process decode: %w", err)
	}

	pcm = pcm.Downmix().Resample(audio.CanonicalSampleRate).Normalize()

	out := candidatePath(in.WorkDir, s.Kind(), ".wav")
	if err := audio.WriteWAV(out, pcm); err != nil {
		os.Remove(out)
		return "", err
	}
	return out, nil
}

// twoStageRawStrategy decodes to headerless raw PCM first, absorbing
// container-level corruption, then wraps the raw samples in a canonical WAV
// header. Last resort: it isolates container parsing faults from audio
// decoding faults.
type twoStageRawStrategy struct {
	ffmpeg *audio.FFmpeg
}

func (s *twoStageRawStrategy) Kind() StrategyKind { return TwoStageRaw }

func (s *twoStageRawStrategy) Attempt(ctx context.Context, in AttemptInput) (string, error) {
	rawPath := candidatePath(in.WorkDir, s.Kind(), ".pcm")
	defer os.Remove(rawPath)

	if err := s.ffmpeg.DecodeToRawPCM(ctx, in.InputPath, rawPath); err != nil {
		return "", err
	}

	out := candidatePath(in.WorkDir, s.Kind(), ".wav")
	if err := audio.WrapRawPCM(rawPath, out, audio.CanonicalSampleRate, audio.CanonicalChannels); err != nil {
		os.Remove(out)
		return "", fmt.Errorf("raw wrap: %w", err)
	}
	return out, nil
}
