// Package audio wraps the external ffmpeg/ffprobe tools plus a small native
// PCM toolkit used by the in-process conversion strategy.
package audio

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"ecohspeech/internal/app/model"
)

// Canonical artifact parameters. Everything the chain produces targets these.
const (
	CanonicalSampleRate = 16000
	CanonicalChannels   = 1
	CanonicalCodec      = "pcm_s16le"
)

// FFmpeg invokes ffmpeg/ffprobe through a Runner.
type FFmpeg struct {
	BinaryPath string
	ProbePath  string
	Runner     Runner
}

// NewFFmpeg uses the given binary paths, defaulting to PATH lookup.
func NewFFmpeg(binaryPath, probePath string, runner Runner) *FFmpeg {
	if binaryPath == "" {
		binaryPath = "ffmpeg"
	}
	if probePath == "" {
		probePath = "ffprobe"
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &FFmpeg{BinaryPath: binaryPath, ProbePath: probePath, Runner: runner}
}

// TranscodeStandard converts inputPath to the canonical mono 16 kHz WAV with
// default decoder tolerance.
func (f *FFmpeg) TranscodeStandard(ctx context.Context, inputPath, outputPath string) error {
	args := []string{
		"-y", "-i", inputPath,
		"-vn",
		"-acodec", CanonicalCodec,
		"-ar", fmt.Sprint(CanonicalSampleRate),
		"-ac", fmt.Sprint(CanonicalChannels),
		outputPath,
	}
	return f.run(ctx, args)
}

// TranscodePermissive converts with error-tolerant flags: ignore decode
// errors, regenerate timestamps, and widen the probe window. This is the
// first thing tried for messaging-app voice notes, whose Ogg pages are often
// truncated mid-stream.
func (f *FFmpeg) TranscodePermissive(ctx context.Context, inputPath, outputPath string) error {
	args := []string{
		"-y",
		"-err_detect", "ignore_err",
		"-fflags", "+genpts+igndts",
		"-analyzeduration", "100M",
		"-probesize", "100M",
		"-i", inputPath,
		"-vn",
		"-acodec", CanonicalCodec,
		"-ar", fmt.Sprint(CanonicalSampleRate),
		"-ac", fmt.Sprint(CanonicalChannels),
		outputPath,
	}
	return f.run(ctx, args)
}

// DecodeToRawPCM decodes inputPath to headerless s16le mono 16 kHz samples.
// The raw muxer carries no container state, so container-level corruption
// cannot reach the output.
func (f *FFmpeg) DecodeToRawPCM(ctx context.Context, inputPath, outputPath string) error {
	args := []string{
		"-y", "-i", inputPath,
		"-vn",
		"-f", "s16le",
		"-acodec", CanonicalCodec,
		"-ar", fmt.Sprint(CanonicalSampleRate),
		"-ac", fmt.Sprint(CanonicalChannels),
		outputPath,
	}
	return f.run(ctx, args)
}

func (f *FFmpeg) run(ctx context.Context, args []string) error {
	result, err := f.Runner.Run(ctx, f.BinaryPath, args...)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("ffmpeg exit %d: %s", result.ExitCode, lastStderrLine(result.Stderr))
	}
	return nil
}

// Probe reads container metadata without decoding audio content.
func (f *FFmpeg) Probe(ctx context.Context, path string) (*model.FFProbeOutput, error) {
	result, err := f.Runner.Run(ctx, f.ProbePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-show_format",
		path,
	)
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	var out model.FFProbeOutput
	if err := json.Unmarshal([]byte(result.Stdout), &out); err != nil {
		return nil, fmt.Errorf("ffprobe output parse: %w", err)
	}
	return &out, nil
}

// lastStderrLine keeps diagnostics to the line that usually carries the
// actual decoder error rather than the full banner dump.
func lastStderrLine(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	if len(lines) == 0 {
		return ""
	}
	last := strings.TrimSpace(lines[len(lines)-1])
	if last == "" && len(lines) > 1 {
		last = strings.TrimSpace(lines[len(lines)-2])
	}
	if len(last) > 300 {
		log.Printf("truncating ffmpeg stderr line of %d bytes", len(last))
		last = last[:300]
	}
	return last
}
