package audio

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	calls  [][]string
	result RunResult
	err    error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (RunResult, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.result, f.err
}

func TestTranscodeStandardArgs(t *testing.T) {
	r := &fakeRunner{}
	ff := NewFFmpeg("", "", r)

	require.NoError(t, ff.TranscodeStandard(context.Background(), "in.ogg", "out.wav"))
	require.Len(t, r.calls, 1)

	call := r.calls[0]
	assert.Equal(t, "ffmpeg", call[0])
	assert.Contains(t, call, "-acodec")
	assert.Contains(t, call, "pcm_s16le")
	assert.Contains(t, call, "16000")
	assert.Contains(t, call, "-ac")
	assert.NotContains(t, call, "-err_detect")
	assert.Equal(t, "out.wav", call[len(call)-1])
}

func TestTranscodePermissiveArgs(t *testing.T) {
	r := &fakeRunner{}
	ff := NewFFmpeg("/opt/ffmpeg", "", r)

	require.NoError(t, ff.TranscodePermissive(context.Background(), "note.opus", "out.wav"))
	call := r.calls[0]
	assert.Equal(t, "/opt/ffmpeg", call[0])
	assert.Contains(t, call, "-err_detect")
	assert.Contains(t, call, "ignore_err")
	assert.Contains(t, call, "+genpts+igndts")
	assert.Contains(t, call, "-probesize")

	// Tolerance flags must precede -i so they apply to the decoder.
	iIdx, errIdx := -1, -1
	for i, a := range call {
		if a == "-i" {
			iIdx = i
		}
		if a == "-err_detect" {
			errIdx = i
		}
	}
	assert.Greater(t, iIdx, errIdx)
}

func TestDecodeToRawPCMArgs(t *testing.T) {
	r := &fakeRunner{}
	ff := NewFFmpeg("", "", r)

	require.NoError(t, ff.DecodeToRawPCM(context.Background(), "in.ogg", "out.pcm"))
	call := r.calls[0]
	assert.Contains(t, call, "-f")
	assert.Contains(t, call, "s16le")
}

func TestRunSurfacesStderr(t *testing.T) {
	r := &fakeRunner{
		result: RunResult{Stderr: "banner line\nin.ogg: Invalid data found when processing input\n", ExitCode: 1},
		err:    errors.New("exit status 1"),
	}
	ff := NewFFmpeg("", "", r)

	err := ff.TranscodeStandard(context.Background(), "in.ogg", "out.wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid data found")
	assert.NotContains(t, err.Error(), "banner line")
}

func TestRunReportsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &fakeRunner{err: errors.New("signal: killed")}
	ff := NewFFmpeg("", "", r)

	err := ff.TranscodeStandard(ctx, "in.ogg", "out.wav")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProbeParsesStreams(t *testing.T) {
	r := &fakeRunner{result: RunResult{Stdout: `{
		"streams": [{"codec_type":"audio","codec_name":"pcm_s16le","sample_rate":"16000","channels":1,"duration":"2.5"}],
		"format": {"duration":"2.5","size":"80044"}
	}`}}
	ff := NewFFmpeg("", "", r)

	out, err := ff.Probe(context.Background(), "x.wav")
	require.NoError(t, err)
	require.Len(t, out.Streams, 1)
	assert.Equal(t, 16000, out.Streams[0].SampleRate)
	assert.Equal(t, 1, out.Streams[0].Channels)
	assert.InDelta(t, 2.5, out.Format.Duration, 0.001)
	assert.Equal(t, int64(80044), out.Format.Size)
}
