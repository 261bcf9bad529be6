package testutil

import (
	"math"
	"os"
	"testing"

	"ecohspeech/internal/app/audio"
)

// WriteTone writes a mono 16-bit sine-wave WAV to path.
func WriteTone(t *testing.T, path string, sampleRate int, seconds float64) {
	t.Helper()
	frames := int(float64(sampleRate) * seconds)
	samples := make([]int16, frames)
	for i := range samples {
		samples[i] = int16(9000 * math.Sin(2*math.Pi*220*float64(i)/float64(sampleRate)))
	}
	if err := audio.WriteWAV(path, &audio.PCMData{Samples: samples, SampleRate: sampleRate, Channels: 1}); err != nil {
		t.Fatalf("write tone fixture: %v", err)
	}
}

// WriteSilence writes a mono 16-bit all-zero WAV to path.
func WriteSilence(t *testing.T, path string, sampleRate int, seconds float64) {
	t.Helper()
	frames := int(float64(sampleRate) * seconds)
	if err := audio.WriteWAV(path, &audio.PCMData{Samples: make([]int16, frames), SampleRate: sampleRate, Channels: 1}); err != nil {
		t.Fatalf("write silence fixture: %v", err)
	}
}

// WriteGarbage writes size bytes of non-audio content to path.
func WriteGarbage(t *testing.T, path string, size int) {
	t.Helper()
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i * 31)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write garbage fixture: %v", err)
	}
}
