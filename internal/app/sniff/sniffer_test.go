package sniff

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ecohspeech/internal/app/model"
)

func TestDetectBySignature(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		filename string
		want     model.FormatTag
	}{
		{"ogg_page", []byte("OggS\x00\x02rest-of-page"), "note.bin", model.FormatOgg},
		{"opus_in_ogg", []byte("OggS\x00\x02\x00\x00\x00\x00\x00\x00OpusHead"), "voice.dat", "opus"},
		{"riff_wave", append([]byte("RIFF\x24\x08\x00\x00WAVE"), []byte("fmt ")...), "a.mp3", model.FormatWav},
		{"flac", []byte("fLaC\x00\x00\x00\x22"), "song", model.FormatFlac},
		{"id3_mp3", []byte("ID3\x04\x00\x00\x00"), "track.wav", model.FormatMp3},
		{"mpeg_sync", []byte{0xFF, 0xFB, 0x90, 0x00}, "x", model.FormatMp3},
		{"m4a_ftyp", []byte("\x00\x00\x00\x20ftypM4A \x00\x00"), "clip", model.FormatM4a},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.data, tt.filename))
		})
	}
}

func TestDetectExtensionFallback(t *testing.T) {
	// No recognizable signature: the claimed extension wins, lower-cased.
	assert.Equal(t, model.FormatTag("opus"), Detect([]byte("garbage-bytes"), "PTT-20230101-WA0001.OPUS"))
	assert.Equal(t, model.FormatTag("m4a"), Detect([]byte{0x01, 0x02, 0x03, 0x04}, "memo.m4a"))
}

func TestDetectUnknown(t *testing.T) {
	assert.Equal(t, model.FormatUnknown, Detect(nil, "noextension"))
	assert.Equal(t, model.FormatUnknown, Detect([]byte{0x00}, ""))
}

func TestDetectIsPure(t *testing.T) {
	data := []byte("OggS page data")
	before := string(data)
	Detect(data, "a.ogg")
	assert.Equal(t, before, string(data))
}

func TestOggFamily(t *testing.T) {
	assert.True(t, model.FormatOgg.IsOggFamily())
	assert.True(t, model.FormatTag("opus").IsOggFamily())
	assert.True(t, model.FormatTag("oga").IsOggFamily())
	assert.False(t, model.FormatWav.IsOggFamily())
}
