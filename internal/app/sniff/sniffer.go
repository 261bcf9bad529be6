// Package sniff detects the real container format of uploaded audio,
// independent of the claimed file extension.
package sniff

import (
	"bytes"
	"path/filepath"
	"strings"

	"ecohspeech/internal/app/model"
)

// Detect inspects the leading bytes of data against known container magic
// numbers and falls back to the lower-cased filename extension. It never
// fails; inputs with no signature and no extension come back as "unknown".
// Pure function, no side effects.
func Detect(data []byte, filename string) model.FormatTag {
	if tag, ok := detectBySignature(data); ok {
		return tag
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return model.FormatUnknown
	}
	return model.FormatTag(ext)
}

func detectBySignature(data []byte) (model.FormatTag, bool) {
	if len(data) < 4 {
		return "", false
	}

	switch {
	case bytes.HasPrefix(data, []byte("OggS")):
		// Opus streams still live in an Ogg container; look for the
		// OpusHead capture pattern inside the first page.
		if bytes.Contains(data[:min(len(data), 64)], []byte("OpusHead")) {
			return "opus", true
		}
		return model.FormatOgg, true
	case bytes.HasPrefix(data, []byte("RIFF")):
		if len(data) >= 12 && bytes.Equal(data[8:12], []byte("WAVE")) {
			return model.FormatWav, true
		}
		return "", false
	case bytes.HasPrefix(data, []byte("fLaC")):
		return model.FormatFlac, true
	case bytes.HasPrefix(data, []byte("ID3")):
		return model.FormatMp3, true
	case data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		// Bare MPEG audio frame sync.
		return model.FormatMp3, true
	case len(data) >= 12 && bytes.Equal(data[4:8], []byte("ftyp")):
		// ISO-BMFF. M4A files carry an "M4A " brand; anything else in
		// this family is treated the same downstream.
		return model.FormatM4a, true
	}
	return "", false
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
