// Package export bundles session results into user-downloadable formats.
package export

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"
	"time"

	"ecohspeech/internal/app/model"
)

// ToZip writes one text entry per result. Each entry carries a fixed header
// block followed by a blank line and the transcript text; failed jobs carry
// their failure message in place of a transcript.
func ToZip(w io.Writer, results []model.TranscriptionResult) error {
	zw := zip.NewWriter(w)

	for _, r := range results {
		name := fmt.Sprintf("transcript_%s.txt", safeEntryName(r.Filename))
		entry, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("create zip entry %s: %w", name, err)
		}
		if _, err := io.WriteString(entry, formatEntry(r)); err != nil {
			return fmt.Errorf("write zip entry %s: %w", name, err)
		}
	}

	return zw.Close()
}

func formatEntry(r model.TranscriptionResult) string {
	var b strings.Builder
	b.WriteString("=== EcohSpeech Transcription ===\n")
	fmt.Fprintf(&b, "File: %s\n", r.Filename)
	fmt.Fprintf(&b, "Language: %s\n", r.LanguageCode)
	fmt.Fprintf(&b, "Format: %s\n", r.DetectedFormat)
	fmt.Fprintf(&b, "Date: %s\n", r.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&b, "Status: %s\n", r.Status)
	b.WriteString(strings.Repeat("=", 50))
	b.WriteString("\n\n")
	b.WriteString(r.Transcript)
	return b.String()
}

// safeEntryName keeps alphanumerics, spaces, hyphens and underscores, which
// also strips any path separators an uploaded filename might smuggle in.
func safeEntryName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	out := strings.TrimRight(b.String(), " ")
	if out == "" {
		return "result"
	}
	return out
}
