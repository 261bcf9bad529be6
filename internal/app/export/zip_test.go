package export

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"ecohspeech/internal/app/model"
)

func sampleResults() []model.TranscriptionResult {
	at := time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC)
	return []model.TranscriptionResult{
		{
			Filename:       "PTT-20230101-WA0001.opus",
			LanguageCode:   "es-CL",
			DetectedFormat: model.FormatOgg,
			Transcript:     "hola, ¿cómo estás?",
			Status:         model.StatusSuccess,
			Timestamp:      at,
		},
		{
			Filename:       "broken.ogg",
			LanguageCode:   "es-CL",
			DetectedFormat: model.FormatOgg,
			Transcript:     "Could not convert the audio to a transcribable format.",
			Status:         model.StatusConversionError,
			Timestamp:      at,
		},
	}
}

func readZip(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	entries := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		entries[f.Name] = string(body)
	}
	return entries
}

func TestToZipOneEntryPerResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ToZip(&buf, sampleResults()))

	entries := readZip(t, buf.Bytes())
	require.Len(t, entries, 2)

	body, ok := entries["transcript_PTT-20230101-WA0001opus.txt"]
	require.True(t, ok)
	assert.Contains(t, body, "File: PTT-20230101-WA0001.opus")
	assert.Contains(t, body, "Language: es-CL")
	assert.Contains(t, body, "Format: ogg")
	assert.Contains(t, body, "Date: 2024-03-09T15:04:05Z")
	assert.Contains(t, body, "Status: success")
	assert.Contains(t, body, "\n\nhola, ¿cómo estás?")
}

func TestToZipIncludesFailures(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ToZip(&buf, sampleResults()))

	entries := readZip(t, buf.Bytes())
	body, ok := entries["transcript_brokenogg.txt"]
	require.True(t, ok)
	assert.Contains(t, body, "Status: conversion_error")
	assert.Contains(t, body, "Could not convert the audio")
}

func TestToZipEmptyHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ToZip(&buf, nil))
	assert.Empty(t, readZip(t, buf.Bytes()))
}

func TestSafeEntryName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"voice note.ogg", "voice noteogg"},
		{"../../etc/passwd", "etcpasswd"},
		{"   ", "result"},
		{"ñandú.ogg", "andogg"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, safeEntryName(tc.in), tc.in)
	}
}

func TestToExcelWritesRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.xlsx")
	require.NoError(t, ToExcel(sampleResults(), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "File", sheet.Rows[0].Cells[0].Value)
	assert.Equal(t, "PTT-20230101-WA0001.opus", sheet.Rows[1].Cells[0].Value)
	assert.Equal(t, "conversion_error", sheet.Rows[2].Cells[4].Value)
}
