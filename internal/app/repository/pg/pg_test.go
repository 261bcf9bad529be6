package pg

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecohspeech/internal/app/model"
)

func TestRecord(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewWithDB(db)
	ts := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO transcriptions`).
		WithArgs("note.ogg", "es-CL", "opus", "hola mundo", "success", ts).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.Record(model.TranscriptionResult{
		Filename:       "note.ogg",
		LanguageCode:   "es-CL",
		DetectedFormat: "opus",
		Transcript:     "hola mundo",
		Status:         model.StatusSuccess,
		Timestamp:      ts,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewWithDB(db)
	mock.ExpectExec(`INSERT INTO transcriptions`).
		WillReturnError(assert.AnError)

	err = repo.Record(model.TranscriptionResult{Filename: "x.wav", Timestamp: time.Now()})
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewWithDB(db)
	ts := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"file_name", "language_code", "detected_format", "transcript", "status", "created_at"}).
		AddRow("b.wav", "en-US", "wav", "second", "success", ts).
		AddRow("a.ogg", "es-CL", "ogg", "first", "conversion_error", ts.Add(-time.Minute))

	mock.ExpectQuery(`SELECT file_name, language_code`).
		WithArgs(10).
		WillReturnRows(rows)

	results, err := repo.List(10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "b.wav", results[0].Filename)
	assert.Equal(t, model.StatusConversionError, results[1].Status)
	assert.Equal(t, model.FormatTag("ogg"), results[1].DetectedFormat)
}
