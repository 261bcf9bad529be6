package sqlite

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecohspeech/internal/app/model"
)

func TestRecordAndList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewWithDB(db)
	ts := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO transcriptions`).
		WithArgs("PTT-20230101-WA0001.opus", "es-AR", "opus", "che, escuchame", "success", ts).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Record(model.TranscriptionResult{
		Filename:       "PTT-20230101-WA0001.opus",
		LanguageCode:   "es-AR",
		DetectedFormat: "opus",
		Transcript:     "che, escuchame",
		Status:         model.StatusSuccess,
		Timestamp:      ts,
	}))

	rows := sqlmock.NewRows([]string{"file_name", "language_code", "detected_format", "transcript", "status", "created_at"}).
		AddRow("PTT-20230101-WA0001.opus", "es-AR", "opus", "che, escuchame", "success", ts)

	mock.ExpectQuery(`SELECT file_name, language_code`).
		WillReturnRows(rows)

	results, err := repo.List(0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, model.StatusSuccess, results[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
