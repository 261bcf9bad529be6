package sqlite

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"

	"ecohspeech/internal/app/model"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS transcriptions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	file_name TEXT NOT NULL,
	language_code TEXT NOT NULL,
	detected_format TEXT NOT NULL,
	transcript TEXT NOT NULL,
	status TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);`

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(dbFilePath string) *SQLiteDB {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc", dbFilePath))
	if err != nil {
		log.Fatal(err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		log.Fatalf("Failed to create transcriptions table: %v\n", err)
	}
	return &SQLiteDB{db: db}
}

// NewWithDB wraps an existing connection; used by tests.
func NewWithDB(db *sql.DB) *SQLiteDB {
	return &SQLiteDB{db: db}
}

func (sdb *SQLiteDB) Close() error {
	return sdb.db.Close()
}

func (sdb *SQLiteDB) Record(result model.TranscriptionResult) error {
	insertSQL := `INSERT INTO transcriptions (file_name, language_code, detected_format, transcript, status, created_at) VALUES (?, ?, ?, ?, ?, ?);`
	_, err := sdb.db.Exec(insertSQL,
		result.Filename, result.LanguageCode, string(result.DetectedFormat),
		result.Transcript, string(result.Status), result.Timestamp)
	if err != nil {
		return fmt.Errorf("insert failed: %w", err)
	}
	return nil
}

func (sdb *SQLiteDB) List(limit int) ([]model.TranscriptionResult, error) {
	sqlStr := `
		SELECT file_name, language_code, detected_format, transcript, status, created_at
		FROM transcriptions
		ORDER BY created_at DESC, id DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = sdb.db.Query(sqlStr+" LIMIT ?", limit)
	} else {
		rows, err = sdb.db.Query(sqlStr)
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	results := make([]model.TranscriptionResult, 0)
	for rows.Next() {
		var r model.TranscriptionResult
		var format, status string
		if err := rows.Scan(&r.Filename, &r.LanguageCode, &format, &r.Transcript, &status, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		r.DetectedFormat = model.FormatTag(format)
		r.Status = model.ResultStatus(status)
		results = append(results, r)
	}
	return results, rows.Err()
}
