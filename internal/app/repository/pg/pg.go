package pg

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"ecohspeech/internal/app/model"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS transcriptions (
	id SERIAL PRIMARY KEY,
	file_name TEXT NOT NULL,
	language_code TEXT NOT NULL,
	detected_format TEXT NOT NULL,
	transcript TEXT NOT NULL,
	status TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);`

type PostgresDB struct {
	db *sql.DB
}

// NewPostgresDB connects with a lib/pq DSN, e.g.
// "user=postgres password=... dbname=ecohspeech sslmode=disable".
func NewPostgresDB(dsn string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create transcriptions table: %w", err)
	}
	return &PostgresDB{db: db}, nil
}

// NewWithDB wraps an existing connection; used by tests.
func NewWithDB(db *sql.DB) *PostgresDB {
	return &PostgresDB{db: db}
}

func (p *PostgresDB) Close() error {
	return p.db.Close()
}

func (p *PostgresDB) Record(result model.TranscriptionResult) error {
	insertSQL := `INSERT INTO transcriptions (file_name, language_code, detected_format, transcript, status, created_at) VALUES ($1, $2, $3, $4, $5, $6);`
	_, err := p.db.Exec(insertSQL,
		result.Filename, result.LanguageCode, string(result.DetectedFormat),
		result.Transcript, string(result.Status), result.Timestamp)
	if err != nil {
		return fmt.Errorf("insert failed: %w", err)
	}
	return nil
}

func (p *PostgresDB) List(limit int) ([]model.TranscriptionResult, error) {
	sqlStr := `
		SELECT file_name, language_code, detected_format, transcript, status, created_at
		FROM transcriptions
		ORDER BY created_at DESC, id DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = p.db.Query(sqlStr+" LIMIT $1", limit)
	} else {
		rows, err = p.db.Query(sqlStr)
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
