package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

// Run is one recorded pipeline run.
type Run struct {
	ID            int64           `json:"id"`
	Technology    string          `json:"technology"`
	Level         string          `json:"experience_level"`
	DurationHours int             `json:"duration_hours"`
	Status        string          `json:"status"`
	Result        json.RawMessage `json:"result"`
	CreatedAt     time.Time       `json:"created_at"`
}

// RunStore persists completed pipeline runs in sqlite so `history` can
// list them later. Results are stored as their JSON encoding — the same
// bytes the CLI writes to --output.
type RunStore struct {
	DB *sql.DB
}

func NewRunStore(dbPath string) (*RunStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	schema := `CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		technology TEXT NOT NULL,
		level TEXT NOT NULL,
		duration_hours INTEGER NOT NULL,
		status TEXT NOT NULL,
		result TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create runs table: %w", err)
	}

	return &RunStore{DB: db}, nil
}

func (s *RunStore) SaveRun(technology, level string, durationHours int, status string, result any) (int64, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return 0, fmt.Errorf("failed to encode result: %w", err)
	}

	res, err := s.DB.Exec(
		`INSERT INTO runs (technology, level, duration_hours, status, result) VALUES (?, ?, ?, ?, ?)`,
		technology, level, durationHours, status, string(data),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *RunStore) GetRun(id int64) (*Run, error) {
	row := s.DB.QueryRow(
		`SELECT id, technology, level, duration_hours, status, result, created_at FROM runs WHERE id = ?`, id)

	var r Run
	var result string
	if err := row.Scan(&r.ID, &r.Technology, &r.Level, &r.DurationHours, &r.Status, &result, &r.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run %d not found", id)
		}
		return nil, err
	}
	r.Result = json.RawMessage(result)
	return &r, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *RunStore) ListRuns(limit int) ([]Run, error) {
	if limit < 1 {
		limit = 10
	}
	rows, err := s.DB.Query(
		`SELECT id, technology, level, duration_hours, status, result, created_at FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var result string
		if err := rows.Scan(&r.ID, &r.Technology, &r.Level, &r.DurationHours, &r.Status, &result, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Result = json.RawMessage(result)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *RunStore) Close() error {
	return s.DB.Close()
}
