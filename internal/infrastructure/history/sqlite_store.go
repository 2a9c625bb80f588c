// Package history persists conversion records in a SQLite database.
package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/doeshing/sqlchat-go/internal/domain"
	"github.com/doeshing/sqlchat-go/internal/ports"
)

// SQLiteStore persists conversion history in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the history database at path, defaulting
// to ~/.sqlchat/history.db. A store that failed to open degrades to no-ops so
// history never takes the pipeline down.
func NewSQLiteStore(path string) *SQLiteStore {
	if path == "" {
		path = filepath.Join(userHome(), ".sqlchat", "history.db")
	}
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{path: path}
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		db.Close()
		return &SQLiteStore{path: path}
	}
	return store
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS conversions (
		id TEXT PRIMARY KEY,
		timestamp TEXT,
		question TEXT,
		sql_text TEXT,
		method TEXT,
		success INTEGER,
		row_count INTEGER,
		duration_ms INTEGER
	);`)
	return err
}

// Save inserts a new record, assigning an ID and timestamp when missing.
func (s *SQLiteStore) Save(record domain.ConversionRecord) error {
	if s.db == nil {
		return nil
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO conversions
		(id, timestamp, question, sql_text, method, success, row_count, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Timestamp.Format(time.RFC3339),
		record.Question,
		record.SQL,
		record.Method,
		boolToInt(record.Success),
		record.RowCount,
		record.DurationMS,
	)
	return err
}

// Records returns history entries, newest first (limit/search optional).
func (s *SQLiteStore) Records(limit int, search string) ([]domain.ConversionRecord, error) {
	if s.db == nil {
		return nil, nil
	}
	builder := strings.Builder{}
	builder.WriteString("SELECT id, timestamp, question, sql_text, method, success, row_count, duration_ms FROM conversions")
	var args []interface{}
	if search != "" {
		builder.WriteString(" WHERE question LIKE ? OR sql_text LIKE ?")
		args = append(args, "%"+search+"%", "%"+search+"%")
	}
	builder.WriteString(" ORDER BY datetime(timestamp) DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []domain.ConversionRecord
	for rows.Next() {
		var rec domain.ConversionRecord
		var ts string
		var success int
		if err := rows.Scan(&rec.ID, &ts, &rec.Question, &rec.SQL, &rec.Method, &success, &rec.RowCount, &rec.DurationMS); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			rec.Timestamp = t
		}
		rec.Success = success == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all history entries.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return nil
	}
	_, err := s.db.Exec("DELETE FROM conversions")
	return err
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func userHome() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
