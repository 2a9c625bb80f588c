// Package store is the SQLite storage collaborator: schema bootstrap,
// plan-only dry-runs and read query execution.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/doeshing/sqlchat-go/internal/domain"
	"github.com/doeshing/sqlchat-go/internal/ports"
)

const bootstrapSchema = `
CREATE TABLE IF NOT EXISTS users (
	user_id INTEGER PRIMARY KEY AUTOINCREMENT,
	username VARCHAR(50) NOT NULL,
	email VARCHAR(100),
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS products (
	product_id INTEGER PRIMARY KEY AUTOINCREMENT,
	name VARCHAR(100) NOT NULL,
	price DECIMAL(10,2) NOT NULL,
	stock INTEGER DEFAULT 0,
	category VARCHAR(50),
	description TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS orders (
	order_id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(user_id),
	product_id INTEGER NOT NULL REFERENCES products(product_id),
	quantity INTEGER NOT NULL,
	total_amount DECIMAL(10,2) NOT NULL,
	order_date DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE VIEW IF NOT EXISTS order_details AS
SELECT o.order_id, u.username, u.email, p.name AS product_name,
	p.price AS unit_price, o.quantity, o.total_amount, o.order_date
FROM orders o
JOIN users u ON o.user_id = u.user_id
JOIN products p ON o.product_id = p.product_id;
`

var seedStatements = []string{
	`INSERT INTO users (username, email) VALUES
		('张三', 'zhangsan@example.com'),
		('李四', 'lisi@example.com'),
		('王五', 'wangwu@example.com')`,
	`INSERT INTO products (name, price, stock, category, description) VALUES
		('iPhone 15', 5999.00, 50, '手机', '苹果旗舰手机'),
		('小米14', 3999.00, 80, '手机', '小米旗舰手机'),
		('MacBook Pro', 12999.00, 20, '电脑', '苹果笔记本电脑'),
		('iPad Air', 4399.00, 35, '平板', '苹果平板电脑')`,
	`INSERT INTO orders (user_id, product_id, quantity, total_amount, order_date) VALUES
		(1, 1, 1, 5999.00, '2024-01-15 10:30:00'),
		(1, 3, 1, 12999.00, '2024-02-20 14:00:00'),
		(2, 2, 2, 7998.00, '2024-03-05 09:15:00'),
		(3, 4, 1, 4399.00, '2024-03-18 16:45:00')`,
}

// SQLiteStore implements the Storage port over a SQLite database file.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// Open creates (or opens) the database at path and bootstraps the schema and
// seed rows on first run. An empty path opens an in-memory database.
func Open(path string) (*SQLiteStore, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	} else if dir := filepath.Dir(dsn); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.Bootstrap(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewWithDB wraps an existing connection. The caller owns bootstrap.
func NewWithDB(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Bootstrap creates the tables and the order_details view, then seeds sample
// rows when the users table is still empty.
func (s *SQLiteStore) Bootstrap(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, bootstrapSchema); err != nil {
		return fmt.Errorf("bootstrap schema: %w", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, stmt := range seedStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("seed data: %w", err)
		}
	}
	return nil
}

// ValidateSyntax dry-runs the statement through EXPLAIN QUERY PLAN, which
// evaluates the plan without reading or writing data. The trailing separator
// is stripped first. A nil return means the statement is valid.
func (s *SQLiteStore) ValidateSyntax(ctx context.Context, sqlText string) error {
	clean := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(sqlText), ";"))
	rows, err := s.db.QueryContext(ctx, "EXPLAIN QUERY PLAN "+clean)
	if err != nil {
		return err
	}
	defer rows.Close()
	return rows.Err()
}

// Execute runs the statement and collects the full result set. Engine errors
// are reported in-band so the summarizer can render them.
func (s *SQLiteStore) Execute(ctx context.Context, sqlText string) domain.QueryResult {
	rows, err := s.db.QueryContext(ctx, sqlText)
	if err != nil {
		return domain.QueryResult{Success: false, Error: err.Error(), Columns: []string{}, Rows: []map[string]any{}}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return domain.QueryResult{Success: false, Error: err.Error(), Columns: []string{}, Rows: []map[string]any{}}
	}

	result := domain.QueryResult{Success: true, Columns: columns, Rows: []map[string]any{}}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return domain.QueryResult{Success: false, Error: err.Error(), Columns: []string{}, Rows: []map[string]any{}}
		}
		row := make(map[string]any, len(columns))
		for i, column := range columns {
			row[column] = normalizeValue(values[i])
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return domain.QueryResult{Success: false, Error: err.Error(), Columns: []string{}, Rows: []map[string]any{}}
	}

	result.RowCount = len(result.Rows)
	return result
}

// SchemaDescription renders a human-readable table/column/foreign-key listing
// from the live database, used by the schema endpoint.
func (s *SQLiteStore) SchemaDescription(ctx context.Context) (string, error) {
	tables, err := s.tableNames(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, table := range tables {
		fmt.Fprintf(&b, "\n## 表名: %s\n", table)
		b.WriteString("列信息:\n")
		if err := s.describeColumns(ctx, &b, table); err != nil {
			return "", err
		}
		if err := s.describeForeignKeys(ctx, &b, table); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func (s *SQLiteStore) tableNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM sqlite_master WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *SQLiteStore) describeColumns(ctx context.Context, b *strings.Builder, table string) error {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, colType    string
			defaultVal       sql.NullString
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultVal, &pk); err != nil {
			return err
		}
		fmt.Fprintf(b, "  - %s (%s)", name, colType)
		if pk > 0 {
			b.WriteString(" [主键]")
		}
		if notNull > 0 {
			b.WriteString(" [非空]")
		}
		if defaultVal.Valid {
			fmt.Fprintf(b, " [默认值: %s]", defaultVal.String)
		}
		b.WriteString("\n")
	}
	return rows.Err()
}

func (s *SQLiteStore) describeForeignKeys(ctx context.Context, b *strings.Builder, table string) error {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA foreign_key_list(%q)", table))
	if err != nil {
		return err
	}
	defer rows.Close()
	wroteHeader := false
	for rows.Next() {
		var (
			id, seq                            int
			refTable, from, to                 string
			onUpdate, onDelete, matchBehaviour string
		)
		if err := rows.Scan(&id, &seq, &refTable, &from, &to, &onUpdate, &onDelete, &matchBehaviour); err != nil {
			return err
		}
		if !wroteHeader {
			b.WriteString("外键关系:\n")
			wroteHeader = true
		}
		fmt.Fprintf(b, "  - %s -> %s.%s\n", from, refTable, to)
	}
	return rows.Err()
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close releases the underlying connection pool.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

var _ ports.Storage = (*SQLiteStore)(nil)
