package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/doeshing/sqlchat-go/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	return NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
}

func TestSaveAndRecords(t *testing.T) {
	store := newTestStore(t)

	record := domain.ConversionRecord{
		Question:   "查询所有用户信息",
		SQL:        "SELECT * FROM users;",
		Method:     domain.MethodFallback,
		Success:    true,
		RowCount:   3,
		DurationMS: 12,
	}
	if err := store.Save(record); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	records, err := store.Records(0, "")
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	got := records[0]
	if got.ID == "" {
		t.Error("expected an assigned ID")
	}
	if got.Question != record.Question || got.SQL != record.SQL || got.Method != record.Method {
		t.Errorf("record mismatch: %+v", got)
	}
	if !got.Success || got.RowCount != 3 || got.DurationMS != 12 {
		t.Errorf("record fields mismatch: %+v", got)
	}
}

func TestRecordsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, question := range []string{"第一条", "第二条", "第三条"} {
		err := store.Save(domain.ConversionRecord{
			Question:  question,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	records, err := store.Records(2, "")
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Question != "第三条" || records[1].Question != "第二条" {
		t.Errorf("unexpected order: %q, %q", records[0].Question, records[1].Question)
	}
}

func TestRecordsSearch(t *testing.T) {
	store := newTestStore(t)
	entries := []domain.ConversionRecord{
		{Question: "查询所有用户信息", SQL: "SELECT * FROM users;"},
		{Question: "统计订单总数", SQL: "SELECT COUNT(*) as total_orders FROM orders;"},
	}
	for _, rec := range entries {
		if err := store.Save(rec); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	byQuestion, err := store.Records(0, "订单")
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(byQuestion) != 1 || byQuestion[0].Question != "统计订单总数" {
		t.Errorf("search by question: %+v", byQuestion)
	}

	bySQL, err := store.Records(0, "users")
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(bySQL) != 1 || bySQL[0].Question != "查询所有用户信息" {
		t.Errorf("search by sql: %+v", bySQL)
	}
}

func TestClear(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save(domain.ConversionRecord{Question: "q"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	records, err := store.Records(0, "")
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %d after clear, want 0", len(records))
	}
}

func TestDegradedStoreIsSilent(t *testing.T) {
	store := &SQLiteStore{path: "/nonexistent"}
	if err := store.Save(domain.ConversionRecord{Question: "q"}); err != nil {
		t.Errorf("degraded Save() error = %v", err)
	}
	records, err := store.Records(0, "")
	if err != nil || records != nil {
		t.Errorf("degraded Records() = %v, %v", records, err)
	}
	if err := store.Clear(); err != nil {
		t.Errorf("degraded Clear() error = %v", err)
	}
}
