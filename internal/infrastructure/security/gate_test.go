package security

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGateAllowsSelect(t *testing.T) {
	gate, err := NewGate("")
	if err != nil {
		t.Fatalf("NewGate() error = %v", err)
	}

	statements := []string{
		"SELECT * FROM users;",
		"SELECT o.* FROM orders o JOIN users u ON o.user_id = u.user_id WHERE u.username = '张三';",
		"SELECT category, COUNT(*) as product_count FROM products GROUP BY category;",
	}
	for _, sql := range statements {
		assessment, err := gate.Evaluate(sql)
		if err != nil {
			t.Fatalf("Evaluate(%q) error = %v", sql, err)
		}
		if !assessment.Allowed {
			t.Errorf("Evaluate(%q) rejected with keyword %s", sql, assessment.Keyword)
		}
	}
}

func TestGateRejectsWriteKeywords(t *testing.T) {
	gate, err := NewGate("")
	if err != nil {
		t.Fatalf("NewGate() error = %v", err)
	}

	tests := []struct {
		sql     string
		keyword string
	}{
		{"INSERT INTO users VALUES (1);", "INSERT"},
		{"UPDATE users SET username = 'x';", "UPDATE"},
		{"DELETE FROM users;", "DELETE"},
		{"DROP TABLE users;", "DROP"},
		{"ALTER TABLE users ADD COLUMN x;", "ALTER"},
		{"CREATE TABLE x (id INTEGER);", "CREATE"},
		{"TRUNCATE TABLE users;", "TRUNCATE"},
		{"select 1; drop table users;", "DROP"},
	}
	for _, tt := range tests {
		assessment, err := gate.Evaluate(tt.sql)
		if err != nil {
			t.Fatalf("Evaluate(%q) error = %v", tt.sql, err)
		}
		if assessment.Allowed {
			t.Errorf("Evaluate(%q) allowed, want rejection", tt.sql)
			continue
		}
		if assessment.Keyword != tt.keyword {
			t.Errorf("Evaluate(%q) keyword = %s, want %s", tt.sql, assessment.Keyword, tt.keyword)
		}
	}
}

func TestGateSubstringScanRejectsLiterals(t *testing.T) {
	gate, err := NewGate("")
	if err != nil {
		t.Fatalf("NewGate() error = %v", err)
	}
	// The scan is deliberately coarse: a forbidden word inside a string
	// literal still rejects.
	assessment, err := gate.Evaluate("SELECT * FROM products WHERE name = 'update kit';")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if assessment.Allowed {
		t.Error("expected rejection for embedded keyword")
	}
}

func TestGateLoadsCustomRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := "rules:\n  forbidden_keywords:\n    - drop\n    - attach\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	gate, err := NewGate(path)
	if err != nil {
		t.Fatalf("NewGate() error = %v", err)
	}

	if a, _ := gate.Evaluate("ATTACH DATABASE 'x' AS y;"); a.Allowed {
		t.Error("custom keyword not enforced")
	}
	// INSERT is not in the custom list.
	if a, _ := gate.Evaluate("INSERT INTO users VALUES (1);"); !a.Allowed {
		t.Error("default keyword leaked into custom rules")
	}
}

func TestGateMissingFileFallsBack(t *testing.T) {
	gate, err := NewGate(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("NewGate() error = %v", err)
	}
	if a, _ := gate.Evaluate("DROP TABLE users;"); a.Allowed {
		t.Error("expected default blacklist to apply")
	}
}
