package sqlgen

import (
	"testing"

	"github.com/doeshing/sqlchat-go/internal/domain"
)

func newTestExtractor() *Extractor {
	return NewExtractor(domain.NewSchemaCatalog())
}

func TestExtractTerminatedStatement(t *testing.T) {
	e := newTestExtractor()
	got, ok := e.Extract("好的，查询如下：SELECT * FROM users; 希望有帮助。")
	if !ok {
		t.Fatal("expected a candidate")
	}
	if got != "SELECT * FROM users;" {
		t.Errorf("got %q", got)
	}
}

func TestExtractStripsCodeFences(t *testing.T) {
	e := newTestExtractor()
	got, ok := e.Extract("```sql\nSELECT username FROM users;\n```")
	if !ok {
		t.Fatal("expected a candidate")
	}
	if got != "SELECT username FROM users;" {
		t.Errorf("got %q", got)
	}
}

func TestExtractUnterminatedStatement(t *testing.T) {
	e := newTestExtractor()
	got, ok := e.Extract("SELECT * FROM products WHERE price > 100")
	if !ok {
		t.Fatal("expected a candidate")
	}
	if got != "SELECT * FROM products WHERE price > 100;" {
		t.Errorf("got %q", got)
	}
}

func TestExtractSecondCandidateWhenFirstInvalid(t *testing.T) {
	e := newTestExtractor()
	// The first statement references no catalog table and must be skipped.
	got, ok := e.Extract("SELECT * FROM accounts; SELECT * FROM orders;")
	if !ok {
		t.Fatal("expected a candidate")
	}
	if got != "SELECT * FROM orders;" {
		t.Errorf("got %q", got)
	}
}

func TestExtractMultipleUnterminatedSelects(t *testing.T) {
	e := newTestExtractor()
	got, ok := e.Extract("SELECT broken FROM nowhere\nSELECT * FROM users")
	if !ok {
		t.Fatal("expected a candidate")
	}
	if got != "SELECT * FROM users;" {
		t.Errorf("got %q", got)
	}
}

func TestExtractNoUsableStatement(t *testing.T) {
	e := newTestExtractor()
	for _, text := range []string{
		"抱歉，我无法回答这个问题。",
		"",
		"SELECT FROM users;",
		"SELECT * FROM unknown_table;",
	} {
		if got, ok := e.Extract(text); ok {
			t.Errorf("Extract(%q) = %q, want no candidate", text, got)
		}
	}
}

func TestStructurallyValid(t *testing.T) {
	e := newTestExtractor()
	tests := []struct {
		sql  string
		want bool
	}{
		{"SELECT * FROM users", true},
		{"SELECT o.* FROM orders o JOIN users u ON o.user_id = u.user_id", true},
		{"SELECT * FROM orders o JOIN users u", false},
		{"SELECT FROM users", false},
		{"DROP TABLE users", false},
		{"SELECT * FROM elsewhere", false},
	}
	for _, tt := range tests {
		if got := e.StructurallyValid(tt.sql); got != tt.want {
			t.Errorf("StructurallyValid(%q) = %v, want %v", tt.sql, got, tt.want)
		}
	}
}
