package sqlgen

import (
	"regexp"
	"strings"

	"github.com/doeshing/sqlchat-go/internal/domain"
)

var (
	fenceMarker     = regexp.MustCompile("(?i)```sql\\s*|```\\s*")
	terminatedStmt  = regexp.MustCompile(`(?is)SELECT\s+.*?;`)
	emptyProjection = regexp.MustCompile(`(?i)SELECT\s+FROM`)
)

// matcher yields candidate statement spans from model text, in order of
// appearance. Matchers are evaluated most specific first; a looser matcher is
// consulted only when every span of the stricter ones failed structural
// validation.
type matcher func(text string) []string

// Extractor pulls the first structurally valid SELECT statement out of raw
// model output.
type Extractor struct {
	tables   []string
	matchers []matcher
}

// NewExtractor builds an extractor bound to the catalog's table names.
func NewExtractor(catalog domain.SchemaCatalog) *Extractor {
	return &Extractor{
		tables: catalog.TableNames(),
		matchers: []matcher{
			matchTerminated,
			matchUntilNextSelect,
			matchToEnd,
		},
	}
}

// Extract strips code fences and applies the matcher list. It returns the
// first candidate passing structural validation with a trailing separator
// ensured, or ok=false when no matcher yields a valid candidate.
func (e *Extractor) Extract(modelOutput string) (string, bool) {
	text := fenceMarker.ReplaceAllString(modelOutput, "")

	for _, match := range e.matchers {
		for _, span := range match(text) {
			candidate := strings.TrimSpace(span)
			if !e.StructurallyValid(candidate) {
				continue
			}
			if !strings.HasSuffix(candidate, ";") {
				candidate += ";"
			}
			return candidate, true
		}
	}
	return "", false
}

// StructurallyValid checks the minimal SELECT shape: both SELECT and FROM
// present, a non-empty projection list, at least one catalog table referenced,
// and an ON clause whenever there is a JOIN.
func (e *Extractor) StructurallyValid(sql string) bool {
	upper := strings.ToUpper(sql)
	if !strings.Contains(upper, "SELECT") || !strings.Contains(upper, "FROM") {
		return false
	}
	if emptyProjection.MatchString(sql) {
		return false
	}
	hasTable := false
	for _, table := range e.tables {
		if strings.Contains(upper, strings.ToUpper(table)) {
			hasTable = true
			break
		}
	}
	if !hasTable {
		return false
	}
	if strings.Contains(upper, "JOIN") && !strings.Contains(upper, "ON") {
		return false
	}
	return true
}

func matchTerminated(text string) []string {
	return terminatedStmt.FindAllString(text, -1)
}

// matchUntilNextSelect spans from each SELECT up to the next SELECT or end of
// text. RE2 has no lookahead, so the spans are computed by index scanning.
func matchUntilNextSelect(text string) []string {
	offsets := selectOffsets(text)
	spans := make([]string, 0, len(offsets))
	for i, start := range offsets {
		end := len(text)
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		spans = append(spans, text[start:end])
	}
	return spans
}

func matchToEnd(text string) []string {
	offsets := selectOffsets(text)
	spans := make([]string, 0, len(offsets))
	for _, start := range offsets {
		spans = append(spans, text[start:])
	}
	return spans
}

// selectOffsets reports the byte offsets of every SELECT keyword followed by
// whitespace, case-insensitively.
func selectOffsets(text string) []int {
	upper := strings.ToUpper(text)
	var offsets []int
	for i := 0; ; {
		j := strings.Index(upper[i:], "SELECT")
		if j < 0 {
			break
		}
		pos := i + j
		next := pos + len("SELECT")
		if next < len(text) && isSpace(text[next]) {
			offsets = append(offsets, pos)
		}
		i = next
	}
	return offsets
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
