package sqlgen

import (
	"strings"
)

// PostProcess normalizes internal whitespace, ensures a trailing statement
// separator and applies the name-filter repair heuristic. Applying it twice
// yields the same text as applying it once.
func PostProcess(sql, question string) string {
	sql = strings.Join(strings.Fields(sql), " ")
	if !strings.HasSuffix(sql, ";") {
		sql += ";"
	}
	return injectNameFilter(sql, question)
}

// injectNameFilter is a best-effort repair, not guaranteed correctness: when
// the question names a person absent from the SQL, the users table is
// referenced and there is no WHERE clause yet, a username filter is attached
// before the trailing separator. It can mispair with statements whose
// structure does not anticipate a WHERE at that position.
func injectNameFilter(sql, question string) string {
	upper := strings.ToUpper(sql)
	if !strings.Contains(upper, "USERS") || strings.Contains(upper, "WHERE") {
		return sql
	}
	for _, name := range personNames {
		if strings.Contains(question, name) && !strings.Contains(sql, name) {
			return strings.TrimSuffix(sql, ";") + " WHERE username = '" + name + "';"
		}
	}
	return sql
}
