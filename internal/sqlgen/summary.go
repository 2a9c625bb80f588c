package sqlgen

import (
	"fmt"
	"strings"

	"github.com/doeshing/sqlchat-go/internal/domain"
)

// Summarize renders a human-readable sentence for a query result. It never
// fails: any shape mismatch falls through to the default row-count phrasing.
func Summarize(question, sql string, result domain.QueryResult) string {
	if !result.Success {
		message := result.Error
		if message == "" {
			message = "未知错误"
		}
		return "查询执行失败: " + message
	}
	if result.RowCount == 0 {
		return "未找到匹配的数据。"
	}

	lower := strings.ToLower(question)
	switch {
	case containsAny(lower, "统计", "总数", "数量"):
		if summary, ok := statisticsSummary(result); ok {
			return summary
		}
	case strings.Contains(lower, "平均"):
		if summary, ok := markerSummary(result, "avg", "平均值为"); ok {
			return summary
		}
	case containsAny(lower, "最多", "最高"):
		if summary, ok := markerSummary(result, "max", "最大值为"); ok {
			return summary
		}
	case containsAny(lower, "最少", "最低"):
		if summary, ok := markerSummary(result, "min", "最小值为"); ok {
			return summary
		}
	}

	if result.RowCount == 1 {
		return "查询完成，找到1条匹配记录。"
	}
	return fmt.Sprintf("查询完成，共找到%d条匹配记录。", result.RowCount)
}

// statisticsSummary renders two-column rows as "label: value" pairs.
func statisticsSummary(result domain.QueryResult) (string, bool) {
	if len(result.Columns) != 2 {
		return "", false
	}
	parts := make([]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		label, okLabel := row[result.Columns[0]]
		value, okValue := row[result.Columns[1]]
		if !okLabel || !okValue {
			return "", false
		}
		parts = append(parts, fmt.Sprintf("%v: %v", label, value))
	}
	if len(parts) == 0 {
		return "", false
	}
	return "统计结果: " + strings.Join(parts, ", "), true
}

// markerSummary reports the first row's value whose column name contains the
// marker substring.
func markerSummary(result domain.QueryResult, marker, label string) (string, bool) {
	if len(result.Rows) == 0 {
		return "", false
	}
	first := result.Rows[0]
	for _, column := range result.Columns {
		if strings.Contains(strings.ToLower(column), marker) {
			return fmt.Sprintf("%s: %v", label, first[column]), true
		}
	}
	return "", false
}
