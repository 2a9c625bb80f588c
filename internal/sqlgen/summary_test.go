package sqlgen

import (
	"testing"

	"github.com/doeshing/sqlchat-go/internal/domain"
)

func rowsResult(columns []string, rows []map[string]any) domain.QueryResult {
	return domain.QueryResult{
		Success:  true,
		Columns:  columns,
		Rows:     rows,
		RowCount: len(rows),
	}
}

func TestSummarizeExecutionFailure(t *testing.T) {
	result := domain.QueryResult{Success: false, Error: "no such table: foo"}
	got := Summarize("查询", "SELECT 1;", result)
	if got != "查询执行失败: no such table: foo" {
		t.Errorf("got %q", got)
	}
}

func TestSummarizeFailureWithoutMessage(t *testing.T) {
	got := Summarize("查询", "SELECT 1;", domain.QueryResult{Success: false})
	if got != "查询执行失败: 未知错误" {
		t.Errorf("got %q", got)
	}
}

func TestSummarizeEmptyResult(t *testing.T) {
	got := Summarize("查询所有用户", "SELECT * FROM users;", rowsResult([]string{"username"}, nil))
	if got != "未找到匹配的数据。" {
		t.Errorf("got %q", got)
	}
}

func TestSummarizeStatistics(t *testing.T) {
	result := rowsResult([]string{"category", "product_count"}, []map[string]any{
		{"category": "手机", "product_count": int64(2)},
		{"category": "电脑", "product_count": int64(1)},
	})
	got := Summarize("统计每个分类的商品数量", "SELECT ...", result)
	if got != "统计结果: 手机: 2, 电脑: 1" {
		t.Errorf("got %q", got)
	}
}

func TestSummarizeStatisticsShapeMismatchFallsThrough(t *testing.T) {
	// Three columns do not fit the label/value shape.
	result := rowsResult([]string{"a", "b", "c"}, []map[string]any{
		{"a": 1, "b": 2, "c": 3},
	})
	got := Summarize("统计一下", "SELECT ...", result)
	if got != "查询完成，找到1条匹配记录。" {
		t.Errorf("got %q", got)
	}
}

func TestSummarizeAverage(t *testing.T) {
	result := rowsResult([]string{"avg_price"}, []map[string]any{
		{"avg_price": 6849.0},
	})
	got := Summarize("商品的平均价格", "SELECT ...", result)
	if got != "平均值为: 6849" {
		t.Errorf("got %q", got)
	}
}

func TestSummarizeMax(t *testing.T) {
	result := rowsResult([]string{"max_price"}, []map[string]any{
		{"max_price": int64(12999)},
	})
	got := Summarize("最高的价格", "SELECT ...", result)
	if got != "最大值为: 12999" {
		t.Errorf("got %q", got)
	}
}

func TestSummarizeMin(t *testing.T) {
	result := rowsResult([]string{"min_price"}, []map[string]any{
		{"min_price": int64(3999)},
	})
	got := Summarize("最低的价格", "SELECT ...", result)
	if got != "最小值为: 3999" {
		t.Errorf("got %q", got)
	}
}

func TestSummarizeRowCounts(t *testing.T) {
	one := rowsResult([]string{"username"}, []map[string]any{{"username": "张三"}})
	if got := Summarize("查询用户", "SELECT ...", one); got != "查询完成，找到1条匹配记录。" {
		t.Errorf("single row: got %q", got)
	}

	three := rowsResult([]string{"username"}, []map[string]any{
		{"username": "张三"}, {"username": "李四"}, {"username": "王五"},
	})
	if got := Summarize("查询用户", "SELECT ...", three); got != "查询完成，共找到3条匹配记录。" {
		t.Errorf("multiple rows: got %q", got)
	}
}
