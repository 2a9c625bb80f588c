package sqlgen

import (
	"strings"
	"testing"
)

func TestGenerateByIntentTemplates(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"查询所有用户信息", "SELECT * FROM users;"},
		{"显示所有商品", "SELECT * FROM products;"},
		{"列出所有订单", "SELECT * FROM orders;"},
		{"张三的订单有哪些", "SELECT o.* FROM orders o JOIN users u ON o.user_id = u.user_id WHERE u.username = '张三';"},
		{"李四买过哪些订单", "SELECT o.* FROM orders o JOIN users u ON o.user_id = u.user_id WHERE u.username = '李四';"},
		{"手机类商品", "SELECT * FROM products WHERE category = '手机';"},
		{"电脑产品", "SELECT * FROM products WHERE category = '电脑';"},
		{"平板有哪些", "SELECT * FROM products WHERE category = '平板';"},
		{"价格高于5000的商品", "SELECT * FROM products WHERE price > 5000;"},
		{"价格低于4000的商品", "SELECT * FROM products WHERE price < 4000;"},
		{"统计每个用户的订单数", "SELECT u.username, COUNT(o.order_id) as order_count FROM users u LEFT JOIN orders o ON u.user_id = o.user_id GROUP BY u.user_id, u.username;"},
		{"统计每个分类的商品数量", "SELECT category, COUNT(*) as product_count FROM products GROUP BY category;"},
		{"订单总数是多少", "SELECT COUNT(*) as total_orders FROM orders;"},
		{"查看订单详情", "SELECT * FROM order_details;"},
		{"今天天气怎么样", "SELECT * FROM order_details LIMIT 10;"},
		{"", "SELECT * FROM order_details LIMIT 10;"},
	}

	for _, tt := range tests {
		got := GenerateByIntent(tt.question, Analyze(tt.question))
		if got != tt.want {
			t.Errorf("GenerateByIntent(%q) = %q, want %q", tt.question, got, tt.want)
		}
	}
}

func TestGenerateByIntentFirstMatchWins(t *testing.T) {
	// Mentions users, zhangsan and phones; the earliest rule decides.
	got := GenerateByIntent("所有用户里张三买的手机", Analyze("所有用户里张三买的手机"))
	if got != "SELECT * FROM users;" {
		t.Errorf("got %q, want the all-users template", got)
	}
}

func TestGenerateByIntentPriceWithoutDigits(t *testing.T) {
	// A threshold phrase without a number must not fire the price rule.
	got := GenerateByIntent("价格高不高", Analyze("价格高不高"))
	if strings.Contains(got, "price >") {
		t.Errorf("price rule fired without digits: %q", got)
	}
}

func TestGenerateByIntentAlwaysSelect(t *testing.T) {
	questions := []string{"", "删除所有数据", "asdfgh", "统计", "详情"}
	for _, q := range questions {
		got := GenerateByIntent(q, Analyze(q))
		if !strings.HasPrefix(strings.ToUpper(got), "SELECT") || !strings.HasSuffix(got, ";") {
			t.Errorf("GenerateByIntent(%q) = %q, want a terminated SELECT", q, got)
		}
	}
}
