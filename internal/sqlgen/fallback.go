package sqlgen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/doeshing/sqlchat-go/internal/domain"
)

var priceBelowPattern = regexp.MustCompile(`[低于小于](\d+)`)

// fallbackRule is one entry of the decision list: the first rule whose match
// predicate fires determines the statement, later rules are not consulted.
type fallbackRule struct {
	name  string
	match func(question, lower string) bool
	build func(question string) string
}

func fixed(sql string) func(string) string {
	return func(string) string { return sql }
}

func containsAll(haystack string, needles ...string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

func containsAny(haystack string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

var fallbackRules = []fallbackRule{
	{
		name:  "all-users",
		match: func(q, _ string) bool { return strings.Contains(q, "所有用户") },
		build: fixed("SELECT * FROM users;"),
	},
	{
		name:  "all-products",
		match: func(q, _ string) bool { return strings.Contains(q, "所有商品") },
		build: fixed("SELECT * FROM products;"),
	},
	{
		name:  "all-orders",
		match: func(q, _ string) bool { return strings.Contains(q, "所有订单") },
		build: fixed("SELECT * FROM orders;"),
	},
	{
		name:  "orders-of-zhangsan",
		match: func(q, _ string) bool { return containsAll(q, "张三", "订单") },
		build: fixed("SELECT o.* FROM orders o JOIN users u ON o.user_id = u.user_id WHERE u.username = '张三';"),
	},
	{
		name:  "orders-of-lisi",
		match: func(q, _ string) bool { return containsAll(q, "李四", "订单") },
		build: fixed("SELECT o.* FROM orders o JOIN users u ON o.user_id = u.user_id WHERE u.username = '李四';"),
	},
	{
		name:  "category-phone",
		match: func(_, lower string) bool { return strings.Contains(lower, "手机") },
		build: fixed("SELECT * FROM products WHERE category = '手机';"),
	},
	{
		name:  "category-computer",
		match: func(_, lower string) bool { return strings.Contains(lower, "电脑") },
		build: fixed("SELECT * FROM products WHERE category = '电脑';"),
	},
	{
		name:  "category-tablet",
		match: func(_, lower string) bool { return strings.Contains(lower, "平板") },
		build: fixed("SELECT * FROM products WHERE category = '平板';"),
	},
	{
		// Fires only when digits are captured; a bare threshold phrase falls
		// through to later rules.
		name: "price-above",
		match: func(q, _ string) bool {
			return containsAny(q, "价格高于", "价格大于") && priceAbovePattern.MatchString(q)
		},
		build: func(q string) string {
			m := priceAbovePattern.FindStringSubmatch(q)
			return fmt.Sprintf("SELECT * FROM products WHERE price > %s;", m[1])
		},
	},
	{
		name: "price-below",
		match: func(q, _ string) bool {
			return containsAny(q, "价格低于", "价格小于") && priceBelowPattern.MatchString(q)
		},
		build: func(q string) string {
			m := priceBelowPattern.FindStringSubmatch(q)
			return fmt.Sprintf("SELECT * FROM products WHERE price < %s;", m[1])
		},
	},
	{
		name: "count-orders-per-user",
		match: func(q, _ string) bool {
			return containsAny(q, "统计", "总数") && containsAll(q, "用户", "订单")
		},
		build: fixed("SELECT u.username, COUNT(o.order_id) as order_count FROM users u LEFT JOIN orders o ON u.user_id = o.user_id GROUP BY u.user_id, u.username;"),
	},
	{
		name: "count-products-per-category",
		match: func(q, _ string) bool {
			return containsAny(q, "统计", "总数") && containsAll(q, "分类", "商品")
		},
		build: fixed("SELECT category, COUNT(*) as product_count FROM products GROUP BY category;"),
	},
	{
		name: "count-orders-total",
		match: func(q, _ string) bool {
			return containsAny(q, "统计", "总数") && strings.Contains(q, "订单")
		},
		build: fixed("SELECT COUNT(*) as total_orders FROM orders;"),
	},
	{
		name:  "order-details",
		match: func(q, _ string) bool { return containsAny(q, "详情", "详细") },
		build: fixed("SELECT * FROM order_details;"),
	},
}

// defaultFallbackSQL bounds the result set on unrecognized questions.
const defaultFallbackSQL = "SELECT * FROM order_details LIMIT 10;"

// GenerateByIntent synthesizes a statement from the decision list. It never
// fails: the bounded default rule guarantees a valid SELECT for any input.
// All statements come from the fixed template set and detected identifiers,
// never from unconstrained model text.
func GenerateByIntent(question string, intent domain.Intent) string {
	lower := strings.ToLower(question)
	for _, rule := range fallbackRules {
		if rule.match(question, lower) {
			return rule.build(question)
		}
	}
	return defaultFallbackSQL
}
