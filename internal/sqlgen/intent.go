// Package sqlgen implements the question-to-SQL synthesis pipeline: intent
// analysis, prompt construction, candidate extraction and repair, validation
// and result summarization over the fixed e-commerce catalog.
package sqlgen

import (
	"regexp"
	"strings"

	"github.com/doeshing/sqlchat-go/internal/domain"
)

// Keyword groups mapping question vocabulary onto catalog tables, checked in
// declaration order.
var tableKeywords = []struct {
	table string
	words []string
}{
	{"users", []string{"用户", "会员", "客户"}},
	{"products", []string{"商品", "产品", "价格", "库存"}},
	{"orders", []string{"订单", "购买", "交易"}},
}

var aggregationKeywords = []string{"统计", "总数", "平均", "最多", "最少", "合计", "总和"}

// Named entities and category literals carried by the seed dataset.
var personNames = []string{"张三", "李四"}

var categoryNames = []string{"手机", "电脑"}

// priceAbovePattern captures the integer of a "higher/greater than N" phrase.
// Matched against the original text so digit sequences survive intact.
var priceAbovePattern = regexp.MustCompile(`[高于大于](\d+)`)

// Analyze classifies a question into referenced tables, literal conditions
// and aggregation/join flags. It is a pure function: no trigger hits yield an
// empty Intent, never an error.
func Analyze(question string) domain.Intent {
	lower := strings.ToLower(question)
	var intent domain.Intent

	for _, group := range tableKeywords {
		for _, word := range group.words {
			if strings.Contains(lower, word) {
				intent.AddTable(group.table)
				break
			}
		}
	}
	intent.JoinRequired = len(intent.Tables) > 1

	for _, word := range aggregationKeywords {
		if strings.Contains(lower, word) {
			intent.Aggregation = true
			break
		}
	}

	for _, name := range personNames {
		if strings.Contains(question, name) {
			intent.Conditions = append(intent.Conditions, domain.Condition{
				Field:    "users.username",
				Operator: "=",
				Value:    "'" + name + "'",
			})
		}
	}
	for _, category := range categoryNames {
		if strings.Contains(lower, category) {
			intent.Conditions = append(intent.Conditions, domain.Condition{
				Field:    "products.category",
				Operator: "=",
				Value:    "'" + category + "'",
			})
		}
	}
	if match := priceAbovePattern.FindStringSubmatch(question); match != nil {
		intent.Conditions = append(intent.Conditions, domain.Condition{
			Field:    "products.price",
			Operator: ">",
			Value:    match[1],
		})
	}

	return intent
}
