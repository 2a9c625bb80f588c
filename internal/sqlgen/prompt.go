package sqlgen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/doeshing/sqlchat-go/internal/domain"
)

const promptTemplate = `你是一个专业的SQL专家。请根据下面的数据库结构和用户问题，生成准确可执行的SQL查询。

数据库表结构：
{{- range .Tables}}
{{.}}
{{- end}}

表关系：
{{.Relationships}}

查询规则：
1. 使用明确的表别名（如 users u, orders o）
2. 多表查询必须使用JOIN并指定关联条件
3. 字符串值使用单引号，数字直接使用
4. 日期比较使用标准格式：'YYYY-MM-DD'
5. 聚合查询要包含GROUP BY
6. 只生成SELECT语句，不要其他操作

字段映射参考：
- 用户相关：用户名→username, 邮箱→email, 用户ID→user_id
- 商品相关：商品名→name, 价格→price, 分类→category, 库存→stock
- 订单相关：数量→quantity, 总金额→total_amount, 订单日期→order_date

示例转换：
问题：查询用户张三的所有订单
SQL：SELECT o.* FROM orders o JOIN users u ON o.user_id = u.user_id WHERE u.username = '张三';

问题：统计每个分类的商品数量
SQL：SELECT category, COUNT(*) as product_count FROM products GROUP BY category;

问题：查找价格高于5000的商品
SQL：SELECT * FROM products WHERE price > 5000;

问题：查询订单详情，包括用户名和商品名
SQL：SELECT o.order_id, u.username, p.name as product_name, o.quantity, o.total_amount, o.order_date FROM orders o JOIN users u ON o.user_id = u.user_id JOIN products p ON o.product_id = p.product_id;

现在请为以下问题生成SQL：
问题：{{.Question}}
SQL：`

// PromptBuilder renders the fixed instruction template around a question.
// Everything but the question is derived from the static catalog, so building
// is deterministic.
type PromptBuilder struct {
	tmpl          *template.Template
	tables        []string
	relationships string
}

type promptData struct {
	Tables        []string
	Relationships string
	Question      string
}

// NewPromptBuilder prepares the template and the flattened catalog listings.
func NewPromptBuilder(catalog domain.SchemaCatalog) *PromptBuilder {
	return &PromptBuilder{
		tmpl:          template.Must(template.New("prompt").Parse(promptTemplate)),
		tables:        describeTables(catalog),
		relationships: describeRelationships(catalog),
	}
}

// Build renders the prompt handed to the model collaborator.
func (b *PromptBuilder) Build(question string) (string, error) {
	var buf bytes.Buffer
	err := b.tmpl.Execute(&buf, promptData{
		Tables:        b.tables,
		Relationships: b.relationships,
		Question:      question,
	})
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return buf.String(), nil
}

func describeTables(catalog domain.SchemaCatalog) []string {
	lines := make([]string, 0, len(catalog.Relations))
	for _, rel := range catalog.Relations {
		cols := make([]string, 0, len(rel.Columns))
		for _, col := range rel.Columns {
			cols = append(cols, fmt.Sprintf("%s (%s) - %s", col.Name, col.Type, col.Description))
		}
		lines = append(lines, fmt.Sprintf("%s表(%s): %s", rel.Name, rel.Description, strings.Join(cols, ", ")))
	}
	return lines
}

func describeRelationships(catalog domain.SchemaCatalog) string {
	lines := make([]string, 0, len(catalog.Relationships))
	for _, rel := range catalog.Relationships {
		fromTable := strings.SplitN(rel.From, ".", 2)[0]
		toTable := strings.SplitN(rel.To, ".", 2)[0]
		lines = append(lines, fmt.Sprintf("%s 表通过 %s 关联 %s 表的 %s", fromTable, rel.From, toTable, rel.To))
	}
	return strings.Join(lines, "\n")
}
