package domain

// Column describes one column of a catalog relation.
type Column struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	PrimaryKey  bool   `json:"pk,omitempty"`
	ForeignKey  string `json:"fk,omitempty"`
	Description string `json:"description"`
}

// Relation is one table or view of the fixed e-commerce schema.
type Relation struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Columns     []Column `json:"columns"`
	IsView      bool     `json:"is_view,omitempty"`
}

// Relationship declares a foreign-key edge between two relations.
type Relationship struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// SchemaCatalog is the static description of the dataset. It is built once at
// startup and never mutated afterwards.
type SchemaCatalog struct {
	Relations     []Relation
	Relationships []Relationship
}

// TableNames returns the relation names in declaration order.
func (c SchemaCatalog) TableNames() []string {
	names := make([]string, 0, len(c.Relations))
	for _, rel := range c.Relations {
		names = append(names, rel.Name)
	}
	return names
}

// HasTable reports whether name is part of the catalog.
func (c SchemaCatalog) HasTable(name string) bool {
	for _, rel := range c.Relations {
		if rel.Name == name {
			return true
		}
	}
	return false
}

// NewSchemaCatalog builds the fixed three-table (plus one view) catalog.
func NewSchemaCatalog() SchemaCatalog {
	return SchemaCatalog{
		Relations: []Relation{
			{
				Name:        "users",
				Description: "用户信息表",
				Columns: []Column{
					{Name: "user_id", Type: "INTEGER", PrimaryKey: true, Description: "用户ID"},
					{Name: "username", Type: "VARCHAR(50)", Description: "用户名"},
					{Name: "email", Type: "VARCHAR(100)", Description: "邮箱"},
					{Name: "created_at", Type: "DATETIME", Description: "创建时间"},
				},
			},
			{
				Name:        "products",
				Description: "商品信息表",
				Columns: []Column{
					{Name: "product_id", Type: "INTEGER", PrimaryKey: true, Description: "商品ID"},
					{Name: "name", Type: "VARCHAR(100)", Description: "商品名称"},
					{Name: "price", Type: "DECIMAL(10,2)", Description: "价格"},
					{Name: "stock", Type: "INTEGER", Description: "库存"},
					{Name: "category", Type: "VARCHAR(50)", Description: "分类"},
					{Name: "description", Type: "TEXT", Description: "描述"},
					{Name: "created_at", Type: "DATETIME", Description: "创建时间"},
				},
			},
			{
				Name:        "orders",
				Description: "订单表",
				Columns: []Column{
					{Name: "order_id", Type: "INTEGER", PrimaryKey: true, Description: "订单ID"},
					{Name: "user_id", Type: "INTEGER", ForeignKey: "users.user_id", Description: "用户ID"},
					{Name: "product_id", Type: "INTEGER", ForeignKey: "products.product_id", Description: "商品ID"},
					{Name: "quantity", Type: "INTEGER", Description: "数量"},
					{Name: "total_amount", Type: "DECIMAL(10,2)", Description: "总金额"},
					{Name: "order_date", Type: "DATETIME", Description: "订单日期"},
				},
			},
			{
				Name:        "order_details",
				Description: "订单详情视图",
				IsView:      true,
				Columns: []Column{
					{Name: "order_id", Type: "INTEGER", Description: "订单ID"},
					{Name: "username", Type: "VARCHAR(50)", Description: "用户名"},
					{Name: "email", Type: "VARCHAR(100)", Description: "邮箱"},
					{Name: "product_name", Type: "VARCHAR(100)", Description: "商品名"},
					{Name: "unit_price", Type: "DECIMAL(10,2)", Description: "单价"},
					{Name: "quantity", Type: "INTEGER", Description: "数量"},
					{Name: "total_amount", Type: "DECIMAL(10,2)", Description: "总金额"},
					{Name: "order_date", Type: "DATETIME", Description: "订单日期"},
				},
			},
		},
		Relationships: []Relationship{
			{From: "orders.user_id", To: "users.user_id"},
			{From: "orders.product_id", To: "products.product_id"},
		},
	}
}
