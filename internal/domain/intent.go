package domain

// Condition is one detected filter triple of a question.
type Condition struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// Intent is the derived, immutable classification of a question. Tables keeps
// insertion order and never holds duplicates or names outside the catalog.
type Intent struct {
	Tables       []string    `json:"tables"`
	Conditions   []Condition `json:"conditions"`
	Aggregation  bool        `json:"aggregation"`
	JoinRequired bool        `json:"join_required"`
}

// AddTable appends name unless it is already present.
func (i *Intent) AddTable(name string) {
	for _, existing := range i.Tables {
		if existing == name {
			return
		}
	}
	i.Tables = append(i.Tables, name)
}
