package domain

// HistoryTurn is one prior question/SQL pair supplied by the caller.
// Accepted on the request but not yet consumed by the pipeline.
type HistoryTurn struct {
	Question string `json:"question"`
	SQL      string `json:"sql"`
}

// ConversionRequest captures a single question entering the pipeline.
type ConversionRequest struct {
	Question string        `json:"question"`
	History  []HistoryTurn `json:"history,omitempty"`
}

// QueryResult is the storage engine's answer to an executed statement.
// Engine errors are reported in-band via Success/Error, never raised.
type QueryResult struct {
	Success  bool             `json:"success"`
	Columns  []string         `json:"columns"`
	Rows     []map[string]any `json:"rows"`
	RowCount int              `json:"row_count"`
	Error    string           `json:"error,omitempty"`
}

// Conversion methods reported in ConversionResult.Method.
const (
	MethodLLM      = "llm"
	MethodFallback = "intent_based_fallback"
)

// ConversionResult is the pipeline's terminal output.
type ConversionResult struct {
	Success        bool         `json:"success"`
	Question       string       `json:"question"`
	SQL            string       `json:"sql,omitempty"`
	Result         *QueryResult `json:"result,omitempty"`
	Summary        string       `json:"summary,omitempty"`
	Method         string       `json:"method,omitempty"`
	IntentAnalysis *Intent      `json:"intent_analysis,omitempty"`
	Error          string       `json:"error,omitempty"`
}
