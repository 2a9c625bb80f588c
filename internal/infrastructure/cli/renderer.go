package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/doeshing/sqlchat-go/internal/domain"
)

func conversionRequest(question string) domain.ConversionRequest {
	return domain.ConversionRequest{Question: question}
}

// renderConversion prints a conversion result in a plain terminal format.
func renderConversion(w io.Writer, result domain.ConversionResult) {
	fmt.Fprintf(w, "Question: %s\n", result.Question)
	if result.SQL != "" {
		fmt.Fprintf(w, "SQL:      %s\n", result.SQL)
	}
	fmt.Fprintf(w, "Method:   %s\n", result.Method)

	if !result.Success {
		fmt.Fprintf(w, "\nError: %s\n", result.Error)
		return
	}

	if result.Result != nil && result.Result.RowCount > 0 {
		fmt.Fprintln(w)
		renderRows(w, result.Result)
	}

	fmt.Fprintf(w, "\n%s\n", result.Summary)
}

func renderRows(w io.Writer, qr *domain.QueryResult) {
	columns := qr.Columns
	if len(columns) == 0 && len(qr.Rows) > 0 {
		for name := range qr.Rows[0] {
			columns = append(columns, name)
		}
		sort.Strings(columns)
	}

	fmt.Fprintln(w, strings.Join(columns, " | "))
	for _, row := range qr.Rows {
		values := make([]string, 0, len(columns))
		for _, col := range columns {
			values = append(values, fmt.Sprintf("%v", row[col]))
		}
		fmt.Fprintln(w, strings.Join(values, " | "))
	}
}
