package sqlgen

import (
	"context"
	"fmt"

	"github.com/doeshing/sqlchat-go/internal/ports"
)

// ForbiddenOperationError rejects a statement containing a write or DDL
// keyword. The statement is never executed.
type ForbiddenOperationError struct {
	Keyword string
}

func (e *ForbiddenOperationError) Error() string {
	return fmt.Sprintf("不允许执行 %s 操作，仅支持 SELECT 查询", e.Keyword)
}

// SyntaxRejectionError carries the engine's dry-run error message.
type SyntaxRejectionError struct {
	Message string
}

func (e *SyntaxRejectionError) Error() string {
	return "SQL语法错误: " + e.Message
}

// Validator promotes a candidate statement to executable form. Both checks
// are mandatory and short-circuit on first failure: the security gate scans
// for forbidden keywords, then the storage engine dry-runs the statement
// without touching data. On success the candidate is returned unchanged.
type Validator struct {
	Gate    ports.SecurityService
	Storage ports.Storage
}

// Validate returns the statement itself when both gates pass, or a typed
// rejection error.
func (v *Validator) Validate(ctx context.Context, sql string) (string, error) {
	assessment, err := v.Gate.Evaluate(sql)
	if err != nil {
		return "", fmt.Errorf("security evaluate: %w", err)
	}
	if !assessment.Allowed {
		return "", &ForbiddenOperationError{Keyword: assessment.Keyword}
	}

	if err := v.Storage.ValidateSyntax(ctx, sql); err != nil {
		return "", &SyntaxRejectionError{Message: err.Error()}
	}

	return sql, nil
}
