// Package services hosts the conversion orchestrator.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/sqlchat-go/internal/domain"
	"github.com/doeshing/sqlchat-go/internal/observability"
	"github.com/doeshing/sqlchat-go/internal/ports"
	"github.com/doeshing/sqlchat-go/internal/sqlgen"
)

// ConvertService drives a question through the model path and, when any step
// of it fails to produce an executable statement, the rule-based fallback
// path. Both paths converge on a single ConversionResult shape.
//
// The service holds no request-scoped mutable state; it is constructed once
// at startup and safely shared across concurrent requests.
type ConvertService struct {
	Provider  ports.ModelProvider // nil when no model is configured
	Prompts   *sqlgen.PromptBuilder
	Extractor *sqlgen.Extractor
	Validator *sqlgen.Validator
	Storage   ports.Storage
	History   ports.HistoryRepository // optional
	Logger    ports.Logger
}

// ModelLoaded reports whether a model collaborator is wired in.
func (s *ConvertService) ModelLoaded() bool {
	return s.Provider != nil
}

// Convert processes a single question end-to-end.
func (s *ConvertService) Convert(ctx context.Context, req domain.ConversionRequest) (result domain.ConversionResult) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return domain.ConversionResult{
			Success:  false,
			Question: req.Question,
			Error:    "问题不能为空",
		}
	}

	defer func() {
		if r := recover(); r != nil {
			s.Logger.Error("conversion panicked", fmt.Errorf("%v", r), map[string]interface{}{"question": question})
			result = domain.ConversionResult{
				Success:  false,
				Question: question,
				Error:    fmt.Sprintf("转换过程出错: %v", r),
			}
		}
	}()

	start := time.Now()
	intent := sqlgen.Analyze(question)

	conversion := s.modelPath(ctx, question, intent)
	if conversion == nil {
		conversion = s.fallbackPath(ctx, question, intent)
	}

	s.record(*conversion, start)
	observability.ObserveConversion(conversion.Method, conversion.Success)
	return *conversion
}

// modelPath runs prompt → model → extract → post-process → validate →
// execute. A nil return signals the orchestrator to switch to the fallback
// strategy; a rejected candidate is discarded, never retried.
func (s *ConvertService) modelPath(ctx context.Context, question string, intent domain.Intent) *domain.ConversionResult {
	if s.Provider == nil {
		return nil
	}

	prompt, err := s.Prompts.Build(question)
	if err != nil {
		s.Logger.Warn("prompt build failed", map[string]interface{}{"error": err.Error()})
		return nil
	}

	output, err := s.Provider.Generate(ctx, prompt)
	if err != nil || strings.TrimSpace(output) == "" {
		s.Logger.Info("model unavailable, using fallback", map[string]interface{}{
			"provider": s.Provider.Name(),
		})
		return nil
	}

	candidate, ok := s.Extractor.Extract(output)
	if !ok {
		s.Logger.Info("no valid statement in model output, using fallback", nil)
		return nil
	}

	sqlText := sqlgen.PostProcess(candidate, question)

	validated, err := s.Validator.Validate(ctx, sqlText)
	if err != nil {
		s.Logger.Warn("candidate rejected, using fallback", map[string]interface{}{
			"sql":   sqlText,
			"error": err.Error(),
		})
		return nil
	}

	return s.finish(ctx, question, validated, domain.MethodLLM, intent)
}

// fallbackPath synthesizes a statement from the decision list. The generator
// cannot fail, so the defensive security check below is a no-op for every
// template; it exists so template regressions cannot slip a write through.
func (s *ConvertService) fallbackPath(ctx context.Context, question string, intent domain.Intent) *domain.ConversionResult {
	sqlText := sqlgen.GenerateByIntent(question, intent)

	if s.Validator != nil && s.Validator.Gate != nil {
		assessment, err := s.Validator.Gate.Evaluate(sqlText)
		if err == nil && !assessment.Allowed {
			rejection := &sqlgen.ForbiddenOperationError{Keyword: assessment.Keyword}
			return &domain.ConversionResult{
				Success:        false,
				Question:       question,
				SQL:            sqlText,
				Method:         domain.MethodFallback,
				IntentAnalysis: &intent,
				Error:          rejection.Error(),
			}
		}
	}

	return s.finish(ctx, question, sqlText, domain.MethodFallback, intent)
}

// finish executes the validated statement and shapes the terminal result.
// Engine failures during execution are terminal: surfaced in Error using the
// summarizer's failure sentence, never thrown.
func (s *ConvertService) finish(ctx context.Context, question, sqlText, method string, intent domain.Intent) *domain.ConversionResult {
	queryResult := s.Storage.Execute(ctx, sqlText)
	if !queryResult.Success {
		return &domain.ConversionResult{
			Success:        false,
			Question:       question,
			SQL:            sqlText,
			Method:         method,
			IntentAnalysis: &intent,
			Error:          sqlgen.Summarize(question, sqlText, queryResult),
		}
	}

	return &domain.ConversionResult{
		Success:        true,
		Question:       question,
		SQL:            sqlText,
		Result:         &queryResult,
		Summary:        sqlgen.Summarize(question, sqlText, queryResult),
		Method:         method,
		IntentAnalysis: &intent,
	}
}

func (s *ConvertService) record(result domain.ConversionResult, start time.Time) {
	if s.History == nil {
		return
	}
	rowCount := 0
	if result.Result != nil {
		rowCount = result.Result.RowCount
	}
	err := s.History.Save(domain.ConversionRecord{
		ID:         uuid.NewString(),
		Timestamp:  start,
		Question:   result.Question,
		SQL:        result.SQL,
		Method:     result.Method,
		Success:    result.Success,
		RowCount:   rowCount,
		DurationMS: time.Since(start).Milliseconds(),
	})
	if err != nil {
		s.Logger.Warn("history save failed", map[string]interface{}{"error": err.Error()})
	}
}
