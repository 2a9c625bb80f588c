// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The conversion pipeline depends only on these abstractions; the concrete
// storage engine, language-model client, config source and history store live
// in the infrastructure layer.
package ports

import (
	"context"

	"github.com/doeshing/sqlchat-go/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// ModelProvider wraps a language-model endpoint. Generate returns the raw
// model text for a prompt; an error or empty output signals unavailability
// and must never panic into the pipeline.
type ModelProvider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// ProviderFactory builds model providers from model definitions.
type ProviderFactory interface {
	ForModel(domain.ModelDefinition) (ModelProvider, error)
}

// Storage is the storage engine collaborator. ValidateSyntax performs a
// plan-only dry-run that touches no data; a nil error means the statement is
// syntactically valid. Execute reports engine failures in-band through the
// returned QueryResult rather than as an error.
type Storage interface {
	ValidateSyntax(ctx context.Context, sql string) error
	Execute(ctx context.Context, sql string) domain.QueryResult
	SchemaDescription(ctx context.Context) (string, error)
}

// SecurityService evaluates a statement against the read-only keyword rules.
type SecurityService interface {
	Evaluate(sql string) (domain.SecurityAssessment, error)
}

// HistoryRepository persists conversion records.
type HistoryRepository interface {
	Save(record domain.ConversionRecord) error
	Records(limit int, search string) ([]domain.ConversionRecord, error)
	Clear() error
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
