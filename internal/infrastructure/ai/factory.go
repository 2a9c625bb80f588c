package ai

import (
	"net/http"
	"time"

	"github.com/doeshing/sqlchat-go/internal/domain"
	"github.com/doeshing/sqlchat-go/internal/ports"
)

const httpClientTimeout = 60 * time.Second

// Factory creates model provider instances based on model definitions.
// It maintains a single HTTP client shared across all providers.
type Factory struct {
	httpClient *http.Client
}

// NewFactory creates a provider factory with a configured HTTP client.
func NewFactory() *Factory {
	return &Factory{
		httpClient: &http.Client{Timeout: httpClientTimeout},
	}
}

// ForModel creates a chat-completions provider for the model definition.
func (f *Factory) ForModel(model domain.ModelDefinition) (ports.ModelProvider, error) {
	return newChatProvider(model, f.httpClient), nil
}

var _ ports.ProviderFactory = (*Factory)(nil)
