// Package ai wraps language-model endpoints behind the ModelProvider port.
//
// A single HTTP chat-completions provider covers OpenAI-compatible services
// (including local Ollama); the pipeline treats the model as a black box that
// either returns text or is unavailable.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/doeshing/sqlchat-go/internal/domain"
	"github.com/doeshing/sqlchat-go/internal/ports"
)

type chatProvider struct {
	model      domain.ModelDefinition
	httpClient *http.Client
}

func newChatProvider(model domain.ModelDefinition, client *http.Client) ports.ModelProvider {
	return &chatProvider{model: model, httpClient: client}
}

func (p *chatProvider) Name() string {
	return "chat"
}

// Generate posts the prompt as a single user message and returns the model's
// raw reply. The client-level timeout bounds the call; a timeout surfaces as
// an error, which the orchestrator treats as model unavailability.
func (p *chatProvider) Generate(ctx context.Context, prompt string) (string, error) {
	payload := chatCompletionRequest{
		Model:       valueOrDefault(p.model.ModelID, "qwen2.5-coder"),
		MaxTokens:   valueOrDefaultInt(p.model.MaxTokens, 512),
		Temperature: p.model.Temperature,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := valueOrDefault(p.model.Endpoint, "http://localhost:11434/v1/chat/completions")
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if key := resolveAuth(p.model.AuthEnvVar); key != "" {
		httpReq.Header.Set("Authorization", "Bearer "+key)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("model endpoint: %s", resp.Status)
	}

	var decoded chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	return decoded.FirstMessage(), nil
}

func resolveAuth(envVar string) string {
	if envVar == "" {
		return ""
	}
	return os.Getenv(envVar)
}

func valueOrDefault(value string, def string) string {
	if value == "" {
		return def
	}
	return value
}

func valueOrDefaultInt(value int, def int) int {
	if value == 0 {
		return def
	}
	return value
}
