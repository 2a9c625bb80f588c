package domain_test

import (
	"testing"

	"github.com/doeshing/sqlchat-go/internal/domain"
)

// TestConfig_GetDefaultModel tests retrieving the default model
func TestConfig_GetDefaultModel(t *testing.T) {
	tests := []struct {
		name        string
		config      domain.Config
		wantError   bool
		wantModelID string
	}{
		{
			name: "returns default model successfully",
			config: domain.Config{
				Preferences: domain.Preferences{
					DefaultModel: "local-qwen",
				},
				Models: []domain.ModelDefinition{
					{Name: "local-qwen", ModelID: "qwen2.5-coder"},
					{Name: "gpt4", ModelID: "gpt-4o"},
				},
			},
			wantError:   false,
			wantModelID: "qwen2.5-coder",
		},
		{
			name: "returns error when default model not found",
			config: domain.Config{
				Preferences: domain.Preferences{
					DefaultModel: "nonexistent",
				},
				Models: []domain.ModelDefinition{
					{Name: "local-qwen", ModelID: "qwen2.5-coder"},
				},
			},
			wantError: true,
		},
		{
			name: "falls back to first model when no default configured",
			config: domain.Config{
				Models: []domain.ModelDefinition{
					{Name: "local-qwen", ModelID: "qwen2.5-coder"},
					{Name: "gpt4", ModelID: "gpt-4o"},
				},
			},
			wantError:   false,
			wantModelID: "qwen2.5-coder",
		},
		{
			name:      "returns error when no models defined",
			config:    domain.Config{},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := tt.config.GetDefaultModel()

			if tt.wantError {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}

			if model.ModelID != tt.wantModelID {
				t.Errorf("got model ID %s, want %s", model.ModelID, tt.wantModelID)
			}
		})
	}
}

// TestConfig_FindModelByName tests model lookup by name
func TestConfig_FindModelByName(t *testing.T) {
	config := domain.Config{
		Models: []domain.ModelDefinition{
			{Name: "local-qwen", ModelID: "qwen2.5-coder"},
			{Name: "gpt4", ModelID: "gpt-4o"},
		},
	}

	if model, ok := config.FindModelByName("gpt4"); !ok || model.ModelID != "gpt-4o" {
		t.Errorf("FindModelByName(gpt4) = %+v, %v", model, ok)
	}
	if _, ok := config.FindModelByName("missing"); ok {
		t.Error("expected lookup miss for unknown model")
	}
	if !config.HasModel("local-qwen") || config.HasModel("missing") {
		t.Error("HasModel mismatch")
	}
}
