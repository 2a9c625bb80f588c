package app

import (
	"context"

	"github.com/doeshing/sqlchat-go/internal/domain"
	"github.com/doeshing/sqlchat-go/internal/infrastructure/ai"
	"github.com/doeshing/sqlchat-go/internal/infrastructure/config"
	"github.com/doeshing/sqlchat-go/internal/infrastructure/history"
	"github.com/doeshing/sqlchat-go/internal/infrastructure/security"
	"github.com/doeshing/sqlchat-go/internal/infrastructure/store"
	"github.com/doeshing/sqlchat-go/internal/pkg/logger"
	"github.com/doeshing/sqlchat-go/internal/ports"
	"github.com/doeshing/sqlchat-go/internal/services"
	"github.com/doeshing/sqlchat-go/internal/sqlgen"
)

// Container wires up application services with infrastructure adapters.
// It is built once at startup; every collaborator inside is safe to share
// across concurrent requests.
type Container struct {
	ConvertService *services.ConvertService
	ConfigProvider ports.ConfigProvider
	Config         domain.Config
	Store          *store.SQLiteStore
	HistoryStore   ports.HistoryRepository
	Logger         ports.Logger
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)

	sqlStore, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	historyStore := history.NewSQLiteStore(cfg.Database.HistoryPath)

	gate, err := security.NewGate(cfg.Security.RulesFile)
	if err != nil {
		gate, err = security.NewGate("")
		if err != nil {
			return nil, err
		}
	}

	// A missing or broken model leaves the provider nil; the conversion
	// service then answers every question through the fallback generator.
	var provider ports.ModelProvider
	if model, err := cfg.GetDefaultModel(); err == nil {
		if p, err := ai.NewFactory().ForModel(model); err == nil {
			provider = p
		} else {
			log.Warn("model provider unavailable", map[string]interface{}{"model": model.Name, "error": err.Error()})
		}
	} else {
		log.Warn("no model configured", map[string]interface{}{"error": err.Error()})
	}

	catalog := domain.NewSchemaCatalog()

	convertService := &services.ConvertService{
		Provider:  provider,
		Prompts:   sqlgen.NewPromptBuilder(catalog),
		Extractor: sqlgen.NewExtractor(catalog),
		Validator: &sqlgen.Validator{Gate: gate, Storage: sqlStore},
		Storage:   sqlStore,
		History:   historyStore,
		Logger:    log,
	}

	return &Container{
		ConvertService: convertService,
		ConfigProvider: cfgLoader,
		Config:         cfg,
		Store:          sqlStore,
		HistoryStore:   historyStore,
		Logger:         log,
	}, nil
}

// Close releases held resources.
func (c *Container) Close() error {
	if c.Store != nil {
		return c.Store.Close()
	}
	return nil
}
