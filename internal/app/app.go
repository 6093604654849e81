package app

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribeflow/internal/common"
	"github.com/ternarybob/scribeflow/internal/interfaces"
	"github.com/ternarybob/scribeflow/internal/services/analyzer"
	"github.com/ternarybob/scribeflow/internal/services/compiler"
	"github.com/ternarybob/scribeflow/internal/services/delivery"
	"github.com/ternarybob/scribeflow/internal/services/draft"
	"github.com/ternarybob/scribeflow/internal/services/export"
	"github.com/ternarybob/scribeflow/internal/services/extract"
	"github.com/ternarybob/scribeflow/internal/services/review"
	"github.com/ternarybob/scribeflow/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	Extractor interfaces.DocumentExtractor
	Analyzer  interfaces.AnalyzerService
	Compiler  interfaces.CompilerService
	Delivery  interfaces.DeliveryService
	Review    interfaces.ReviewService
	Draft     interfaces.DraftService
	Export    interfaces.ExportService

	// RunStore is nil when the run archive is disabled.
	RunStore interfaces.RunStorage

	provider analyzer.Provider
}

// New wires the full service graph from configuration.
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	provider, err := analyzer.NewProvider(&config.Analyzer, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create analyzer provider: %w", err)
	}

	a := &App{
		Config:    config,
		Logger:    logger,
		Extractor: extract.NewService(logger),
		Analyzer:  analyzer.NewService(provider, &config.Analyzer, logger),
		Compiler:  compiler.NewService(logger),
		Delivery:  delivery.NewService(&config.Delivery, logger),
		Review:    review.NewService(logger),
		Draft:     draft.NewService(provider, &config.Draft, logger),
		Export:    export.NewService(logger),
		provider:  provider,
	}

	if config.Storage.Badger.Enabled {
		db, err := badger.NewBadgerDB(logger, &config.Storage.Badger)
		if err != nil {
			return nil, fmt.Errorf("failed to open run archive: %w", err)
		}
		a.RunStore = badger.NewRunStorage(db, logger)
	}

	return a, nil
}

// Close releases the provider connection and the run archive.
func (a *App) Close() error {
	var firstErr error
	if a.provider != nil {
		if err := a.provider.Close(); err != nil {
			firstErr = err
		}
	}
	if a.RunStore != nil {
		if err := a.RunStore.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
