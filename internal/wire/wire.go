// Package wire provides dependency injection for the sendgate application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"

	cliadapter "github.com/example/sendgate/internal/adapters/cli"
	"github.com/example/sendgate/internal/adapters/sqlite"
	"github.com/example/sendgate/internal/app"
	"github.com/example/sendgate/internal/config"
	"github.com/example/sendgate/internal/core/certificate"
	"github.com/example/sendgate/internal/core/gates"
	"github.com/example/sendgate/internal/core/score"
	"github.com/example/sendgate/internal/db"
	"github.com/example/sendgate/internal/ports/primary"
	"github.com/example/sendgate/internal/taxonomy"
)

var (
	cfg               *config.Config
	validationService primary.ValidationService
	triggerService    primary.TriggerService
	creatorService    primary.CreatorService
	once              sync.Once
)

// Config returns the loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// ValidationService returns the singleton ValidationService instance.
func ValidationService() primary.ValidationService {
	once.Do(initServices)
	return validationService
}

// TriggerService returns the singleton TriggerService instance.
func TriggerService() primary.TriggerService {
	once.Do(initServices)
	return triggerService
}

// CreatorService returns the singleton CreatorService instance.
func CreatorService() primary.CreatorService {
	once.Do(initServices)
	return creatorService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	var err error
	cfg, err = config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// The db package resolves its path from the environment; a config
	// override feeds the same channel so there is a single source of truth.
	if cfg.DBPath != "" && os.Getenv("SENDGATE_DB") == "" {
		os.Setenv("SENDGATE_DB", cfg.DBPath)
	}

	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	weights, err := config.LoadWeights(cfg.WeightsPath)
	if err != nil {
		log.Fatalf("failed to load scoring weights: %v", err)
	}

	// Repository adapters (secondary ports)
	triggerRepo := sqlite.NewTriggerRepository(database)
	creatorRepo := sqlite.NewCreatorRepository(database)
	auditRepo := sqlite.NewAuditLogRepository(database)
	logWriter := sqlite.NewLogWriterAdapter(auditRepo)

	// Pure domain collaborators
	tax := taxonomy.NewCache()
	evaluator := gates.NewEvaluator(tax)
	scorer := score.NewScorer(tax, weights)
	builder := certificate.NewBuilder(nil)

	// Services (primary ports implementation)
	validationService = app.NewValidationService(evaluator, scorer, builder, logWriter)
	triggerService = app.NewTriggerService(triggerRepo, creatorRepo, logWriter, nil)
	creatorService = app.NewCreatorService(creatorRepo, logWriter)
}

// ValidationAdapter returns a new ValidationAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func ValidationAdapter() *cliadapter.ValidationAdapter {
	return ValidationAdapterWithOutput(os.Stdout)
}

// ValidationAdapterWithOutput returns a new ValidationAdapter writing to the given output.
func ValidationAdapterWithOutput(out io.Writer) *cliadapter.ValidationAdapter {
	once.Do(initServices)
	return cliadapter.NewValidationAdapter(validationService, out)
}

// TriggerAdapter returns a new TriggerAdapter writing to stdout.
func TriggerAdapter() *cliadapter.TriggerAdapter {
	return TriggerAdapterWithOutput(os.Stdout)
}

// TriggerAdapterWithOutput returns a new TriggerAdapter writing to the given output.
func TriggerAdapterWithOutput(out io.Writer) *cliadapter.TriggerAdapter {
	once.Do(initServices)
	return cliadapter.NewTriggerAdapter(triggerService, out)
}

// CreatorAdapter returns a new CreatorAdapter writing to stdout.
func CreatorAdapter() *cliadapter.CreatorAdapter {
	return CreatorAdapterWithOutput(os.Stdout)
}

// CreatorAdapterWithOutput returns a new CreatorAdapter writing to the given output.
func CreatorAdapterWithOutput(out io.Writer) *cliadapter.CreatorAdapter {
	once.Do(initServices)
	return cliadapter.NewCreatorAdapter(creatorService, out)
}
