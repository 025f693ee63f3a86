// Package cli implements the chanscout command-line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/chanscout/chanscout-cli/internal/adapters/driven/config/file"
	"github.com/chanscout/chanscout-cli/internal/adapters/driven/llm/openai"
	"github.com/chanscout/chanscout-cli/internal/adapters/driven/storage/sqlite"
	"github.com/chanscout/chanscout-cli/internal/adapters/driven/telegram"
	"github.com/chanscout/chanscout-cli/internal/adapters/driven/telegram/fixture"
	"github.com/chanscout/chanscout-cli/internal/core/ports/driven"
	"github.com/chanscout/chanscout-cli/internal/core/ports/driving"
	"github.com/chanscout/chanscout-cli/internal/core/services"
	"github.com/chanscout/chanscout-cli/internal/logger"
	"github.com/chanscout/chanscout-cli/internal/strategies"
)

// version is set at build time via ldflags.
var version = "dev"

var verbose bool

// Services used by commands. Wired lazily by initServices; tests
// inject their own.
var (
	discoveryService driving.DiscoveryService
	configStore      driven.ConfigStore
	resultStore      driven.ResultStore
)

var rootCmd = &cobra.Command{
	Use:   "chanscout",
	Short: "Discover and rank public Telegram communities",
	Long: `Chanscout searches multiple platform surfaces in parallel, merges
and ranks what they return, and can enrich the top results with
activity metrics and an AI quality assessment.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose progress output on stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices wires the engine from configuration. Safe to call from
// every command; it is a no-op once services exist.
func initServices() error {
	if discoveryService != nil {
		return nil
	}

	if err := openConfigStore(); err != nil {
		return err
	}
	cfg := configStore

	client, err := newEntityClient(cfg)
	if err != nil {
		return err
	}

	// Persistence is optional: discovery still works without it, the
	// related-entity strategy just stays quiet.
	store, err := sqlite.NewStore(cfg.GetString("storage.data_dir"))
	if err != nil {
		logger.Warn("Result store unavailable, continuing without persistence: %v", err)
	} else {
		resultStore = store
	}

	prompts, err := file.NewPromptStore("")
	if err != nil {
		logger.Warn("Prompt store unavailable, using built-in templates: %v", err)
		prompts = nil
	}

	strats := []driven.SearchStrategy{
		strategies.NewDirect(client),
		strategies.NewContacts(client),
		strategies.NewContent(client),
		strategies.NewCatalog(client, cfg.GetStringSlice("search.catalogs")),
		strategies.NewRelated(client, resultStore),
	}

	enricher := services.NewEnricher(
		services.NewMetricsCollector(client),
		services.NewAssessor(newLLMService(cfg), prompts),
	)
	if ms := cfg.GetInt("search.analysis_delay_ms"); ms > 0 {
		enricher.SetAnalysisDelay(time.Duration(ms) * time.Millisecond)
	}

	svc := services.NewDiscovery(
		services.NewQueryExpander(),
		services.NewAggregator(strats),
		enricher,
		resultStore,
	)
	if minutes := cfg.GetInt("search.cache_ttl_minutes"); minutes > 0 {
		svc.SetResultCacheTTL(time.Duration(minutes) * time.Minute)
	}

	discoveryService = svc
	return nil
}

// openConfigStore opens the TOML configuration once.
func openConfigStore() error {
	if configStore != nil {
		return nil
	}
	cfg, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening configuration: %w", err)
	}
	configStore = cfg
	return nil
}

// newEntityClient builds the platform client. Search surfaces are
// served from a local dataset file wrapped in the rate-limiting
// decorator, so a session-less install behaves like the live platform
// without risking flood penalties.
func newEntityClient(cfg driven.ConfigStore) (driven.EntityClient, error) {
	path := cfg.GetString("search.dataset")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".chanscout", "dataset.json")
	}

	client, err := fixture.LoadClient(path)
	if err != nil {
		return nil, fmt.Errorf("loading platform dataset (set search.dataset in %s): %w", cfg.Path(), err)
	}
	return telegram.NewThrottled(client), nil
}

// newLLMService builds the AI client when configured. A missing key is
// not an error: enrichment degrades to metrics-only.
func newLLMService(cfg driven.ConfigStore) driven.LLMService {
	key := cfg.GetString("ai.api_key")
	if key == "" {
		logger.Debug("No AI key configured, assessments will be unavailable")
		return nil
	}

	llm, err := openai.NewLLMService(openai.LLMConfig{
		APIKey:  key,
		BaseURL: cfg.GetString("ai.base_url"),
		Model:   cfg.GetString("ai.model"),
	})
	if err != nil {
		logger.Warn("AI service unavailable, assessments disabled: %v", err)
		return nil
	}
	return llm
}
