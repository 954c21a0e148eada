// Package cli provides the command-line interface for Sift.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/talentsift/sift-cli/internal/adapters/driven/ai"
	"github.com/talentsift/sift-cli/internal/adapters/driven/config/file"
	"github.com/talentsift/sift-cli/internal/adapters/driven/storage/memory"
	"github.com/talentsift/sift-cli/internal/adapters/driven/storage/sqlite"
	"github.com/talentsift/sift-cli/internal/core/domain"
	"github.com/talentsift/sift-cli/internal/core/ports/driven"
	"github.com/talentsift/sift-cli/internal/core/ports/driving"
	"github.com/talentsift/sift-cli/internal/core/services"
	"github.com/talentsift/sift-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// SetVersion sets the version string displayed by the version command.
func SetVersion(v string) {
	version = v
}

// Persistent flags.
var (
	verboseFlag   bool
	storeFlag     string
	dataDirFlag   string
	configDirFlag string
)

// Wired services. Populated lazily so lightweight commands (version,
// settings) never touch the database, and replaceable by tests.
var (
	configStore      driven.ConfigStore
	promptStore      driven.PromptStore
	cacheStore       cacheBackend
	screeningService driving.ScreeningService
	screener         driven.ScreenerService
)

// cacheBackend is the surface the CLI needs from a cache store
// implementation. Both the sqlite and memory stores satisfy it.
type cacheBackend interface {
	ExtractionStore() driven.ExtractionStore
	ScoringStore() driven.ScoringStore
	Stats(ctx context.Context) (driven.CacheStats, error)
	Close() error
}

var rootCmd = &cobra.Command{
	Use:   "sift",
	Short: "Screen resumes against job postings with aggressive caching",
	Long: `Sift extracts structured data from resumes and scores candidates
against job postings using LLM inference.

Results are cached at two levels so repeat submissions cost nothing:
extraction results are keyed by document content, scoring results by
the document plus the job posting. Identical inputs never trigger a
second inference call.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)
		return initConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "cache store backend: sqlite or memory (default sqlite)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "cache database directory (default ~/.sift/data)")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "configuration directory (default ~/.sift)")
}

// Execute runs the root command and releases wired services afterwards.
func Execute() error {
	defer closeServices()
	return rootCmd.Execute()
}

// initConfig wires the config and prompt stores. Cheap enough to run
// for every command; the stores do no I/O beyond creating ~/.sift.
func initConfig() error {
	if configStore == nil {
		cs, err := file.NewConfigStore(configDirFlag)
		if err != nil {
			return fmt.Errorf("init config store: %w", err)
		}
		configStore = cs
	}
	if promptStore == nil {
		ps, err := file.NewPromptStore(promptDir())
		if err != nil {
			return fmt.Errorf("init prompt store: %w", err)
		}
		promptStore = ps
	}
	return nil
}

func promptDir() string {
	if configDirFlag == "" {
		return ""
	}
	return configDirFlag + string(os.PathSeparator) + "prompts"
}

// ensureCacheStore opens the cache store on first use. The backend is
// chosen by flag, then config, then defaults to sqlite.
func ensureCacheStore() (cacheBackend, error) {
	if cacheStore != nil {
		return cacheStore, nil
	}

	backend := storeFlag
	if backend == "" {
		backend = configStore.GetString(driven.ConfigKeyStore)
	}
	if backend == "" {
		backend = "sqlite"
	}

	switch backend {
	case "memory":
		logger.Debug("Using in-memory cache store")
		cacheStore = memory.NewCacheStore()
	case "sqlite":
		store, err := sqlite.NewStore(dataDirFlag)
		if err != nil {
			return nil, fmt.Errorf("open cache store: %w", err)
		}
		logger.Debug("Using sqlite cache store at %s", store.Path())
		cacheStore = store
	default:
		return nil, fmt.Errorf("unknown cache store backend %q (want sqlite or memory)", backend)
	}

	return cacheStore, nil
}

// ensureScreeningService wires the full screening pipeline: cache
// store, validated screener backend and the orchestrating service.
// Only the parse and screen commands pay this cost.
func ensureScreeningService() (driving.ScreeningService, error) {
	if screeningService != nil {
		return screeningService, nil
	}

	store, err := ensureCacheStore()
	if err != nil {
		return nil, err
	}

	svc, err := ai.CreateAndValidateScreenerService(loadLLMSettings(), promptStore)
	if err != nil {
		return nil, err
	}
	screener = svc
	logger.Debug("Screener backend ready: %s", svc.ModelName())

	screeningService = services.NewScreeningService(
		store.ExtractionStore(),
		store.ScoringStore(),
		svc,
		svc,
	)
	return screeningService, nil
}

// loadLLMSettings assembles provider settings from the environment and
// the config store. The GROQ_API_KEY environment variable wins over the
// stored key.
func loadLLMSettings() *domain.LLMSettings {
	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		apiKey = configStore.GetString(driven.ConfigKeyAPIKey)
	}

	return &domain.LLMSettings{
		Provider: domain.AIProviderGroq,
		APIKey:   apiKey,
		Model:    configStore.GetString(driven.ConfigKeyModel),
		BaseURL:  configStore.GetString(driven.ConfigKeyBaseURL),
		Weights:  loadScoringWeights(),
	}
}

// loadScoringWeights reads category weight overrides from config,
// falling back per category to the defaults.
func loadScoringWeights() domain.ScoringWeights {
	w := domain.DefaultScoringWeights()
	if v := configStore.GetFloat("weights.skills"); v > 0 {
		w.Skills = v
	}
	if v := configStore.GetFloat("weights.experience"); v > 0 {
		w.Experience = v
	}
	if v := configStore.GetFloat("weights.education"); v > 0 {
		w.Education = v
	}
	if v := configStore.GetFloat("weights.projects"); v > 0 {
		w.Projects = v
	}
	if v := configStore.GetFloat("weights.certifications"); v > 0 {
		w.Certifications = v
	}
	if v := configStore.GetFloat("weights.cultural_fit"); v > 0 {
		w.CulturalFit = v
	}
	return w
}

// lookupService returns a screening service suitable for cache-only
// operations. Lookup never invokes the expensive operations, so no
// screener backend is wired.
func lookupService(store cacheBackend) driving.ScreeningService {
	if screeningService != nil {
		return screeningService
	}
	return services.NewScreeningService(store.ExtractionStore(), store.ScoringStore(), nil, nil)
}

// closeServices releases wired services. Safe to call multiple times.
func closeServices() {
	if screener != nil {
		_ = screener.Close()
		screener = nil
		screeningService = nil
	}
	if cacheStore != nil {
		_ = cacheStore.Close()
		cacheStore = nil
	}
}

// readDocument loads the resume document named by the positional arg.
func readDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("document is empty")
	}
	return data, nil
}
