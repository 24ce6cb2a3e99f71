package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/habla/internal/app"
	"github.com/abhisek/habla/internal/catalog"
	"github.com/abhisek/habla/internal/config"
	"github.com/abhisek/habla/internal/logger"
	"github.com/abhisek/habla/internal/progress"
	"github.com/abhisek/habla/internal/screen"
	"github.com/abhisek/habla/internal/speech"
	"github.com/abhisek/habla/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "habla",
	Short: "Spanish tutor for the terminal",
	Long:  "Habla: learn Spanish vocabulary, grammar and conversation from your terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("data-dir", "", "Directory for progress and logs (overrides HABLA_DATA_DIR)")
	rootCmd.PersistentFlags().String("backend", "", "Storage backend: sqlite, json or redis (overrides HABLA_BACKEND)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a lesson catalog file (overrides HABLA_CATALOG)")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg = cfg.WithDataDir(dir)
	}
	if b, _ := cmd.Flags().GetString("backend"); b != "" {
		cfg.Backend = b
	}
	if c, _ := cmd.Flags().GetString("catalog"); c != "" {
		cfg.CatalogPath = c
	}
	return cfg, cfg.EnsureDataDir()
}

// loadCatalog returns the catalog at path, or the built-in one.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}

// env holds the services every command shares.
type env struct {
	cfg      config.Config
	log      *logger.Logger
	backend  store.Backend
	progress *progress.Store
	catalog  *catalog.Catalog
}

func (e *env) Close() {
	if e.backend != nil {
		if err := e.backend.Close(); err != nil {
			e.log.Warn("close store", "error", err)
		}
	}
	e.log.Sync()
}

// openEnv loads config, the log, the progress store and the catalog.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.LogMode, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	backend, err := store.Open(store.Options{
		Engine:      cfg.Backend,
		DataDir:     cfg.DataDir,
		RedisAddr:   cfg.RedisAddr,
		RedisPrefix: cfg.RedisPrefix,
	})
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Info("store opened", "backend", cfg.Backend, "dataDir", cfg.DataDir)

	return &env{
		cfg:      cfg,
		log:      log,
		backend:  backend,
		progress: progress.Open(cmd.Context(), backend, cfg.StorageKey, log),
		catalog:  cat,
	}, nil
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	speaker, recorder := speech.Detect(e.cfg.SpeechRate, filepath.Join(e.cfg.DataDir, "recordings"), e.log)

	return app.Run(app.Options{
		Deps: screen.Deps{
			Progress:    e.progress,
			Catalog:     e.catalog,
			Speaker:     speaker,
			Recorder:    recorder,
			Log:         e.log,
			SpeechLang:  e.cfg.SpeechLang,
			AutoAdvance: e.cfg.AutoAdvanceDelay,
		},
	})
}
