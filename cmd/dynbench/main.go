package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/dynbench/internal/bench"
	"github.com/san-kum/dynbench/internal/config"
	"github.com/san-kum/dynbench/internal/diag"
	"github.com/san-kum/dynbench/internal/storage"
	"github.com/san-kum/dynbench/internal/viz"
)

var (
	configFile string
	logLevel   string
	dataDir    string
	storeKind  string
	preset     string
)

func main() {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(joinPointArgs(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, viz.Bad.Render("error:"), err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dynbench",
		Short:         "continuous-control benchmark functions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultStoreDir, "history location (directory or sqlite file)")
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", "file", "history backend (file, sqlite, memory, none)")

	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "rollout preset for local evaluation (see presets)")

	rootCmd.AddCommand(
		newEvalCmd(),
		newServeCmd(),
		newPingCmd(),
		newCallCmd(),
		newListCmd(),
		newHistoryCmd(),
		newSweepCmd(),
		newSearchCmd(),
		newRunCmd(),
		newPresetsCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

// loadConfig reads --config when given and applies the persistent flags the
// user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("data") {
		cfg.Store.Path = dataDir
	}
	if flags.Changed("store") {
		cfg.Store.Kind = storeKind
	}
	if flags.Changed("preset") {
		cfg.Simulator.Preset = preset
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
}

func newRegistry(cfg *config.Config, log *slog.Logger, strict bool) *bench.Registry {
	opts := bench.Options{
		StrictBounds: strict,
		Diagnostics:  diag.NewHandler(log.Handler()),
	}
	return bench.Default(opts, cfg.SimOptions)
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	st, err := storage.NewStore(cfg.Store.Kind, cfg.Store.Path)
	if err != nil || st == nil {
		return nil, err
	}
	if err := st.Init(ctx); err != nil {
		return nil, fmt.Errorf("open %s store at %s: %w", cfg.Store.Kind, cfg.Store.Path, err)
	}
	return st, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatList(y []float64) string {
	parts := make([]string, len(y))
	for i, v := range y {
		parts[i] = formatFloat(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
