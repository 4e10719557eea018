package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/dynbench/internal/bench"
	"github.com/san-kum/dynbench/internal/config"
	"github.com/san-kum/dynbench/internal/integrators"
	"github.com/san-kum/dynbench/internal/storage"
	"github.com/san-kum/dynbench/internal/viz"
)

var (
	historyLimit     int
	historyBenchmark string
	historyFormat    string
	historyOutput    string
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list available benchmarks",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(viz.Title.Render("benchmarks"))
			return viz.BenchmarkTable(os.Stdout, bench.Catalog())
		},
	}
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "show recorded evaluations",
		RunE:  runHistory,
	}
	cmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum records (0 for all)")
	cmd.Flags().StringVarP(&historyBenchmark, "benchmark", "b", "", "only this benchmark, with a plot")
	cmd.Flags().StringVar(&historyFormat, "format", "table", "output format (table, json, csv)")
	cmd.Flags().StringVarP(&historyOutput, "output", "o", "", "write json or csv to this file instead of stdout")
	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := context.Background()
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if st == nil {
		return fmt.Errorf("no history store configured")
	}
	defer st.Close()

	// Filter after listing so --limit counts matching records.
	limit := historyLimit
	if historyBenchmark != "" {
		limit = 0
	}
	records, err := st.List(ctx, limit)
	if err != nil {
		return err
	}
	if historyBenchmark != "" {
		filtered := records[:0]
		for _, r := range records {
			if r.Benchmark == historyBenchmark {
				filtered = append(filtered, r)
			}
		}
		records = filtered
		if historyLimit > 0 && len(records) > historyLimit {
			records = records[:historyLimit]
		}
	}

	switch historyFormat {
	case "table":
	case "json", "csv":
		if historyOutput != "" {
			if err := storage.ExportFile(historyOutput, historyFormat, records); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, viz.KV("exported", fmt.Sprintf("%d records to %s", len(records), historyOutput)))
			return nil
		}
		if historyFormat == "json" {
			return storage.ExportJSON(os.Stdout, records)
		}
		return storage.ExportCSV(os.Stdout, records)
	default:
		return fmt.Errorf("unknown format: %s", historyFormat)
	}

	if len(records) == 0 {
		fmt.Println(viz.Subtle.Render("no evaluations recorded"))
		return nil
	}
	if err := viz.RecordTable(os.Stdout, records); err != nil {
		return err
	}
	if historyBenchmark != "" {
		if plot := viz.HistoryPlot(historyBenchmark, records); plot != "" {
			fmt.Println()
			fmt.Println(plot)
		}
	}
	return nil
}

func record(cfg *config.Config, rec storage.Record) error {
	ctx := context.Background()
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if st == nil {
		return fmt.Errorf("--record needs a history store, but store kind is none")
	}
	defer st.Close()

	if err := st.Save(ctx, rec); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, viz.KV("recorded", rec.ID))
	return nil
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list rollout presets",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(viz.Title.Render("presets"))
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-10s horizon=%-5d episodes=%d dt=%g integrator=%s\n",
					name, p.Horizon, p.Episodes, p.Dt, p.Integrator)
			}
			fmt.Println(viz.KV("integrators", strings.Join(integrators.Names(), ", ")))
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "dynbench.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Println(viz.KV("wrote", path))
			return nil
		},
	})
	return cmd
}
