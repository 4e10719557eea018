package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/dynbench/internal/automation"
	"github.com/san-kum/dynbench/internal/storage"
	"github.com/san-kum/dynbench/internal/viz"
)

var runRecord bool

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "run a scripted sequence of evaluations",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	cmd.Flags().BoolVar(&runRecord, "record", false, "store every step in history")
	return cmd
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	name := scenario.Name
	if name == "" {
		name = args[0]
	}
	fmt.Printf("%s %s\n", viz.Title.Render("scenario"), viz.Subtle.Render(name))

	results, runErr := automation.Run(ctx, scenario, newRegistry(cfg, log, cfg.Server.StrictBounds), log)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tLABEL\tBENCHMARK\tROWS\tBEST\tPROFILE")
	for _, r := range results {
		rec := storage.Record{Rewards: r.Rewards}
		_, best := rec.Best()
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.4f\t%s\n",
			r.Index+1, r.Label, r.Benchmark, len(r.Rewards), best, viz.Sparkline(r.Rewards, 20))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if runRecord {
		for _, r := range results {
			if err := record(cfg, storage.NewRecord(r.Benchmark, storage.SourceCLI, r.X, r.Rewards, r.Elapsed)); err != nil {
				return err
			}
		}
	}
	return runErr
}
