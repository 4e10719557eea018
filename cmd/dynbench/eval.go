package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/dynbench/internal/bench"
	"github.com/san-kum/dynbench/internal/storage"
)

var (
	evalBenchmark string
	evalPoint     []float64
	evalMatrix    string
	evalRecord    bool
	evalStrict    bool
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "evaluate a point or a batch locally",
		Long: `Evaluate one point (-x) or a batch (-X) on a benchmark.

With -x the reward is printed as a scalar; with -X the rewards are printed
as a list, one per row. Values for -x may be comma separated or given as
separate arguments; negative values are fine in either form:

  dynbench eval -b swimmer -x 0.1,-0.2,...
  dynbench eval -b swimmer -x 0.1 -0.2 ...
  dynbench eval -b hopper -X '[[0.1, 0.2, ...], [0.3, 0.4, ...]]'`,
		RunE: runEval,
	}
	cmd.Flags().StringVarP(&evalBenchmark, "benchmark", "b", "", "benchmark name")
	cmd.Flags().Float64SliceVarP(&evalPoint, "x", "x", nil, "a single point")
	cmd.Flags().StringVarP(&evalMatrix, "X", "X", "", "a batch as a nested list literal")
	cmd.Flags().BoolVar(&evalRecord, "record", false, "store the evaluation in history")
	cmd.Flags().BoolVar(&evalStrict, "strict", false, "reject points outside the benchmark bounds")
	_ = cmd.MarkFlagRequired("benchmark")
	cmd.MarkFlagsMutuallyExclusive("x", "X")
	cmd.MarkFlagsOneRequired("x", "X")
	return cmd
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	strict := cfg.Server.StrictBounds
	if cmd.Flags().Changed("strict") {
		strict = evalStrict
	}

	var x [][]float64
	single := cmd.Flags().Changed("x")
	if single {
		row := append([]float64(nil), evalPoint...)
		if len(args) > 0 {
			extra, err := bench.ParseVector(args)
			if err != nil {
				return err
			}
			row = append(row, extra...)
		}
		x = [][]float64{row}
	} else {
		if len(args) > 0 {
			return fmt.Errorf("unexpected arguments with -X: %v", args)
		}
		x, err = bench.ParseMatrix(evalMatrix)
		if err != nil {
			return err
		}
	}

	facade, err := newRegistry(cfg, log, strict).Create(evalBenchmark)
	if err != nil {
		return err
	}

	start := time.Now()
	y, err := facade.Evaluate(x)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	log.Debug("evaluated", "benchmark", evalBenchmark, "rows", len(x), "elapsed", elapsed)

	if single {
		fmt.Fprintln(cmd.OutOrStdout(), formatFloat(y[0]))
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), formatList(y))
	}

	if evalRecord {
		return record(cfg, storage.NewRecord(evalBenchmark, storage.SourceCLI, x, y, elapsed))
	}
	return nil
}

// joinPointArgs folds the numeric tokens that follow -x into a single comma
// separated value. Without it pflag reads a negative coordinate such as -0.2
// as a shorthand flag.
func joinPointArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		out = append(out, args[i])
		if args[i] == "--" {
			return append(out, args[i+1:]...)
		}
		if args[i] != "-x" && args[i] != "--x" {
			continue
		}
		var vals []string
		for i+1 < len(args) && isNumberList(args[i+1]) {
			vals = append(vals, args[i+1])
			i++
		}
		if len(vals) > 0 {
			out = append(out, strings.Join(vals, ","))
		}
	}
	return out
}

func isNumberList(s string) bool {
	for _, part := range strings.Split(s, ",") {
		if _, err := strconv.ParseFloat(strings.TrimSpace(part), 64); err != nil {
			return false
		}
	}
	return true
}
