package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/dynbench/internal/optim"
	"github.com/san-kum/dynbench/internal/storage"
	"github.com/san-kum/dynbench/internal/viz"
)

var (
	sweepBenchmark string
	sweepSteps     int
	sweepSeed      int64
	sweepRecord    bool
	sweepSVG       string

	searchBenchmark string
	searchCoords    string
	searchLevels    int
	searchRecord    bool
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "plot the reward along a random line through the box",
		RunE:  runSweep,
	}
	cmd.Flags().StringVarP(&sweepBenchmark, "benchmark", "b", "", "benchmark name")
	cmd.Flags().IntVar(&sweepSteps, "steps", 21, "points along the line")
	cmd.Flags().Int64Var(&sweepSeed, "seed", 42, "seed for the line direction")
	cmd.Flags().BoolVar(&sweepRecord, "record", false, "store the sweep in history")
	cmd.Flags().StringVar(&sweepSVG, "svg", "", "also write the profile as SVG to this path")
	_ = cmd.MarkFlagRequired("benchmark")
	return cmd
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	facade, err := newRegistry(cfg, log, false).Create(sweepBenchmark)
	if err != nil {
		return err
	}
	desc := facade.Descriptor()
	dir := optim.RandomDirection(rand.New(rand.NewSource(sweepSeed)), desc.Dim)

	fmt.Printf("%s %s\n", viz.Title.Render("sweep"), viz.Subtle.Render(fmt.Sprintf("%s, %d points", desc.Name, sweepSteps)))

	start := time.Now()
	profile, err := optim.Sweep(facade.Evaluate, desc, dir, sweepSteps)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Println(viz.ProfilePlot(desc.Name, profile))
	fmt.Println()
	_, best := profile.BestPoint()
	fmt.Println(viz.KV("best reward", fmt.Sprintf("%.4f", best)))
	fmt.Println(viz.KV("best t", fmt.Sprintf("%.2f", profile.T[profile.Best])))
	fmt.Println(viz.KV("profile", viz.Sparkline(profile.Rewards, 40)))
	fmt.Println(viz.KV("elapsed", elapsed.Round(time.Millisecond).String()))

	if sweepSVG != "" {
		if err := os.WriteFile(sweepSVG, []byte(viz.ProfileSVG(desc.Name, profile, 800, 400)), 0644); err != nil {
			return err
		}
		fmt.Println(viz.KV("svg", sweepSVG))
	}

	if sweepRecord {
		return record(cfg, storage.NewRecord(desc.Name, storage.SourceCLI, profile.Points, profile.Rewards, elapsed))
	}
	return nil
}

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "grid search over a few coordinates around the box centre",
		Long: `Grid search over a few coordinates.

The remaining coordinates stay at the centre of the box. The grid has
levels^len(coords) points and is evaluated as one batch.

  dynbench search -b swimmer --coords 0,8 --levels 5`,
		RunE: runSearch,
	}
	cmd.Flags().StringVarP(&searchBenchmark, "benchmark", "b", "", "benchmark name")
	cmd.Flags().StringVar(&searchCoords, "coords", "0,1", "comma separated coordinates to vary")
	cmd.Flags().IntVar(&searchLevels, "levels", 5, "levels per coordinate")
	cmd.Flags().BoolVar(&searchRecord, "record", false, "store the grid in history")
	_ = cmd.MarkFlagRequired("benchmark")
	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	facade, err := newRegistry(cfg, log, false).Create(searchBenchmark)
	if err != nil {
		return err
	}
	desc := facade.Descriptor()

	coords, err := parseCoords(searchCoords)
	if err != nil {
		return err
	}
	ranges := make([][]float64, len(coords))
	for i, c := range coords {
		if c < 0 || c >= desc.Dim {
			return fmt.Errorf("coordinate %d outside [0, %d)", c, desc.Dim)
		}
		ranges[i] = optim.Levels(desc.Lower[c], desc.Upper[c], searchLevels)
	}

	gs := optim.NewGridSearch(coords, ranges)
	fmt.Printf("%s %s\n", viz.Title.Render("grid search"),
		viz.Subtle.Render(fmt.Sprintf("%s, %d points", desc.Name, gs.Size())))

	var points [][]float64
	var rewards []float64
	eval := func(x [][]float64) ([]float64, error) {
		y, err := facade.Evaluate(x)
		points, rewards = x, y
		return y, err
	}

	start := time.Now()
	best, reward, err := gs.Search(context.Background(), eval, desc.Center())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Println(viz.KV("best reward", fmt.Sprintf("%.4f", reward)))
	for _, c := range coords {
		fmt.Println(viz.KV(fmt.Sprintf("x[%d]", c), fmt.Sprintf("%.4f", best[c])))
	}
	fmt.Println(viz.KV("elapsed", elapsed.Round(time.Millisecond).String()))

	if searchRecord {
		return record(cfg, storage.NewRecord(desc.Name, storage.SourceCLI, points, rewards, elapsed))
	}
	return nil
}

func parseCoords(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		c, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q", p)
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no coordinates given")
	}
	return out, nil
}
