package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/dynbench/internal/bench"
	"github.com/san-kum/dynbench/internal/config"
	"github.com/san-kum/dynbench/internal/server"
)

var (
	remoteAddr      string
	remoteTransport string
	remoteTimeout   time.Duration

	callBenchmark string
	callMatrix    string
	callRows      int
	callSeed      int64
)

func addRemoteFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&remoteAddr, "addr", config.DefaultClientAddr, "server address")
	cmd.Flags().StringVar(&remoteTransport, "transport", "http", "transport (http, grpc)")
	cmd.Flags().DurationVar(&remoteTimeout, "timeout", 5*time.Minute, "request timeout")
}

func newPingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ping",
		Short: "check that a server is up",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := server.NewClient(remoteTransport, remoteAddr)
			if err != nil {
				return err
			}
			defer client.Close()

			ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
			defer cancel()

			reply, err := client.Ping(ctx)
			if err != nil {
				return err
			}
			fmt.Println(reply)
			return nil
		},
	}
	addRemoteFlags(cmd)
	return cmd
}

func newCallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call",
		Short: "evaluate on a running server",
		Long: `Send an evaluation to a running server.

Without -X a random batch is drawn uniformly from the benchmark's box.`,
		RunE: runCall,
	}
	cmd.Flags().StringVarP(&callBenchmark, "benchmark", "b", "", "benchmark name")
	cmd.Flags().StringVarP(&callMatrix, "X", "X", "", "a batch as a nested list literal")
	cmd.Flags().IntVar(&callRows, "rows", 1, "rows in a random batch")
	cmd.Flags().Int64Var(&callSeed, "seed", 0, "seed for the random batch (0 uses the clock)")
	_ = cmd.MarkFlagRequired("benchmark")
	addRemoteFlags(cmd)
	return cmd
}

func runCall(cmd *cobra.Command, args []string) error {
	var x [][]float64
	if callMatrix != "" {
		parsed, err := bench.ParseMatrix(callMatrix)
		if err != nil {
			return err
		}
		x = parsed
	} else {
		desc, err := bench.CatalogEntry(callBenchmark)
		if err != nil {
			return err
		}
		seed := callSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		x = desc.Sample(rand.New(rand.NewSource(seed)), max(callRows, 1))
	}

	client, err := server.NewClient(remoteTransport, remoteAddr)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
	defer cancel()

	y, err := client.Eval(ctx, callBenchmark, x)
	if err != nil {
		return err
	}
	fmt.Println(formatList(y))
	return nil
}
