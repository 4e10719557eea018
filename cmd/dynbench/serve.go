package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/san-kum/dynbench/internal/server"
)

var (
	serveHTTP   string
	serveGRPC   string
	serveStrict bool
	serveReuse  bool
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve ping and eval over HTTP and gRPC",
		Long: `Serve the benchmarks remotely.

HTTP: GET /ping, POST /eval, GET /benchmarks, GET /metrics
gRPC: dynbench.v1.Bench/Ping, dynbench.v1.Bench/Eval

Pass an empty address to disable a transport.`,
		RunE: runServe,
	}
	cmd.Flags().StringVar(&serveHTTP, "http", "", "HTTP listen address (default from config, :9000)")
	cmd.Flags().StringVar(&serveGRPC, "grpc", "", "gRPC listen address (default from config, :9001)")
	cmd.Flags().BoolVar(&serveStrict, "strict", false, "reject points outside the benchmark bounds")
	cmd.Flags().BoolVar(&serveReuse, "reuse", false, "keep one facade per benchmark across requests")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("http") {
		cfg.Server.HTTPAddr = serveHTTP
	}
	if flags.Changed("grpc") {
		cfg.Server.GRPCAddr = serveGRPC
	}
	if flags.Changed("strict") {
		cfg.Server.StrictBounds = serveStrict
	}
	if flags.Changed("reuse") {
		cfg.Server.ReuseFacades = serveReuse
	}

	log := newLogger(cfg)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	svc := server.NewService(newRegistry(cfg, log, cfg.Server.StrictBounds), server.Options{
		ReuseFacades: cfg.Server.ReuseFacades,
		Store:        st,
		Logger:       log,
	})

	log.Info("starting server",
		"strict_bounds", cfg.Server.StrictBounds,
		"reuse_facades", cfg.Server.ReuseFacades,
		"store", cfg.Store.Kind)

	return server.Serve(ctx, svc, server.Addrs{
		HTTP: cfg.Server.HTTPAddr,
		GRPC: cfg.Server.GRPCAddr,
	})
}
