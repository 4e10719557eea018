package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

type Addrs struct {
	HTTP string
	GRPC string
}

// Serve runs the HTTP and gRPC listeners until ctx is canceled or one of
// them fails. An empty address disables that transport.
func Serve(ctx context.Context, svc *Service, addrs Addrs) error {
	if addrs.HTTP == "" && addrs.GRPC == "" {
		return errors.New("no listen address configured")
	}

	var lis net.Listener
	if addrs.GRPC != "" {
		var err error
		if lis, err = net.Listen("tcp", addrs.GRPC); err != nil {
			return err
		}
	}

	g, ctx := errgroup.WithContext(ctx)

	if addrs.HTTP != "" {
		srv := &http.Server{
			Addr:              addrs.HTTP,
			Handler:           NewRouter(svc),
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Go(func() error {
			svc.log.Info("http listening", "addr", addrs.HTTP)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if lis != nil {
		gs := NewGRPCServer(svc)
		g.Go(func() error {
			svc.log.Info("grpc listening", "addr", addrs.GRPC)
			return gs.Serve(lis)
		})
		g.Go(func() error {
			<-ctx.Done()
			gs.GracefulStop()
			return nil
		})
	}

	return g.Wait()
}
