package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shamank/smartwallet-console/pkg/config"
	"github.com/shamank/smartwallet-console/pkg/gateway"
	"github.com/shamank/smartwallet-console/pkg/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownGrace = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP gateway and the gRPC health server.",
	Long: `Serve exposes POST /execute, POST /tools and GET /heartbeat, and reports
grpc.health.v1 status on the health address. Chain settings are read from the
environment each time a wallet client is built, so the server starts even
when they are still missing.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, source)
	},
}

func init() {
	f := serveCmd.Flags()
	f.String("listen", config.DefaultListen, "HTTP listen address")
	f.String("health-addr", config.DefaultHealth, "gRPC health listen address")
	_ = v.BindPFlag(config.KeyListenAddr, f.Lookup("listen"))
	_ = v.BindPFlag(config.KeyHealthAddr, f.Lookup("health-addr"))
}

func serve(ctx context.Context, src *config.EnvSource) error {
	raw := src.Raw()
	cache := gateway.NewClientCache(src, gateway.AgentkitFactory())
	defer cache.Purge()
	gw := gateway.New(cache, gateway.WithInvokeTimeout(raw.Timeouts.Invoke))

	health := server.NewHealthService()
	httpSrv := server.New(gw, server.Options{
		Version: version,
		ChainID: func() string { return src.Raw().Network.ChainID },
		Health:  health,
	})
	grpcSrv := server.NewGRPCServer(health)

	if _, err := src.Load(); err != nil {
		zap.L().Warn("chain settings incomplete; actions will fail until they are set", zap.Error(err))
	}

	httpLis, grpcLis, err := bindListeners(raw.ListenAddr, raw.HealthAddr)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpSrv.Serve(gctx, httpLis, shutdownGrace)
	})
	g.Go(func() error {
		return server.ServeGRPCListener(gctx, grpcSrv, grpcLis)
	})
	g.Go(func() error {
		<-gctx.Done()
		health.Shutdown()
		return nil
	})
	health.SetServing(true)

	zap.L().Info("console serving",
		zap.String("http", httpLis.Addr().String()),
		zap.String("health", grpcLis.Addr().String()),
		zap.String("version", version))
	err = g.Wait()
	s := cache.Stats()
	zap.L().Info("console stopped",
		zap.Uint64("constructions", s.Constructions),
		zap.Uint64("hits", s.Hits),
		zap.Uint64("evictions", s.Evictions))
	return err
}

// bindListeners binds both addresses up front so the process only reports
// SERVING once it can accept connections on each.
func bindListeners(httpAddr, healthAddr string) (net.Listener, net.Listener, error) {
	httpLis, err := net.Listen("tcp", httpAddr)
	if err != nil {
		return nil, nil, fmt.Errorf("listen %s: %w", httpAddr, err)
	}
	grpcLis, err := net.Listen("tcp", healthAddr)
	if err != nil {
		_ = httpLis.Close()
		return nil, nil, fmt.Errorf("listen %s: %w", healthAddr, err)
	}
	return httpLis, grpcLis, nil
}
