package server

import (
	"context"
	"errors"
	"net"
	"sync/atomic"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// GatewayService is the health service name reported next to the overall
// ("") status.
const GatewayService = "smartwallet.console.Gateway"

// HealthService tracks whether the process serves requests and publishes it
// through grpc.health.v1.Health.
type HealthService struct {
	hs      *health.Server
	serving atomic.Bool
	down    atomic.Bool
}

// NewHealthService starts in NOT_SERVING.
func NewHealthService() *HealthService {
	h := &HealthService{hs: health.NewServer()}
	h.SetServing(false)
	return h
}

// Register adds the health service to s.
func (h *HealthService) Register(s grpc.ServiceRegistrar) {
	grpc_health_v1.RegisterHealthServer(s, h.hs)
}

// SetServing flips the reported status. It has no effect after Shutdown.
func (h *HealthService) SetServing(serving bool) {
	if h.down.Load() {
		return
	}
	h.serving.Store(serving)
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	h.hs.SetServingStatus("", status)
	h.hs.SetServingStatus(GatewayService, status)
}

// Serving reports the current status.
func (h *HealthService) Serving() bool { return h.serving.Load() }

// Shutdown reports NOT_SERVING permanently.
func (h *HealthService) Shutdown() {
	h.down.Store(true)
	h.serving.Store(false)
	h.hs.Shutdown()
}

// NewGRPCServer returns a gRPC server with h registered.
func NewGRPCServer(h *HealthService, opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(logUnary)}, opts...)
	s := grpc.NewServer(opts...)
	h.Register(s)
	return s
}

// ServeGRPC serves s on addr until ctx is done, then stops gracefully.
func ServeGRPC(ctx context.Context, s *grpc.Server, addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return ServeGRPCListener(ctx, s, lis)
}

// ServeGRPCListener is ServeGRPC over an already bound listener.
func ServeGRPCListener(ctx context.Context, s *grpc.Server, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		s.GracefulStop()
	}()
	zap.L().Info("grpc health listening", zap.String("addr", lis.Addr().String()))
	if err := s.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

func logUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	resp, err := handler(ctx, req)
	if err != nil {
		zap.L().Debug("grpc call failed", zap.String("method", info.FullMethod), zap.Error(err))
	}
	return resp, err
}
