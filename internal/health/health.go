// Package health serves the standard gRPC health protocol next to each
// process's HTTP listener.
package health

import (
	"context"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type Server struct {
	grpc *grpc.Server
	hs   *health.Server
}

// New registers service (and the overall "" entry) as SERVING.
func New(service string) *Server {
	gs := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(service, healthpb.HealthCheckResponse_SERVING)
	return &Server{grpc: gs, hs: hs}
}

func (s *Server) Serve(l net.Listener) error {
	return s.grpc.Serve(l)
}

// Shutdown flips every entry to NOT_SERVING and stops the server.
func (s *Server) Shutdown() {
	s.hs.Shutdown()
	s.grpc.GracefulStop()
}

// ListenAndServe serves on addr until ctx is done. An empty addr disables it.
func ListenAndServe(ctx context.Context, addr, service string, log *slog.Logger) error {
	if addr == "" {
		return nil
	}
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s := New(service)
	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()
	log.Info("grpc health listening", "addr", addr)
	return s.Serve(l)
}
