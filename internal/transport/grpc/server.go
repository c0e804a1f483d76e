package grpcx

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TaslimOwolarafe/JoyRoom/internal/postgres"
)

// Server exposes the standard grpc.health.v1 service for liveness/readiness
// probes; the serving status tracks the Postgres pool.
type Server struct {
	health *health.Server
	pool   *pgxpool.Pool
}

func NewServer(pool *pgxpool.Pool) *Server {
	return &Server{
		health: health.NewServer(),
		pool:   pool,
	}
}

func Register(grpcServer *grpc.Server, s *Server) {
	healthpb.RegisterHealthServer(grpcServer, s.health)
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
}

// Refresh re-checks the database and updates the reported status.
func (s *Server) Refresh(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	if err := postgres.Ping(ctx, s.pool); err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus("", status)
}

// Shutdown marks every service NOT_SERVING so probes drain traffic first.
func (s *Server) Shutdown() {
	s.health.Shutdown()
}
