package main

import (
	"context"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"

	"github.com/TaslimOwolarafe/JoyRoom/config"
	"github.com/TaslimOwolarafe/JoyRoom/internal/postgres"
	"github.com/TaslimOwolarafe/JoyRoom/internal/relay"
	"github.com/TaslimOwolarafe/JoyRoom/internal/service"
	grpcx "github.com/TaslimOwolarafe/JoyRoom/internal/transport/grpc"
	httpx "github.com/TaslimOwolarafe/JoyRoom/internal/transport/http"
	"github.com/TaslimOwolarafe/JoyRoom/internal/transport/ws"
	"github.com/TaslimOwolarafe/JoyRoom/pkg/logger"
)

func main() {
	// --- config ---
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(logger.Config{
		Env:       logger.Env(cfg.Logging.Env),
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Backend:   logger.Backend(cfg.Logging.Backend),
		AddSource: cfg.Logging.AddSource,
		Debug:     cfg.Logging.Debug,
	})
	slog.Info("starting joyroom",
		"env", cfg.Logging.Env, "version", cfg.Logging.Version)

	// --- postgres ---
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		DSN:             cfg.Postgres.DSN,
		ApplicationName: cfg.Logging.Service,
	})
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	// --- repos ---
	roomRepo := postgres.NewRoomRepository(pool)
	partRepo := postgres.NewParticipantRepository(pool)
	msgRepo := postgres.NewMessageRepository(pool)

	// --- services ---
	roomSvc := service.NewRoomService(roomRepo, partRepo, msgRepo)
	memberSvc := service.NewMemberService(roomRepo, partRepo)
	chatSvc := service.NewChatService(roomRepo, partRepo, msgRepo)
	relayStore := service.NewRelayStore(partRepo, msgRepo)

	// --- relay core ---
	registry := relay.NewRegistry()
	hub := relay.NewHub(registry)
	router := relay.NewRouter(registry, hub, relayStore)
	wsServer := ws.NewServer(router,
		ws.WithPingInterval(cfg.Relay.PingIntervalOr(15*time.Second)),
		ws.WithReadLimit(cfg.Relay.MaxFrameBytes),
	)

	// --- HTTP ---
	handler := httpx.NewHandler(roomSvc, memberSvc, chatSvc)
	mux := httpx.NewRouter(handler, memberSvc, wsServer)
	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- gRPC (health probes) ---
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(grpcx.UnaryServerInterceptor()),
		grpc.ChainStreamInterceptor(grpcx.StreamServerInterceptor()),
	)
	grpcSrv := grpcx.NewServer(pool)
	grpcx.Register(grpcServer, grpcSrv)

	// keep the reported health in step with the database
	healthCtx, healthCancel := context.WithCancel(ctx)
	defer healthCancel()
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				grpcSrv.Refresh(healthCtx)
			case <-healthCtx.Done():
				return
			}
		}
	}()

	// --- run both servers ---
	errCh := make(chan error, 2)

	go func() {
		slog.Info("http listen", "addr", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	go func() {
		lis, err := net.Listen("tcp", cfg.GRPC.Addr)
		if err != nil {
			errCh <- err
			return
		}
		slog.Info("grpc listen", "addr", cfg.GRPC.Addr)
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal", "sig", sig)
	case err := <-errCh:
		slog.Error("server error", "err", err)
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	grpcSrv.Shutdown()
	grpcServer.GracefulStop()
	_ = httpSrv.Shutdown(ctxShutdown)
	slog.Info("stopped")
}
