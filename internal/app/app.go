package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Naman-Bagoria17/shortify/internal/auth"
	"github.com/Naman-Bagoria17/shortify/internal/config"
	"github.com/Naman-Bagoria17/shortify/internal/generator"
	"github.com/Naman-Bagoria17/shortify/internal/handler"
	"github.com/Naman-Bagoria17/shortify/internal/middleware"
	"github.com/Naman-Bagoria17/shortify/internal/proto"
	"github.com/Naman-Bagoria17/shortify/internal/service"
	"github.com/Naman-Bagoria17/shortify/internal/storage"
	"github.com/Naman-Bagoria17/shortify/internal/storage/memory"
	"github.com/Naman-Bagoria17/shortify/internal/storage/postgres"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
)

const shutdownTimeout = 5 * time.Second

// App wires configuration, storage, services and servers together and
// owns their lifecycle: the store is opened at startup and closed on
// shutdown.
type App struct {
	config     *config.Config
	handler    http.Handler
	grpcServer *grpc.Server
	closeStore func()
}

// NewApp builds the application. With a database DSN the PostgreSQL store
// is used; otherwise everything lives in memory, which is intended for
// development only.
func NewApp(cfg *config.Config) (*App, error) {
	var (
		linkStore  storage.LinkStore
		userStore  storage.UserStore
		pinger     handler.DBPinger
		closeStore func()
	)

	if cfg.DatabaseDSN != "" {
		pg, err := postgres.NewStorage(context.Background(), cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		linkStore, userStore, pinger = pg, pg, pg
		closeStore = pg.Close
	} else {
		log.Warn().Msg("No database configured, using in-memory storage")
		mem := memory.NewStorage()
		linkStore, userStore = mem, mem
		closeStore = func() {}
	}

	secret := cfg.JWTSecret
	if secret == "" {
		if cfg.IsProduction() {
			closeStore()
			return nil, errors.New("JWT secret must be configured in production")
		}
		generated, err := generator.NewSlug(32)
		if err != nil {
			closeStore()
			return nil, err
		}
		secret = generated
		log.Warn().Msg("No JWT secret configured, sessions will not survive restarts")
	}

	jwtService := auth.NewJWTService(secret)
	linkService := service.NewLinkService(linkStore, cfg.BaseURL)
	authService := service.NewAuthService(userStore, jwtService)
	authMW := middleware.NewAuthMiddleware(jwtService, userStore)

	httpHandler := handler.NewHandler(linkService, authService, authMW, pinger, cfg.IsProduction(), cfg.CORSOrigins)

	app := &App{
		config:     cfg,
		handler:    httpHandler.RegisterRoutes(),
		closeStore: closeStore,
	}

	if cfg.GRPCAddress != "" {
		grpcAuth := middleware.NewGRPCAuthMiddleware(jwtService, userStore)
		app.grpcServer = grpc.NewServer(grpc.UnaryInterceptor(grpcAuth.UnaryInterceptor))
		proto.RegisterLinkServiceServer(app.grpcServer, handler.NewLinkGRPCServer(linkService))
	}

	return app, nil
}

// Run starts the servers and blocks until SIGINT/SIGTERM, then shuts down
// gracefully and closes the store.
func (a *App) Run() error {
	server := &http.Server{
		Addr:    a.config.ServerAddress,
		Handler: a.handler,
	}

	errCh := make(chan error, 2)

	go func() {
		log.Info().Str("address", a.config.ServerAddress).Str("base_url", a.config.BaseURL).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if a.grpcServer != nil {
		listener, err := net.Listen("tcp", a.config.GRPCAddress)
		if err != nil {
			return err
		}
		go func() {
			log.Info().Str("address", a.config.GRPCAddress).Msg("Starting gRPC server")
			if err := a.grpcServer.Serve(listener); err != nil {
				errCh <- err
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case runErr = <-errCh:
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	if a.grpcServer != nil {
		a.grpcServer.GracefulStop()
	}
	a.closeStore()

	return runErr
}
