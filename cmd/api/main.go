package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/veselicnik/srecke-backend/api/routes"
	"github.com/veselicnik/srecke-backend/internal/auth"
	"github.com/veselicnik/srecke-backend/internal/config"
	"github.com/veselicnik/srecke-backend/internal/handlers"
	"github.com/veselicnik/srecke-backend/internal/locks"
	"github.com/veselicnik/srecke-backend/internal/repositories"
	"github.com/veselicnik/srecke-backend/internal/repositories/memory"
	mongorepo "github.com/veselicnik/srecke-backend/internal/repositories/mongodb"
	"github.com/veselicnik/srecke-backend/internal/services"
	"github.com/veselicnik/srecke-backend/pkg/logger"
	mongodb "github.com/veselicnik/srecke-backend/pkg/mongodb"
	"github.com/veselicnik/srecke-backend/pkg/musicapi"
	"github.com/veselicnik/srecke-backend/pkg/redisclient"
	"golang.org/x/exp/slog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The logger is not configured yet
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.Setup(os.Stdout, cfg.LogLevel)
	if logger.ParseLevel(cfg.LogLevel) > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	stores, closeStores, err := openStores(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open storage", "error", err, "driver", cfg.Storage.Driver)
		os.Exit(1)
	}
	defer closeStores()

	redisClient, err := redisclient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	verifier := newVerifier(cfg, redisClient)
	locker := newLocker(cfg, redisClient)

	prizeService := services.NewPrizeService(stores.prizes)
	ticketService := services.NewTicketService(stores.tickets, musicapi.NewClient(cfg.Music.ServiceURL, cfg.Music.Timeout))
	drawService := services.NewDrawService(stores.draws, stores.tickets, stores.prizes, locker, services.NewRandomSource(time.Now().UnixNano()))

	handlerDeps := routes.HandlerDependencies{
		PrizeHandler:  handlers.NewPrizeHandler(prizeService),
		TicketHandler: handlers.NewTicketHandler(ticketService),
		DrawHandler:   handlers.NewDrawHandler(drawService),
		Verifier:      verifier,
	}
	router := routes.SetupRouter(cfg, handlerDeps)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("Server starting", "port", cfg.Server.Port, "storage", cfg.Storage.Driver,
		"authMode", cfg.Auth.Mode, "drawLock", cfg.Draw.LockMode)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server stopped unexpectedly", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	slog.Info("Server exiting")
}

type stores struct {
	prizes  repositories.PrizeRepository
	tickets repositories.TicketRepository
	draws   repositories.DrawRepository
}

// openStores builds the repositories for the configured driver.
// The returned func releases the underlying connection.
func openStores(ctx context.Context, cfg *config.Config) (*stores, func(), error) {
	if cfg.Storage.Driver == config.StorageMemory {
		slog.Warn("Using in-memory storage, data is lost on restart")
		return &stores{
			prizes:  memory.NewPrizeRepository(),
			tickets: memory.NewTicketRepository(),
			draws:   memory.NewDrawRepository(),
		}, func() {}, nil
	}

	client, err := mongodb.NewClient(ctx, cfg.MongoDB.URI, cfg.MongoDB.ConnectTimeout)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			slog.Error("Error disconnecting from MongoDB", "error", err)
		}
	}

	db := client.Database(cfg.MongoDB.Database)
	ictx, cancel := context.WithTimeout(ctx, cfg.MongoDB.ConnectTimeout)
	defer cancel()
	if err := mongorepo.EnsureIndexes(ictx, db); err != nil {
		closeFn()
		return nil, nil, err
	}

	return &stores{
		prizes:  mongorepo.NewPrizeRepository(db),
		tickets: mongorepo.NewTicketRepository(db),
		draws:   mongorepo.NewDrawRepository(db),
	}, closeFn, nil
}

func newVerifier(cfg *config.Config, rc *redis.Client) auth.Verifier {
	var v auth.Verifier
	switch cfg.Auth.Mode {
	case config.AuthModeJWT:
		v = auth.NewJWTVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience)
	default:
		v = auth.NewRemoteVerifier(cfg.Auth.ServiceURL, cfg.Auth.Timeout)
	}
	if cfg.Auth.CacheTTL > 0 && rc != nil {
		slog.Info("Token verification cache enabled", "ttl", cfg.Auth.CacheTTL.String())
		v = auth.NewCachingVerifier(v, rc, cfg.Auth.CacheTTL)
	}
	return v
}

func newLocker(cfg *config.Config, rc *redis.Client) locks.EventLocker {
	switch cfg.Draw.LockMode {
	case config.LockModeNone:
		return locks.NoopLocker{}
	case config.LockModeRedis:
		return locks.NewRedisLocker(rc, cfg.Draw.LockTTL)
	default:
		return locks.NewLocalLocker()
	}
}
