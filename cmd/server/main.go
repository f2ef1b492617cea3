package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"skinfolio_backend/internal/app/di"
	"skinfolio_backend/internal/app/router"
	authadapters "skinfolio_backend/internal/feature/auth/adapters"
	authhandler "skinfolio_backend/internal/feature/auth/transport/handler"
	authusecase "skinfolio_backend/internal/feature/auth/usecase"
	catalogadapters "skinfolio_backend/internal/feature/catalog/adapters"
	cataloghandler "skinfolio_backend/internal/feature/catalog/transport/handler"
	catalogusecase "skinfolio_backend/internal/feature/catalog/usecase"
	listsadapters "skinfolio_backend/internal/feature/lists/adapters"
	listshandler "skinfolio_backend/internal/feature/lists/transport/handler"
	listsusecase "skinfolio_backend/internal/feature/lists/usecase"
	"skinfolio_backend/internal/feature/lists/valuation"
	priceadapters "skinfolio_backend/internal/feature/prices/adapters"
	"skinfolio_backend/internal/platform/config"
	"skinfolio_backend/internal/platform/db"
	"skinfolio_backend/internal/platform/http/handler"
	jwtmw "skinfolio_backend/internal/platform/jwt"
	"skinfolio_backend/internal/platform/logging"
	infraredis "skinfolio_backend/internal/platform/redis"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Setup(cfg.LogLevel, cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	gdb, err := db.OpenDB(cfg.DB, cfg.RunMigrations)
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	// Redis（任意）
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis); err != nil {
			slog.Warn("Redis unavailable. Running without cache.", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// Catalog
	catalog, err := catalogadapters.LoadJSONCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}
	slog.Info("catalog loaded", "items", catalog.Len())

	// Repository
	userRepo := authadapters.NewUserRepository(gdb)
	listRepo := listsadapters.NewListRepository(gdb)
	actionRepo := listsadapters.NewActionRepository(gdb)
	priceRepo := priceadapters.NewPriceRepository(gdb)

	// Redisキャッシュでラップ
	engine := valuation.NewEngine(listRepo, actionRepo, priceRepo, catalog)
	valuator, notifier := di.NewValuator(engine, rdb, di.CacheConfig{TTL: cfg.CacheTTL, RefreshHourUTC: cfg.PriceRefreshHourUTC})

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTTTL))
	catalogUC := catalogusecase.NewCatalogUsecase(catalog)
	listUC := listsusecase.NewListUsecase(listRepo, valuator, notifier, cfg.SnapshotWindowDays)
	actionUC := listsusecase.NewActionUsecase(listRepo, actionRepo, catalog, notifier)

	// ルータ生成
	r := router.NewRouter(router.Config{
		JWTSecret:          cfg.JWTSecret,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		AuthRateLimit:      cfg.AuthRateLimit,
	}, router.Handlers{
		Health:  handler.NewHealthHandler(sqlDB),
		Auth:    authhandler.NewAuthHandler(authUC),
		Catalog: cataloghandler.NewCatalogHandler(catalogUC),
		Lists:   listshandler.NewListHandler(listUC, actionUC),
	})

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set. Authenticated routes will fail.")
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
