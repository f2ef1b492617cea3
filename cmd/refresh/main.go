// Command refresh stores one daily price refresh from a price dump.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"skinfolio_backend/internal/app/di"
	catalogadapters "skinfolio_backend/internal/feature/catalog/adapters"
	listsusecase "skinfolio_backend/internal/feature/lists/usecase"
	priceadapters "skinfolio_backend/internal/feature/prices/adapters"
	"skinfolio_backend/internal/feature/prices/usecase"
	"skinfolio_backend/internal/platform/cache"
	"skinfolio_backend/internal/platform/config"
	"skinfolio_backend/internal/platform/db"
	"skinfolio_backend/internal/platform/logging"
	infraredis "skinfolio_backend/internal/platform/redis"
)

func main() {
	dump := flag.String("dump", os.Getenv("PRICE_DUMP"), "price dump file path or http(s) URL")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.AppEnv)

	if *dump == "" {
		slog.Error("no price dump given; use -dump or PRICE_DUMP")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, cfg, *dump, *timeout); err != nil {
		slog.Error("price refresh failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, dump string, timeout time.Duration) error {
	gdb, err := db.OpenDB(cfg.DB, cfg.RunMigrations)
	if err != nil {
		return err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer sqlDB.Close()
	}
	catalog, err := catalogadapters.LoadJSONCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}

	// 価格更新後にキャッシュ済みの評価額を破棄する
	var notifier usecase.ChangeNotifier = listsusecase.NopNotifier{}
	if cfg.Redis.Enabled() {
		var rdb *redisv9.Client
		if rdb, err = infraredis.NewRedisClient(ctx, cfg.Redis); err != nil {
			slog.Warn("Redis unavailable. Cached valuations expire on their own.", "error", err)
		} else {
			defer rdb.Close()
			notifier = cache.NewCachingValuation(rdb, cfg.CacheTTL, nil, "lists", cfg.PriceRefreshHourUTC)
		}
	}

	uc := usecase.NewIngestUsecase(di.NewDumpSource(dump, timeout), priceadapters.NewPriceRepository(gdb), catalog, notifier)
	res, err := uc.Ingest(ctx)
	if err != nil {
		return err
	}
	slog.Info("refresh ok", "refresh_id", res.RefreshID, "stored", res.Stored, "skipped", res.Skipped)
	return nil
}
