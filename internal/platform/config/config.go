// Package config はプロセス設定を環境変数（と任意の.envファイル）から読み込みます。
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"skinfolio_backend/internal/platform/db"
	jwtmw "skinfolio_backend/internal/platform/jwt"
	"skinfolio_backend/internal/platform/redis"
)

// Config はサーバーと価格更新ジョブが共有する設定です。
type Config struct {
	AppEnv   string
	LogLevel string
	HTTPAddr string

	DB            db.Config
	RunMigrations bool
	Redis         redis.Config

	JWTSecret string
	JWTTTL    time.Duration

	CORSAllowedOrigins []string
	// AuthRateLimit は/signupと/loginのクライアントIPごとの1分あたりの上限です。0で無効。
	AuthRateLimit int

	CatalogPath string
	// SnapshotWindowDays は日次スナップショットの日数です。
	SnapshotWindowDays int
	// PriceRefreshHourUTC は日次価格更新の時刻で、キャッシュの寿命の上限になります。
	PriceRefreshHourUTC int
	CacheTTL            time.Duration
}

// Load は.envを読み込んだ上で環境変数から設定を構築します。
// .envが存在しない場合は環境変数のみを使用します。
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	return FromEnv()
}

// FromEnv は現在の環境変数から設定を構築します。
func FromEnv() (*Config, error) {
	var errs []error

	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		DB:                 db.LoadConfigFromEnv(),
		RunMigrations:      getEnv("RUN_MIGRATIONS", "false") == "true",
		Redis:              redis.Config{Host: os.Getenv("REDIS_HOST"), Port: os.Getenv("REDIS_PORT"), Password: os.Getenv("REDIS_PASSWORD")},
		JWTSecret:          os.Getenv(jwtmw.EnvKeyJWTSecret),
		CatalogPath:        getEnv("CATALOG_PATH", "data/items.json"),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}

	cfg.JWTTTL = getDuration("JWT_TTL", time.Hour, &errs)
	cfg.CacheTTL = getDuration("CACHE_TTL", 10*time.Minute, &errs)
	cfg.SnapshotWindowDays = getInt("SNAPSHOT_WINDOW_DAYS", 30, &errs)
	cfg.PriceRefreshHourUTC = getInt("PRICE_REFRESH_HOUR_UTC", 6, &errs)
	cfg.AuthRateLimit = getInt("AUTH_RATE_LIMIT", 20, &errs)

	if cfg.SnapshotWindowDays <= 0 {
		errs = append(errs, fmt.Errorf("SNAPSHOT_WINDOW_DAYS must be positive, got %d", cfg.SnapshotWindowDays))
	}
	if cfg.PriceRefreshHourUTC < 0 || cfg.PriceRefreshHourUTC > 23 {
		errs = append(errs, fmt.Errorf("PRICE_REFRESH_HOUR_UTC must be within 0..23, got %d", cfg.PriceRefreshHourUTC))
	}
	if cfg.JWTSecret == "" && cfg.AppEnv == "production" {
		errs = append(errs, fmt.Errorf("%s is required in production", jwtmw.EnvKeyJWTSecret))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int, errs *[]error) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
