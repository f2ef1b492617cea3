// Package router はHTTPルーティングを定義します。
package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "skinfolio_backend/internal/feature/auth/transport/handler"
	cataloghandler "skinfolio_backend/internal/feature/catalog/transport/handler"
	listshandler "skinfolio_backend/internal/feature/lists/transport/handler"
	"skinfolio_backend/internal/platform/http/handler"
	jwtmw "skinfolio_backend/internal/platform/jwt"
	"skinfolio_backend/internal/shared/ratelimiter"
)

// Config はルーターの設定です。
type Config struct {
	JWTSecret string
	// CORSAllowedOrigins が空の場合は全オリジンを許可します。
	CORSAllowedOrigins []string
	// AuthRateLimit はクライアントIPごとの1分あたりの認証リクエスト上限です。0で無効。
	AuthRateLimit int
}

// Handlers はルーターが公開するハンドラーの集合です。
type Handlers struct {
	Health  *handler.HealthHandler
	Auth    *authhandler.AuthHandler
	Catalog *cataloghandler.CatalogHandler
	Lists   *listshandler.ListHandler
}

func NewRouter(cfg Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), corsMiddleware(cfg.CORSAllowedOrigins))

	// 認証不要
	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	// パスワード総当たり対策
	throttle := ratelimiter.NewRateLimiter(cfg.AuthRateLimit, time.Minute).Middleware()
	// 新規ユーザー登録
	r.POST("/signup", throttle, h.Auth.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", throttle, h.Auth.Login)
	// アイテムカタログ
	r.GET("/items", h.Catalog.Search)
	r.GET("/items/:id", h.Catalog.Get)

	// 公開リストは匿名でも閲覧可能
	r.GET("/lists/:url", jwtmw.AuthOptional(cfg.JWTSecret), h.Lists.Valuation)

	// 認証必須のルート
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(cfg.JWTSecret))
	{
		auth.GET("/lists", h.Lists.Mine)
		auth.POST("/lists", h.Lists.Create)
		auth.PATCH("/lists/:url", h.Lists.Update)
		auth.DELETE("/lists/:url", h.Lists.Delete)
		auth.POST("/lists/:url/actions", h.Lists.AddAction)
		auth.DELETE("/lists/:url/actions/:id", h.Lists.DeleteAction)
	}

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return cors.Default()
	}
	return cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodHead, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	})
}

// requestLogger はリクエストごとに1行の構造化ログを出力します。
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		slog.Log(c.Request.Context(), level, "http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}
