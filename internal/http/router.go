// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// compression, rate limiting, CORS and security headers, and the single
// error stage that renders every failure as {"msg": ...}.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-news-backend/docs"
	"github.com/tbourn/go-news-backend/internal/config"
	"github.com/tbourn/go-news-backend/internal/domain"
	"github.com/tbourn/go-news-backend/internal/http/handlers"
	"github.com/tbourn/go-news-backend/internal/http/middleware"
	"github.com/tbourn/go-news-backend/internal/repo"
	"github.com/tbourn/go-news-backend/internal/services"
)

// articleRepoShim adapts the repository free functions to the
// services.ArticleRepo interface expected by the ArticleService.
type articleRepoShim struct{}

// ListArticles proxies repo.ListArticles.
func (articleRepoShim) ListArticles(ctx context.Context, db *gorm.DB) ([]domain.Article, error) {
	return repo.ListArticles(ctx, db)
}

// GetArticle proxies repo.GetArticle.
func (articleRepoShim) GetArticle(ctx context.Context, db *gorm.DB, id int) (*domain.Article, error) {
	return repo.GetArticle(ctx, db, id)
}

// IncrementVotes proxies repo.IncrementVotes.
func (articleRepoShim) IncrementVotes(ctx context.Context, db *gorm.DB, id, inc int) (*domain.Article, error) {
	return repo.IncrementVotes(ctx, db, id, inc)
}

// maxBodyBytes caps request bodies; comment payloads are tiny.
const maxBodyBytes = 1 << 20

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine, then mounts the public API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access log with redaction
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Compression
//  7. Metrics
//  8. Rate limiter (per IP; /health and /metrics exempt)
//  9. CORS and security headers
//  10. Error stage: classifies errors recorded by handlers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	// Unknown paths and unsupported methods share the 404 fallback.
	r.HandleMethodNotAllowed = false
	// A trailing slash is a different path, not a redirect.
	r.RedirectTrailingSlash = false

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(middleware.LogOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))
	r.Use(middleware.Recovery())
	r.Use(limitBody(maxBodyBytes))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP()).
		Exempt("/health", "/metrics")
	r.Use(rl.Handler())

	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)

	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		HSTS:         cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		HTMLPrefixes: []string{"/swagger/"},
	}))

	r.Use(handlers.ErrorHandler())

	r.NoRoute(handlers.RouteNotFound)

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db
	topicSvc := &services.TopicService{DB: db}
	articleSvc := services.NewArticleService(db, articleRepoShim{})
	commentSvc := &services.CommentService{DB: db}
	userSvc := &services.UserService{DB: db}
	h := handlers.New(topicSvc, articleSvc, commentSvc, userSvc).WithBasePath(cfg.APIBasePath)

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.GET("", h.GetEndpoints)

		api.GET("/topics", h.GetTopics)

		api.GET("/articles", h.GetArticles)
		api.GET("/articles/:article_id", h.GetArticle)
		api.PATCH("/articles/:article_id", h.PatchArticle)

		api.GET("/articles/:article_id/comments", h.GetArticleComments)
		api.POST("/articles/:article_id/comments", h.PostArticleComment)

		api.GET("/users", h.GetUsers)
	}
}

// corsMiddleware returns the CORS posture: allow all origins when none are
// configured, otherwise echo only allow-listed origins.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	base := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	if len(origins) == 0 {
		base.AllowAllOrigins = true
		return []gin.HandlerFunc{
			// Force ACAO: * even for requests without an Origin header.
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(base),
		}
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	base.AllowOrigins = origins
	return []gin.HandlerFunc{
		func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		},
		cors.New(base),
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
