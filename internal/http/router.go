// Package httpapi wires the HTTP transport (Gin) to the Q&A services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// idempotency, rate limiting, CORS and security headers.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-qa-backend/docs"
	"github.com/tbourn/go-qa-backend/internal/config"
	"github.com/tbourn/go-qa-backend/internal/domain"
	"github.com/tbourn/go-qa-backend/internal/http/handlers"
	"github.com/tbourn/go-qa-backend/internal/http/middleware"
	"github.com/tbourn/go-qa-backend/internal/repo"
	"github.com/tbourn/go-qa-backend/internal/services"
	"github.com/tbourn/go-qa-backend/internal/store"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. st is the shared question/answer store; db holds idempotency records
// and may be nil, in which case Idempotency-Key replays are disabled.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Access log (redacting unless LOG_REDACT=false)
//  4. Recovery: capture panics after logger
//  5. Body size limit, request deadline, gzip
//  6. Metrics
//  7. Idempotency validator (before rate limiter to allow bypass on replay)
//  8. Rate limiter (per client IP, bypass on replay)
//  9. CORS and security headers
//
// Anything no route matches, including a known path with another method, gets
// the 404 "Route not found" envelope.
func RegisterRoutes(r *gin.Engine, st *store.Store, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = false

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured access log
	if cfg.LogRedact {
		r.Use(middleware.RedactingLogger(middleware.RedactOptions{
			MaskHeaders: []string{"X-API-Key"},
		}))
	} else {
		r.Use(middleware.Logger())
	}

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Body cap, per-request deadline, compression
	r.Use(limitBody(cfg.MaxBodyBytes))
	r.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", middleware.MetricsHandler())

	// 7) Idempotency validation (before rate limiting)
	var lookup middleware.IdempotencyLookup
	if db != nil {
		lookup = func(ctx context.Context, client, route, key string, now time.Time) (*domain.Idempotency, error) {
			return repo.GetIdempotency(ctx, db, repo.IdempotencyKey{Client: client, Route: route, Key: key}, now)
		}
	}
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{MaxLen: 200}, lookup, handlers.Reject))

	// 8) Token-bucket rate limiter per client IP (RATE_RPS=0 disables)
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP())
	r.Use(rl.Handler(handlers.Reject))

	// 9) CORS guard (403 through the error pipeline) and security headers
	r.Use(middleware.CORS(middleware.CORSPolicy{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}, handlers.Reject))
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallback
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "Route not found")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← store
	qs := services.NewQuestionService(st)
	if cfg.SearchMaxResults > 0 {
		qs.MaxResults = cfg.SearchMaxResults
	}
	qs.Stopwords = cfg.SearchStopwords
	qs.MinRunes = cfg.SearchMinRunes
	qs.MaxDocs = cfg.SearchMaxDocs
	h := handlers.New(qs, services.NewAnswerService(st))
	if db != nil {
		h.WithIdempotency(db, cfg.IdempotencyTTL)
	}

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Questions
		api.GET("/questions", h.ListQuestions)
		api.GET("/search", h.SearchQuestions)
		api.GET("/questions/:id", h.GetQuestion)
		api.POST("/questions", h.AddQuestion)
		api.PUT("/questions/:id", h.UpdateQuestion)
		api.DELETE("/questions/:id", h.DeleteQuestion)

		// Answers
		api.POST("/comments", h.AddAnswer)
		api.GET("/comments", h.ListAnswers)
		api.GET("/comments/:id", h.GetAnswer)
	}
}

// limitBody caps the request body at maxBytes using http.MaxBytesReader.
// Reads past the cap fail, which handlers report as a malformed body.
// maxBytes <= 0 disables the cap.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
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
