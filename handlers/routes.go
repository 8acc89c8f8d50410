package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"mrmelo_sanctuary/config"
	_ "mrmelo_sanctuary/docs" // 导入 swagger 文档
	"mrmelo_sanctuary/models"
	"mrmelo_sanctuary/services"
	"mrmelo_sanctuary/utils"
	"mrmelo_sanctuary/views"
)

// Dependencies 路由使用的服务
type Dependencies struct {
	DB              *sql.DB
	Recommendations *services.RecommendationService
	Patterns        *services.PatternService
	Content         *services.ContentService
	Explorer        *views.Explorer
	Renderer        *views.Renderer
}

// NewRouter 创建带中间件的路由
func NewRouter(cfg *config.Config, deps Dependencies) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	RegisterRoutes(r, cfg, deps)
	return r
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(r chi.Router, cfg *config.Config, deps Dependencies) {
	// Swagger 文档
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		HealthHandler(w, r, deps.DB)
	})

	// 推理接口按IP限流，每次调用都会计费
	limiter := httprate.Limit(
		cfg.RateLimit.Requests,
		time.Duration(cfg.RateLimit.WindowSec)*time.Second,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.WriteErrorResponse(w, http.StatusTooManyRequests, models.CodeRateLimited)
		}),
	)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(limiter)

			r.Post("/recommendations", func(w http.ResponseWriter, r *http.Request) {
				RecommendationsHandler(w, r, deps.Recommendations)
			})
			r.Post("/pattern-analysis", func(w http.ResponseWriter, r *http.Request) {
				PatternAnalysisHandler(w, r, deps.Patterns)
			})
			r.Post("/connections", func(w http.ResponseWriter, r *http.Request) {
				ConnectionsHandler(w, r, deps.Recommendations)
			})
		})

		r.Get("/content/stats", func(w http.ResponseWriter, r *http.Request) {
			ContentStatsHandler(w, r, deps.Content)
		})
		r.Get("/content/{contentType}", func(w http.ResponseWriter, r *http.Request) {
			ListContentHandler(w, r, deps.Content)
		})
	})

	// 不带 /api 前缀的别名
	r.With(limiter).Post("/recommendations", func(w http.ResponseWriter, r *http.Request) {
		RecommendationsHandler(w, r, deps.Recommendations)
	})
	r.With(limiter).Post("/pattern-analysis", func(w http.ResponseWriter, r *http.Request) {
		PatternAnalysisHandler(w, r, deps.Patterns)
	})

	if deps.Explorer != nil && deps.Renderer != nil {
		ex := NewExplorerHandler(deps.Explorer, deps.Renderer, time.Duration(cfg.Explorer.SlotIdleMin)*time.Minute)
		r.Route("/explore", func(r chi.Router) {
			r.Get("/", ex.Index)
			r.Get("/{contentType}/{id}", ex.View)
			r.With(limiter).Post("/{contentType}/{id}/generate", ex.Generate)
			r.Post("/{contentType}/{id}/dismiss", ex.Dismiss)
		})
	}
}
