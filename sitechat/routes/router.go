package routes

import (
	"net/http"

	"sitechat/sitechat/config"
	"sitechat/sitechat/controllers"
	"sitechat/sitechat/middlewares"
	"sitechat/sitechat/utils/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Controllers struct {
	Scrape *controllers.ScrapeController
	Chat   *controllers.ChatController
	Health *controllers.HealthController
}

// NewRouter wires every route and the shared middleware stack.
func NewRouter(cfg config.Config, ctrls Controllers) http.Handler {
	r := chi.NewRouter()
	// proxy headers are client-controlled unless a trusted proxy sets them
	if cfg.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(middlewares.Trace)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CORS(cfg.AllowedOrigins))

	r.Mount("/health", HealthRoutes(ctrls.Health))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Mount("/scrape", ScrapeRoutes(ctrls.Scrape))
		limiter := middlewares.NewRateLimiter(cfg.ChatRateLimit, cfg.ChatRateBurst)
		api.Mount("/chat-context", ChatRoutes(ctrls.Chat, limiter, cfg.AllowedOrigins, cfg.RequestTimeout))
	})

	return r
}
