package api

import (
	authDelivery "readinglist-backend/internal/auth/delivery"
	bookDelivery "readinglist-backend/internal/book/delivery"
	reviewDelivery "readinglist-backend/internal/review/delivery"
	"readinglist-backend/pkg/config"
	"readinglist-backend/pkg/metrics"
	"readinglist-backend/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type Handler struct {
	engine  *gin.Engine
	limiter *ratelimit.Limiter
}

// NewHandler assembles the engine: recovery, trace ids, metrics, the error
// normalizer and rate limiting wrap every route.
func NewHandler(cfg *config.Config, guard *authDelivery.Guard, authHandler *authDelivery.AuthHandler, bookHandler *bookDelivery.BookHandler, reviewHandler *reviewDelivery.ReviewHandler) *Handler {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	limiter := ratelimit.NewLimiter(ratelimit.DefaultConfig())

	r := gin.New()
	r.Use(
		gin.Recovery(),
		RequestID(),
		collector.Middleware(),
		ErrorNormalizer(cfg.IsProduction()),
		limiter.Middleware(),
	)

	SetupRoutes(r, guard, authHandler, bookHandler, reviewHandler, registry)

	return &Handler{engine: r, limiter: limiter}
}

func (h *Handler) Start(addr string) error {
	defer h.limiter.Stop()
	return h.engine.Run(addr)
}
