package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stockroomhq/stockroom-backend/api/controllers"
	"github.com/stockroomhq/stockroom-backend/api/middleware"
	"github.com/stockroomhq/stockroom-backend/internal/items"
	"github.com/stockroomhq/stockroom-backend/pkg/config"
	"github.com/stockroomhq/stockroom-backend/pkg/db"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	"github.com/stockroomhq/stockroom-backend/pkg/metrics"
	pkgredis "github.com/stockroomhq/stockroom-backend/pkg/redis"
)

type Dependencies struct {
	Config       *config.Config
	Logger       *logger.Logger
	DBPinger     db.Pinger
	RedisPinger  pkgredis.Pinger
	Idempotency  pkgredis.IdempotencyStore
	Registry     *prometheus.Registry
	HTTPMetrics  *metrics.HTTPMetrics
	ItemsService items.Service
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, deps.RedisPinger))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/items", func(r chi.Router) {
		r.With(middleware.Idempotency(deps.Idempotency, cfg.Idempotency.TTL, logg)).
			Post("/", controllers.CreateItem(deps.ItemsService, logg))
		r.Get("/", controllers.ListItems(deps.ItemsService, logg))
		r.Get("/{itemId}", controllers.GetItemByID(deps.ItemsService, logg))
		r.Patch("/{itemId}", controllers.UpdateItem(deps.ItemsService, logg))
		r.Delete("/{itemId}", controllers.DeleteItem(deps.ItemsService, logg))
	})

	return r
}
