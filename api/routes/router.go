package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"marketpulse/api/controllers"
	reportcontrollers "marketpulse/api/controllers/reports"
	"marketpulse/api/middleware"
	"marketpulse/internal/merchants"
	"marketpulse/internal/reports"
	"marketpulse/internal/users"
	"marketpulse/pkg/config"
	"marketpulse/pkg/db"
	"marketpulse/pkg/enums"
	"marketpulse/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	registry *prometheus.Registry,
	reportService reports.Service,
	merchantService merchants.Service,
	userRepo *users.Repository,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Get("/reports/marketplace", reportcontrollers.MarketplaceOverview(reportService, userRepo, logg))
		r.Get("/reports/sales", reportcontrollers.SalesForYear(reportService, logg))
		r.Get("/merchants", reportcontrollers.MerchantDirectory(merchantService, logg))

		// No role gate: non-owners get a null body, never a failure.
		r.Get("/items/{itemID}/inventory", reportcontrollers.MerchantInventoryCheck(merchantService, userRepo, logg))

		r.Route("/merchant", func(r chi.Router) {
			r.Use(middleware.RequireRoles(logg, enums.UserRoleMerchant))
			r.Get("/dashboard", reportcontrollers.MerchantDashboard(merchantService, userRepo, logg))
			r.Get("/orders/pending", reportcontrollers.MerchantPendingOrders(merchantService, userRepo, logg))
		})
	})

	return r
}
