package reports

import (
	"net/http"
	"time"

	"marketpulse/api/responses"
	"marketpulse/api/validators"
	reportsvc "marketpulse/internal/reports"
	"marketpulse/internal/users"
	"marketpulse/pkg/logger"
)

// MarketplaceOverview serves the marketplace-wide leaderboard bundle.
func MarketplaceOverview(service reportsvc.Service, userRepo *users.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		viewer, err := resolveViewer(ctx, userRepo)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		overview, err := service.MarketplaceOverview(ctx, viewer)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, overview)
	}
}

// SalesForYear serves the monthly revenue buckets for the requested year,
// defaulting to the current calendar year.
func SalesForYear(service reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		year, err := validators.ParseQueryInt(r, "year", time.Now().UTC().Year(), 2000, 2200)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sales, err := service.SalesForYear(ctx, year)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, sales)
	}
}
