package reports

import (
	"net/http"

	"marketpulse/api/responses"
	merchantsvc "marketpulse/internal/merchants"
	"marketpulse/internal/users"
	pkgerrors "marketpulse/pkg/errors"
	"marketpulse/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// MerchantDashboard serves the authenticated merchant's report bundle.
func MerchantDashboard(service merchantsvc.Service, userRepo *users.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		viewer, err := resolveViewer(ctx, userRepo)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dashboard, err := service.Dashboard(ctx, viewer)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, dashboard)
	}
}

// MerchantPendingOrders serves the merchant's open order queue.
func MerchantPendingOrders(service merchantsvc.Service, userRepo *users.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		viewer, err := resolveViewer(ctx, userRepo)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		orders, err := service.PendingOrders(ctx, viewer)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, orders)
	}
}

// MerchantInventoryCheck returns the item's inventory for its owner and
// a null body for everyone else.
func MerchantInventoryCheck(service merchantsvc.Service, userRepo *users.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		viewer, err := resolveViewer(ctx, userRepo)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid item id"))
			return
		}

		inventory, err := service.InventoryCheck(ctx, viewer, itemID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if inventory == nil {
			responses.WriteSuccess(w, nil)
			return
		}
		responses.WriteSuccess(w, map[string]int{"inventory": *inventory})
	}
}
