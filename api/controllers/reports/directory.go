package reports

import (
	"net/http"
	"strings"

	"marketpulse/api/middleware"
	"marketpulse/api/responses"
	"marketpulse/api/validators"
	merchantsvc "marketpulse/internal/merchants"
	"marketpulse/pkg/enums"
	"marketpulse/pkg/logger"
	"marketpulse/pkg/pagination"
)

// MerchantDirectory lists merchants. Admin viewers also see inactive
// merchants; everyone else gets active merchants only.
func MerchantDirectory(service merchantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		role, _ := middleware.RoleFromContext(ctx)
		includeInactive := role == enums.UserRoleAdmin

		page, err := service.Directory(ctx, includeInactive, pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}
