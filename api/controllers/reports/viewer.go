package reports

import (
	"context"

	"marketpulse/api/middleware"
	"marketpulse/internal/users"
	"marketpulse/pkg/db/models"
	pkgerrors "marketpulse/pkg/errors"

	"github.com/google/uuid"
)

// resolveViewer loads the authenticated user behind the request claims.
func resolveViewer(ctx context.Context, repo *users.Repository) (*models.User, error) {
	raw := middleware.UserIDFromContext(ctx)
	if raw == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid credentials")
	}
	viewer, err := repo.FindByID(ctx, id)
	if err != nil {
		if pkgerrors.Is(err, pkgerrors.CodeNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown user")
		}
		return nil, err
	}
	return viewer, nil
}
