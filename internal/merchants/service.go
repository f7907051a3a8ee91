package merchants

import (
	"context"

	"marketpulse/pkg/config"
	"marketpulse/pkg/db/models"
	pkgerrors "marketpulse/pkg/errors"
	"marketpulse/pkg/pagination"

	"github.com/google/uuid"
)

const topItemsBoardSize = 5

// Service assembles the merchant dashboard and directory views.
type Service interface {
	Directory(ctx context.Context, includeInactive bool, params pagination.Params) (*Page, error)
	Dashboard(ctx context.Context, merchant *models.User) (*Dashboard, error)
	PendingOrders(ctx context.Context, merchant *models.User) ([]PendingOrderRow, error)
	InventoryCheck(ctx context.Context, viewer *models.User, itemID uuid.UUID) (*int, error)
}

type service struct {
	repo *Repository
	cfg  config.ReportsConfig
}

// NewService wires the merchant views to their repository.
func NewService(repo *Repository, cfg config.ReportsConfig) Service {
	return &service{repo: repo, cfg: cfg}
}

// Directory lists merchants; includeInactive is decided by the caller
// from the viewer's role.
func (s *service) Directory(ctx context.Context, includeInactive bool, params pagination.Params) (*Page, error) {
	return s.repo.List(ctx, includeInactive, params)
}

// Dashboard assembles every merchant-scoped report for the viewer.
func (s *service) Dashboard(ctx context.Context, merchant *models.User) (*Dashboard, error) {
	if !merchant.IsMerchant() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "merchant access required")
	}

	dashboard := &Dashboard{}

	pending, err := s.repo.PendingOrders(ctx, merchant.ID)
	if err != nil {
		return nil, err
	}
	dashboard.PendingOrders = pending

	topItems, err := s.repo.TopItemsByQuantity(ctx, merchant.ID, topItemsBoardSize)
	if err != nil {
		return nil, err
	}
	dashboard.TopItems = topItems

	stats, err := s.repo.QuantitySoldStats(ctx, merchant.ID)
	if err != nil {
		return nil, err
	}
	dashboard.QuantitySold = stats

	states, err := s.repo.TopStates(ctx, merchant.ID, s.cfg.LeaderboardSize)
	if err != nil {
		return nil, err
	}
	dashboard.TopStates = states

	cities, err := s.repo.TopCities(ctx, merchant.ID, s.cfg.LeaderboardSize)
	if err != nil {
		return nil, err
	}
	dashboard.TopCities = cities

	mostOrdering, err := s.repo.MostOrderingUser(ctx, merchant.ID)
	if err != nil {
		return nil, err
	}
	dashboard.MostOrderingUser = mostOrdering

	mostItems, err := s.repo.MostItemsUser(ctx, merchant.ID)
	if err != nil {
		return nil, err
	}
	dashboard.MostItemsUser = mostItems

	topBuyers, err := s.repo.TopRevenueBuyers(ctx, merchant.ID, s.cfg.LeaderboardSize)
	if err != nil {
		return nil, err
	}
	dashboard.TopRevenueBuyers = topBuyers

	return dashboard, nil
}

// PendingOrders returns the merchant's open order queue.
func (s *service) PendingOrders(ctx context.Context, merchant *models.User) ([]PendingOrderRow, error) {
	if !merchant.IsMerchant() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "merchant access required")
	}
	return s.repo.PendingOrders(ctx, merchant.ID)
}

// InventoryCheck passes through the reveal-nothing ownership check.
func (s *service) InventoryCheck(ctx context.Context, viewer *models.User, itemID uuid.UUID) (*int, error) {
	return s.repo.InventoryCheck(ctx, viewer, itemID)
}
