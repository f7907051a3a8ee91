package reports

import (
	"context"
	"time"

	"marketpulse/pkg/config"
	"marketpulse/pkg/db/models"
	pkgerrors "marketpulse/pkg/errors"
	"marketpulse/pkg/metrics"
)

// Overview is the marketplace-wide report bundle backing the index view.
type Overview struct {
	TopRevenueMerchants      []MerchantRevenueRow     `json:"top_revenue_merchants"`
	FastestMerchants         []MerchantFulfillmentRow `json:"fastest_merchants"`
	SlowestMerchants         []MerchantFulfillmentRow `json:"slowest_merchants"`
	TopShipmentStates        []StateShipmentRow       `json:"top_shipment_states"`
	TopShipmentCities        []CityShipmentRow        `json:"top_shipment_cities"`
	TopQuantityOrders        []OrderQuantityRow       `json:"top_quantity_orders"`
	ItemsSoldThisMonth       []MerchantItemsSoldRow   `json:"items_sold_this_month"`
	ItemsSoldLastMonth       []MerchantItemsSoldRow   `json:"items_sold_last_month"`
	FulfilledOrdersThisMonth []MerchantOrderCountRow  `json:"fulfilled_orders_this_month"`
	FulfilledOrdersLastMonth []MerchantOrderCountRow  `json:"fulfilled_orders_last_month"`
	FastestMerchantsInState  []MerchantFulfillmentRow `json:"fastest_merchants_in_state,omitempty"`
	FastestMerchantsInCity   []MerchantFulfillmentRow `json:"fastest_merchants_in_city,omitempty"`
	TotalSalesByMerchant     []MerchantSalesRow       `json:"total_sales_by_merchant"`
}

// Service assembles marketplace-wide reports.
type Service interface {
	MarketplaceOverview(ctx context.Context, viewer *models.User) (*Overview, error)
	SalesForYear(ctx context.Context, year int) ([]MonthlySales, error)
}

type service struct {
	repo    *Repository
	cfg     config.ReportsConfig
	metrics *metrics.ReportQueryMetrics
	now     func() time.Time
}

// NewService wires the assembler to its repository and query metrics.
func NewService(repo *Repository, cfg config.ReportsConfig, queryMetrics *metrics.ReportQueryMetrics) Service {
	return &service{
		repo:    repo,
		cfg:     cfg,
		metrics: queryMetrics,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// MarketplaceOverview runs every index leaderboard. The locality boards
// need the viewer's state and city and are skipped when no viewer is
// available. All queries are read-only, so a partial failure aborts the
// whole assembly rather than returning a half-built view.
func (s *service) MarketplaceOverview(ctx context.Context, viewer *models.User) (*Overview, error) {
	now := s.now()
	thisMonth := RollingMonth(now)
	lastMonth := PreviousRollingMonth(now)

	overview := &Overview{}

	err := s.instrument("top_revenue_merchants", func() error {
		rows, err := s.repo.TopRevenueMerchants(ctx, s.cfg.LeaderboardSize)
		overview.TopRevenueMerchants = rows
		return err
	})
	if err != nil {
		return nil, err
	}

	err = s.instrument("fastest_merchants", func() error {
		rows, err := s.repo.MerchantFulfillmentTimes(ctx, SortAscending, s.cfg.LeaderboardSize)
		overview.FastestMerchants = rows
		return err
	})
	if err != nil {
		return nil, err
	}

	err = s.instrument("slowest_merchants", func() error {
		rows, err := s.repo.MerchantFulfillmentTimes(ctx, SortDescending, s.cfg.LeaderboardSize)
		overview.SlowestMerchants = rows
		return err
	})
	if err != nil {
		return nil, err
	}

	err = s.instrument("top_shipment_states", func() error {
		rows, err := s.repo.TopShipmentStates(ctx, s.cfg.LeaderboardSize)
		overview.TopShipmentStates = rows
		return err
	})
	if err != nil {
		return nil, err
	}

	err = s.instrument("top_shipment_cities", func() error {
		rows, err := s.repo.TopShipmentCities(ctx, s.cfg.LeaderboardSize)
		overview.TopShipmentCities = rows
		return err
	})
	if err != nil {
		return nil, err
	}

	err = s.instrument("top_quantity_orders", func() error {
		rows, err := s.repo.TopQuantityOrders(ctx, s.cfg.LeaderboardSize)
		overview.TopQuantityOrders = rows
		return err
	})
	if err != nil {
		return nil, err
	}

	err = s.instrument("items_sold_this_month", func() error {
		rows, err := s.repo.TopMerchantsItemsSold(ctx, thisMonth, s.cfg.MonthlyBoardSize)
		overview.ItemsSoldThisMonth = rows
		return err
	})
	if err != nil {
		return nil, err
	}

	err = s.instrument("items_sold_last_month", func() error {
		rows, err := s.repo.TopMerchantsItemsSold(ctx, lastMonth, s.cfg.MonthlyBoardSize)
		overview.ItemsSoldLastMonth = rows
		return err
	})
	if err != nil {
		return nil, err
	}

	err = s.instrument("fulfilled_orders_this_month", func() error {
		rows, err := s.repo.TopMerchantsFulfilledOrders(ctx, thisMonth, s.cfg.MonthlyBoardSize)
		overview.FulfilledOrdersThisMonth = rows
		return err
	})
	if err != nil {
		return nil, err
	}

	err = s.instrument("fulfilled_orders_last_month", func() error {
		rows, err := s.repo.TopMerchantsFulfilledOrders(ctx, lastMonth, s.cfg.MonthlyBoardSize)
		overview.FulfilledOrdersLastMonth = rows
		return err
	})
	if err != nil {
		return nil, err
	}

	if viewer != nil {
		err = s.instrument("fastest_merchants_in_state", func() error {
			rows, err := s.repo.FastestMerchantsForLocality(ctx, viewer, LocalityState, s.cfg.LocalityBoardSize)
			overview.FastestMerchantsInState = rows
			return err
		})
		if err != nil {
			return nil, err
		}

		err = s.instrument("fastest_merchants_in_city", func() error {
			rows, err := s.repo.FastestMerchantsForLocality(ctx, viewer, LocalityCity, s.cfg.LocalityBoardSize)
			overview.FastestMerchantsInCity = rows
			return err
		})
		if err != nil {
			return nil, err
		}
	}

	err = s.instrument("total_sales_by_merchant", func() error {
		rows, err := s.repo.TotalSalesByMerchant(ctx)
		overview.TotalSalesByMerchant = rows
		return err
	})
	if err != nil {
		return nil, err
	}

	return overview, nil
}

// SalesForYear returns the twelve monthly revenue buckets for the year.
func (s *service) SalesForYear(ctx context.Context, year int) ([]MonthlySales, error) {
	if year < 2000 || year > 2200 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "year out of range")
	}

	var sales []MonthlySales
	err := s.instrument("sales_for_year", func() error {
		rows, err := s.repo.SalesForYear(ctx, year)
		sales = rows
		return err
	})
	if err != nil {
		return nil, err
	}
	return sales, nil
}

func (s *service) instrument(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	s.metrics.ObserveDuration(name, time.Since(start))
	if err != nil {
		s.metrics.IncFailure(name)
	}
	return err
}
