package reports

import (
	"context"
	"fmt"
	"time"

	"marketpulse/pkg/db/models"
	"marketpulse/pkg/enums"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Locality scopes a leaderboard to buyers sharing the viewer's state or
// (city, state).
type Locality string

const (
	LocalityState Locality = "state"
	LocalityCity  Locality = "city"
)

// Repository runs the marketplace-wide aggregation queries. Every method
// is read-only and idempotent; ties on the ranking key break on merchant
// id (or the group key itself) so repeated runs return identical order.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to the report queries.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// merchantLineItems joins merchants to the line items sold through their
// catalog. The inner joins drop merchants with no matching line items,
// so zero-activity merchants never appear on a leaderboard.
func (r *Repository) merchantLineItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("users").
		Joins("INNER JOIN items ON items.merchant_id = users.id").
		Joins("INNER JOIN order_items ON order_items.item_id = items.id")
}

// TopRevenueMerchants ranks merchants by revenue over fulfilled line items.
func (r *Repository) TopRevenueMerchants(ctx context.Context, limit int) ([]MerchantRevenueRow, error) {
	var rows []MerchantRevenueRow
	err := r.merchantLineItems(ctx).
		Select("users.id AS merchant_id, users.name AS name, users.city AS city, users.state AS state, SUM(order_items.quantity * order_items.price) AS revenue").
		Where("order_items.fulfilled = ?", true).
		Group("users.id").
		Order("revenue DESC, users.id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("top revenue merchants: %w", err)
	}
	return rows, nil
}

// MerchantFulfillmentTimes ranks merchants by their mean fulfillment time
// over fulfilled line items, fastest first when direction is ascending.
func (r *Repository) MerchantFulfillmentTimes(ctx context.Context, direction SortDirection, limit int) ([]MerchantFulfillmentRow, error) {
	if !direction.IsValid() {
		return nil, fmt.Errorf("invalid sort direction %q", direction)
	}
	var rows []MerchantFulfillmentRow
	err := r.merchantLineItems(ctx).
		Select(fmt.Sprintf("users.id AS merchant_id, users.name AS name, AVG(%s) AS avg_fulfillment_seconds", fulfillmentSecondsExpr(r.db))).
		Where("order_items.fulfilled = ?", true).
		Group("users.id").
		Order(fmt.Sprintf("avg_fulfillment_seconds %s, users.id ASC", direction.SQL())).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("merchant fulfillment times: %w", err)
	}
	return rows, nil
}

// TopMerchantsItemsSold sums line-item quantity per merchant inside the
// window. The window applies to the line item's updated_at; no fulfilled
// filter is applied, matching the established report semantics.
func (r *Repository) TopMerchantsItemsSold(ctx context.Context, window Window, limit int) ([]MerchantItemsSoldRow, error) {
	var rows []MerchantItemsSoldRow
	err := r.merchantLineItems(ctx).
		Select("users.id AS merchant_id, users.name AS name, SUM(order_items.quantity) AS items_sold").
		Where("order_items.updated_at >= ? AND order_items.updated_at < ?", window.Start, window.End).
		Group("users.id").
		Order("items_sold DESC, users.id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("top merchants items sold: %w", err)
	}
	return rows, nil
}

// TopMerchantsFulfilledOrders counts distinct non-cancelled orders with
// line items fulfilled inside the window, per merchant.
func (r *Repository) TopMerchantsFulfilledOrders(ctx context.Context, window Window, limit int) ([]MerchantOrderCountRow, error) {
	var rows []MerchantOrderCountRow
	err := r.merchantLineItems(ctx).
		Joins("INNER JOIN orders ON orders.id = order_items.order_id").
		Select("users.id AS merchant_id, users.name AS name, COUNT(DISTINCT orders.id) AS order_count").
		Where("order_items.fulfilled = ?", true).
		Where("orders.status <> ?", enums.OrderStatusCancelled).
		Where("order_items.updated_at >= ? AND order_items.updated_at < ?", window.Start, window.End).
		Group("users.id").
		Order("order_count DESC, users.id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("top merchants fulfilled orders: %w", err)
	}
	return rows, nil
}

// FastestMerchantsForLocality ranks merchants by mean fulfillment time
// over orders placed by buyers in the viewer's state (or city and state).
func (r *Repository) FastestMerchantsForLocality(ctx context.Context, viewer *models.User, locality Locality, limit int) ([]MerchantFulfillmentRow, error) {
	if viewer == nil {
		return nil, nil
	}
	query := r.merchantLineItems(ctx).
		Joins("INNER JOIN orders ON orders.id = order_items.order_id").
		Joins("INNER JOIN users AS buyers ON buyers.id = orders.user_id").
		Select(fmt.Sprintf("users.id AS merchant_id, users.name AS name, AVG(%s) AS avg_fulfillment_seconds", fulfillmentSecondsExpr(r.db))).
		Where("order_items.fulfilled = ?", true).
		Where("orders.status <> ?", enums.OrderStatusCancelled).
		Where("buyers.state = ?", viewer.State)
	if locality == LocalityCity {
		query = query.Where("buyers.city = ?", viewer.City)
	}

	var rows []MerchantFulfillmentRow
	err := query.
		Group("users.id").
		Order("avg_fulfillment_seconds ASC, users.id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fastest merchants for locality: %w", err)
	}
	return rows, nil
}

// TopShipmentStates counts distinct fulfilled-to orders per destination state.
func (r *Repository) TopShipmentStates(ctx context.Context, limit int) ([]StateShipmentRow, error) {
	var rows []StateShipmentRow
	err := r.db.WithContext(ctx).
		Table("orders").
		Joins("INNER JOIN users ON users.id = orders.user_id").
		Joins("INNER JOIN order_items ON order_items.order_id = orders.id").
		Select("users.state AS state, COUNT(DISTINCT orders.id) AS order_count").
		Where("order_items.fulfilled = ?", true).
		Group("users.state").
		Order("order_count DESC, users.state ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("top shipment states: %w", err)
	}
	return rows, nil
}

// TopShipmentCities counts distinct fulfilled-to orders per (city, state).
func (r *Repository) TopShipmentCities(ctx context.Context, limit int) ([]CityShipmentRow, error) {
	var rows []CityShipmentRow
	err := r.db.WithContext(ctx).
		Table("orders").
		Joins("INNER JOIN users ON users.id = orders.user_id").
		Joins("INNER JOIN order_items ON order_items.order_id = orders.id").
		Select("users.city AS city, users.state AS state, COUNT(DISTINCT orders.id) AS order_count").
		Where("order_items.fulfilled = ?", true).
		Group("users.city, users.state").
		Order("order_count DESC, users.state ASC, users.city ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("top shipment cities: %w", err)
	}
	return rows, nil
}

// TopQuantityOrders ranks individual orders by total contained quantity.
func (r *Repository) TopQuantityOrders(ctx context.Context, limit int) ([]OrderQuantityRow, error) {
	var rows []OrderQuantityRow
	err := r.db.WithContext(ctx).
		Table("orders").
		Joins("INNER JOIN order_items ON order_items.order_id = orders.id").
		Joins("INNER JOIN users ON users.id = orders.user_id").
		Select("orders.id AS order_id, users.name AS buyer_name, SUM(order_items.quantity) AS total_quantity").
		Group("orders.id, users.name").
		Order("total_quantity DESC, orders.id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("top quantity orders: %w", err)
	}
	return rows, nil
}

// SalesForYear buckets revenue of fulfilled line items by the calendar
// month of their fulfillment timestamp. All twelve months are returned;
// months without sales carry zero revenue.
func (r *Repository) SalesForYear(ctx context.Context, year int) ([]MonthlySales, error) {
	window := CalendarYear(year)

	var buckets []struct {
		Month   int
		Revenue decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select(fmt.Sprintf("%s AS month, SUM(order_items.quantity * order_items.price) AS revenue", monthExpr(r.db, "order_items.updated_at"))).
		Where("order_items.fulfilled = ?", true).
		Where("order_items.updated_at >= ? AND order_items.updated_at < ?", window.Start, window.End).
		Group("month").
		Order("month ASC").
		Scan(&buckets).Error
	if err != nil {
		return nil, fmt.Errorf("sales for year: %w", err)
	}

	byMonth := make(map[int]decimal.Decimal, len(buckets))
	for _, bucket := range buckets {
		byMonth[bucket.Month] = bucket.Revenue
	}

	out := make([]MonthlySales, 0, 12)
	for month := time.January; month <= time.December; month++ {
		revenue, ok := byMonth[int(month)]
		if !ok {
			revenue = decimal.Zero
		}
		out = append(out, MonthlySales{
			Month:   month,
			Label:   month.String()[:3],
			Revenue: revenue,
		})
	}
	return out, nil
}

// TotalSalesByMerchant reports every merchant's all-time revenue over
// fulfilled line items, ordered by merchant name.
func (r *Repository) TotalSalesByMerchant(ctx context.Context) ([]MerchantSalesRow, error) {
	var rows []MerchantSalesRow
	err := r.merchantLineItems(ctx).
		Select("users.id AS merchant_id, users.name AS name, SUM(order_items.quantity * order_items.price) AS revenue").
		Where("order_items.fulfilled = ?", true).
		Group("users.id").
		Order("users.name ASC, users.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("total sales by merchant: %w", err)
	}
	return rows, nil
}
