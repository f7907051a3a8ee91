package merchants

import (
	"context"
	"errors"
	"fmt"

	"marketpulse/pkg/db/models"
	"marketpulse/pkg/enums"
	"marketpulse/pkg/pagination"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository runs the merchant-scoped aggregation queries. The merchant
// id is an explicit filter on every query; results never leak another
// merchant's activity.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to the merchant queries.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns one directory page of merchants ordered newest first.
// Inactive merchants are hidden unless includeInactive is set.
func (r *Repository) List(ctx context.Context, includeInactive bool, params pagination.Params) (*Page, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, fmt.Errorf("list merchants: %w", err)
	}

	query := r.db.WithContext(ctx).
		Table("users").
		Select("users.id, users.name, users.city, users.state, users.active, users.created_at").
		Where("users.role = ?", enums.UserRoleMerchant)
	if !includeInactive {
		query = query.Where("users.active = ?", true)
	}
	if cursor != nil {
		query = query.Where(
			"users.created_at < ? OR (users.created_at = ? AND users.id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	limit := pagination.NormalizeLimit(params.Limit)
	var merchants []Summary
	err = query.
		Order("users.created_at DESC, users.id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Scan(&merchants).Error
	if err != nil {
		return nil, fmt.Errorf("list merchants: %w", err)
	}

	page := &Page{Merchants: merchants}
	if len(merchants) > limit {
		page.Merchants = merchants[:limit]
		last := page.Merchants[limit-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return page, nil
}

// merchantOrderItems joins the merchant's catalog to its sold line items.
func (r *Repository) merchantOrderItems(ctx context.Context, merchantID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("items").
		Joins("INNER JOIN order_items ON order_items.item_id = items.id").
		Where("items.merchant_id = ?", merchantID)
}

// buyersOfMerchant joins buyers to the fulfilled line items they bought
// from the merchant.
func (r *Repository) buyersOfMerchant(ctx context.Context, merchantID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("users").
		Joins("INNER JOIN orders ON orders.user_id = users.id").
		Joins("INNER JOIN order_items ON order_items.order_id = orders.id").
		Joins("INNER JOIN items ON items.id = order_items.item_id").
		Where("order_items.fulfilled = ?", true).
		Where("items.merchant_id = ?", merchantID)
}

// TopItemsByQuantity ranks the merchant's items by fulfilled units sold.
func (r *Repository) TopItemsByQuantity(ctx context.Context, merchantID uuid.UUID, limit int) ([]ItemQuantityRow, error) {
	var rows []ItemQuantityRow
	err := r.merchantOrderItems(ctx, merchantID).
		Select("items.id AS item_id, items.name AS name, items.price AS price, SUM(order_items.quantity) AS quantity_sold").
		Where("order_items.fulfilled = ?", true).
		Group("items.id").
		Order("quantity_sold DESC, items.id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("top items by quantity: %w", err)
	}
	return rows, nil
}

// QuantitySoldStats computes the merchant's sold/total ratio. A merchant
// with no stock and no sales gets a zero percentage instead of a
// division fault.
func (r *Repository) QuantitySoldStats(ctx context.Context, merchantID uuid.UUID) (QuantitySoldStats, error) {
	var sold int64
	err := r.merchantOrderItems(ctx, merchantID).
		Where("order_items.fulfilled = ?", true).
		Select("COALESCE(SUM(order_items.quantity), 0)").
		Scan(&sold).Error
	if err != nil {
		return QuantitySoldStats{}, fmt.Errorf("quantity sold: %w", err)
	}

	var inventory int64
	err = r.db.WithContext(ctx).
		Table("items").
		Where("items.merchant_id = ?", merchantID).
		Select("COALESCE(SUM(items.inventory), 0)").
		Scan(&inventory).Error
	if err != nil {
		return QuantitySoldStats{}, fmt.Errorf("inventory total: %w", err)
	}

	stats := QuantitySoldStats{
		Sold:       sold,
		Total:      sold + inventory,
		Percentage: decimal.Zero,
	}
	if stats.Total > 0 {
		stats.Percentage = decimal.NewFromInt(sold).
			Div(decimal.NewFromInt(stats.Total)).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	return stats, nil
}

// TopStates sums quantity shipped per destination state for the merchant.
func (r *Repository) TopStates(ctx context.Context, merchantID uuid.UUID, limit int) ([]DestinationStateRow, error) {
	var rows []DestinationStateRow
	err := r.merchantOrderItems(ctx, merchantID).
		Joins("INNER JOIN orders ON orders.id = order_items.order_id").
		Joins("INNER JOIN users AS buyers ON buyers.id = orders.user_id").
		Select("buyers.state AS state, SUM(order_items.quantity) AS quantity_shipped").
		Where("order_items.fulfilled = ?", true).
		Group("buyers.state").
		Order("quantity_shipped DESC, buyers.state ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("top states: %w", err)
	}
	return rows, nil
}

// TopCities sums quantity shipped per destination (city, state) for the
// merchant. The compound group key keeps same-named cities in different
// states apart.
func (r *Repository) TopCities(ctx context.Context, merchantID uuid.UUID, limit int) ([]DestinationCityRow, error) {
	var rows []DestinationCityRow
	err := r.merchantOrderItems(ctx, merchantID).
		Joins("INNER JOIN orders ON orders.id = order_items.order_id").
		Joins("INNER JOIN users AS buyers ON buyers.id = orders.user_id").
		Select("buyers.city AS city, buyers.state AS state, SUM(order_items.quantity) AS quantity_shipped").
		Where("order_items.fulfilled = ?", true).
		Group("buyers.city, buyers.state").
		Order("quantity_shipped DESC, buyers.state ASC, buyers.city ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("top cities: %w", err)
	}
	return rows, nil
}

// MostOrderingUser returns the buyer with the most distinct fulfilled
// orders from the merchant, or nil when the merchant has no sales.
func (r *Repository) MostOrderingUser(ctx context.Context, merchantID uuid.UUID) (*BuyerOrderCountRow, error) {
	var rows []BuyerOrderCountRow
	err := r.buyersOfMerchant(ctx, merchantID).
		Select("users.id AS user_id, users.name AS name, COUNT(DISTINCT orders.id) AS order_count").
		Group("users.id").
		Order("order_count DESC, users.id ASC").
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("most ordering user: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// MostItemsUser returns the buyer who bought the most units from the
// merchant, or nil when the merchant has no sales.
func (r *Repository) MostItemsUser(ctx context.Context, merchantID uuid.UUID) (*BuyerQuantityRow, error) {
	var rows []BuyerQuantityRow
	err := r.buyersOfMerchant(ctx, merchantID).
		Select("users.id AS user_id, users.name AS name, SUM(order_items.quantity) AS item_count").
		Group("users.id").
		Order("item_count DESC, users.id ASC").
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("most items user: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// TopRevenueBuyers ranks buyers by the revenue they generated for the
// merchant over fulfilled line items.
func (r *Repository) TopRevenueBuyers(ctx context.Context, merchantID uuid.UUID, limit int) ([]BuyerRevenueRow, error) {
	var rows []BuyerRevenueRow
	err := r.buyersOfMerchant(ctx, merchantID).
		Select("users.id AS user_id, users.name AS name, SUM(order_items.quantity * order_items.price) AS revenue").
		Group("users.id").
		Order("revenue DESC, users.id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("top revenue buyers: %w", err)
	}
	return rows, nil
}

// PendingOrders lists pending orders still holding unfulfilled line
// items from the merchant's catalog.
func (r *Repository) PendingOrders(ctx context.Context, merchantID uuid.UUID) ([]PendingOrderRow, error) {
	var rows []PendingOrderRow
	err := r.db.WithContext(ctx).
		Table("orders").
		Joins("INNER JOIN order_items ON order_items.order_id = orders.id").
		Joins("INNER JOIN items ON items.id = order_items.item_id").
		Joins("INNER JOIN users ON users.id = orders.user_id").
		Select("orders.id AS order_id, users.name AS buyer_name, orders.created_at AS placed_at, COUNT(order_items.id) AS line_items, SUM(order_items.quantity) AS total_quantity").
		Where("items.merchant_id = ?", merchantID).
		Where("orders.status = ?", enums.OrderStatusPending).
		Where("order_items.fulfilled = ?", false).
		Group("orders.id, users.name, orders.created_at").
		Order("orders.created_at ASC, orders.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("pending orders: %w", err)
	}
	return rows, nil
}

// InventoryCheck returns the item's inventory only when the viewer is a
// merchant who owns it. Anyone else gets nil, not an error; the query
// reveals nothing about items outside the viewer's catalog.
func (r *Repository) InventoryCheck(ctx context.Context, viewer *models.User, itemID uuid.UUID) (*int, error) {
	if !viewer.IsMerchant() {
		return nil, nil
	}

	var item models.Item
	err := r.db.WithContext(ctx).
		Where("id = ? AND merchant_id = ?", itemID, viewer.ID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("inventory check: %w", err)
	}
	return &item.Inventory, nil
}
