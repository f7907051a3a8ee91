package merchants

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemQuantityRow ranks one of the merchant's items by units sold.
type ItemQuantityRow struct {
	ItemID       uuid.UUID       `json:"item_id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	QuantitySold int64           `json:"quantity_sold"`
}

// QuantitySoldStats reports how much of the merchant's stock has moved.
// Percentage is sold/(sold+remaining inventory)*100 rounded to two
// decimal places; it is zero when the merchant has neither stock nor sales.
type QuantitySoldStats struct {
	Sold       int64           `json:"sold"`
	Total      int64           `json:"total"`
	Percentage decimal.Decimal `json:"percentage"`
}

// DestinationStateRow sums quantity shipped to a destination state.
type DestinationStateRow struct {
	State           string `json:"state"`
	QuantityShipped int64  `json:"quantity_shipped"`
}

// DestinationCityRow sums quantity shipped to a (city, state) pair.
type DestinationCityRow struct {
	City            string `json:"city"`
	State           string `json:"state"`
	QuantityShipped int64  `json:"quantity_shipped"`
}

// BuyerOrderCountRow ranks a buyer by distinct fulfilled orders placed
// with the merchant.
type BuyerOrderCountRow struct {
	UserID     uuid.UUID `json:"user_id"`
	Name       string    `json:"name"`
	OrderCount int64     `json:"order_count"`
}

// BuyerQuantityRow ranks a buyer by units bought from the merchant.
type BuyerQuantityRow struct {
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	ItemCount int64     `json:"item_count"`
}

// BuyerRevenueRow ranks a buyer by revenue generated for the merchant.
type BuyerRevenueRow struct {
	UserID  uuid.UUID       `json:"user_id"`
	Name    string          `json:"name"`
	Revenue decimal.Decimal `json:"revenue"`
}

// PendingOrderRow is a pending order still carrying unfulfilled line
// items from the merchant's catalog.
type PendingOrderRow struct {
	OrderID       uuid.UUID `json:"order_id"`
	BuyerName     string    `json:"buyer_name"`
	PlacedAt      time.Time `json:"placed_at"`
	LineItems     int64     `json:"line_items"`
	TotalQuantity int64     `json:"total_quantity"`
}

// Summary is a directory entry for a merchant.
type Summary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Page is one directory page plus the cursor for the next one.
type Page struct {
	Merchants  []Summary `json:"merchants"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// Dashboard is the merchant-facing report bundle.
type Dashboard struct {
	PendingOrders    []PendingOrderRow     `json:"pending_orders"`
	TopItems         []ItemQuantityRow     `json:"top_items"`
	QuantitySold     QuantitySoldStats     `json:"quantity_sold"`
	TopStates        []DestinationStateRow `json:"top_states"`
	TopCities        []DestinationCityRow  `json:"top_cities"`
	MostOrderingUser *BuyerOrderCountRow   `json:"most_ordering_user,omitempty"`
	MostItemsUser    *BuyerQuantityRow     `json:"most_items_user,omitempty"`
	TopRevenueBuyers []BuyerRevenueRow     `json:"top_revenue_buyers"`
}
