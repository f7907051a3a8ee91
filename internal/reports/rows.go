package reports

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SortDirection orders a leaderboard by its ranking key.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// IsValid reports whether the value is a known SortDirection.
func (s SortDirection) IsValid() bool {
	return s == SortAscending || s == SortDescending
}

// SQL returns the ORDER BY keyword for the direction.
func (s SortDirection) SQL() string {
	if s == SortDescending {
		return "DESC"
	}
	return "ASC"
}

// MerchantRevenueRow ranks a merchant by revenue over fulfilled line items.
type MerchantRevenueRow struct {
	MerchantID uuid.UUID       `json:"merchant_id"`
	Name       string          `json:"name"`
	City       string          `json:"city"`
	State      string          `json:"state"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// MerchantFulfillmentRow ranks a merchant by mean fulfillment time.
type MerchantFulfillmentRow struct {
	MerchantID            uuid.UUID `json:"merchant_id"`
	Name                  string    `json:"name"`
	AvgFulfillmentSeconds float64   `json:"avg_fulfillment_seconds"`
}

// AvgFulfillment returns the mean fulfillment time as a duration.
func (r MerchantFulfillmentRow) AvgFulfillment() time.Duration {
	return time.Duration(r.AvgFulfillmentSeconds * float64(time.Second))
}

// MerchantItemsSoldRow ranks a merchant by units sold inside a window.
type MerchantItemsSoldRow struct {
	MerchantID uuid.UUID `json:"merchant_id"`
	Name       string    `json:"name"`
	ItemsSold  int64     `json:"items_sold"`
}

// MerchantOrderCountRow ranks a merchant by distinct fulfilled orders.
type MerchantOrderCountRow struct {
	MerchantID uuid.UUID `json:"merchant_id"`
	Name       string    `json:"name"`
	OrderCount int64     `json:"order_count"`
}

// StateShipmentRow counts distinct shipped-to orders per destination state.
type StateShipmentRow struct {
	State      string `json:"state"`
	OrderCount int64  `json:"order_count"`
}

// CityShipmentRow counts distinct shipped-to orders per (city, state) pair.
// City alone is never the group key; same-named cities in different states
// stay separate rows.
type CityShipmentRow struct {
	City       string `json:"city"`
	State      string `json:"state"`
	OrderCount int64  `json:"order_count"`
}

// OrderQuantityRow ranks a single order by the total quantity it contains.
type OrderQuantityRow struct {
	OrderID       uuid.UUID `json:"order_id"`
	BuyerName     string    `json:"buyer_name"`
	TotalQuantity int64     `json:"total_quantity"`
}

// MonthlySales is one calendar-month revenue bucket of a yearly report.
type MonthlySales struct {
	Month   time.Month      `json:"month"`
	Label   string          `json:"label"`
	Revenue decimal.Decimal `json:"revenue"`
}

// MerchantSalesRow carries total sales per merchant across all time.
type MerchantSalesRow struct {
	MerchantID uuid.UUID       `json:"merchant_id"`
	Name       string          `json:"name"`
	Revenue    decimal.Decimal `json:"revenue"`
}
