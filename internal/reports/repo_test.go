package reports

import (
	"context"
	"testing"
	"time"

	"marketpulse/pkg/enums"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopRevenueMerchantsOrdersByFulfilledRevenue(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	buyer := newUser(t, db, "Buyer", "Austin", "TX", enums.UserRoleDefault)
	alpha := newUser(t, db, "Alpha Goods", "Denver", "CO", enums.UserRoleMerchant)
	bravo := newUser(t, db, "Bravo Supply", "Boise", "ID", enums.UserRoleMerchant)
	quiet := newUser(t, db, "Quiet Shop", "Salem", "OR", enums.UserRoleMerchant)

	alphaItem := newItem(t, db, alpha, "Widget", "100", 10)
	bravoItem := newItem(t, db, bravo, "Gadget", "50", 10)
	quietItem := newItem(t, db, quiet, "Gizmo", "25", 10)

	order := newOrder(t, db, buyer, enums.OrderStatusShipped)
	newLineItem(t, db, order, alphaItem, "100", 5, true, now.Add(-2*time.Hour), now.Add(-time.Hour))
	newLineItem(t, db, order, bravoItem, "50", 6, true, now.Add(-2*time.Hour), now.Add(-time.Hour))
	// Unfulfilled quantity never counts toward revenue.
	newLineItem(t, db, order, bravoItem, "50", 100, false, now.Add(-2*time.Hour), now.Add(-2*time.Hour))
	newLineItem(t, db, order, quietItem, "25", 100, false, now.Add(-2*time.Hour), now.Add(-2*time.Hour))

	rows, err := repo.TopRevenueMerchants(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, alpha.ID, rows[0].MerchantID)
	assert.Equal(t, "Alpha Goods", rows[0].Name)
	assert.Equal(t, "Denver", rows[0].City)
	assert.Equal(t, "CO", rows[0].State)
	assert.True(t, rows[0].Revenue.Equal(decimal.NewFromInt(500)), "got %s", rows[0].Revenue)

	assert.Equal(t, bravo.ID, rows[1].MerchantID)
	assert.True(t, rows[1].Revenue.Equal(decimal.NewFromInt(300)), "got %s", rows[1].Revenue)
}

func TestTopRevenueMerchantsIsIdempotent(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	buyer := newUser(t, db, "Buyer", "Austin", "TX", enums.UserRoleDefault)
	merchant := newUser(t, db, "Merchant", "Denver", "CO", enums.UserRoleMerchant)
	item := newItem(t, db, merchant, "Widget", "10", 10)
	order := newOrder(t, db, buyer, enums.OrderStatusShipped)
	newLineItem(t, db, order, item, "10", 3, true, now.Add(-time.Hour), now)

	first, err := repo.TopRevenueMerchants(ctx, 5)
	require.NoError(t, err)
	second, err := repo.TopRevenueMerchants(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestMerchantFulfillmentTimes(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	buyer := newUser(t, db, "Buyer", "Austin", "TX", enums.UserRoleDefault)
	fast := newUser(t, db, "Fast Freight", "Denver", "CO", enums.UserRoleMerchant)
	slow := newUser(t, db, "Slow Barge", "Boise", "ID", enums.UserRoleMerchant)
	idle := newUser(t, db, "Idle Stand", "Salem", "OR", enums.UserRoleMerchant)

	fastItem := newItem(t, db, fast, "Widget", "10", 10)
	slowItem := newItem(t, db, slow, "Gadget", "10", 10)
	idleItem := newItem(t, db, idle, "Gizmo", "10", 10)

	order := newOrder(t, db, buyer, enums.OrderStatusShipped)
	newLineItem(t, db, order, fastItem, "10", 1, true, now.Add(-2*time.Hour), now.Add(-time.Hour))
	newLineItem(t, db, order, slowItem, "10", 1, true, now.Add(-12*time.Hour), now.Add(-2*time.Hour))
	// Unfulfilled line items contribute no fulfillment time at all.
	newLineItem(t, db, order, idleItem, "10", 1, false, now.Add(-2*time.Hour), now.Add(-2*time.Hour))

	fastest, err := repo.MerchantFulfillmentTimes(ctx, SortAscending, 10)
	require.NoError(t, err)
	require.Len(t, fastest, 2)
	assert.Equal(t, fast.ID, fastest[0].MerchantID)
	assert.Equal(t, slow.ID, fastest[1].MerchantID)
	assert.InDelta(t, 3600, fastest[0].AvgFulfillmentSeconds, 5)
	assert.InDelta(t, 10*3600, fastest[1].AvgFulfillmentSeconds, 5)

	slowest, err := repo.MerchantFulfillmentTimes(ctx, SortDescending, 10)
	require.NoError(t, err)
	require.Len(t, slowest, 2)
	assert.Equal(t, slow.ID, slowest[0].MerchantID)
	assert.Equal(t, fast.ID, slowest[1].MerchantID)

	_, err = repo.MerchantFulfillmentTimes(ctx, SortDirection("sideways"), 10)
	require.Error(t, err)
}

func TestTopMerchantsItemsSoldWindow(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()
	window := RollingMonth(now)

	buyer := newUser(t, db, "Buyer", "Austin", "TX", enums.UserRoleDefault)
	recent := newUser(t, db, "Recent Mover", "Denver", "CO", enums.UserRoleMerchant)
	stale := newUser(t, db, "Stale Stock", "Boise", "ID", enums.UserRoleMerchant)

	recentItem := newItem(t, db, recent, "Widget", "10", 10)
	staleItem := newItem(t, db, stale, "Gadget", "10", 10)

	order := newOrder(t, db, buyer, enums.OrderStatusShipped)
	newLineItem(t, db, order, recentItem, "10", 4, true, now.Add(-72*time.Hour), now.Add(-48*time.Hour))
	// Unfulfilled quantity inside the window still counts as sold.
	newLineItem(t, db, order, recentItem, "10", 2, false, now.Add(-24*time.Hour), now.Add(-24*time.Hour))
	// Activity outside the window never counts.
	newLineItem(t, db, order, staleItem, "10", 50, true, now.AddDate(0, -3, 0), now.AddDate(0, -2, 0))

	rows, err := repo.TopMerchantsItemsSold(ctx, window, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, recent.ID, rows[0].MerchantID)
	assert.Equal(t, int64(6), rows[0].ItemsSold)
}

func TestTopMerchantsFulfilledOrdersExcludesCancelled(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()
	window := RollingMonth(now)

	buyer := newUser(t, db, "Buyer", "Austin", "TX", enums.UserRoleDefault)
	merchant := newUser(t, db, "Merchant", "Denver", "CO", enums.UserRoleMerchant)
	item := newItem(t, db, merchant, "Widget", "10", 10)

	shipped := newOrder(t, db, buyer, enums.OrderStatusShipped)
	newLineItem(t, db, shipped, item, "10", 1, true, now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	newLineItem(t, db, shipped, item, "10", 2, true, now.Add(-48*time.Hour), now.Add(-24*time.Hour))

	pending := newOrder(t, db, buyer, enums.OrderStatusPending)
	newLineItem(t, db, pending, item, "10", 1, true, now.Add(-48*time.Hour), now.Add(-24*time.Hour))

	// A cancelled order is excluded even when its line items were fulfilled.
	cancelled := newOrder(t, db, buyer, enums.OrderStatusCancelled)
	newLineItem(t, db, cancelled, item, "10", 1, true, now.Add(-48*time.Hour), now.Add(-24*time.Hour))

	rows, err := repo.TopMerchantsFulfilledOrders(ctx, window, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, merchant.ID, rows[0].MerchantID)
	assert.Equal(t, int64(2), rows[0].OrderCount)
}

func TestFastestMerchantsForLocality(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	viewer := newUser(t, db, "Viewer", "Portland", "OR", enums.UserRoleDefault)
	neighbor := newUser(t, db, "Neighbor", "Portland", "OR", enums.UserRoleDefault)
	upstate := newUser(t, db, "Upstate", "Bend", "OR", enums.UserRoleDefault)
	faraway := newUser(t, db, "Faraway", "Austin", "TX", enums.UserRoleDefault)

	local := newUser(t, db, "Local Courier", "Salem", "OR", enums.UserRoleMerchant)
	statewide := newUser(t, db, "Statewide Post", "Eugene", "OR", enums.UserRoleMerchant)
	distant := newUser(t, db, "Distant Mail", "Dallas", "TX", enums.UserRoleMerchant)

	localItem := newItem(t, db, local, "Widget", "10", 10)
	statewideItem := newItem(t, db, statewide, "Gadget", "10", 10)
	distantItem := newItem(t, db, distant, "Gizmo", "10", 10)

	cityOrder := newOrder(t, db, neighbor, enums.OrderStatusShipped)
	newLineItem(t, db, cityOrder, localItem, "10", 1, true, now.Add(-2*time.Hour), now.Add(-time.Hour))

	stateOrder := newOrder(t, db, upstate, enums.OrderStatusShipped)
	newLineItem(t, db, stateOrder, statewideItem, "10", 1, true, now.Add(-12*time.Hour), now.Add(-time.Hour))

	texasOrder := newOrder(t, db, faraway, enums.OrderStatusShipped)
	newLineItem(t, db, texasOrder, distantItem, "10", 1, true, now.Add(-2*time.Hour), now.Add(-time.Hour))

	stateRows, err := repo.FastestMerchantsForLocality(ctx, viewer, LocalityState, 10)
	require.NoError(t, err)
	require.Len(t, stateRows, 2)
	assert.Equal(t, local.ID, stateRows[0].MerchantID)
	assert.Equal(t, statewide.ID, stateRows[1].MerchantID)

	cityRows, err := repo.FastestMerchantsForLocality(ctx, viewer, LocalityCity, 10)
	require.NoError(t, err)
	require.Len(t, cityRows, 1)
	assert.Equal(t, local.ID, cityRows[0].MerchantID)

	none, err := repo.FastestMerchantsForLocality(ctx, nil, LocalityState, 10)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestTopShipmentStatesCountsDistinctOrders(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	oregonBuyer := newUser(t, db, "Oregon Buyer", "Portland", "OR", enums.UserRoleDefault)
	texasBuyer := newUser(t, db, "Texas Buyer", "Austin", "TX", enums.UserRoleDefault)
	merchant := newUser(t, db, "Merchant", "Denver", "CO", enums.UserRoleMerchant)
	item := newItem(t, db, merchant, "Widget", "10", 10)

	first := newOrder(t, db, oregonBuyer, enums.OrderStatusShipped)
	// Two fulfilled line items on one order count as one shipment.
	newLineItem(t, db, first, item, "10", 1, true, now.Add(-2*time.Hour), now.Add(-time.Hour))
	newLineItem(t, db, first, item, "10", 2, true, now.Add(-2*time.Hour), now.Add(-time.Hour))

	second := newOrder(t, db, oregonBuyer, enums.OrderStatusShipped)
	newLineItem(t, db, second, item, "10", 1, true, now.Add(-2*time.Hour), now.Add(-time.Hour))

	third := newOrder(t, db, texasBuyer, enums.OrderStatusShipped)
	newLineItem(t, db, third, item, "10", 1, true, now.Add(-2*time.Hour), now.Add(-time.Hour))

	rows, err := repo.TopShipmentStates(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "OR", rows[0].State)
	assert.Equal(t, int64(2), rows[0].OrderCount)
	assert.Equal(t, "TX", rows[1].State)
	assert.Equal(t, int64(1), rows[1].OrderCount)
}

func TestTopShipmentCitiesKeepsSameNamedCitiesApart(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	oregonian := newUser(t, db, "Oregonian", "Portland", "OR", enums.UserRoleDefault)
	mainer := newUser(t, db, "Mainer", "Portland", "ME", enums.UserRoleDefault)
	merchant := newUser(t, db, "Merchant", "Denver", "CO", enums.UserRoleMerchant)
	item := newItem(t, db, merchant, "Widget", "10", 10)

	for i := 0; i < 2; i++ {
		order := newOrder(t, db, oregonian, enums.OrderStatusShipped)
		newLineItem(t, db, order, item, "10", 1, true, now.Add(-2*time.Hour), now.Add(-time.Hour))
	}
	maine := newOrder(t, db, mainer, enums.OrderStatusShipped)
	newLineItem(t, db, maine, item, "10", 1, true, now.Add(-2*time.Hour), now.Add(-time.Hour))

	rows, err := repo.TopShipmentCities(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Portland", rows[0].City)
	assert.Equal(t, "OR", rows[0].State)
	assert.Equal(t, int64(2), rows[0].OrderCount)
	assert.Equal(t, "Portland", rows[1].City)
	assert.Equal(t, "ME", rows[1].State)
	assert.Equal(t, int64(1), rows[1].OrderCount)
}

func TestTopQuantityOrders(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	buyer := newUser(t, db, "Big Buyer", "Austin", "TX", enums.UserRoleDefault)
	merchant := newUser(t, db, "Merchant", "Denver", "CO", enums.UserRoleMerchant)
	item := newItem(t, db, merchant, "Widget", "10", 100)

	big := newOrder(t, db, buyer, enums.OrderStatusShipped)
	newLineItem(t, db, big, item, "10", 7, true, now.Add(-2*time.Hour), now.Add(-time.Hour))
	newLineItem(t, db, big, item, "10", 3, false, now.Add(-2*time.Hour), now.Add(-2*time.Hour))

	small := newOrder(t, db, buyer, enums.OrderStatusPending)
	newLineItem(t, db, small, item, "10", 5, false, now.Add(-2*time.Hour), now.Add(-2*time.Hour))

	rows, err := repo.TopQuantityOrders(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, big.ID, rows[0].OrderID)
	assert.Equal(t, "Big Buyer", rows[0].BuyerName)
	assert.Equal(t, int64(10), rows[0].TotalQuantity)
	assert.Equal(t, small.ID, rows[1].OrderID)
	assert.Equal(t, int64(5), rows[1].TotalQuantity)
}

func TestSalesForYearZeroFillsAllTwelveMonths(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	buyer := newUser(t, db, "Buyer", "Austin", "TX", enums.UserRoleDefault)
	merchant := newUser(t, db, "Merchant", "Denver", "CO", enums.UserRoleMerchant)
	item := newItem(t, db, merchant, "Widget", "50", 100)
	order := newOrder(t, db, buyer, enums.OrderStatusShipped)

	march := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	july := time.Date(2025, time.July, 4, 9, 0, 0, 0, time.UTC)
	priorYear := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

	newLineItem(t, db, order, item, "50", 2, true, march.Add(-24*time.Hour), march)
	newLineItem(t, db, order, item, "50", 1, true, march.Add(-24*time.Hour), march)
	newLineItem(t, db, order, item, "50", 1, true, july.Add(-24*time.Hour), july)
	// Unfulfilled and prior-year activity stays out of the buckets.
	newLineItem(t, db, order, item, "50", 9, false, march.Add(-24*time.Hour), march)
	newLineItem(t, db, order, item, "50", 9, true, priorYear.Add(-24*time.Hour), priorYear)

	sales, err := repo.SalesForYear(ctx, 2025)
	require.NoError(t, err)
	require.Len(t, sales, 12)

	assert.Equal(t, time.January, sales[0].Month)
	assert.Equal(t, "Jan", sales[0].Label)
	assert.True(t, sales[0].Revenue.IsZero())

	assert.Equal(t, "Mar", sales[2].Label)
	assert.True(t, sales[2].Revenue.Equal(decimal.NewFromInt(150)), "got %s", sales[2].Revenue)

	assert.Equal(t, "Jul", sales[6].Label)
	assert.True(t, sales[6].Revenue.Equal(decimal.NewFromInt(50)), "got %s", sales[6].Revenue)

	for i, bucket := range sales {
		if i == 2 || i == 6 {
			continue
		}
		assert.True(t, bucket.Revenue.IsZero(), "month %s", bucket.Label)
	}
}

func TestTotalSalesByMerchantOrdersByName(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	buyer := newUser(t, db, "Buyer", "Austin", "TX", enums.UserRoleDefault)
	zebra := newUser(t, db, "Zebra Trading", "Denver", "CO", enums.UserRoleMerchant)
	acme := newUser(t, db, "Acme Retail", "Boise", "ID", enums.UserRoleMerchant)

	zebraItem := newItem(t, db, zebra, "Widget", "10", 10)
	acmeItem := newItem(t, db, acme, "Gadget", "20", 10)

	order := newOrder(t, db, buyer, enums.OrderStatusShipped)
	newLineItem(t, db, order, zebraItem, "10", 1, true, now.Add(-2*time.Hour), now.Add(-time.Hour))
	newLineItem(t, db, order, acmeItem, "20", 2, true, now.Add(-2*time.Hour), now.Add(-time.Hour))

	rows, err := repo.TotalSalesByMerchant(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, acme.ID, rows[0].MerchantID)
	assert.True(t, rows[0].Revenue.Equal(decimal.NewFromInt(40)), "got %s", rows[0].Revenue)
	assert.Equal(t, zebra.ID, rows[1].MerchantID)
	assert.True(t, rows[1].Revenue.Equal(decimal.NewFromInt(10)), "got %s", rows[1].Revenue)
}
