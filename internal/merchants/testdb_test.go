package merchants

import (
	"testing"
	"time"

	"marketpulse/pkg/db/models"
	"marketpulse/pkg/enums"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupMerchantsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	users := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  name TEXT NOT NULL,
  address TEXT NOT NULL,
  city TEXT NOT NULL,
  state TEXT NOT NULL,
  zip TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'default',
  active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	items := `
CREATE TABLE IF NOT EXISTS items (
  id TEXT PRIMARY KEY,
  merchant_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL,
  inventory INTEGER NOT NULL DEFAULT 0,
  active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  item_id TEXT NOT NULL,
  price NUMERIC NOT NULL,
  quantity INTEGER NOT NULL,
  fulfilled INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(users).Error)
	require.NoError(t, db.Exec(items).Error)
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(orderItems).Error)

	// The shared-cache memory DB outlives a single test, so start clean.
	for _, table := range []string{"order_items", "orders", "items", "users"} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}
	return db
}

func newUser(t *testing.T, db *gorm.DB, name, city, state string, role enums.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		ID:           uuid.New(),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		Name:         name,
		Address:      "1 Main St",
		City:         city,
		State:        state,
		Zip:          "00000",
		Role:         role,
		Active:       true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newMerchantAt(t *testing.T, db *gorm.DB, name string, createdAt time.Time) *models.User {
	t.Helper()

	merchant := &models.User{
		ID:           uuid.New(),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		Name:         name,
		Address:      "1 Main St",
		City:         "Denver",
		State:        "CO",
		Zip:          "00000",
		Role:         enums.UserRoleMerchant,
		Active:       true,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	require.NoError(t, db.Create(merchant).Error)
	return merchant
}

func newItem(t *testing.T, db *gorm.DB, merchant *models.User, name, price string, inventory int) *models.Item {
	t.Helper()

	item := &models.Item{
		ID:         uuid.New(),
		MerchantID: merchant.ID,
		Name:       name,
		Price:      decimal.RequireFromString(price),
		Inventory:  inventory,
		Active:     true,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func newOrderAt(t *testing.T, db *gorm.DB, buyer *models.User, status enums.OrderStatus, placedAt time.Time) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:        uuid.New(),
		UserID:    buyer.ID,
		Status:    status,
		CreatedAt: placedAt,
		UpdatedAt: placedAt,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func newLineItem(t *testing.T, db *gorm.DB, order *models.Order, item *models.Item, price string, quantity int, fulfilled bool) *models.OrderItem {
	t.Helper()

	lineItem := &models.OrderItem{
		ID:        uuid.New(),
		OrderID:   order.ID,
		ItemID:    item.ID,
		Price:     decimal.RequireFromString(price),
		Quantity:  quantity,
		Fulfilled: fulfilled,
	}
	require.NoError(t, db.Create(lineItem).Error)
	return lineItem
}
