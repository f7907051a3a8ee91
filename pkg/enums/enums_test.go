package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRoleValidation(t *testing.T) {
	assert.True(t, UserRoleDefault.IsValid())
	assert.True(t, UserRoleMerchant.IsValid())
	assert.True(t, UserRoleAdmin.IsValid())
	assert.False(t, UserRole("superuser").IsValid())

	role, err := ParseUserRole("merchant")
	require.NoError(t, err)
	assert.Equal(t, UserRoleMerchant, role)

	_, err = ParseUserRole("Merchant")
	require.Error(t, err)
}

func TestOrderStatusValidation(t *testing.T) {
	assert.True(t, OrderStatusPending.IsValid())
	assert.True(t, OrderStatusShipped.IsValid())
	assert.True(t, OrderStatusCancelled.IsValid())
	assert.False(t, OrderStatus("returned").IsValid())

	status, err := ParseOrderStatus("shipped")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusShipped, status)

	_, err = ParseOrderStatus("")
	require.Error(t, err)
}
