package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestEnforcer_Policies(t *testing.T) {
	e, err := NewEnforcer(nil)
	require.NoError(t, err)

	cases := []struct {
		role, path, method string
		allowed            bool
	}{
		{RoleAdmin, "/api/v1/products/123", "DELETE", true},
		{RoleAdmin, "/api/v1/users/123", "PUT", true},
		{RoleUser, "/api/v1/products", "GET", true},
		{RoleUser, "/api/v1/products", "POST", true},
		{RoleUser, "/api/v1/products/bulk/import", "POST", true},
		{RoleUser, "/api/v1/products/123", "DELETE", false},
		{RoleUser, "/api/v1/categories", "POST", true},
		{RoleUser, "/api/v1/categories/1", "DELETE", false},
		{RoleUser, "/api/v1/users/123", "PUT", false},
		{RoleUser, "/api/v1/invoices/1", "DELETE", true},
		{RoleUser, "/api/v1/manual-quotations/1/status", "PATCH", true},
		{RoleUser, "/api/v1/expenses", "POST", true},
		{RoleUser, "/api/v1/shipping/4", "PUT", true},
		{RoleUser, "/api/v1/auth/update", "PUT", true},
		{RoleUser, "/api/v1/auth/logout", "POST", true},
		{"guest", "/api/v1/products", "GET", false},
	}
	for _, tc := range cases {
		ok, err := e.Enforce(tc.role, tc.path, tc.method)
		require.NoError(t, err)
		assert.Equal(t, tc.allowed, ok, "%s %s %s", tc.role, tc.method, tc.path)
	}
}

func TestEnforcer_PersistsPolicies(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	_, err = NewEnforcer(db)
	require.NoError(t, err)

	// Seeding twice must not duplicate rows
	e, err := NewEnforcer(db)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Table("casbin_rule").Count(&count).Error)
	assert.Equal(t, int64(len(DefaultPolicies())), count)

	ok, err := e.Enforce(RoleUser, "/api/v1/leads/9", "PUT")
	require.NoError(t, err)
	assert.True(t, ok)
}
