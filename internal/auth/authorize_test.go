package auth

import (
	"testing"

	"bookly/internal/db"

	"github.com/stretchr/testify/require"
)

func TestCanActOn(t *testing.T) {
	bk := &db.Booking{ID: 1, CustomerID: 10, ProviderID: 20}

	require.True(t, CanActOn(Actor{ID: 10, Role: RoleCustomer}, bk))
	require.False(t, CanActOn(Actor{ID: 11, Role: RoleCustomer}, bk))

	require.True(t, CanActOn(Actor{ID: 20, Role: RoleProvider}, bk))
	require.False(t, CanActOn(Actor{ID: 21, Role: RoleProvider}, bk))

	// Admins may act on anything, unknown roles on nothing.
	require.True(t, CanActOn(Actor{ID: 99, Role: RoleAdmin}, bk))
	require.False(t, CanActOn(Actor{ID: 10, Role: ""}, bk))
}
