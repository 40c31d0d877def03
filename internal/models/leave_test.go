package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLeaveBalanceAvailable(t *testing.T) {
	b := LeaveBalance{Entitled: 12, CarriedOver: 3, Used: 4, Pending: 1}
	require.Equal(t, 10.0, b.Available())

	b = LeaveBalance{Entitled: 12}
	require.Equal(t, 12.0, b.Available())

	b = LeaveBalance{Entitled: 5, Used: 3, Pending: 2}
	require.Equal(t, 0.0, b.Available())
}
