package models_test

import (
	"testing"

	"digitalstore_back_end/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestItemsTotal(t *testing.T) {
	items := []models.OrderItem{
		{Price: 19.99, Quantity: 3},
		{Price: 5.00, Quantity: 1},
	}
	assert.InDelta(t, 64.97, models.ItemsTotal(items), 0.001)

	assert.Equal(t, 0.0, models.ItemsTotal(nil))
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []models.OrderStatus{
		models.StatusPending, models.StatusProcessing, models.StatusShipped,
		models.StatusDelivered, models.StatusCancelled,
	} {
		assert.True(t, s.Valid(), "expected %s to be valid", s)
	}

	assert.False(t, models.OrderStatus("Paid").Valid())
	assert.False(t, models.OrderStatus("").Valid())
	assert.False(t, models.OrderStatus("pending").Valid())
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.OrderStatus
		want     bool
	}{
		// Forward moves, including skips.
		{models.StatusPending, models.StatusProcessing, true},
		{models.StatusPending, models.StatusShipped, true},
		{models.StatusPending, models.StatusDelivered, true},
		{models.StatusProcessing, models.StatusShipped, true},
		{models.StatusShipped, models.StatusDelivered, true},

		// Cancellation from any non-terminal status.
		{models.StatusPending, models.StatusCancelled, true},
		{models.StatusProcessing, models.StatusCancelled, true},
		{models.StatusShipped, models.StatusCancelled, true},

		// Backward moves are rejected.
		{models.StatusProcessing, models.StatusPending, false},
		{models.StatusShipped, models.StatusPending, false},
		{models.StatusDelivered, models.StatusPending, false},

		// Terminal statuses are frozen.
		{models.StatusDelivered, models.StatusShipped, false},
		{models.StatusDelivered, models.StatusCancelled, false},
		{models.StatusCancelled, models.StatusPending, false},
		{models.StatusCancelled, models.StatusDelivered, false},

		// Self-transitions are not transitions.
		{models.StatusPending, models.StatusPending, false},
		{models.StatusShipped, models.StatusShipped, false},

		// Unknown statuses never transition.
		{models.StatusPending, models.OrderStatus("Paid"), false},
		{models.OrderStatus("Paid"), models.StatusShipped, false},
	}

	for _, tt := range tests {
		got := models.CanTransition(tt.from, tt.to)
		assert.Equal(t, tt.want, got, "%s → %s", tt.from, tt.to)
	}
}
