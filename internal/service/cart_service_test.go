package service

import (
	"testing"

	"bookstore-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCartSubtotal(t *testing.T) {
	lines := []models.CartLine{
		{ProductID: 1, UnitPrice: 1000, Quantity: 2},
		{ProductID: 2, UnitPrice: 500, Quantity: 1},
	}

	total := cartSubtotal(lines)

	expected := int64(2*1000 + 1*500) // 2500
	assert.Equal(t, expected, total)
}

func TestCartSubtotalEmpty(t *testing.T) {
	assert.Equal(t, int64(0), cartSubtotal(nil))
}

func TestValidateQuantityBounds(t *testing.T) {
	cs := NewCartService(nil, 100000)

	assert.NoError(t, cs.ValidateQuantity(1))
	assert.NoError(t, cs.ValidateQuantity(100000))

	assert.ErrorIs(t, cs.ValidateQuantity(0), ErrInvalidQuantity)
	assert.ErrorIs(t, cs.ValidateQuantity(-1), ErrInvalidQuantity)
	assert.ErrorIs(t, cs.ValidateQuantity(100001), ErrInvalidQuantity)
}
