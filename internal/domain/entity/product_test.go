package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/jhoicas/retail-suite/internal/domain/entity"
)

func TestIsLowStockEsInclusivo(t *testing.T) {
	p := entity.Product{StockQuantity: 5, MinStockLevel: 5}
	assert.True(t, p.IsLowStock())

	p.StockQuantity = 6
	assert.False(t, p.IsLowStock())

	p.StockQuantity = 4
	assert.True(t, p.IsLowStock())
}

func TestIsAvailable(t *testing.T) {
	p := entity.Product{StockQuantity: 1}
	assert.True(t, p.IsAvailable())

	assert.False(t, (&entity.Product{StockQuantity: 0}).IsAvailable())
}

func TestValidMovementType(t *testing.T) {
	assert.True(t, entity.ValidMovementType(entity.MovementTypeIn))
	assert.True(t, entity.ValidMovementType(entity.MovementTypeOut))
	assert.True(t, entity.ValidMovementType(entity.MovementTypeAdjustment))
	assert.False(t, entity.ValidMovementType("transfer"))
	assert.False(t, entity.ValidMovementType(""))
}
