package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with defaults", func(t *testing.T) {
		p, err := NewProduct(ProductInput{
			Name:        "  E-11  ",
			ProductType: "Tiles",
			Quantity:    decimal.RequireFromString("423.36"),
			Boxes:       decimal.NewFromInt(294),
			Price:       decimal.NewFromInt(45),
		})
		require.NoError(t, err)

		assert.Equal(t, "E-11", p.Name)
		assert.True(t, p.TaxRate.Equal(DefaultTaxRate))
		assert.True(t, p.Quantity.Equal(decimal.RequireFromString("423.36")))
		assert.NotEmpty(t, p.ID)
	})

	t.Run("requires a name", func(t *testing.T) {
		_, err := NewProduct(ProductInput{Name: " ", Price: decimal.NewFromInt(1)})
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrValidationFailed)
	})

	t.Run("rejects negative price and stock", func(t *testing.T) {
		_, err := NewProduct(ProductInput{Name: "A", Price: decimal.NewFromInt(-1)})
		assert.ErrorIs(t, err, shared.ErrValidationFailed)

		_, err = NewProduct(ProductInput{Name: "A", Quantity: decimal.NewFromInt(-1)})
		assert.ErrorIs(t, err, shared.ErrValidationFailed)
	})

	t.Run("rejects tax rate above 100", func(t *testing.T) {
		rate := decimal.NewFromInt(101)
		_, err := NewProduct(ProductInput{Name: "A", TaxRate: &rate})
		assert.ErrorIs(t, err, shared.ErrValidationFailed)
	})
}

func TestProduct_UpdateKeepsStock(t *testing.T) {
	p, err := NewProduct(ProductInput{Name: "A", Quantity: decimal.NewFromInt(10), Boxes: decimal.NewFromInt(4)})
	require.NoError(t, err)

	require.NoError(t, p.Update(ProductInput{Name: "B", Quantity: decimal.NewFromInt(999), Price: decimal.NewFromInt(3)}))

	assert.Equal(t, "B", p.Name)
	assert.True(t, p.Quantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, p.Boxes.Equal(decimal.NewFromInt(4)))
}

func TestNewCategory(t *testing.T) {
	c, err := NewCategory("Wall Tiles", "")
	require.NoError(t, err)
	assert.Equal(t, "wall-tiles", c.Slug)

	_, err = NewCategory("", "")
	assert.ErrorIs(t, err, shared.ErrValidationFailed)
}

func TestCoverageTable(t *testing.T) {
	table, err := NewCoverageTable(decimal.RequireFromString("2.1"), map[string]decimal.Decimal{
		"Tiles": decimal.RequireFromString("1.44"),
	})
	require.NoError(t, err)

	t.Run("category lookup is case-insensitive", func(t *testing.T) {
		assert.True(t, table.CoverageFor("tiles").Equal(decimal.RequireFromString("1.44")))
		assert.True(t, table.CoverageFor(" TILES ").Equal(decimal.RequireFromString("1.44")))
	})

	t.Run("falls back to default", func(t *testing.T) {
		assert.True(t, table.CoverageFor("Adhesive").Equal(decimal.RequireFromString("2.1")))
	})

	t.Run("boxes round up", func(t *testing.T) {
		assert.True(t, table.Boxes("Tiles", decimal.NewFromInt(10)).Equal(decimal.NewFromInt(7)))
		assert.True(t, table.Boxes("Tiles", decimal.RequireFromString("1.44")).Equal(decimal.NewFromInt(1)))
		assert.True(t, table.Boxes("Other", decimal.NewFromInt(5)).Equal(decimal.NewFromInt(3)))
		assert.True(t, table.Boxes("Tiles", decimal.Zero).IsZero())
	})

	t.Run("rejects non-positive coverage", func(t *testing.T) {
		_, err := NewCoverageTable(decimal.Zero, nil)
		assert.Error(t, err)

		_, err = NewCoverageTable(decimal.NewFromInt(1), map[string]decimal.Decimal{"x": decimal.NewFromInt(-1)})
		assert.Error(t, err)
	})
}
