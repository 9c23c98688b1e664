package farm

import (
	"testing"
	"time"

	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFarm(t *testing.T) {
	t.Run("valid farm", func(t *testing.T) {
		f, err := NewFarm("user-1", FarmParams{
			Name:         "  La Esperanza ",
			Location:     "Puerto López, Meta",
			AreaHectares: decimal.NewFromInt(320),
		})
		require.NoError(t, err)
		assert.Equal(t, "La Esperanza", f.Name)
		assert.Equal(t, 1, f.Version)
		assert.Equal(t, "user-1", f.CreatedBy)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := NewFarm("user-1", FarmParams{Location: "Meta"})
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("missing location", func(t *testing.T) {
		_, err := NewFarm("user-1", FarmParams{Name: "El Recreo"})
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("negative area", func(t *testing.T) {
		_, err := NewFarm("user-1", FarmParams{Name: "A", Location: "B", AreaHectares: decimal.NewFromInt(-1)})
		assert.True(t, shared.IsValidation(err))
	})
}

func TestFarm_Update(t *testing.T) {
	f, err := NewFarm("user-1", FarmParams{Name: "A", Location: "B"})
	require.NoError(t, err)

	require.NoError(t, f.Update(FarmParams{Name: "C", Location: "D"}))
	assert.Equal(t, "C", f.Name)
	assert.Equal(t, 2, f.Version)

	err = f.Update(FarmParams{Name: "", Location: "D"})
	assert.Error(t, err)
	assert.Equal(t, "C", f.Name)
}

func TestLivestockMovement(t *testing.T) {
	farmID := uuid.New()
	at := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	t.Run("requires farm", func(t *testing.T) {
		_, err := NewLivestockMovement("u", uuid.Nil, LivestockMovementParams{Type: MovementEntry, Category: "vacas", Quantity: 1, OccurredAt: at})
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("requires positive quantity", func(t *testing.T) {
		_, err := NewLivestockMovement("u", farmID, LivestockMovementParams{Type: MovementEntry, Category: "vacas", OccurredAt: at})
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewLivestockMovement("u", farmID, LivestockMovementParams{Type: "transfer", Category: "vacas", Quantity: 2, OccurredAt: at})
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("sale exit carries sale id", func(t *testing.T) {
		saleID := uuid.New()
		m, err := NewSaleExit("u", farmID, saleID, "novillos", 10, at)
		require.NoError(t, err)
		assert.Equal(t, MovementExit, m.Type)
		assert.Equal(t, "venta", m.Reason)
		require.NotNil(t, m.SaleID)
		assert.Equal(t, saleID, *m.SaleID)
		assert.Equal(t, -10, m.Signed())

		err = m.Update(LivestockMovementParams{Type: MovementEntry, Category: "novillos", Quantity: 10, OccurredAt: at})
		assert.Error(t, err)
	})
}

func TestComputeHerdTotals(t *testing.T) {
	mk := func(typ MovementType, cat string, qty int) LivestockMovement {
		return LivestockMovement{Type: typ, Category: cat, Quantity: qty}
	}
	totals := ComputeHerdTotals([]LivestockMovement{
		mk(MovementEntry, "vacas", 40),
		mk(MovementEntry, "novillos", 25),
		mk(MovementExit, "novillos", 10),
		mk(MovementEntry, "búfalos", 3),
	})

	require.Len(t, totals.Categories, 3)
	assert.Equal(t, "búfalos", totals.Categories[0].Category)
	assert.Equal(t, "novillos", totals.Categories[1].Category)
	assert.Equal(t, 15, totals.Categories[1].Heads)
	assert.Equal(t, 10, totals.Categories[1].Exits)
	assert.Equal(t, 58, totals.Total)

	empty := ComputeHerdTotals(nil)
	assert.Equal(t, 0, empty.Total)
	assert.Empty(t, empty.Categories)
}
