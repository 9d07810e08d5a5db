package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/littleboyzz/Billiard-Plus-App/models"
)

func TestCartAddMergesSameItem(t *testing.T) {
	cart := newCart("t1")

	first := cart.AddItem(models.CartLine{ItemID: "m1", Name: "Trà đá", UnitPrice: 10000, Quantity: 1, Kind: models.KindDrink})
	assert.Equal(t, 1, first.LineID)

	merged := cart.AddItem(models.CartLine{ItemID: "m1", Name: "Trà đá", UnitPrice: 10000, Quantity: 2, Kind: models.KindDrink})
	assert.Equal(t, 1, merged.LineID)
	assert.Equal(t, 3, merged.Quantity)

	// Same item id under a different kind is a separate line.
	other := cart.AddItem(models.CartLine{ItemID: "m1", Name: "Trà đá", UnitPrice: 10000, Quantity: 1, Kind: models.KindFood})
	assert.Equal(t, 2, other.LineID)

	assert.Len(t, cart.Lines(), 2)
}

func TestCartPreservesInsertionOrder(t *testing.T) {
	cart := newCart("t1")
	cart.AddItem(models.CartLine{ItemID: "m1", Name: "Mì xào", UnitPrice: 35000, Quantity: 1, Kind: models.KindFood})
	cart.AddItem(models.CartLine{ItemID: "m2", Name: "Bò húc", UnitPrice: 20000, Quantity: 2, Kind: models.KindDrink})
	cart.AddItem(models.CartLine{ItemID: "m1", Name: "Mì xào", UnitPrice: 35000, Quantity: 1, Kind: models.KindFood})

	lines := cart.Lines()
	assert.Len(t, lines, 2)
	assert.Equal(t, "m1", lines[0].ItemID)
	assert.Equal(t, "m2", lines[1].ItemID)
}

func TestCartRemoveItem(t *testing.T) {
	cart := newCart("t1")
	a := cart.AddItem(models.CartLine{ItemID: "m1", Name: "Mì xào", UnitPrice: 35000, Quantity: 1, Kind: models.KindFood})
	cart.AddItem(models.CartLine{ItemID: "m2", Name: "Bò húc", UnitPrice: 20000, Quantity: 2, Kind: models.KindDrink})

	assert.NoError(t, cart.RemoveItem(a.LineID))
	assert.Len(t, cart.Lines(), 1)
	assert.Equal(t, int64(40000), cart.Subtotal())

	assert.ErrorIs(t, cart.RemoveItem(a.LineID), ErrLineNotFound)
}

func TestCartClampsMalformedInput(t *testing.T) {
	cart := newCart("t1")
	line := cart.AddItem(models.CartLine{ItemID: "m1", Name: "???", UnitPrice: -500, Quantity: 0, Kind: models.KindFood})
	assert.Equal(t, 1, line.Quantity)
	assert.Equal(t, int64(0), line.UnitPrice)
	assert.Equal(t, int64(0), cart.Subtotal())
}

func TestCartSubtotal(t *testing.T) {
	cart := newCart("t1")
	cart.AddItem(models.CartLine{ItemID: "m1", Name: "Mì xào", UnitPrice: 35000, Quantity: 2, Kind: models.KindFood})
	cart.AddItem(models.CartLine{ItemID: "m2", Name: "Bò húc", UnitPrice: 20000, Quantity: 1, Kind: models.KindDrink})
	assert.Equal(t, int64(90000), cart.Subtotal())
}

func TestAdjustedTotal(t *testing.T) {
	cart := newCart("t1")

	// No adjustments: total equals base.
	assert.Equal(t, int64(100000), cart.AdjustedTotal(100000))

	cart.SetAdjustments(10000, 0.08)
	assert.Equal(t, int64(97200), cart.AdjustedTotal(100000))

	// Discount larger than the base clamps to zero, never negative.
	cart.SetAdjustments(200000, 0.08)
	assert.Equal(t, int64(0), cart.AdjustedTotal(100000))

	// Negative inputs are ignored.
	cart.SetAdjustments(-1, -0.5)
	discount, taxRate := cart.Adjustments()
	assert.Equal(t, int64(0), discount)
	assert.Equal(t, float64(0), taxRate)
}

func TestApplyAdjustmentsRoundsHalfUp(t *testing.T) {
	// 1001 * 1.0005 = 1001,5005 -> 1002
	assert.Equal(t, int64(1002), applyAdjustments(1001, 0, 0.0005))
	// 1000 * 1.0004 = 1000,4 -> 1000
	assert.Equal(t, int64(1000), applyAdjustments(1000, 0, 0.0004))
}

func TestCartManagerSingleOwner(t *testing.T) {
	m := NewCartManager()

	cart, err := m.Open("t1")
	assert.NoError(t, err)
	assert.Equal(t, "t1", cart.TableID())

	_, err = m.Open("t1")
	assert.ErrorIs(t, err, ErrCartExists)

	got, ok := m.Get("t1")
	assert.True(t, ok)
	assert.Same(t, cart, got)

	m.Close("t1")
	_, ok = m.Get("t1")
	assert.False(t, ok)

	// Close is idempotent and a fresh open works again.
	m.Close("t1")
	_, err = m.Open("t1")
	assert.NoError(t, err)
}

func TestCartManagerLineCount(t *testing.T) {
	m := NewCartManager()
	assert.Equal(t, 0, m.LineCount("t1"))

	cart, _ := m.Open("t1")
	cart.AddItem(models.CartLine{ItemID: "m1", Name: "Mì xào", UnitPrice: 35000, Quantity: 3, Kind: models.KindFood})
	cart.AddItem(models.CartLine{ItemID: "m2", Name: "Bò húc", UnitPrice: 20000, Quantity: 1, Kind: models.KindDrink})

	// Lines, not units.
	assert.Equal(t, 2, m.LineCount("t1"))
}
