package services

import (
	"fmt"
	"math"
	"sync"

	"github.com/littleboyzz/Billiard-Plus-App/models"
)

// Cart accumulates the order lines for one table's current visit.
// Insertion order is preserved; display and receipt order depend on it.
type Cart struct {
	mu       sync.Mutex
	tableID  string
	lines    []models.CartLine
	nextLine int
	discount int64
	taxRate  float64
}

func newCart(tableID string) *Cart {
	return &Cart{
		tableID:  tableID,
		nextLine: 1,
	}
}

func (c *Cart) TableID() string {
	return c.tableID
}

// AddItem appends a line, or bumps the quantity when an identical
// (item id, kind) line already exists. Quantity and price are clamped to
// sane values so a malformed catalog entry can never produce a negative
// line.
func (c *Cart) AddItem(item models.CartLine) models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	if item.Quantity < 1 {
		item.Quantity = 1
	}
	if item.UnitPrice < 0 {
		item.UnitPrice = 0
	}

	for i := range c.lines {
		if c.lines[i].ItemID == item.ItemID && c.lines[i].Kind == item.Kind {
			c.lines[i].Quantity += item.Quantity
			return c.lines[i]
		}
	}

	item.LineID = c.nextLine
	c.nextLine++
	c.lines = append(c.lines, item)
	return item
}

// RemoveItem drops one line by its line id.
func (c *Cart) RemoveItem(lineID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].LineID == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: line %d", ErrLineNotFound, lineID)
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Subtotal is always recomputed from scratch over the remaining lines.
func (c *Cart) Subtotal() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total int64
	for _, l := range c.lines {
		total += l.Amount()
	}
	return total
}

// SetAdjustments stores the checkout adjustments (promotion / discount /
// tax tab group). Both default to zero and negatives are clamped.
func (c *Cart) SetAdjustments(discount int64, taxRate float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if discount < 0 {
		discount = 0
	}
	if taxRate < 0 {
		taxRate = 0
	}
	c.discount = discount
	c.taxRate = taxRate
}

func (c *Cart) Adjustments() (discount int64, taxRate float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.discount, c.taxRate
}

// AdjustedTotal applies the stored adjustments to a base amount:
// max(0, base - discount) * (1 + taxRate), rounded half-up. The base is
// the cart subtotal plus the table's time charge.
func (c *Cart) AdjustedTotal(base int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return applyAdjustments(base, c.discount, c.taxRate)
}

func applyAdjustments(base, discount int64, taxRate float64) int64 {
	after := base - discount
	if after < 0 {
		after = 0
	}
	return roundHalfUp(float64(after) * (1 + taxRate))
}

func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}

// CartManager owns at most one cart per table. A table already in play
// with an active cart rejects a second open instead of merging.
type CartManager struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewCartManager() *CartManager {
	return &CartManager{
		carts: make(map[string]*Cart),
	}
}

// Open creates the cart for one checkout flow.
func (m *CartManager) Open(tableID string) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.carts[tableID]; exists {
		return nil, fmt.Errorf("%w: %s", ErrCartExists, tableID)
	}
	cart := newCart(tableID)
	m.carts[tableID] = cart
	return cart, nil
}

// Get returns the active cart for a table, if any.
func (m *CartManager) Get(tableID string) (*Cart, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[tableID]
	return cart, ok
}

// Close destroys a table's cart (successful checkout or explicit cancel).
func (m *CartManager) Close(tableID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, tableID)
}

// LineCount reports how many order lines a table's cart holds; zero when
// there is no cart.
func (m *CartManager) LineCount(tableID string) int {
	m.mu.Lock()
	cart, ok := m.carts[tableID]
	m.mu.Unlock()
	if !ok {
		return 0
	}
	return len(cart.Lines())
}
