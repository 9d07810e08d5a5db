package services

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/littleboyzz/Billiard-Plus-App/models"
)

// Bill is the itemized amount owed by one table right now: the time
// charge for the running session plus the cart lines, with the cart's
// adjustments applied.
type Bill struct {
	TableID        string            `json:"table_id"`
	TableName      string            `json:"table_name"`
	ElapsedSeconds int64             `json:"elapsed_seconds"`
	TimeCharge     int64             `json:"time_charge"`
	Lines          []models.CartLine `json:"lines"`
	Subtotal       int64             `json:"subtotal"`
	Discount       int64             `json:"discount"`
	TaxRate        float64           `json:"tax_rate"`
	Total          int64             `json:"total"`
}

// Finalizer turns a table's accrued time and cart into a completed
// transaction: validates payment sufficiency, computes change, writes the
// ledger, releases the table and forces a resync.
type Finalizer struct {
	registry *Registry
	carts    *CartManager
	ledger   *gorm.DB
	refresh  func()
	notify   func(models.Transaction)
}

func NewFinalizer(registry *Registry, carts *CartManager, ledger *gorm.DB) *Finalizer {
	return &Finalizer{
		registry: registry,
		carts:    carts,
		ledger:   ledger,
	}
}

// SetRefreshHook wires the forced-resync signal fired after a completed
// checkout (the sync monitor's ForceRefresh).
func (f *Finalizer) SetRefreshHook(fn func()) {
	f.refresh = fn
}

// SetNotifyHook wires the completed-transaction broadcast.
func (f *Finalizer) SetNotifyHook(fn func(models.Transaction)) {
	f.notify = fn
}

// Quote computes the current bill for a table without touching any state.
// The time charge appears as the leading synthetic line ("Tiền giờ"), the
// way the receipt prints it.
func (f *Finalizer) Quote(tableID string) (Bill, error) {
	table, ok := f.registry.Get(tableID)
	if !ok {
		return Bill{}, fmt.Errorf("%w: %s", ErrUnknownTable, tableID)
	}

	bill := Bill{
		TableID:   table.ID,
		TableName: table.Name,
		Lines:     []models.CartLine{},
	}

	if table.Session != nil {
		elapsed := Elapsed(table.Session.StartTime, f.registry.Now())
		bill.ElapsedSeconds = int64(elapsed.Seconds())
		bill.TimeCharge = Accrued(elapsed, table.RatePerHour)
		bill.Lines = append(bill.Lines, models.CartLine{
			ItemID:    table.ID,
			Name:      "Tiền giờ",
			UnitPrice: bill.TimeCharge,
			Quantity:  1,
			Kind:      models.KindTimeCharge,
		})
	}

	base := bill.TimeCharge
	if cart, ok := f.carts.Get(tableID); ok {
		bill.Lines = append(bill.Lines, cart.Lines()...)
		base += cart.Subtotal()
		bill.Discount, bill.TaxRate = cart.Adjustments()
	}
	bill.Subtotal = base
	bill.Total = applyAdjustments(base, bill.Discount, bill.TaxRate)
	return bill, nil
}

// Finalize completes the checkout for one table. A payment below the
// amount due is rejected with ErrInsufficientPayment unless the caller
// explicitly allows partial settlement; nothing changes on rejection. On
// success the transaction is recorded, the cart is destroyed, the table
// is released and an immediate resync is requested.
func (f *Finalizer) Finalize(tableID string, amountPaid int64, allowPartial bool) (models.Transaction, error) {
	bill, err := f.Quote(tableID)
	if err != nil {
		return models.Transaction{}, err
	}
	if amountPaid < 0 {
		amountPaid = 0
	}

	if amountPaid < bill.Total && !allowPartial {
		return models.Transaction{}, fmt.Errorf("%w: due %d, paid %d",
			ErrInsufficientPayment, bill.Total, amountPaid)
	}

	change := amountPaid - bill.Total
	if change < 0 {
		change = 0
	}

	txn := models.Transaction{
		TransactionID: uuid.NewString(),
		TableID:       bill.TableID,
		TableName:     bill.TableName,
		AmountDue:     bill.Total,
		AmountPaid:    amountPaid,
		Change:        change,
		Partial:       amountPaid < bill.Total,
		CreatedAt:     f.registry.Now(),
	}

	if f.ledger != nil {
		if err := f.ledger.Create(&txn).Error; err != nil {
			return models.Transaction{}, fmt.Errorf("record transaction: %w", err)
		}
	}

	f.carts.Close(tableID)

	if _, err := f.registry.RequestClose(tableID); err != nil {
		// The money has been taken either way; the next reconciliation
		// settles the table status.
		log.Printf("Checkout %s: close table %s: %v", txn.TransactionID, tableID, err)
	}

	log.Printf("Checkout %s: table %s due=%d paid=%d change=%d partial=%v",
		txn.TransactionID, tableID, txn.AmountDue, txn.AmountPaid, txn.Change, txn.Partial)

	if f.notify != nil {
		f.notify(txn)
	}
	if f.refresh != nil {
		f.refresh()
	}
	return txn, nil
}
