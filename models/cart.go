package models

// Cart line kinds. TimeCharge is the implicit line for table play time,
// it is synthesized at billing time and never added by hand.
const (
	KindFood          = "food"
	KindDrink         = "drink"
	KindEntertainment = "entertainment"
	KindTimeCharge    = "time_charge"
)

// CartLine is one billable line inside a table's order cart.
type CartLine struct {
	LineID    int    `json:"line_id"`
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"` // VND
	Quantity  int    `json:"quantity"`
	Kind      string `json:"kind"`
}

// Amount returns the line total.
func (l CartLine) Amount() int64 {
	return l.UnitPrice * int64(l.Quantity)
}
