package models

// PaymentOrder mirrors the gateway order fields this service relies on.
type PaymentOrder struct {
	OrderID  string
	Amount   int64
	Currency string
	Receipt  string
	Status   string
}

// SettlementProof is what the gateway bridge hands to the ledger once an
// order has been checked.
type SettlementProof struct {
	OrderID string
	Settled bool
}
