package models

// Ticket is a ticket read from the chain, with the purchase price converted
// into the display currency. PurchasePrice is fixed at purchase time and does
// not follow later price edits on the event.
type Ticket struct {
	TicketID      int64      `json:"ticketId"`
	EventID       int64      `json:"eventId"`
	Owner         string     `json:"owner"`
	TicketType    TicketTier `json:"ticketType"`
	PurchasePrice float64    `json:"purchasePrice"` // KES at purchase time
	PurchaseTime  int64      `json:"purchaseTime"`  // unix seconds
	IsUsed        bool       `json:"isUsed"`
	Seat          string     `json:"seat,omitempty"`
}

// VerificationResult merges the contract's verification view with the full
// ticket detail view. ScanCount is advisory, sourced from the scan log, and
// is zero when the scan log is disabled.
type VerificationResult struct {
	IsValid   bool   `json:"isValid"`
	IsUsed    bool   `json:"isUsed"`
	EventName string `json:"eventName"`
	EventDate int64  `json:"eventDate"`
	Ticket    Ticket `json:"ticket"`
	ScanCount int64  `json:"scanCount,omitempty"`
}
