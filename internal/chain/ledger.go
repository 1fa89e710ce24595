// Package chain is the boundary to the ticketing contract. Everything on
// this side of the boundary speaks wei; conversion into the display currency
// happens in the layers above.
package chain

import (
	"context"
	"math/big"

	"blocktix/internal/models"
)

// EventDetails is the raw event view as the contract returns it.
type EventDetails struct {
	Name        string
	Description string
	Venue       string
	EventDate   *big.Int
	Prices      [models.TierCount]*big.Int // wei per tier
	IsActive    bool
	Creator     string
}

// EventSupply pairs total supply with cumulative sold counts per tier.
type EventSupply struct {
	Supply [models.TierCount]*big.Int
	Sold   [models.TierCount]*big.Int
}

// TicketDetails is the raw per-ticket view.
type TicketDetails struct {
	EventID       *big.Int
	Owner         string
	TicketType    uint8
	PurchasePrice *big.Int // wei
	PurchaseTime  *big.Int
	IsUsed        bool
	Seat          string
}

// Verification is the contract's validity summary for a ticket.
type Verification struct {
	IsValid   bool
	IsUsed    bool
	EventName string
	EventDate *big.Int
}

// EventParams carries the fields for event creation and updates, with prices
// already converted to wei.
type EventParams struct {
	Name        string
	Description string
	Venue       string
	EventDate   int64
	PricesWei   [models.TierCount]*big.Int
	Supply      [models.TierCount]int64
}

// Ledger is the capability surface the orchestration layer needs from the
// contract. The production implementation is EthLedger; tests substitute a
// scripted fake. Write operations block until the transaction is mined and
// return the transaction hash.
type Ledger interface {
	EventCounter(ctx context.Context) (*big.Int, error)
	GetEventDetails(ctx context.Context, eventID int64) (*EventDetails, error)
	GetEventSupply(ctx context.Context, eventID int64) (*EventSupply, error)
	GetAvailableTickets(ctx context.Context, eventID int64) ([models.TierCount]*big.Int, error)
	GetUserTickets(ctx context.Context, owner string) ([]*big.Int, error)
	GetTicketDetails(ctx context.Context, ticketID int64) (*TicketDetails, error)
	VerifyTicket(ctx context.Context, ticketID int64) (*Verification, error)
	BalanceOf(ctx context.Context, address string) (*big.Int, error)
	IsAdmin(ctx context.Context, address string) (bool, error)
	Owner(ctx context.Context) (string, error)

	// EstimatePurchaseGas and SimulatePurchase are the two-step failure
	// probe: a failed estimate carries no detail, so the caller re-runs the
	// same call read-only to recover the decline reason.
	EstimatePurchaseGas(ctx context.Context, eventID int64, tier models.TicketTier, seat string, value *big.Int) (uint64, error)
	SimulatePurchase(ctx context.Context, eventID int64, tier models.TicketTier, seat string, value *big.Int) error
	PurchaseTicket(ctx context.Context, eventID int64, tier models.TicketTier, seat string, value *big.Int, gasLimit uint64) (string, error)

	UseTicket(ctx context.Context, ticketID int64) (string, error)
	CreateEvent(ctx context.Context, p EventParams) (string, error)
	UpdateEvent(ctx context.Context, eventID int64, p EventParams) (string, error)
	DeleteEvent(ctx context.Context, eventID int64) (string, error)
	AddAdmin(ctx context.Context, address string) (string, error)
	RemoveAdmin(ctx context.Context, address string) (string, error)
}
