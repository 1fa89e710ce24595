package booking

import (
	"context"
	"fmt"
	"math/big"

	"blocktix/internal/chain"
	"blocktix/internal/models"
	"blocktix/internal/utils"
)

// gasBufferPercent pads the gas estimate on submission. The estimate can
// drift between estimation and mining.
const gasBufferPercent = 150

// PurchaseReceipt records one successfully purchased unit.
type PurchaseReceipt struct {
	TxHash string `json:"txHash"`
	Seat   string `json:"seat"`
}

// PurchaseTickets buys quantity tickets of one tier, one contract call per
// unit — the purchase entry point issues a single ticket per call. Units are
// strictly sequential; on the first failure the flow stops and returns the
// receipts of the units already purchased alongside the error. There is no
// rollback of prior units.
func (s *Service) PurchaseTickets(ctx context.Context, eventID int64, tier models.TicketTier, quantity int) ([]PurchaseReceipt, error) {
	if !tier.Valid() {
		return nil, ErrInvalidTier
	}
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}

	if err := s.beginWrite(); err != nil {
		return nil, err
	}
	defer s.endWrite()

	receipts := make([]PurchaseReceipt, 0, quantity)
	for i := 0; i < quantity; i++ {
		receipt, err := s.purchaseOne(ctx, eventID, tier, i)
		if err != nil {
			s.Log.Error("PURCHASE", fmt.Sprintf("unit %d/%d failed: %v", i+1, quantity, err))
			return receipts, err
		}
		receipts = append(receipts, *receipt)
	}
	return receipts, nil
}

// purchaseOne runs the full precondition/estimate/submit cycle for a single
// unit. Every read here is fresh: the display layer's cached values are
// never trusted for payment, and another buyer may have moved the state
// since the last unit. The precondition checks are a fast-fail courtesy —
// the contract re-checks everything at submission and a conflict discovered
// there is the authoritative failure.
func (s *Service) purchaseOne(ctx context.Context, eventID int64, tier models.TicketTier, index int) (*PurchaseReceipt, error) {
	if !s.Wallet.IsConnected() {
		return nil, ErrWalletNotConnected
	}
	buyer := s.Wallet.Address()

	// Authoritative price, straight from the contract.
	details, err := s.Ledger.GetEventDetails(ctx, eventID)
	if err != nil {
		return nil, classifyRevert(chain.RevertReason(err), "")
	}
	if !details.IsActive {
		return nil, ErrEventInactive
	}
	priceWei := details.Prices[tier]
	priceEth := chain.FormatEther(priceWei)

	available, err := s.Ledger.GetAvailableTickets(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("unable to check ticket availability: %w", err)
	}
	if available[tier].Sign() <= 0 {
		return nil, ErrSoldOut
	}

	balance, err := s.Ledger.BalanceOf(ctx, buyer)
	if err != nil {
		return nil, fmt.Errorf("unable to check wallet balance: %w", err)
	}
	if balance.Cmp(priceWei) < 0 {
		return nil, fmt.Errorf("%w: you have %s ETH but need %s ETH",
			ErrInsufficientFunds, chain.FormatEther(balance), priceEth)
	}

	seat := utils.SeatLabel(details.Name, tier.String(), index)
	s.Log.LogPurchase(eventID, fmt.Sprintf("buying %s seat %s for %s ETH", tier, seat, priceEth))

	gas, err := s.Ledger.EstimatePurchaseGas(ctx, eventID, tier, seat, priceWei)
	if err != nil {
		// A bare estimate failure carries no detail. Re-run the call
		// read-only to recover the decline reason before surfacing it.
		if simErr := s.Ledger.SimulatePurchase(ctx, eventID, tier, seat, priceWei); simErr != nil {
			return nil, classifyRevert(chain.RevertReason(simErr), priceEth)
		}
		return nil, fmt.Errorf("transaction would fail: %w", err)
	}

	gasLimit := gas * gasBufferPercent / 100
	txHash, err := s.Ledger.PurchaseTicket(ctx, eventID, tier, seat, priceWei, gasLimit)
	if err != nil {
		return nil, classifySubmit(err)
	}

	s.Log.LogPurchase(eventID, fmt.Sprintf("confirmed %s", txHash))
	if s.Notify != nil {
		if pubErr := s.Notify.PublishTicketPurchased(ctx, eventID, tier, buyer, seat, txHash); pubErr != nil {
			s.Log.Warn("KAFKA", fmt.Sprintf("publish ticket-purchased failed: %v", pubErr))
		}
	}

	return &PurchaseReceipt{TxHash: txHash, Seat: seat}, nil
}

// RequiredPayment exposes the authoritative wei price for a tier, read fresh
// from the contract.
func (s *Service) RequiredPayment(ctx context.Context, eventID int64, tier models.TicketTier) (*big.Int, error) {
	if !tier.Valid() {
		return nil, ErrInvalidTier
	}
	details, err := s.Ledger.GetEventDetails(ctx, eventID)
	if err != nil {
		return nil, classifyRevert(chain.RevertReason(err), "")
	}
	return details.Prices[tier], nil
}
