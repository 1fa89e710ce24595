package booking

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"blocktix/internal/chain"
	"blocktix/internal/models"
)

// CreateEvent converts the admin's KES prices to wei and submits the event.
// Admin authorization lives in the contract; the only client-side check is
// input shape.
func (s *Service) CreateEvent(ctx context.Context, input models.CreateEventInput) (string, error) {
	params, err := s.eventParams(input)
	if err != nil {
		return "", err
	}

	if err := s.beginWrite(); err != nil {
		return "", err
	}
	defer s.endWrite()

	txHash, err := s.Ledger.CreateEvent(ctx, params)
	if err != nil {
		return "", classifyAdmin(err)
	}

	s.Log.LogChain("create-event", fmt.Sprintf("%q created, tx %s", input.Name, txHash))
	s.publishLifecycle(ctx, "created", 0, input.Name, txHash)
	return txHash, nil
}

// UpdateEvent rewrites an event's metadata, prices and supply.
func (s *Service) UpdateEvent(ctx context.Context, eventID int64, input models.CreateEventInput) (string, error) {
	params, err := s.eventParams(input)
	if err != nil {
		return "", err
	}

	if err := s.beginWrite(); err != nil {
		return "", err
	}
	defer s.endWrite()

	txHash, err := s.Ledger.UpdateEvent(ctx, eventID, params)
	if err != nil {
		return "", classifyAdmin(err)
	}

	s.Log.LogChain("update-event", fmt.Sprintf("event %d updated, tx %s", eventID, txHash))
	s.publishLifecycle(ctx, "updated", eventID, input.Name, txHash)
	return txHash, nil
}

// DeleteEvent is logical: the contract flips isActive to false and the event
// record stays readable forever.
func (s *Service) DeleteEvent(ctx context.Context, eventID int64) (string, error) {
	if err := s.beginWrite(); err != nil {
		return "", err
	}
	defer s.endWrite()

	txHash, err := s.Ledger.DeleteEvent(ctx, eventID)
	if err != nil {
		return "", classifyAdmin(err)
	}

	s.Log.LogChain("delete-event", fmt.Sprintf("event %d deactivated, tx %s", eventID, txHash))
	s.publishLifecycle(ctx, "deleted", eventID, "", txHash)
	return txHash, nil
}

// AddAdmin grants the admin role. Address syntax is the one client-side
// precondition; everything else is the contract's call.
func (s *Service) AddAdmin(ctx context.Context, address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", ErrInvalidAddress
	}

	if err := s.beginWrite(); err != nil {
		return "", err
	}
	defer s.endWrite()

	txHash, err := s.Ledger.AddAdmin(ctx, address)
	if err != nil {
		return "", classifyAdmin(err)
	}

	s.Log.LogChain("add-admin", fmt.Sprintf("%s granted admin, tx %s", address, txHash))
	return txHash, nil
}

// RemoveAdmin revokes the admin role. The contract refuses to demote its
// owner.
func (s *Service) RemoveAdmin(ctx context.Context, address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", ErrInvalidAddress
	}

	if err := s.beginWrite(); err != nil {
		return "", err
	}
	defer s.endWrite()

	txHash, err := s.Ledger.RemoveAdmin(ctx, address)
	if err != nil {
		return "", classifyAdmin(err)
	}

	s.Log.LogChain("remove-admin", fmt.Sprintf("%s revoked, tx %s", address, txHash))
	return txHash, nil
}

// eventParams validates the admin input and converts display prices to wei.
// The KES→ETH conversion here is for the stored tier prices the contract
// will charge, so a stale rate snapshot changes what future buyers pay —
// purchases themselves always re-read the stored price.
func (s *Service) eventParams(input models.CreateEventInput) (chain.EventParams, error) {
	if !s.Wallet.IsConnected() {
		return chain.EventParams{}, ErrWalletNotConnected
	}
	if input.Name == "" {
		return chain.EventParams{}, fmt.Errorf("event name is required")
	}

	params := chain.EventParams{
		Name:        input.Name,
		Description: input.Description,
		Venue:       input.Venue,
		EventDate:   input.EventDate,
		Supply:      input.Supply,
	}
	for i, kes := range input.Prices {
		wei, err := chain.ParseEther(s.Rates.KesToNative(kes))
		if err != nil {
			return chain.EventParams{}, fmt.Errorf("could not convert tier %d price: %w", i, err)
		}
		params.PricesWei[i] = wei
	}
	return params, nil
}

func (s *Service) publishLifecycle(ctx context.Context, action string, eventID int64, name, txHash string) {
	if s.Notify == nil {
		return
	}
	if err := s.Notify.PublishEventLifecycle(ctx, action, eventID, name, txHash); err != nil {
		s.Log.Warn("KAFKA", fmt.Sprintf("publish event-%s failed: %v", action, err))
	}
}
