package booking

import (
	"context"
	"fmt"

	"blocktix/internal/chain"
	"blocktix/internal/models"
)

// EventView pairs an event snapshot with its per-tier remaining
// availability, both read in the same pass.
type EventView struct {
	Event     models.Event            `json:"event"`
	Available [models.TierCount]int64 `json:"availableTickets"`
}

// GetEvent reads an event's details, supply and availability and converts
// wei prices into the display currency.
func (s *Service) GetEvent(ctx context.Context, eventID int64) (*EventView, error) {
	details, err := s.Ledger.GetEventDetails(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("could not load event %d: %w", eventID, classifyRevert(chain.RevertReason(err), ""))
	}

	supply, err := s.Ledger.GetEventSupply(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("could not load event %d supply: %w", eventID, err)
	}

	available, err := s.Ledger.GetAvailableTickets(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("could not load event %d availability: %w", eventID, err)
	}

	view := EventView{
		Event: models.Event{
			EventID:     eventID,
			Name:        details.Name,
			Description: details.Description,
			Venue:       details.Venue,
			EventDate:   details.EventDate.Int64(),
			IsActive:    details.IsActive,
			Creator:     details.Creator,
		},
	}
	for i := 0; i < models.TierCount; i++ {
		view.Event.Prices[i] = s.Rates.NativeToKes(chain.FormatEther(details.Prices[i]))
		view.Event.Supply[i] = supply.Supply[i].Int64()
		view.Event.Sold[i] = supply.Sold[i].Int64()
		view.Available[i] = available[i].Int64()
	}
	return &view, nil
}

// ListEvents walks event ids 1..eventCounter. Unreadable ids (deleted before
// the counter existed, bad data) are skipped rather than failing the list.
func (s *Service) ListEvents(ctx context.Context) ([]EventView, error) {
	count, err := s.EventCount(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]EventView, 0, count)
	for id := int64(1); id <= count; id++ {
		view, err := s.GetEvent(ctx, id)
		if err != nil {
			s.Log.Warn("CHAIN", fmt.Sprintf("skipping unreadable event %d: %v", id, err))
			continue
		}
		views = append(views, *view)
	}
	return views, nil
}

// EventCount returns the contract's event counter. Event ids are 1-based and
// monotonically issued, so the counter is also the highest issued id.
func (s *Service) EventCount(ctx context.Context) (int64, error) {
	counter, err := s.Ledger.EventCounter(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not read event counter: %w", err)
	}
	return counter.Int64(), nil
}

// GetUserTickets resolves every ticket id owned by an address into a full
// ticket record with the price converted to the display currency.
func (s *Service) GetUserTickets(ctx context.Context, owner string) ([]models.Ticket, error) {
	ids, err := s.Ledger.GetUserTickets(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("could not load tickets for %s: %w", owner, err)
	}

	tickets := make([]models.Ticket, 0, len(ids))
	for _, id := range ids {
		ticket, err := s.GetTicketDetails(ctx, id.Int64())
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *ticket)
	}
	return tickets, nil
}

// GetTicketDetails reads one ticket.
func (s *Service) GetTicketDetails(ctx context.Context, ticketID int64) (*models.Ticket, error) {
	details, err := s.Ledger.GetTicketDetails(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("could not load ticket %d: %w", ticketID, err)
	}
	return s.ticketFromDetails(ticketID, details), nil
}

func (s *Service) ticketFromDetails(ticketID int64, d *chain.TicketDetails) *models.Ticket {
	return &models.Ticket{
		TicketID:      ticketID,
		EventID:       d.EventID.Int64(),
		Owner:         d.Owner,
		TicketType:    models.TicketTier(d.TicketType),
		PurchasePrice: s.Rates.NativeToKes(chain.FormatEther(d.PurchasePrice)),
		PurchaseTime:  d.PurchaseTime.Int64(),
		IsUsed:        d.IsUsed,
		Seat:          d.Seat,
	}
}

// IsAdmin checks an address's admin role on the contract. Failures read as
// "not an admin" rather than errors, matching the storefront behavior.
func (s *Service) IsAdmin(ctx context.Context, address string) bool {
	isAdmin, err := s.Ledger.IsAdmin(ctx, address)
	if err != nil {
		s.Log.Warn("CHAIN", fmt.Sprintf("admin check failed for %s: %v", address, err))
		return false
	}
	return isAdmin
}

// ContractOwner returns the contract owner's address, or empty when the read
// fails.
func (s *Service) ContractOwner(ctx context.Context) string {
	owner, err := s.Ledger.Owner(ctx)
	if err != nil {
		s.Log.Warn("CHAIN", fmt.Sprintf("owner lookup failed: %v", err))
		return ""
	}
	return owner
}
