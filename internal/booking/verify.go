package booking

import (
	"context"
	"fmt"

	"blocktix/internal/chain"
	"blocktix/internal/models"
)

// VerifyTicket fetches the contract's verification summary and the full
// ticket detail concurrently and merges them. Any failure on either side
// collapses into the single generic invalid-ticket error: the verification
// console does not distinguish "not found" from "chain unreachable". The
// underlying causes are logged for operators.
func (s *Service) VerifyTicket(ctx context.Context, ticketID int64) (*models.VerificationResult, error) {
	type summaryResult struct {
		v   *chain.Verification
		err error
	}
	type detailResult struct {
		d   *chain.TicketDetails
		err error
	}

	summaryCh := make(chan summaryResult, 1)
	detailCh := make(chan detailResult, 1)

	go func() {
		v, err := s.Ledger.VerifyTicket(ctx, ticketID)
		summaryCh <- summaryResult{v, err}
	}()
	go func() {
		d, err := s.Ledger.GetTicketDetails(ctx, ticketID)
		detailCh <- detailResult{d, err}
	}()

	summary := <-summaryCh
	detail := <-detailCh

	if summary.err != nil || detail.err != nil {
		s.Log.LogVerify(ticketID, fmt.Sprintf("verification failed: summary=%v detail=%v", summary.err, detail.err))
		return nil, ErrInvalidTicket
	}

	result := &models.VerificationResult{
		IsValid:   summary.v.IsValid,
		IsUsed:    summary.v.IsUsed,
		EventName: summary.v.EventName,
		EventDate: summary.v.EventDate.Int64(),
		Ticket:    *s.ticketFromDetails(ticketID, detail.d),
	}

	if s.Scans != nil {
		if count, err := s.Scans.Count(ctx, ticketID); err == nil {
			result.ScanCount = count
		}
	}
	return result, nil
}

// CheckInTicket marks a ticket as used. The transition is one-way and the
// contract enforces the preconditions (exists, unused); any decline surfaces
// as the generic check-in failure with the underlying detail appended.
func (s *Service) CheckInTicket(ctx context.Context, ticketID int64) error {
	if !s.Wallet.IsConnected() {
		return ErrWalletNotConnected
	}

	if err := s.beginWrite(); err != nil {
		return err
	}
	defer s.endWrite()

	txHash, err := s.Ledger.UseTicket(ctx, ticketID)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrCheckInFailed, chain.RevertReason(err))
	}

	s.Log.LogVerify(ticketID, fmt.Sprintf("checked in, tx %s", txHash))

	if s.Scans != nil {
		if _, scanErr := s.Scans.Record(ctx, ticketID); scanErr != nil {
			s.Log.Warn("SCANLOG", fmt.Sprintf("failed to record scan for ticket %d: %v", ticketID, scanErr))
		}
	}
	if s.Notify != nil {
		if pubErr := s.Notify.PublishTicketUsed(ctx, ticketID, txHash); pubErr != nil {
			s.Log.Warn("KAFKA", fmt.Sprintf("publish ticket-used failed: %v", pubErr))
		}
	}
	return nil
}
