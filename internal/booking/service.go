// Package booking is the orchestration layer between the API surface and
// the ticketing contract: it sequences the reads, precondition checks, gas
// probing and writes of every flow, and converts chain values into display
// values on the way out. It holds no persistent state of its own — every
// operation is a fresh request/response cycle against the chain.
package booking

import (
	"sync/atomic"

	"blocktix/internal/chain"
	"blocktix/internal/logger"
	"blocktix/internal/notify"
	"blocktix/internal/rates"
	"blocktix/internal/scanlog"
	"blocktix/internal/wallet"
)

// Service wires the orchestration flows to their collaborators. Notify and
// Scans are optional; a nil value disables that side channel.
type Service struct {
	Ledger chain.Ledger
	Rates  *rates.Service
	Wallet *wallet.Session
	Notify *notify.Producer
	Scans  *scanlog.Log
	Log    *logger.Logger

	busy atomic.Bool
}

func NewService(ledger chain.Ledger, rateSvc *rates.Service, session *wallet.Session, producer *notify.Producer, scans *scanlog.Log, log *logger.Logger) *Service {
	return &Service{
		Ledger: ledger,
		Rates:  rateSvc,
		Wallet: session,
		Notify: producer,
		Scans:  scans,
		Log:    log,
	}
}

// Busy reports whether a write flow is in flight. Callers use it to disable
// duplicate submissions.
func (s *Service) Busy() bool {
	return s.busy.Load()
}

// beginWrite claims the single write slot. Reads never take it.
func (s *Service) beginWrite() error {
	if !s.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	return nil
}

func (s *Service) endWrite() {
	s.busy.Store(false)
}
