// Package wallet tracks the signing session used by every write flow. The
// session is the only component allowed to mutate connection state; all
// other layers read snapshots.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"blocktix/internal/logger"
	"blocktix/internal/models"
)

var (
	// ErrProviderMissing means no signing provider is available at all.
	ErrProviderMissing = errors.New("no wallet provider available, configure a signing key to continue")

	// ErrConnectRejected is the user declining the connection prompt.
	ErrConnectRejected = errors.New("please connect your wallet to continue")
)

// Session owns the wallet connection state for the process.
type Session struct {
	mu           sync.Mutex
	provider     Provider
	log          *logger.Logger
	isConnected  bool
	isConnecting bool
	address      string
	unsubscribe  func()
}

func NewSession(provider Provider, log *logger.Logger) *Session {
	return &Session{provider: provider, log: log}
}

// Init silently adopts an already-authorized account, then subscribes to
// account changes for the session's lifetime. No user prompt is involved.
func (s *Session) Init(ctx context.Context) {
	if s.provider == nil {
		return
	}

	accounts, err := s.provider.Accounts(ctx)
	if err == nil && len(accounts) > 0 {
		s.mu.Lock()
		s.isConnected = true
		s.address = accounts[0]
		s.mu.Unlock()
		s.log.LogWallet("init", fmt.Sprintf("adopted authorized account %s", shorten(accounts[0])))
	}

	s.unsubscribe = s.provider.OnAccountsChanged(s.handleAccountsChanged)
}

// Connect requests account access. A connect while another connect is in
// flight is ignored; an explicit user rejection maps to ErrConnectRejected.
func (s *Session) Connect(ctx context.Context) (string, error) {
	if s.provider == nil {
		return "", ErrProviderMissing
	}

	s.mu.Lock()
	if s.isConnecting {
		s.mu.Unlock()
		return "", nil
	}
	s.isConnecting = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isConnecting = false
		s.mu.Unlock()
	}()

	accounts, err := s.provider.RequestAccounts(ctx)
	if err != nil {
		if errors.Is(err, ErrConnectRejected) {
			return "", ErrConnectRejected
		}
		return "", fmt.Errorf("failed to connect wallet: %w", err)
	}
	if len(accounts) == 0 {
		return "", ErrConnectRejected
	}

	s.mu.Lock()
	s.isConnected = true
	s.address = accounts[0]
	s.mu.Unlock()

	s.log.LogWallet("connect", fmt.Sprintf("connected to %s", shorten(accounts[0])))
	return accounts[0], nil
}

func (s *Session) Disconnect() {
	s.mu.Lock()
	s.isConnected = false
	s.address = ""
	s.mu.Unlock()
	s.log.LogWallet("disconnect", "wallet disconnected")
}

// Close unsubscribes from provider notifications.
func (s *Session) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

func (s *Session) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isConnected
}

func (s *Session) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.address
}

// Snapshot returns a read-only copy of the session state.
func (s *Session) Snapshot() models.WalletSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.WalletSession{
		IsConnected:  s.isConnected,
		Address:      s.address,
		IsConnecting: s.isConnecting,
	}
}

// handleAccountsChanged: an empty account list means the provider revoked
// access, so disconnect; a new head account is adopted without touching the
// connected flag.
func (s *Session) handleAccountsChanged(accounts []string) {
	if len(accounts) == 0 {
		s.Disconnect()
		return
	}

	s.mu.Lock()
	changed := s.address != accounts[0]
	s.address = accounts[0]
	s.mu.Unlock()

	if changed {
		s.log.LogWallet("accounts-changed", fmt.Sprintf("switched to %s", shorten(accounts[0])))
	}
}

func shorten(address string) string {
	if len(address) < 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}
