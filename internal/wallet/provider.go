package wallet

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// Provider is the narrow capability surface the session needs from a signing
// provider: prompt for access, list already-authorized accounts without a
// prompt, and watch for account changes. The production implementation wraps
// the gateway's local key; tests use a scripted fake.
type Provider interface {
	// RequestAccounts asks the provider for account access, prompting the
	// user where the provider supports it.
	RequestAccounts(ctx context.Context) ([]string, error)

	// Accounts returns the already-authorized accounts without prompting.
	Accounts(ctx context.Context) ([]string, error)

	// OnAccountsChanged registers a listener for account list changes and
	// returns its unsubscribe function.
	OnAccountsChanged(fn func(accounts []string)) (unsubscribe func())
}

// KeyProvider exposes a single locally-held key as a one-account provider.
// There is nothing to prompt, so requesting and listing behave the same, and
// the account list never changes.
type KeyProvider struct {
	address string
}

func NewKeyProvider(privateKeyHex string) (*KeyProvider, error) {
	if privateKeyHex == "" {
		return nil, fmt.Errorf("wallet private key not configured")
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid wallet private key: %w", err)
	}
	return &KeyProvider{address: crypto.PubkeyToAddress(key.PublicKey).Hex()}, nil
}

func (p *KeyProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	return []string{p.address}, nil
}

func (p *KeyProvider) Accounts(ctx context.Context) ([]string, error) {
	return []string{p.address}, nil
}

func (p *KeyProvider) OnAccountsChanged(fn func([]string)) func() {
	return func() {}
}
