package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blocktix/internal/logger"
)

// fakeProvider scripts the provider behavior for session tests.
type fakeProvider struct {
	accounts     []string
	requestErr   error
	requestCalls int
	listener     func([]string)
	unsubscribed bool
}

func (p *fakeProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	p.requestCalls++
	if p.requestErr != nil {
		return nil, p.requestErr
	}
	return p.accounts, nil
}

func (p *fakeProvider) Accounts(ctx context.Context) ([]string, error) {
	return p.accounts, nil
}

func (p *fakeProvider) OnAccountsChanged(fn func([]string)) func() {
	p.listener = fn
	return func() { p.unsubscribed = true }
}

func (p *fakeProvider) fireAccountsChanged(accounts []string) {
	if p.listener != nil {
		p.listener(accounts)
	}
}

const addr1 = "0x1111111111111111111111111111111111111111"
const addr2 = "0x2222222222222222222222222222222222222222"

func TestConnect(t *testing.T) {
	provider := &fakeProvider{accounts: []string{addr1}}
	session := NewSession(provider, logger.NewNop())

	address, err := session.Connect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, addr1, address)
	assert.True(t, session.IsConnected())
	assert.Equal(t, addr1, session.Address())
}

func TestConnectRejected(t *testing.T) {
	provider := &fakeProvider{requestErr: ErrConnectRejected}
	session := NewSession(provider, logger.NewNop())

	_, err := session.Connect(context.Background())
	assert.ErrorIs(t, err, ErrConnectRejected)
	assert.False(t, session.IsConnected())
}

func TestConnectEmptyAccountList(t *testing.T) {
	provider := &fakeProvider{accounts: nil}
	session := NewSession(provider, logger.NewNop())

	_, err := session.Connect(context.Background())
	assert.ErrorIs(t, err, ErrConnectRejected)
}

func TestConnectWithoutProvider(t *testing.T) {
	session := NewSession(nil, logger.NewNop())

	_, err := session.Connect(context.Background())
	assert.ErrorIs(t, err, ErrProviderMissing)
}

func TestConnectWrapsOtherFailures(t *testing.T) {
	provider := &fakeProvider{requestErr: errors.New("provider exploded")}
	session := NewSession(provider, logger.NewNop())

	_, err := session.Connect(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect wallet")
}

func TestInitAdoptsAuthorizedAccount(t *testing.T) {
	provider := &fakeProvider{accounts: []string{addr1}}
	session := NewSession(provider, logger.NewNop())

	session.Init(context.Background())

	// Silent adoption: connected without a RequestAccounts prompt.
	assert.True(t, session.IsConnected())
	assert.Equal(t, addr1, session.Address())
	assert.Equal(t, 0, provider.requestCalls)
}

func TestAccountsChangedToEmptyDisconnects(t *testing.T) {
	provider := &fakeProvider{accounts: []string{addr1}}
	session := NewSession(provider, logger.NewNop())
	session.Init(context.Background())

	provider.fireAccountsChanged(nil)

	assert.False(t, session.IsConnected())
	assert.Empty(t, session.Address())
}

func TestAccountsChangedAdoptsNewHead(t *testing.T) {
	provider := &fakeProvider{accounts: []string{addr1}}
	session := NewSession(provider, logger.NewNop())
	session.Init(context.Background())

	provider.fireAccountsChanged([]string{addr2})

	assert.True(t, session.IsConnected())
	assert.Equal(t, addr2, session.Address())
}

func TestCloseUnsubscribes(t *testing.T) {
	provider := &fakeProvider{accounts: []string{addr1}}
	session := NewSession(provider, logger.NewNop())
	session.Init(context.Background())

	session.Close()
	assert.True(t, provider.unsubscribed)
}

func TestDisconnect(t *testing.T) {
	provider := &fakeProvider{accounts: []string{addr1}}
	session := NewSession(provider, logger.NewNop())
	session.Init(context.Background())

	session.Disconnect()

	snapshot := session.Snapshot()
	assert.False(t, snapshot.IsConnected)
	assert.Empty(t, snapshot.Address)
	assert.False(t, snapshot.IsConnecting)
}

func TestKeyProvider(t *testing.T) {
	// Well-known hardhat test key.
	provider, err := NewKeyProvider("ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	require.NoError(t, err)

	accounts, err := provider.Accounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", accounts[0])

	_, err = NewKeyProvider("")
	assert.Error(t, err)
	_, err = NewKeyProvider("zz")
	assert.Error(t, err)
}
