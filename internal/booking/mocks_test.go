package booking_test

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blocktix/internal/booking"
	"blocktix/internal/chain"
	"blocktix/internal/logger"
	"blocktix/internal/models"
	"blocktix/internal/rates"
	"blocktix/internal/wallet"
)

const buyerAddr = "0x1111111111111111111111111111111111111111"

// MockLedger is a testify mock of the chain.Ledger interface.
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) EventCounter(ctx context.Context) (*big.Int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockLedger) GetEventDetails(ctx context.Context, eventID int64) (*chain.EventDetails, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chain.EventDetails), args.Error(1)
}

func (m *MockLedger) GetEventSupply(ctx context.Context, eventID int64) (*chain.EventSupply, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chain.EventSupply), args.Error(1)
}

func (m *MockLedger) GetAvailableTickets(ctx context.Context, eventID int64) ([models.TierCount]*big.Int, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return [models.TierCount]*big.Int{}, args.Error(1)
	}
	return args.Get(0).([models.TierCount]*big.Int), args.Error(1)
}

func (m *MockLedger) GetUserTickets(ctx context.Context, owner string) ([]*big.Int, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*big.Int), args.Error(1)
}

func (m *MockLedger) GetTicketDetails(ctx context.Context, ticketID int64) (*chain.TicketDetails, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chain.TicketDetails), args.Error(1)
}

func (m *MockLedger) VerifyTicket(ctx context.Context, ticketID int64) (*chain.Verification, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chain.Verification), args.Error(1)
}

func (m *MockLedger) BalanceOf(ctx context.Context, address string) (*big.Int, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockLedger) IsAdmin(ctx context.Context, address string) (bool, error) {
	args := m.Called(ctx, address)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedger) Owner(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockLedger) EstimatePurchaseGas(ctx context.Context, eventID int64, tier models.TicketTier, seat string, value *big.Int) (uint64, error) {
	args := m.Called(ctx, eventID, tier, seat, value)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockLedger) SimulatePurchase(ctx context.Context, eventID int64, tier models.TicketTier, seat string, value *big.Int) error {
	args := m.Called(ctx, eventID, tier, seat, value)
	return args.Error(0)
}

func (m *MockLedger) PurchaseTicket(ctx context.Context, eventID int64, tier models.TicketTier, seat string, value *big.Int, gasLimit uint64) (string, error) {
	args := m.Called(ctx, eventID, tier, seat, value, gasLimit)
	return args.String(0), args.Error(1)
}

func (m *MockLedger) UseTicket(ctx context.Context, ticketID int64) (string, error) {
	args := m.Called(ctx, ticketID)
	return args.String(0), args.Error(1)
}

func (m *MockLedger) CreateEvent(ctx context.Context, p chain.EventParams) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func (m *MockLedger) UpdateEvent(ctx context.Context, eventID int64, p chain.EventParams) (string, error) {
	args := m.Called(ctx, eventID, p)
	return args.String(0), args.Error(1)
}

func (m *MockLedger) DeleteEvent(ctx context.Context, eventID int64) (string, error) {
	args := m.Called(ctx, eventID)
	return args.String(0), args.Error(1)
}

func (m *MockLedger) AddAdmin(ctx context.Context, address string) (string, error) {
	args := m.Called(ctx, address)
	return args.String(0), args.Error(1)
}

func (m *MockLedger) RemoveAdmin(ctx context.Context, address string) (string, error) {
	args := m.Called(ctx, address)
	return args.String(0), args.Error(1)
}

// stubProvider backs a connected wallet session in tests.
type stubProvider struct {
	address string
}

func (p *stubProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	return []string{p.address}, nil
}

func (p *stubProvider) Accounts(ctx context.Context) ([]string, error) {
	return []string{p.address}, nil
}

func (p *stubProvider) OnAccountsChanged(fn func([]string)) func() {
	return func() {}
}

func connectedSession(t *testing.T) *wallet.Session {
	t.Helper()
	session := wallet.NewSession(&stubProvider{address: buyerAddr}, logger.NewNop())
	session.Init(context.Background())
	require.True(t, session.IsConnected())
	return session
}

func disconnectedSession() *wallet.Session {
	return wallet.NewSession(nil, logger.NewNop())
}

// newService builds a booking service with fallback-rate conversion, no
// notifications and no scan log.
func newService(ledger chain.Ledger, session *wallet.Session) *booking.Service {
	return booking.NewService(ledger, rates.NewService("", nil), session, nil, nil, logger.NewNop())
}

func eth(t *testing.T, s string) *big.Int {
	t.Helper()
	wei, err := chain.ParseEther(s)
	require.NoError(t, err)
	return wei
}

func tierWords(t *testing.T, a, b, c string) [models.TierCount]*big.Int {
	t.Helper()
	return [models.TierCount]*big.Int{eth(t, a), eth(t, b), eth(t, c)}
}

func counts(a, b, c int64) [models.TierCount]*big.Int {
	return [models.TierCount]*big.Int{big.NewInt(a), big.NewInt(b), big.NewInt(c)}
}

// fakeLedger is a stateful in-memory contract for the sequential-supply
// scenarios a per-call mock cannot express naturally.
type fakeLedger struct {
	MockLedger // unused methods fall through to the mock and fail loudly

	name      string
	isActive  bool
	priceWei  [models.TierCount]*big.Int
	supply    [models.TierCount]int64
	sold      [models.TierCount]int64
	balance   *big.Int
	estimates int
	purchases int
	used      map[int64]bool

	// optional handshake to hold a purchase mid-flight
	enter   chan struct{}
	release chan struct{}
}

func (f *fakeLedger) GetEventDetails(ctx context.Context, eventID int64) (*chain.EventDetails, error) {
	if f.enter != nil {
		f.enter <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return &chain.EventDetails{
		Name:      f.name,
		EventDate: big.NewInt(0),
		Prices:    f.priceWei,
		IsActive:  f.isActive,
	}, nil
}

func (f *fakeLedger) GetAvailableTickets(ctx context.Context, eventID int64) ([models.TierCount]*big.Int, error) {
	var out [models.TierCount]*big.Int
	for i := range out {
		out[i] = big.NewInt(f.supply[i] - f.sold[i])
	}
	return out, nil
}

func (f *fakeLedger) BalanceOf(ctx context.Context, address string) (*big.Int, error) {
	return f.balance, nil
}

func (f *fakeLedger) EstimatePurchaseGas(ctx context.Context, eventID int64, tier models.TicketTier, seat string, value *big.Int) (uint64, error) {
	f.estimates++
	return 100000, nil
}

func (f *fakeLedger) PurchaseTicket(ctx context.Context, eventID int64, tier models.TicketTier, seat string, value *big.Int, gasLimit uint64) (string, error) {
	if f.supply[tier]-f.sold[tier] <= 0 {
		return "", errors.New("execution reverted: No tickets available")
	}
	f.sold[tier]++
	f.purchases++
	return fmt.Sprintf("0xtx%d", f.purchases), nil
}

func (f *fakeLedger) UseTicket(ctx context.Context, ticketID int64) (string, error) {
	if f.used == nil {
		f.used = make(map[int64]bool)
	}
	if f.used[ticketID] {
		return "", errors.New("execution reverted: Ticket already used")
	}
	f.used[ticketID] = true
	return "0xused", nil
}
