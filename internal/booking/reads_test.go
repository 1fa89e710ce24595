package booking_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blocktix/internal/chain"
	"blocktix/internal/models"
)

func fullEvent(t *testing.T, name string) (*chain.EventDetails, *chain.EventSupply, [models.TierCount]*big.Int) {
	details := &chain.EventDetails{
		Name:        name,
		Description: "An evening of live music",
		Venue:       "Uhuru Gardens",
		EventDate:   big.NewInt(1767225600),
		Prices:      tierWords(t, "7.5", "7.5", "7.5"),
		IsActive:    true,
		Creator:     buyerAddr,
	}
	supply := &chain.EventSupply{
		Supply: counts(100, 50, 10),
		Sold:   counts(40, 10, 10),
	}
	return details, supply, counts(60, 40, 0)
}

func TestGetEvent(t *testing.T) {
	details, supply, available := fullEvent(t, "Summer Concert")

	ledger := new(MockLedger)
	ledger.On("GetEventDetails", mock.Anything, int64(1)).Return(details, nil)
	ledger.On("GetEventSupply", mock.Anything, int64(1)).Return(supply, nil)
	ledger.On("GetAvailableTickets", mock.Anything, int64(1)).Return(available, nil)

	svc := newService(ledger, connectedSession(t))

	view, err := svc.GetEvent(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), view.Event.EventID)
	assert.Equal(t, "Summer Concert", view.Event.Name)
	assert.Equal(t, "Uhuru Gardens", view.Event.Venue)
	assert.True(t, view.Event.IsActive)
	// 7.5 ETH reads back as one million shillings at the fallback rate.
	assert.Equal(t, float64(1000000), view.Event.Prices[models.TierRegular])
	assert.Equal(t, [models.TierCount]int64{100, 50, 10}, view.Event.Supply)
	assert.Equal(t, [models.TierCount]int64{40, 10, 10}, view.Event.Sold)
	assert.Equal(t, [models.TierCount]int64{60, 40, 0}, view.Available)
}

func TestGetEventUnknown(t *testing.T) {
	ledger := new(MockLedger)
	ledger.On("GetEventDetails", mock.Anything, int64(9)).
		Return(nil, errors.New("execution reverted: Event does not exist"))

	svc := newService(ledger, connectedSession(t))

	_, err := svc.GetEvent(context.Background(), 9)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "event does not exist")
}

func TestListEventsSkipsUnreadable(t *testing.T) {
	ledger := new(MockLedger)
	ledger.On("EventCounter", mock.Anything).Return(big.NewInt(3), nil)

	for _, id := range []int64{1, 3} {
		details, supply, available := fullEvent(t, "Event")
		ledger.On("GetEventDetails", mock.Anything, id).Return(details, nil)
		ledger.On("GetEventSupply", mock.Anything, id).Return(supply, nil)
		ledger.On("GetAvailableTickets", mock.Anything, id).Return(available, nil)
	}
	ledger.On("GetEventDetails", mock.Anything, int64(2)).
		Return(nil, errors.New("execution reverted"))

	svc := newService(ledger, connectedSession(t))

	views, err := svc.ListEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, int64(1), views[0].Event.EventID)
	assert.Equal(t, int64(3), views[1].Event.EventID)
}

func TestGetUserTickets(t *testing.T) {
	ledger := new(MockLedger)
	ledger.On("GetUserTickets", mock.Anything, buyerAddr).
		Return([]*big.Int{big.NewInt(4), big.NewInt(9)}, nil)
	ledger.On("GetTicketDetails", mock.Anything, int64(4)).Return(sampleDetails(t), nil)
	ledger.On("GetTicketDetails", mock.Anything, int64(9)).Return(sampleDetails(t), nil)

	svc := newService(ledger, connectedSession(t))

	tickets, err := svc.GetUserTickets(context.Background(), buyerAddr)
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, int64(4), tickets[0].TicketID)
	assert.Equal(t, int64(9), tickets[1].TicketID)
	assert.Equal(t, float64(1000000), tickets[0].PurchasePrice)
}

func TestIsAdmin(t *testing.T) {
	ledger := new(MockLedger)
	ledger.On("IsAdmin", mock.Anything, buyerAddr).Return(true, nil)

	svc := newService(ledger, connectedSession(t))
	assert.True(t, svc.IsAdmin(context.Background(), buyerAddr))
}

func TestIsAdminReadsFalseOnFailure(t *testing.T) {
	ledger := new(MockLedger)
	ledger.On("IsAdmin", mock.Anything, buyerAddr).Return(false, errors.New("connection refused"))

	svc := newService(ledger, connectedSession(t))
	assert.False(t, svc.IsAdmin(context.Background(), buyerAddr))
}

func TestContractOwner(t *testing.T) {
	ledger := new(MockLedger)
	ledger.On("Owner", mock.Anything).Return(buyerAddr, nil)

	svc := newService(ledger, connectedSession(t))
	assert.Equal(t, buyerAddr, svc.ContractOwner(context.Background()))

	failing := new(MockLedger)
	failing.On("Owner", mock.Anything).Return("", errors.New("connection refused"))
	assert.Empty(t, newService(failing, connectedSession(t)).ContractOwner(context.Background()))
}
