package chain

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"blocktix/internal/config"
	"blocktix/internal/models"
)

// contractABI is the slice of the ticketing contract's interface this
// gateway calls. The contract itself is deployed and maintained elsewhere.
const contractABI = `[
	{"type":"function","name":"createEvent","stateMutability":"nonpayable","inputs":[{"name":"name","type":"string"},{"name":"description","type":"string"},{"name":"venue","type":"string"},{"name":"eventDate","type":"uint256"},{"name":"prices","type":"uint256[3]"},{"name":"supply","type":"uint256[3]"}],"outputs":[]},
	{"type":"function","name":"updateEventDetails","stateMutability":"nonpayable","inputs":[{"name":"eventId","type":"uint256"},{"name":"name","type":"string"},{"name":"description","type":"string"},{"name":"venue","type":"string"},{"name":"eventDate","type":"uint256"},{"name":"prices","type":"uint256[3]"},{"name":"supply","type":"uint256[3]"}],"outputs":[]},
	{"type":"function","name":"deleteEvent","stateMutability":"nonpayable","inputs":[{"name":"eventId","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"purchaseTicket","stateMutability":"payable","inputs":[{"name":"eventId","type":"uint256"},{"name":"ticketType","type":"uint8"},{"name":"seat","type":"string"}],"outputs":[]},
	{"type":"function","name":"useTicket","stateMutability":"nonpayable","inputs":[{"name":"ticketId","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"addAdmin","stateMutability":"nonpayable","inputs":[{"name":"admin","type":"address"}],"outputs":[]},
	{"type":"function","name":"removeAdmin","stateMutability":"nonpayable","inputs":[{"name":"admin","type":"address"}],"outputs":[]},
	{"type":"function","name":"getEventDetails","stateMutability":"view","inputs":[{"name":"eventId","type":"uint256"}],"outputs":[{"name":"name","type":"string"},{"name":"description","type":"string"},{"name":"venue","type":"string"},{"name":"eventDate","type":"uint256"},{"name":"prices","type":"uint256[3]"},{"name":"isActive","type":"bool"},{"name":"creator","type":"address"}]},
	{"type":"function","name":"getEventSupply","stateMutability":"view","inputs":[{"name":"eventId","type":"uint256"}],"outputs":[{"name":"supply","type":"uint256[3]"},{"name":"sold","type":"uint256[3]"}]},
	{"type":"function","name":"getAvailableTickets","stateMutability":"view","inputs":[{"name":"eventId","type":"uint256"}],"outputs":[{"name":"available","type":"uint256[3]"}]},
	{"type":"function","name":"getUserTickets","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"ticketIds","type":"uint256[]"}]},
	{"type":"function","name":"getTicketDetails","stateMutability":"view","inputs":[{"name":"ticketId","type":"uint256"}],"outputs":[{"name":"eventId","type":"uint256"},{"name":"ticketOwner","type":"address"},{"name":"ticketType","type":"uint8"},{"name":"purchasePrice","type":"uint256"},{"name":"purchaseTime","type":"uint256"},{"name":"isUsed","type":"bool"},{"name":"seat","type":"string"}]},
	{"type":"function","name":"verifyTicket","stateMutability":"view","inputs":[{"name":"ticketId","type":"uint256"}],"outputs":[{"name":"isValid","type":"bool"},{"name":"isUsed","type":"bool"},{"name":"eventName","type":"string"},{"name":"eventDate","type":"uint256"}]},
	{"type":"function","name":"eventCounter","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"admins","stateMutability":"view","inputs":[{"name":"","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]}
]`

// EthLedger is the production Ledger backed by a JSON-RPC node and a bound
// contract. All writes are signed with the gateway's key and block until
// mined.
type EthLedger struct {
	client   *ethclient.Client
	contract *bind.BoundContract
	abi      abi.ABI
	address  common.Address
	opts     *bind.TransactOpts
	from     common.Address
}

func NewEthLedger(cfg config.ChainConfig) (*EthLedger, error) {
	if cfg.ContractAddress == "" {
		return nil, fmt.Errorf("contract address not configured")
	}
	if !common.IsHexAddress(cfg.ContractAddress) {
		return nil, fmt.Errorf("invalid contract address %q", cfg.ContractAddress)
	}

	client, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to chain RPC: %w", err)
	}

	parsed, err := abi.JSON(strings.NewReader(contractABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract ABI: %w", err)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid wallet private key: %w", err)
	}

	opts, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(cfg.ChainID))
	if err != nil {
		return nil, fmt.Errorf("failed to build transactor: %w", err)
	}

	address := common.HexToAddress(cfg.ContractAddress)
	contract := bind.NewBoundContract(address, parsed, client, client, client)

	return &EthLedger{
		client:   client,
		contract: contract,
		abi:      parsed,
		address:  address,
		opts:     opts,
		from:     crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// Signer returns the address writes are signed with.
func (e *EthLedger) Signer() string {
	return e.from.Hex()
}

func (e *EthLedger) Close() {
	e.client.Close()
}

func (e *EthLedger) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	var out []interface{}
	if err := e.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *EthLedger) transact(ctx context.Context, value *big.Int, gasLimit uint64, method string, args ...interface{}) (string, error) {
	opts := *e.opts
	opts.Context = ctx
	opts.Value = value
	opts.GasLimit = gasLimit

	tx, err := e.contract.Transact(&opts, method, args...)
	if err != nil {
		return "", err
	}

	receipt, err := bind.WaitMined(ctx, e.client, tx)
	if err != nil {
		return "", fmt.Errorf("failed waiting for transaction %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return "", fmt.Errorf("transaction %s reverted", tx.Hash().Hex())
	}
	return tx.Hash().Hex(), nil
}

// ---------------- reads ----------------

func (e *EthLedger) EventCounter(ctx context.Context) (*big.Int, error) {
	out, err := e.call(ctx, "eventCounter")
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

func (e *EthLedger) GetEventDetails(ctx context.Context, eventID int64) (*EventDetails, error) {
	out, err := e.call(ctx, "getEventDetails", big.NewInt(eventID))
	if err != nil {
		return nil, err
	}
	return &EventDetails{
		Name:        out[0].(string),
		Description: out[1].(string),
		Venue:       out[2].(string),
		EventDate:   out[3].(*big.Int),
		Prices:      out[4].([models.TierCount]*big.Int),
		IsActive:    out[5].(bool),
		Creator:     out[6].(common.Address).Hex(),
	}, nil
}

func (e *EthLedger) GetEventSupply(ctx context.Context, eventID int64) (*EventSupply, error) {
	out, err := e.call(ctx, "getEventSupply", big.NewInt(eventID))
	if err != nil {
		return nil, err
	}
	return &EventSupply{
		Supply: out[0].([models.TierCount]*big.Int),
		Sold:   out[1].([models.TierCount]*big.Int),
	}, nil
}

func (e *EthLedger) GetAvailableTickets(ctx context.Context, eventID int64) ([models.TierCount]*big.Int, error) {
	out, err := e.call(ctx, "getAvailableTickets", big.NewInt(eventID))
	if err != nil {
		return [models.TierCount]*big.Int{}, err
	}
	return out[0].([models.TierCount]*big.Int), nil
}

func (e *EthLedger) GetUserTickets(ctx context.Context, owner string) ([]*big.Int, error) {
	out, err := e.call(ctx, "getUserTickets", common.HexToAddress(owner))
	if err != nil {
		return nil, err
	}
	return out[0].([]*big.Int), nil
}

func (e *EthLedger) GetTicketDetails(ctx context.Context, ticketID int64) (*TicketDetails, error) {
	out, err := e.call(ctx, "getTicketDetails", big.NewInt(ticketID))
	if err != nil {
		return nil, err
	}
	return &TicketDetails{
		EventID:       out[0].(*big.Int),
		Owner:         out[1].(common.Address).Hex(),
		TicketType:    out[2].(uint8),
		PurchasePrice: out[3].(*big.Int),
		PurchaseTime:  out[4].(*big.Int),
		IsUsed:        out[5].(bool),
		Seat:          out[6].(string),
	}, nil
}

func (e *EthLedger) VerifyTicket(ctx context.Context, ticketID int64) (*Verification, error) {
	out, err := e.call(ctx, "verifyTicket", big.NewInt(ticketID))
	if err != nil {
		return nil, err
	}
	return &Verification{
		IsValid:   out[0].(bool),
		IsUsed:    out[1].(bool),
		EventName: out[2].(string),
		EventDate: out[3].(*big.Int),
	}, nil
}

func (e *EthLedger) BalanceOf(ctx context.Context, address string) (*big.Int, error) {
	return e.client.BalanceAt(ctx, common.HexToAddress(address), nil)
}

func (e *EthLedger) IsAdmin(ctx context.Context, address string) (bool, error) {
	out, err := e.call(ctx, "admins", common.HexToAddress(address))
	if err != nil {
		return false, err
	}
	return out[0].(bool), nil
}

func (e *EthLedger) Owner(ctx context.Context) (string, error) {
	out, err := e.call(ctx, "owner")
	if err != nil {
		return "", err
	}
	return out[0].(common.Address).Hex(), nil
}

// ---------------- purchase probe + writes ----------------

func (e *EthLedger) purchaseMsg(eventID int64, tier models.TicketTier, seat string, value *big.Int) (ethereum.CallMsg, error) {
	data, err := e.abi.Pack("purchaseTicket", big.NewInt(eventID), uint8(tier), seat)
	if err != nil {
		return ethereum.CallMsg{}, fmt.Errorf("failed to pack purchase call: %w", err)
	}
	return ethereum.CallMsg{
		From:  e.from,
		To:    &e.address,
		Value: value,
		Data:  data,
	}, nil
}

func (e *EthLedger) EstimatePurchaseGas(ctx context.Context, eventID int64, tier models.TicketTier, seat string, value *big.Int) (uint64, error) {
	msg, err := e.purchaseMsg(eventID, tier, seat, value)
	if err != nil {
		return 0, err
	}
	return e.client.EstimateGas(ctx, msg)
}

func (e *EthLedger) SimulatePurchase(ctx context.Context, eventID int64, tier models.TicketTier, seat string, value *big.Int) error {
	msg, err := e.purchaseMsg(eventID, tier, seat, value)
	if err != nil {
		return err
	}
	_, err = e.client.CallContract(ctx, msg, nil)
	return err
}

func (e *EthLedger) PurchaseTicket(ctx context.Context, eventID int64, tier models.TicketTier, seat string, value *big.Int, gasLimit uint64) (string, error) {
	return e.transact(ctx, value, gasLimit, "purchaseTicket", big.NewInt(eventID), uint8(tier), seat)
}

func (e *EthLedger) UseTicket(ctx context.Context, ticketID int64) (string, error) {
	return e.transact(ctx, nil, 0, "useTicket", big.NewInt(ticketID))
}

func (e *EthLedger) CreateEvent(ctx context.Context, p EventParams) (string, error) {
	return e.transact(ctx, nil, 0, "createEvent",
		p.Name, p.Description, p.Venue, big.NewInt(p.EventDate), p.PricesWei, supplyToWords(p.Supply))
}

func (e *EthLedger) UpdateEvent(ctx context.Context, eventID int64, p EventParams) (string, error) {
	return e.transact(ctx, nil, 0, "updateEventDetails",
		big.NewInt(eventID), p.Name, p.Description, p.Venue, big.NewInt(p.EventDate), p.PricesWei, supplyToWords(p.Supply))
}

func (e *EthLedger) DeleteEvent(ctx context.Context, eventID int64) (string, error) {
	return e.transact(ctx, nil, 0, "deleteEvent", big.NewInt(eventID))
}

func (e *EthLedger) AddAdmin(ctx context.Context, address string) (string, error) {
	return e.transact(ctx, nil, 0, "addAdmin", common.HexToAddress(address))
}

func (e *EthLedger) RemoveAdmin(ctx context.Context, address string) (string, error) {
	return e.transact(ctx, nil, 0, "removeAdmin", common.HexToAddress(address))
}

func supplyToWords(supply [models.TierCount]int64) [models.TierCount]*big.Int {
	var out [models.TierCount]*big.Int
	for i, s := range supply {
		out[i] = big.NewInt(s)
	}
	return out
}
