package booking

import (
	"errors"
	"fmt"
	"strings"

	"blocktix/internal/chain"
)

// Failure taxonomy for the orchestration flows. Precondition failures are
// raised before any write; write-side failures are diagnosed by simulating
// the same call and matching the revert reason.
var (
	ErrWalletNotConnected  = errors.New("wallet not connected - connect your wallet to continue")
	ErrBusy                = errors.New("another transaction is in progress")
	ErrUserRejected        = errors.New("transaction was rejected by user")
	ErrNetworkOrNode       = errors.New("transaction failed - please check your network connection")
	ErrEventNotFound       = errors.New("event does not exist")
	ErrEventInactive       = errors.New("event is not currently active")
	ErrInvalidTier         = errors.New("invalid ticket type selected")
	ErrSoldOut             = errors.New("no tickets available for this type")
	ErrInsufficientPayment = errors.New("insufficient payment")
	ErrSeatTaken           = errors.New("this seat is already taken")
	ErrInsufficientFunds   = errors.New("insufficient ETH balance")
	ErrInvalidTicket       = errors.New("invalid ticket")
	ErrCheckInFailed       = errors.New("could not mark ticket as used")
	ErrInvalidAddress      = errors.New("please enter a valid Ethereum address")
)

// classifyRevert maps a revert reason recovered from a simulation into the
// taxonomy. Unrecognized reasons pass through as raw text.
func classifyRevert(reason, requiredEth string) error {
	switch {
	case strings.Contains(reason, "Event does not exist"):
		return ErrEventNotFound
	case strings.Contains(reason, "Event is not active"):
		return ErrEventInactive
	case strings.Contains(reason, "Ticket type does not exist"):
		return ErrInvalidTier
	case strings.Contains(reason, "No tickets available"):
		return ErrSoldOut
	case strings.Contains(reason, "Insufficient payment"):
		return fmt.Errorf("%w: required %s ETH", ErrInsufficientPayment, requiredEth)
	case strings.Contains(reason, "Seat already taken"):
		return ErrSeatTaken
	case reason == "":
		return errors.New("transaction would fail")
	default:
		return errors.New(reason)
	}
}

// classifySubmit maps a submission or confirmation failure. Explicit
// provider codes first, then known message patterns, then raw passthrough.
func classifySubmit(err error) error {
	switch {
	case chain.IsUserRejected(err):
		return ErrUserRejected
	case chain.IsRPCInternal(err):
		return ErrNetworkOrNode
	case strings.Contains(err.Error(), "missing revert data"):
		return errors.New("contract call failed - please check contract address and ensure event exists")
	case strings.Contains(err.Error(), "insufficient funds"):
		return ErrInsufficientFunds
	default:
		return err
	}
}

// classifyAdmin maps write failures from the admin surface onto friendlier
// messages where the contract's revert text is recognizable.
func classifyAdmin(err error) error {
	reason := chain.RevertReason(err)
	switch {
	case chain.IsUserRejected(err):
		return ErrUserRejected
	case strings.Contains(reason, "Cannot remove owner"):
		return errors.New("cannot remove the contract owner from admin role")
	case strings.Contains(reason, "Only owner"):
		return errors.New("only the contract owner can manage admins")
	case strings.Contains(reason, "Only admin"):
		return errors.New("only an admin can manage events")
	case strings.Contains(reason, "Invalid address"):
		return ErrInvalidAddress
	default:
		return errors.New(reason)
	}
}
