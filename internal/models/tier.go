package models

import "fmt"

// TicketTier is one of the three fixed ticket classes. The ordinal value is
// significant: it is the index into an event's price/supply/sold arrays and
// the value passed to the contract.
type TicketTier int

const (
	TierRegular TicketTier = 0
	TierVIP     TicketTier = 1
	TierVVIP    TicketTier = 2

	// TierCount is the number of ticket tiers. The contract models prices,
	// supply and sold counts as fixed arrays of this length.
	TierCount = 3
)

func (t TicketTier) String() string {
	switch t {
	case TierRegular:
		return "Regular"
	case TierVIP:
		return "VIP"
	case TierVVIP:
		return "VVIP"
	default:
		return fmt.Sprintf("TicketTier(%d)", int(t))
	}
}

// Valid reports whether t is one of the three defined tiers.
func (t TicketTier) Valid() bool {
	return t >= TierRegular && t < TierCount
}

// ParseTier converts a tier ordinal into a TicketTier.
func ParseTier(v int) (TicketTier, error) {
	t := TicketTier(v)
	if !t.Valid() {
		return 0, fmt.Errorf("invalid ticket tier %d", v)
	}
	return t, nil
}
