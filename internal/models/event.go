package models

// Event is an event as shown to callers: prices already converted from wei
// into the display currency. The authoritative record lives on-chain; this
// struct is a read snapshot, never persisted locally.
type Event struct {
	EventID     int64              `json:"eventId"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Venue       string             `json:"venue"`
	EventDate   int64              `json:"eventDate"` // unix seconds
	Prices      [TierCount]float64 `json:"prices"`    // KES, indexed by tier
	Supply      [TierCount]int64   `json:"supply"`
	Sold        [TierCount]int64   `json:"sold"`
	IsActive    bool               `json:"isActive"`
	Creator     string             `json:"creator"`
}

// Available returns the remaining sellable tickets per tier.
func (e *Event) Available() [TierCount]int64 {
	var out [TierCount]int64
	for i := range out {
		out[i] = e.Supply[i] - e.Sold[i]
	}
	return out
}

// CreateEventInput carries the admin-provided fields for event creation and
// updates. Prices are in the display currency and converted to wei at
// submission time.
type CreateEventInput struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Venue       string             `json:"venue"`
	EventDate   int64              `json:"eventDate"` // unix seconds
	Prices      [TierCount]float64 `json:"prices"`    // KES
	Supply      [TierCount]int64   `json:"supply"`
}
