// Package qrticket serializes a ticket's identity into the scannable payload
// rendered on ticket cards, and parses scanned payloads back.
package qrticket

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/skip2/go-qrcode"

	"blocktix/internal/models"
)

// ErrEncoding is returned when both the primary and the minimal fallback
// payload fail to serialize.
var ErrEncoding = fmt.Errorf("qr encoding failed")

// TicketQRData is the portion of a scanned payload that the verification
// console consumes. Identifier fields are decimal strings: chain-side ids are
// unbounded integers and must never pass through a float.
type TicketQRData struct {
	TicketID   string `json:"ticketId"`
	EventID    string `json:"eventId"`
	TicketType int    `json:"ticketType"`
	Owner      string `json:"owner"`
	IsUsed     bool   `json:"isUsed"`
	Timestamp  int64  `json:"timestamp"`
}

// payload is the full primary encoding. Everything TicketQRData has, plus
// display fields and the verification deep link.
type payload struct {
	TicketID      string  `json:"ticketId"`
	EventID       string  `json:"eventId"`
	TicketType    int     `json:"ticketType"`
	Owner         string  `json:"owner"`
	IsUsed        bool    `json:"isUsed"`
	Timestamp     int64   `json:"timestamp"`
	EventName     string  `json:"eventName"`
	EventDate     int64   `json:"eventDate"` // unix milliseconds
	VerifyURL     string  `json:"verifyUrl"`
	PurchasePrice string  `json:"purchasePrice"`
	Seat          *string `json:"seat"`
}

type fallbackPayload struct {
	TicketID  string `json:"ticketId"`
	EventID   string `json:"eventId"`
	Owner     string `json:"owner"`
	EventName string `json:"eventName"`
	VerifyURL string `json:"verifyUrl"`
}

// Encode builds the QR payload string for a ticket. If the primary encoding
// fails it retries with a minimal payload that still carries enough to reach
// the verification page; only when both fail does it return an error.
func Encode(t models.Ticket, eventName string, eventDate time.Time, origin string) (string, error) {
	ticketID := DecimalString(t.TicketID)
	eventID := DecimalString(t.EventID)

	full := payload{
		TicketID:      ticketID,
		EventID:       eventID,
		TicketType:    int(t.TicketType),
		Owner:         t.Owner,
		IsUsed:        t.IsUsed,
		Timestamp:     time.Now().UnixMilli(),
		EventName:     eventName,
		EventDate:     eventDate.UnixMilli(),
		VerifyURL:     verifyURL(origin, ticketID),
		PurchasePrice: DecimalString(t.PurchasePrice),
	}
	if t.Seat != "" {
		seat := t.Seat
		full.Seat = &seat
	}

	data, err := json.Marshal(full)
	if err == nil {
		return string(data), nil
	}

	minimal := fallbackPayload{
		TicketID:  ticketID,
		EventID:   eventID,
		Owner:     t.Owner,
		EventName: eventName,
		VerifyURL: verifyURL(origin, ticketID),
	}
	if data, fallbackErr := json.Marshal(minimal); fallbackErr == nil {
		return string(data), nil
	}

	return "", fmt.Errorf("%w: %v", ErrEncoding, err)
}

// Decode parses a scanned payload. It returns nil for anything that is not a
// recognizable ticket code — a nil result is "not a ticket", never an error.
func Decode(s string) *TicketQRData {
	var data TicketQRData
	if err := json.Unmarshal([]byte(s), &data); err != nil {
		return nil
	}
	if data.TicketID == "" {
		return nil
	}
	return &data
}

// Image renders a payload as a PNG. Medium error correction at 256px scans
// reliably from phone screens.
func Image(payloadString string) ([]byte, error) {
	png, err := qrcode.Encode(payloadString, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR image: %w", err)
	}
	return png, nil
}

// DecimalString normalizes any numeric identifier representation into its
// plain decimal-string form.
func DecimalString(v interface{}) string {
	switch n := v.(type) {
	case *big.Int:
		if n == nil {
			return "0"
		}
		return n.String()
	case big.Int:
		return n.String()
	case int64:
		return strconv.FormatInt(n, 10)
	case int:
		return strconv.Itoa(n)
	case uint64:
		return strconv.FormatUint(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case string:
		return n
	default:
		return fmt.Sprintf("%v", n)
	}
}

func verifyURL(origin, ticketID string) string {
	return fmt.Sprintf("%s/verify?ticketId=%s", origin, ticketID)
}
