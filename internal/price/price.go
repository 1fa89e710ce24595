// Package price normalizes the mixed numeric shapes that prices arrive in
// (big.Int from the chain, strings from QR payloads, floats from conversion)
// into clean display values.
package price

import (
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/dustin/go-humanize"
)

// ToAmount narrows a price of any supported representation to an int64.
// Floats are rounded to drop conversion noise; strings are parsed as
// decimals. Counters are assumed to stay within int64 range.
func ToAmount(v interface{}) int64 {
	switch p := v.(type) {
	case *big.Int:
		if p == nil {
			return 0
		}
		return p.Int64()
	case big.Int:
		return p.Int64()
	case string:
		if f, err := strconv.ParseFloat(p, 64); err == nil {
			return int64(math.Round(f))
		}
		return 0
	case float64:
		return int64(math.Round(p))
	case float32:
		return int64(math.Round(float64(p)))
	case int:
		return int64(p)
	case int64:
		return p
	case uint64:
		return int64(p)
	default:
		return 0
	}
}

// Format renders a price with the display currency prefix: "KES 1,250".
func Format(v interface{}) string {
	return fmt.Sprintf("KES %s", humanize.Comma(ToAmount(v)))
}

// FormatNumber renders a price with thousands grouping and no currency.
func FormatNumber(v interface{}) string {
	return humanize.Comma(ToAmount(v))
}

// Min returns the smallest price in a list.
func Min(prices []float64) int64 {
	if len(prices) == 0 {
		return 0
	}
	min := ToAmount(prices[0])
	for _, p := range prices[1:] {
		if a := ToAmount(p); a < min {
			min = a
		}
	}
	return min
}

// Max returns the largest price in a list.
func Max(prices []float64) int64 {
	if len(prices) == 0 {
		return 0
	}
	max := ToAmount(prices[0])
	for _, p := range prices[1:] {
		if a := ToAmount(p); a > max {
			max = a
		}
	}
	return max
}
