package chain

import (
	"fmt"
	"math/big"
	"strings"
)

var weiPerEth = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// FormatEther renders a wei amount as a decimal ETH string with trailing
// zeros trimmed: 7500000000000000000 -> "7.5".
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	r := new(big.Rat).SetFrac(wei, weiPerEth)
	s := r.FloatString(18)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

// ParseEther converts a decimal ETH string into wei, truncating anything
// below 1 wei.
func ParseEther(value string) (*big.Int, error) {
	r, ok := new(big.Rat).SetString(value)
	if !ok {
		return nil, fmt.Errorf("invalid ether amount %q", value)
	}
	r.Mul(r, new(big.Rat).SetInt(weiPerEth))
	return new(big.Int).Quo(r.Num(), r.Denom()), nil
}
