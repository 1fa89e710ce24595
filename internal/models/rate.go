package models

// ExchangeRate is a single conversion snapshot between the chain's native
// unit and the display currency. It is fetched on demand and never cached:
// two conversions inside the same flow may observe different snapshots.
type ExchangeRate struct {
	EthToKes float64 `json:"ethToKes"`
	KesToEth float64 `json:"kesToEth"`
}
