package models

// WalletSession is a read snapshot of the signing session. It is owned and
// mutated exclusively by the wallet package; every other layer only reads it.
type WalletSession struct {
	IsConnected  bool   `json:"isConnected"`
	Address      string `json:"address,omitempty"`
	IsConnecting bool   `json:"isConnecting"`
}
