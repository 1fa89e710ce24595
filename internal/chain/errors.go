package chain

import (
	"encoding/hex"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/rpc"
)

// Provider error codes from EIP-1193 / JSON-RPC. A signing provider reports
// an explicit user cancellation as 4001; node-internal failures as -32603.
const (
	codeUserRejected = 4001
	codeRPCInternal  = -32603
)

// IsUserRejected reports whether the signer explicitly declined the request.
func IsUserRejected(err error) bool {
	var rpcErr rpc.Error
	return errors.As(err, &rpcErr) && rpcErr.ErrorCode() == codeUserRejected
}

// IsRPCInternal reports a node/network-side failure rather than a contract
// decline.
func IsRPCInternal(err error) bool {
	var rpcErr rpc.Error
	return errors.As(err, &rpcErr) && rpcErr.ErrorCode() == codeRPCInternal
}

// RevertReason digs the human-readable revert string out of a failed call or
// simulation. Falls back to the raw error text when the node attached no
// decodable reason.
func RevertReason(err error) string {
	if err == nil {
		return ""
	}

	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if s, ok := dataErr.ErrorData().(string); ok {
			if reason := decodeRevertData(s); reason != "" {
				return reason
			}
		}
	}

	msg := err.Error()
	if i := strings.Index(msg, "execution reverted:"); i >= 0 {
		return strings.TrimSpace(msg[i+len("execution reverted:"):])
	}
	return msg
}

func decodeRevertData(hexData string) string {
	hexData = strings.TrimPrefix(hexData, "0x")
	data, err := hex.DecodeString(hexData)
	if err != nil {
		return ""
	}
	reason, err := abi.UnpackRevert(data)
	if err != nil {
		return ""
	}
	return reason
}
