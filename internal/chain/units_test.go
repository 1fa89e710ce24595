package chain

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatEther(t *testing.T) {
	wei := func(s string) *big.Int {
		v, ok := new(big.Int).SetString(s, 10)
		require.True(t, ok)
		return v
	}

	assert.Equal(t, "7.5", FormatEther(wei("7500000000000000000")))
	assert.Equal(t, "1", FormatEther(wei("1000000000000000000")))
	assert.Equal(t, "0.0000075", FormatEther(wei("7500000000000")))
	assert.Equal(t, "0", FormatEther(big.NewInt(0)))
	assert.Equal(t, "0", FormatEther(nil))
	assert.Equal(t, "0.000000000000000001", FormatEther(big.NewInt(1)))
}

func TestParseEther(t *testing.T) {
	got, err := ParseEther("7.5")
	require.NoError(t, err)
	assert.Equal(t, "7500000000000000000", got.String())

	got, err = ParseEther("0.0000075")
	require.NoError(t, err)
	assert.Equal(t, "7500000000000", got.String())

	_, err = ParseEther("seven")
	assert.Error(t, err)
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, s := range []string{"7.5", "0.0000075", "1", "0.000000000000000001"} {
		wei, err := ParseEther(s)
		require.NoError(t, err)
		assert.Equal(t, s, FormatEther(wei))
	}
}

func TestRevertReason(t *testing.T) {
	assert.Equal(t, "", RevertReason(nil))
	assert.Equal(t, "Event does not exist",
		RevertReason(errors.New("execution reverted: Event does not exist")))
	assert.Equal(t, "connection refused",
		RevertReason(errors.New("connection refused")))
}
