package identity

import (
	"testing"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromString_RoundTrip(t *testing.T) {
	const addrStr = "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"

	a, err := FromString(addrStr)
	require.NoError(t, err)
	assert.False(t, a.IsZero())
	assert.Equal(t, addrStr, a.String())
}

func TestFromString_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"garbage", "not-an-address"},
		{"bad checksum", "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNb"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromString(tc.in)
			assert.ErrorIs(t, err, ErrInvalidAddress)
		})
	}
}

func TestFromPublicKey_MatchesHash160(t *testing.T) {
	priv, err := ec.NewPrivateKey()
	require.NoError(t, err)
	pub := priv.PubKey()

	a, err := FromPublicKey(pub)
	require.NoError(t, err)
	assert.Equal(t, bsvhash.Hash160(pub.Compressed()), a.Bytes())
}

func TestFromPublicKey_Nil(t *testing.T) {
	_, err := FromPublicKey(nil)
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestFromPublicKey_DistinctKeys(t *testing.T) {
	priv1, err := ec.NewPrivateKey()
	require.NoError(t, err)
	priv2, err := ec.NewPrivateKey()
	require.NoError(t, err)

	a1, err := FromPublicKey(priv1.PubKey())
	require.NoError(t, err)
	a2, err := FromPublicKey(priv2.PubKey())
	require.NoError(t, err)

	assert.NotEqual(t, a1, a2)
}

func TestFromBytes(t *testing.T) {
	raw := make([]byte, AddressSize)
	raw[0] = 0xab
	a, err := FromBytes(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, a.Bytes())

	_, err = FromBytes(raw[:19])
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestZeroAddress(t *testing.T) {
	assert.True(t, ZeroAddress.IsZero())

	priv, err := ec.NewPrivateKey()
	require.NoError(t, err)
	a, err := FromPublicKey(priv.PubKey())
	require.NoError(t, err)
	assert.False(t, a.IsZero())
}
