package events

import (
	"crypto/sha256"
	"path/filepath"
	"testing"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centralb/bookshop-go/identity"
)

func testAddr(t *testing.T) identity.Address {
	t.Helper()
	priv, err := ec.NewPrivateKey()
	require.NoError(t, err)
	addr, err := identity.FromPublicKey(priv.PubKey())
	require.NoError(t, err)
	return addr
}

func testHash(seed byte) []byte {
	h := sha256.Sum256([]byte{seed})
	return h[:]
}

// ---------------------------------------------------------------------------
// Event constructor tests
// ---------------------------------------------------------------------------

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{TypeUserCreated, "UserCreated"},
		{TypeSellerApproved, "SellerApproved"},
		{TypeBookAdded, "BookAdded"},
		{TypeBookBought, "BookBought"},
		{Type(99), "type(99)"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.typ.String())
	}
}

func TestConstructors(t *testing.T) {
	addr := testAddr(t)
	buyer := testAddr(t)
	hash := testHash(1)

	uc := NewUserCreated(addr, true)
	assert.Equal(t, TypeUserCreated, uc.Type)
	assert.Equal(t, addr, uc.Identity)
	assert.True(t, uc.WantsToSell)
	assert.NotZero(t, uc.Timestamp)

	sa := NewSellerApproved(addr)
	assert.Equal(t, TypeSellerApproved, sa.Type)
	assert.Equal(t, addr, sa.Identity)

	ba := NewBookAdded(hash, addr)
	assert.Equal(t, TypeBookAdded, ba.Type)
	assert.Equal(t, hash, ba.BookHash)
	assert.Equal(t, addr, ba.Owner)

	bb := NewBookBought(hash, buyer, 2500)
	assert.Equal(t, TypeBookBought, bb.Type)
	assert.Equal(t, hash, bb.BookHash)
	assert.Equal(t, buyer, bb.Buyer)
	assert.Equal(t, uint64(2500), bb.AmountPaid)
}

func TestNewBookAdded_CopiesHash(t *testing.T) {
	hash := testHash(1)
	e := NewBookAdded(hash, testAddr(t))
	hash[0] ^= 0xff
	assert.NotEqual(t, hash[0], e.BookHash[0], "event must not alias the caller's hash")
}

// ---------------------------------------------------------------------------
// Log tests, run against both implementations
// ---------------------------------------------------------------------------

func logImpls(t *testing.T) map[string]func(t *testing.T) Log {
	t.Helper()
	return map[string]func(t *testing.T) Log{
		"mem": func(t *testing.T) Log { return NewMemLog() },
		"bolt": func(t *testing.T) Log {
			log, err := OpenBoltLog(filepath.Join(t.TempDir(), "events.db"))
			require.NoError(t, err)
			t.Cleanup(func() { log.Close() })
			return log
		},
	}
}

func TestLog_AppendAssignsSequence(t *testing.T) {
	for name, newLog := range logImpls(t) {
		t.Run(name, func(t *testing.T) {
			log := newLog(t)

			e1 := NewUserCreated(testAddr(t), false)
			e2 := NewUserCreated(testAddr(t), true)
			require.NoError(t, log.Append(e1))
			require.NoError(t, log.Append(e2))

			assert.Equal(t, uint64(1), e1.Seq)
			assert.Equal(t, uint64(2), e2.Seq)
		})
	}
}

func TestLog_ListInOrder(t *testing.T) {
	for name, newLog := range logImpls(t) {
		t.Run(name, func(t *testing.T) {
			log := newLog(t)
			addr := testAddr(t)
			hash := testHash(1)

			require.NoError(t, log.Append(NewUserCreated(addr, true)))
			require.NoError(t, log.Append(NewSellerApproved(addr)))
			require.NoError(t, log.Append(NewBookAdded(hash, addr)))
			require.NoError(t, log.Append(NewBookBought(hash, testAddr(t), 2500)))

			got, err := log.List()
			require.NoError(t, err)
			require.Len(t, got, 4)
			assert.Equal(t, TypeUserCreated, got[0].Type)
			assert.Equal(t, TypeSellerApproved, got[1].Type)
			assert.Equal(t, TypeBookAdded, got[2].Type)
			assert.Equal(t, TypeBookBought, got[3].Type)
			for i, e := range got {
				assert.Equal(t, uint64(i)+1, e.Seq)
			}
		})
	}
}

func TestLog_RejectsInvalid(t *testing.T) {
	for name, newLog := range logImpls(t) {
		t.Run(name, func(t *testing.T) {
			log := newLog(t)

			assert.ErrorIs(t, log.Append(nil), ErrNilParam)
			assert.ErrorIs(t, log.Append(&Event{}), ErrInvalidType)
			assert.ErrorIs(t, log.Append(&Event{Type: Type(9)}), ErrInvalidType)
		})
	}
}

func TestLog_Count(t *testing.T) {
	for name, newLog := range logImpls(t) {
		t.Run(name, func(t *testing.T) {
			log := newLog(t)

			count, err := log.Count()
			require.NoError(t, err)
			assert.Equal(t, uint64(0), count)

			require.NoError(t, log.Append(NewUserCreated(testAddr(t), false)))

			count, err = log.Count()
			require.NoError(t, err)
			assert.Equal(t, uint64(1), count)
		})
	}
}

func TestBoltLog_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")

	log, err := OpenBoltLog(path)
	require.NoError(t, err)

	addr := testAddr(t)
	require.NoError(t, log.Append(NewUserCreated(addr, true)))
	require.NoError(t, log.Close())

	reopened, err := OpenBoltLog(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.List()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, TypeUserCreated, got[0].Type)
	assert.Equal(t, addr, got[0].Identity)

	// Sequence numbering continues after reopen.
	e := NewSellerApproved(addr)
	require.NoError(t, reopened.Append(e))
	assert.Equal(t, uint64(2), e.Seq)
}
