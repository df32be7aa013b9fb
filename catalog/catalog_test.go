package catalog

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

func testBook(t *testing.T, seed byte) *BookRecord {
	t.Helper()
	return &BookRecord{
		Hash:       testHash(seed),
		Owner:      testAddr(t),
		Title:      "The Big Mouth",
		Author:     "Ether Dev",
		Price:      1500,
		Commission: 10,
	}
}

// ---------------------------------------------------------------------------
// ValidateBook tests
// ---------------------------------------------------------------------------

func TestValidateBook(t *testing.T) {
	valid := testBook(t, 1)
	require.NoError(t, ValidateBook(valid, 10))

	longText := string(make([]byte, 257))

	tests := []struct {
		name    string
		modify  func(*BookRecord)
		minComm uint64
		wantErr error
	}{
		{"nil hash", func(b *BookRecord) { b.Hash = nil }, 10, ErrInvalidHash},
		{"short hash", func(b *BookRecord) { b.Hash = b.Hash[:31] }, 10, ErrInvalidHash},
		{"zero owner", func(b *BookRecord) { b.Owner = identity.ZeroAddress }, 10, ErrZeroOwner},
		{"empty title", func(b *BookRecord) { b.Title = "" }, 10, ErrEmptyTitle},
		{"title too long", func(b *BookRecord) { b.Title = longText }, 10, ErrTitleTooLong},
		{"empty author", func(b *BookRecord) { b.Author = "" }, 10, ErrEmptyAuthor},
		{"author too long", func(b *BookRecord) { b.Author = longText }, 10, ErrAuthorTooLong},
		{"commission over 100", func(b *BookRecord) { b.Commission = 101 }, 10, ErrCommissionOutOfRange},
		{"commission below minimum", func(b *BookRecord) { b.Commission = 5 }, 10, ErrCommissionTooLow},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := testBook(t, 1)
			tc.modify(b)
			err := ValidateBook(b, tc.minComm)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestValidateBook_Nil(t *testing.T) {
	err := ValidateBook(nil, 10)
	assert.ErrorIs(t, err, ErrNilParam)
}

func TestValidateBook_ZeroPriceAllowed(t *testing.T) {
	b := testBook(t, 1)
	b.Price = 0
	assert.NoError(t, ValidateBook(b, 10), "free books are valid listings")
}

func TestValidateBook_CommissionAtMinimum(t *testing.T) {
	b := testBook(t, 1)
	b.Commission = 10
	assert.NoError(t, ValidateBook(b, 10))

	b.Commission = 100
	assert.NoError(t, ValidateBook(b, 10))
}

// ---------------------------------------------------------------------------
// Store tests, run against both implementations
// ---------------------------------------------------------------------------

func storeImpls(t *testing.T) map[string]func(t *testing.T) Store {
	t.Helper()
	return map[string]func(t *testing.T) Store{
		"mem": func(t *testing.T) Store { return NewMemStore() },
		"bolt": func(t *testing.T) Store {
			store, err := OpenBoltStore(filepath.Join(t.TempDir(), "catalog.db"))
			require.NoError(t, err)
			t.Cleanup(func() { store.Close() })
			return store
		},
	}
}

func TestStore_PutAndGet(t *testing.T) {
	for name, newStore := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			b := testBook(t, 1)

			require.NoError(t, store.PutBook(b))

			got, err := store.GetBook(b.Hash)
			require.NoError(t, err)
			assert.Equal(t, b.Hash, got.Hash)
			assert.Equal(t, b.Owner, got.Owner)
			assert.Equal(t, b.Title, got.Title)
			assert.Equal(t, b.Author, got.Author)
			assert.Equal(t, b.Price, got.Price)
			assert.Equal(t, b.Commission, got.Commission)
		})
	}
}

func TestStore_DuplicateHash(t *testing.T) {
	for name, newStore := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			b := testBook(t, 1)
			require.NoError(t, store.PutBook(b))

			// Same hash from a different seller is still a duplicate.
			other := testBook(t, 1)
			other.Title = "Another Title"
			err := store.PutBook(other)
			assert.ErrorIs(t, err, ErrDuplicateBook)
		})
	}
}

func TestStore_GetUnknown(t *testing.T) {
	for name, newStore := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			_, err := store.GetBook(testHash(9))
			assert.ErrorIs(t, err, ErrBookNotFound)
		})
	}
}

func TestStore_InvalidHashLength(t *testing.T) {
	for name, newStore := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)

			_, err := store.GetBook([]byte{1, 2, 3})
			assert.ErrorIs(t, err, ErrInvalidHash)

			b := testBook(t, 1)
			b.Hash = b.Hash[:16]
			assert.ErrorIs(t, store.PutBook(b), ErrInvalidHash)
		})
	}
}

func TestStore_GetBooksByOwner(t *testing.T) {
	for name, newStore := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			owner := testAddr(t)

			b1 := testBook(t, 1)
			b1.Owner = owner
			b2 := testBook(t, 2)
			b2.Owner = owner
			other := testBook(t, 3)

			require.NoError(t, store.PutBook(b1))
			require.NoError(t, store.PutBook(b2))
			require.NoError(t, store.PutBook(other))

			hashes, err := store.GetBooksByOwner(owner)
			require.NoError(t, err)
			assert.ElementsMatch(t, [][]byte{b1.Hash, b2.Hash}, hashes)

			// Owner with no listings.
			none, err := store.GetBooksByOwner(testAddr(t))
			require.NoError(t, err)
			assert.Empty(t, none)
		})
	}
}

func TestStore_BookCount(t *testing.T) {
	for name, newStore := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)

			count, err := store.BookCount()
			require.NoError(t, err)
			assert.Equal(t, uint64(0), count)

			require.NoError(t, store.PutBook(testBook(t, 1)))
			require.NoError(t, store.PutBook(testBook(t, 2)))

			count, err = store.BookCount()
			require.NoError(t, err)
			assert.Equal(t, uint64(2), count)
		})
	}
}

func TestBoltStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	store, err := OpenBoltStore(path)
	require.NoError(t, err)

	b := testBook(t, 1)
	require.NoError(t, store.PutBook(b))
	require.NoError(t, store.Close())

	reopened, err := OpenBoltStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetBook(b.Hash)
	require.NoError(t, err)
	assert.Equal(t, b.Title, got.Title)

	hashes, err := reopened.GetBooksByOwner(b.Owner)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{b.Hash}, hashes)
}
