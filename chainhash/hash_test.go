package chainhash

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashString(t *testing.T) {
	wantStr := "0000000000000000000000000000000000000000000000000000000000000001"
	hash := Hash{}
	hash[0] = 0x01

	if hash.String() != wantStr {
		t.Errorf("String: wrong hash string - got %v, want %v", hash.String(), wantStr)
	}
}

func TestNewHashFromStr(t *testing.T) {
	tests := []struct {
		in   string
		want Hash
		err  bool
	}{
		{
			in: "000000000000000000000000000000000000000000000000000000000000000000",
			want: Hash{},
			err:  true, // too long
		},
		{
			in:  "",
			want: Hash{},
		},
	}

	for i, test := range tests {
		result, err := NewHashFromStr(test.in)
		if test.err {
			require.Error(t, err, "test %d", i)
			continue
		}
		require.NoError(t, err, "test %d", i)
		require.True(t, test.want.IsEqual(result), "test %d", i)
	}
}

func TestHashFuncs(t *testing.T) {
	data := []byte("ravencoin")

	h1 := HashH(data)
	h2 := HashB(data)
	require.True(t, bytes.Equal(h1[:], h2))

	hexStr := hex.EncodeToString(h2)
	require.Len(t, hexStr, MaxHashStringSize)
}

func TestHashMerkleBranches(t *testing.T) {
	left := HashH([]byte("left"))
	right := HashH([]byte("right"))

	got := HashMerkleBranches(&left, &right)
	want := HashMerkleBranches(&left, &right)
	require.True(t, got.IsEqual(want))

	other := HashMerkleBranches(&right, &left)
	require.False(t, got.IsEqual(other))
}

func TestIsEqualNil(t *testing.T) {
	var a, b *Hash
	require.True(t, a.IsEqual(b))

	h := HashH([]byte("x"))
	require.False(t, h.IsEqual(nil))
}
