package digest_test

import (
	"testing"

	"github.com/ardanlabs/pallets/foundation/runtime/digest"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

func Test_Hash(t *testing.T) {
	a := map[string]int{"alice": 1, "bob": 2}
	b := map[string]int{"bob": 2, "alice": 1}

	if digest.Hash(a) != digest.Hash(b) {
		t.Fatalf("Should get the same hash for equal maps.")
	}

	if digest.Hash(a) == digest.Hash(map[string]int{"alice": 1}) {
		t.Fatalf("Should get a different hash for different maps.")
	}

	if h := digest.Hash(a); len(h) != len(digest.ZeroHash) {
		t.Logf("got: %s", h)
		t.Fatalf("Should get a 32 byte hex encoded hash.")
	}

	if digest.Hash(func() {}) != digest.ZeroHash {
		t.Fatalf("Should get the zero hash for a value that can't be marshaled.")
	}
}

func Test_Sum(t *testing.T) {
	sum, err := digest.Sum("one")
	if err != nil {
		t.Fatalf("Should be able to sum a string: %s", err)
	}

	if hexutil.Encode(sum) != digest.Hash("one") {
		t.Fatalf("Should get the same bytes as the hex hash.")
	}

	h := digest.NewHasher()
	h.Write([]byte(`"one"`))
	if hexutil.Encode(h.Sum(nil)) != digest.Hash("one") {
		t.Fatalf("Should get the same hash from the hasher.")
	}
}
