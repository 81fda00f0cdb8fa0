package system_test

import (
	"math"
	"testing"

	"github.com/ardanlabs/pallets/foundation/runtime/system"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestSystem(t *testing.T) {
	t.Log("Given the need to track block numbers and nonces.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen handling a fresh pallet.", testID)
		{
			sys := system.New[string, uint32, uint32]()

			if bn := sys.BlockNumber(); bn != 0 {
				t.Fatalf("\t%s\tTest %d:\tShould start at block zero: got %d", failed, testID, bn)
			}
			t.Logf("\t%s\tTest %d:\tShould start at block zero.", success, testID)

			if n := sys.Nonce("alice"); n != 0 {
				t.Fatalf("\t%s\tTest %d:\tShould report a zero nonce for an unknown account: got %d", failed, testID, n)
			}
			t.Logf("\t%s\tTest %d:\tShould report a zero nonce for an unknown account.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen incrementing the block number.", testID)
		{
			sys := system.New[string, uint32, uint32]()
			sys.IncBlockNumber()

			if bn := sys.BlockNumber(); bn != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould be at block one: got %d", failed, testID, bn)
			}
			t.Logf("\t%s\tTest %d:\tShould be at block one.", success, testID)

			if next := sys.NextBlockNumber(); next != 2 {
				t.Fatalf("\t%s\tTest %d:\tShould expect block two next: got %d", failed, testID, next)
			}
			t.Logf("\t%s\tTest %d:\tShould expect block two next.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen incrementing nonces.", testID)
		{
			sys := system.New[string, uint32, uint32]()
			sys.IncNonce("alice")
			sys.IncNonce("alice")

			if n := sys.Nonce("alice"); n != 2 {
				t.Fatalf("\t%s\tTest %d:\tShould have a nonce of two for alice: got %d", failed, testID, n)
			}
			t.Logf("\t%s\tTest %d:\tShould have a nonce of two for alice.", success, testID)

			if n := sys.Nonce("bob"); n != 0 {
				t.Fatalf("\t%s\tTest %d:\tShould leave bob untouched: got %d", failed, testID, n)
			}
			t.Logf("\t%s\tTest %d:\tShould leave bob untouched.", success, testID)

			if nonces := sys.Nonces(); len(nonces) != 1 || nonces["alice"] != 2 {
				t.Fatalf("\t%s\tTest %d:\tShould copy only known accounts: got %v", failed, testID, nonces)
			}
			t.Logf("\t%s\tTest %d:\tShould copy only known accounts.", success, testID)
		}
	}
}

func TestBlockNumberOverflow(t *testing.T) {
	t.Log("Given the need to stop a host that ran out of block numbers.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen the block number is at its maximum.", testID)
		{
			sys := system.New[string, uint8, uint8]()
			for range math.MaxUint8 {
				sys.IncBlockNumber()
			}

			defer func() {
				if r := recover(); r == nil {
					t.Fatalf("\t%s\tTest %d:\tShould panic on overflow.", failed, testID)
				}
				t.Logf("\t%s\tTest %d:\tShould panic on overflow.", success, testID)
			}()

			sys.IncBlockNumber()
		}
	}
}
