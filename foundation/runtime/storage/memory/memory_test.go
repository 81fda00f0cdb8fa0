package memory_test

import (
	"testing"

	"github.com/ardanlabs/pallets/foundation/runtime"
	"github.com/ardanlabs/pallets/foundation/runtime/digest"
	"github.com/ardanlabs/pallets/foundation/runtime/storage"
	"github.com/ardanlabs/pallets/foundation/runtime/storage/memory"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func record(prev storage.BlockRecord, number runtime.BlockNumber) storage.BlockRecord {
	bd := runtime.BlockData{Header: runtime.HeaderData{BlockNumber: number}}
	return storage.NewBlockRecord(prev, bd, nil, digest.Hash(number))
}

func TestMemory(t *testing.T) {
	t.Log("Given the need to store executed blocks in memory.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen writing blocks in order.", testID)
		{
			var strg storage.Storage = memory.New()

			var prev storage.BlockRecord
			for n := runtime.BlockNumber(1); n <= 3; n++ {
				rec := record(prev, n)
				if err := strg.Write(rec); err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to write block %d: %v", failed, testID, n, err)
				}
				prev = rec
			}
			t.Logf("\t%s\tTest %d:\tShould be able to write blocks.", success, testID)

			var count int
			var parent storage.BlockRecord
			iter := strg.ForEach()
			for rec, err := iter.Next(); !iter.Done(); rec, err = iter.Next() {
				if err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to iterate: %v", failed, testID, err)
				}

				exp := digest.ZeroHash
				if parent.Number > 0 {
					exp = parent.Hash
				}
				if rec.PrevHash != exp {
					t.Fatalf("\t%s\tTest %d:\tShould link block %d to its parent.", failed, testID, rec.Number)
				}

				parent = rec
				count++
			}
			if count != 3 {
				t.Fatalf("\t%s\tTest %d:\tShould iterate over every block: got %d", failed, testID, count)
			}
			t.Logf("\t%s\tTest %d:\tShould iterate over every linked block.", success, testID)

			if _, err := strg.GetBlock(4); err == nil {
				t.Fatalf("\t%s\tTest %d:\tShould not find a block that was never written.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould not find a block that was never written.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen writing blocks out of order.", testID)
		{
			strg := memory.New()

			if err := strg.Write(record(storage.BlockRecord{}, 2)); err == nil {
				t.Fatalf("\t%s\tTest %d:\tShould reject block 2 as the first block.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould reject block 2 as the first block.", success, testID)

			rec := record(storage.BlockRecord{}, 1)
			strg.Write(rec)
			strg.Reset()

			if _, err := strg.GetBlock(1); err == nil {
				t.Fatalf("\t%s\tTest %d:\tShould be empty after a reset.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould be empty after a reset.", success, testID)
		}
	}
}
