package ledger

import (
	"fmt"

	"github.com/tracker-tv/phi-guard/models"
)

// TamperError reports the first entry that fails verification.
type TamperError struct {
	Scope  string
	Index  int
	Reason string
}

func (e *TamperError) Error() string {
	return fmt.Sprintf("ledger %s: entry %d: %s", e.Scope, e.Index, e.Reason)
}

// Verify recomputes every entry hash and checks the links between entries.
// It never repairs anything.
func Verify(entries []models.LedgerEntry) error {
	for i, e := range entries {
		fail := func(reason string) error {
			return &TamperError{Scope: e.Scope, Index: i, Reason: reason}
		}

		if e.EntryHash != EntryHash(e.Timestamp, e.DataHash, e.PreviousHash) {
			return fail("entry hash does not match its contents")
		}
		if e.Seq != uint64(i) {
			return fail(fmt.Sprintf("sequence %d out of place", e.Seq))
		}
		if i == 0 {
			if e.PreviousHash != GenesisHash {
				return fail("first entry does not start from genesis")
			}
			continue
		}
		if e.Scope != entries[i-1].Scope {
			return fail("entry belongs to another chain")
		}
		if e.PreviousHash != entries[i-1].EntryHash {
			return fail("previous hash does not match prior entry")
		}
	}
	return nil
}
