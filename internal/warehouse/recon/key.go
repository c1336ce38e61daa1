package recon

import (
	"strings"
)

// Key identifies a material line: an optional WBS code plus a normalized
// item description. It is a comparable value type so it can index maps
// directly; string concatenation is deliberately avoided so a description
// containing "|" or the literal "null" cannot collide with another key.
type Key struct {
	WBS         string
	HasWBS      bool
	Description string
}

// Normalize canonicalizes an item description for comparison: trimmed,
// ASCII-lowercased. WBS codes are never normalized; they compare exact.
func Normalize(description string) string {
	return strings.ToLower(strings.TrimSpace(description))
}

// KeyFor builds the key for a line. The description is normalized; a nil
// WBS yields a keyless (description-only) key.
func KeyFor(wbs *string, description string) Key {
	k := Key{Description: Normalize(description)}
	if wbs != nil {
		k.WBS = *wbs
		k.HasWBS = true
	}
	return k
}

// MatchesItem reports whether a delivery/release line belongs to this key's
// aggregate. A line carrying a WBS matches on WBS equality alone and is
// never matched by description against another key; a line without a WBS
// matches by normalized description only.
func (k Key) MatchesItem(itemWBS *string, itemDescription string) bool {
	if itemWBS != nil {
		return k.HasWBS && k.WBS == *itemWBS
	}
	return Normalize(itemDescription) == k.Description
}

// String renders the key for logs and cache entries. Display only; equality
// always goes through the struct, not this string.
func (k Key) String() string {
	wbs := "null"
	if k.HasWBS {
		wbs = k.WBS
	}
	return wbs + "|" + k.Description
}
