package reactors

import "sort"

// sortStrings sorts ids ascending in place. Destructor invocation order and
// the idents accessors need a deterministic order; plain lexical sort over
// ID (an alias of string) needs nothing beyond the standard library.
func sortStrings(ids []ID) {
	sort.Strings(ids)
}
