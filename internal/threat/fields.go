package threat

import "strings"

// DefaultType is stored when a record names no indicator type.
const DefaultType = "unknown"

// Candidate keys, in priority order.
var (
	ValueKeys = []string{"value", "indicator", "indicator_value"}
	TypeKeys  = []string{"type", "indicator_type"}
)

// FirstPresent returns the value of the first key in keys that is present
// in f. A key holding only whitespace counts as absent; "0" and "false" are
// present.
func FirstPresent(f Fields, keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := f[k]; ok && strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	return "", false
}
