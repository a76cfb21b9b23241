package threat

import "strings"

// NormalizeIndicator lowercases s, trims it and collapses every run of
// whitespace to a single space.
func NormalizeIndicator(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
