package threat

import "github.com/willf/bloom"

// seenSet tracks normalized values within a single file. False positives
// only affect the duplicate counter, never what gets written.
type seenSet struct {
	filter *bloom.BloomFilter
}

func newSeenSet(expected int) *seenSet {
	if expected < 1 {
		expected = 1
	}
	return &seenSet{filter: bloom.NewWithEstimates(uint(expected), 0.01)}
}

func (s *seenSet) testAndAdd(value string) bool {
	return s.filter.TestAndAdd([]byte(value))
}
