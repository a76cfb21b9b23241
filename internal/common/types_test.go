package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeLabel(t *testing.T) {
	tests := map[string]string{
		"ip":      "ip",
		"domain":  "domain",
		"unknown": "unknown",
		"sha256":  TypeOther,
		"":        TypeOther,
	}
	for in, want := range tests {
		assert.Equal(t, want, TypeLabel(in), in)
	}
}
