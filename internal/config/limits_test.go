package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNegotiateLimits(t *testing.T) {
	tests := []struct {
		name    string
		version string
		legacy  bool
		prefix  int
	}{
		{"1.8.8 старый протокол", "1.8.8-R0.1-SNAPSHOT", true, 16},
		{"1.12.2 старый протокол", "1.12.2", true, 16},
		{"1.13 новый протокол", "1.13", false, 256},
		{"1.20.4 новый протокол", "1.20.4-R0.1", false, 256},
		{"мусор считается 1.8", "unknown", true, 16},
		{"пустая строка", "", true, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limits := NegotiateLimits(tt.version)
			assert.Equal(t, tt.legacy, limits.Legacy)
			assert.Equal(t, tt.prefix, limits.Prefix)
			assert.Equal(t, tt.prefix, limits.Suffix)
			assert.Equal(t, 16, limits.Identifier)
		})
	}
}
