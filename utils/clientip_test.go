package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIPFromHeaders(t *testing.T) {
	tests := []struct {
		name         string
		forwardedFor string
		realIP       string
		expected     string
	}{
		{
			name:         "single forwarded entry",
			forwardedFor: "198.51.100.77",
			expected:     "198.51.100.77",
		},
		{
			name:         "first forwarded entry wins over proxy hops",
			forwardedFor: "198.51.100.77, 10.0.0.1, 10.0.0.2",
			realIP:       "198.51.100.88",
			expected:     "198.51.100.77",
		},
		{
			name:         "forwarded entry is trimmed",
			forwardedFor: "  198.51.100.77 , 10.0.0.1",
			expected:     "198.51.100.77",
		},
		{
			name:     "real ip when no forwarded header",
			realIP:   "198.51.100.88",
			expected: "198.51.100.88",
		},
		{
			name:         "empty first forwarded entry falls back to real ip",
			forwardedFor: " , 10.0.0.1",
			realIP:       "198.51.100.88",
			expected:     "198.51.100.88",
		},
		{
			name:     "placeholder when no header is present",
			expected: UnknownIPPlaceholder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClientIPFromHeaders(tt.forwardedFor, tt.realIP))
		})
	}
}
