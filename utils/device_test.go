package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectDeviceType(t *testing.T) {
	tests := []struct {
		name      string
		userAgent string
		expected  DeviceType
	}{
		{
			name:      "windows desktop browser",
			userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			expected:  DeviceDesktop,
		},
		{
			name:      "macintosh desktop browser",
			userAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15",
			expected:  DeviceDesktop,
		},
		{
			name:      "linux desktop browser",
			userAgent: "Mozilla/5.0 (X11; Linux x86_64) Gecko/20100101 Firefox/120.0",
			expected:  DeviceDesktop,
		},
		{
			name:      "iphone",
			userAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Mobile/15E148",
			expected:  DeviceMobile,
		},
		{
			name:      "android phone",
			userAgent: "Mozilla/5.0 (Linux; Android 14; Pixel 8) Mobile Safari/537.36",
			expected:  DeviceMobile,
		},
		{
			name:      "ipad",
			userAgent: "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) Mobile/15E148",
			expected:  DeviceTablet,
		},
		{
			name:      "android tablet",
			userAgent: "Mozilla/5.0 (Linux; Android 14; Tablet) Mobile Safari/537.36",
			expected:  DeviceTablet,
		},
		{
			name:      "empty user agent",
			userAgent: "",
			expected:  DeviceOther,
		},
		{
			name:      "bot without platform tokens",
			userAgent: "curl/8.4.0",
			expected:  DeviceOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectDeviceType(tt.userAgent))
		})
	}
}
