package utils

import "strings"

// ClientIPFromHeaders resolves the client address from proxy headers.
// Order: first entry of X-Forwarded-For, then X-Real-IP, then a placeholder.
func ClientIPFromHeaders(forwardedFor, realIP string) string {
	if forwardedFor != "" {
		first := forwardedFor
		if idx := strings.IndexByte(forwardedFor, ','); idx >= 0 {
			first = forwardedFor[:idx]
		}
		first = strings.TrimSpace(first)
		if first != "" {
			return first
		}
	}
	if realIP != "" {
		return realIP
	}
	return UnknownIPPlaceholder
}
