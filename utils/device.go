package utils

import "strings"

// DeviceType is the coarse client classification recorded with each click
type DeviceType string

const (
	DeviceDesktop DeviceType = "desktop"
	DeviceMobile  DeviceType = "mobile"
	DeviceTablet  DeviceType = "tablet"
	DeviceOther   DeviceType = "other"
)

var (
	mobileSignals  = []string{"Mobile", "Android", "iPhone", "iPad"}
	tabletSignals  = []string{"iPad", "Tablet"}
	desktopSignals = []string{"Windows", "Macintosh", "Linux"}
)

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// DetectDeviceType classifies a user-agent string with ordered substring rules.
// The mobile family is checked before the desktop family, so a UA carrying both
// kinds of tokens lands in the mobile branch.
func DetectDeviceType(userAgent string) DeviceType {
	switch {
	case containsAny(userAgent, mobileSignals):
		if containsAny(userAgent, tabletSignals) {
			return DeviceTablet
		}
		return DeviceMobile
	case containsAny(userAgent, desktopSignals):
		return DeviceDesktop
	default:
		return DeviceOther
	}
}
