package util

import (
	ua "github.com/mssola/user_agent"
)

// DeviceInfo is a coarse classification of a User-Agent header.
type DeviceInfo struct {
	DeviceType string `json:"device_type"` // mobile, desktop, unknown
	Browser    string `json:"browser"`
	OS         string `json:"os"`
	IsBot      bool   `json:"is_bot"`
}

func ParseUserAgent(userAgent string) DeviceInfo {
	if userAgent == "" {
		return DeviceInfo{DeviceType: "unknown", Browser: "Unknown", OS: "Unknown"}
	}

	parser := ua.New(userAgent)
	info := DeviceInfo{
		DeviceType: "desktop",
		IsBot:      parser.Bot(),
		OS:         parser.OS(),
	}
	if parser.Mobile() {
		info.DeviceType = "mobile"
	}
	if name, _ := parser.Browser(); name != "" {
		info.Browser = name
	} else {
		info.Browser = "Unknown"
	}
	if info.OS == "" {
		info.OS = "Unknown"
	}
	return info
}
