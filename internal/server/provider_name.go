package server

import (
	"fmt"
	"strings"
)

const (
	providerLive    = "live"
	providerFixture = "fixture"
)

// normalizeProviderMode lower-cases the configured provider mode; empty selects live.
func normalizeProviderMode(raw string) string {
	mode := strings.ToLower(strings.TrimSpace(raw))
	if mode == "" {
		return providerLive
	}
	return mode
}

// providerLabel returns the name used for an upstream in metrics and logs,
// deriving one from the instance when none is given.
func providerLabel(raw string, provider any) string {
	if raw != "" {
		return strings.ToLower(raw)
	}
	if provider != nil {
		return strings.ToLower(fmt.Sprintf("%T", provider))
	}
	return "provider"
}
