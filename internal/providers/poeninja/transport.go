package poeninja

import (
	"net/url"
	"strings"
)

func normalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/")
}

// proxied routes target through a "prefix + escaped url" style proxy.
func proxied(proxy, target string) string {
	if proxy == "" {
		return target
	}
	return proxy + url.QueryEscape(target)
}
