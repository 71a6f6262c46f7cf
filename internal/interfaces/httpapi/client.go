package httpapi

import (
	"context"
	"net"
	"net/http"
	"strings"
)

// clientCapabilities describes what the calling client can render.
type clientCapabilities struct {
	Mobile      bool
	ReplayLinks bool
}

var mobileUserAgentMarkers = []string{"android", "iphone", "ipad", "ipod"}

func resolveCapabilities(ctx context.Context, r *http.Request, replayLinksMobile bool) clientCapabilities {
	_ = ctx

	mobile := isMobileUserAgent(r.Header.Get("User-Agent"))
	return clientCapabilities{
		Mobile:      mobile,
		ReplayLinks: !mobile || replayLinksMobile,
	}
}

func isMobileUserAgent(raw string) bool {
	ua := strings.ToLower(strings.TrimSpace(raw))
	if ua == "" {
		return false
	}
	for _, marker := range mobileUserAgentMarkers {
		if strings.Contains(ua, marker) {
			return true
		}
	}
	return false
}

func resolveClientIP(ctx context.Context, r *http.Request) string {
	_ = ctx

	candidates := []string{
		r.Header.Get("Fly-Client-IP"),
		r.Header.Get("X-Forwarded-For"),
		r.Header.Get("X-Real-IP"),
		r.RemoteAddr,
	}

	for _, candidate := range candidates {
		if ip := normalizeIP(candidate); ip != "" {
			return ip
		}
	}

	return ""
}

func normalizeIP(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}
	if strings.Contains(value, ",") {
		value = strings.TrimSpace(strings.Split(value, ",")[0])
	}

	if host, _, err := net.SplitHostPort(value); err == nil {
		value = strings.TrimSpace(host)
	}

	parsed := net.ParseIP(value)
	if parsed == nil {
		return ""
	}
	return parsed.String()
}
