// Package logic holds request-scoped resolution helpers shared by the
// slot and content handlers.
package logic

import (
	"net"
	"net/http"
	"strings"

	"github.com/avct/uasurfer"

	"github.com/partnerkit/adcatalog/internal/geoip"
)

// Viewport classes a slot render targets. Creatives carry separate assets
// per viewport; the renderer falls back independently for each.
const (
	ViewportDesktop = "desktop"
	ViewportMobile  = "mobile"
)

// ResolveViewport parses a raw User-Agent string into a viewport class
// using the uasurfer library. Phones map to mobile; everything else,
// tablets included, renders the desktop asset.
func ResolveViewport(uaString string) string {
	u := uasurfer.Parse(uaString)
	if u.DeviceType == uasurfer.DevicePhone {
		return ViewportMobile
	}
	return ViewportDesktop
}

// ResolveCountry extracts the visitor country from the HTTP request using
// the GeoIP database. Proxied requests are resolved through the first
// X-Forwarded-For entry.
func ResolveCountry(r *http.Request, g *geoip.GeoIP) string {
	if g == nil {
		return ""
	}
	ipStr := r.Header.Get("X-Forwarded-For")
	if ipStr == "" {
		ipStr = r.RemoteAddr
		if host, _, err := net.SplitHostPort(ipStr); err == nil {
			ipStr = host
		}
	} else {
		if idx := strings.Index(ipStr, ","); idx != -1 {
			ipStr = strings.TrimSpace(ipStr[:idx])
		}
	}
	if ip := net.ParseIP(ipStr); ip != nil {
		return g.Country(ip)
	}
	return ""
}
