package middleware

import (
	"net"

	"github.com/labstack/echo/v4"
)

// IPExtractor decides what c.RealIP() returns. With no trusted proxies the peer address is used
// and forwarding headers are ignored. Otherwise X-Forwarded-For is walked from the right and
// only hops inside the trusted ranges are skipped.
func IPExtractor(trustedProxies []*net.IPNet) echo.IPExtractor {
	if len(trustedProxies) == 0 {
		return echo.ExtractIPDirect()
	}

	options := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, proxy := range trustedProxies {
		options = append(options, echo.TrustIPRange(proxy))
	}
	return echo.ExtractIPFromXFFHeader(options...)
}
