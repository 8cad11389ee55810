package nets

import (
	"context"
	"net"
	"net/netip"
	"strings"
)

// IsLocalAddr reports whether an instrument is dialed directly instead of through the proxy.
// Loopback, private and link-local addresses are local, link-local covers LXI auto-IP.
type IsLocalAddr func(ctx context.Context, addr string) (bool, error)

func (Module) IsLocalAddr() IsLocalAddr {
	var resolver net.Resolver
	return func(ctx context.Context, addr string) (bool, error) {
		host := addr
		if h, _, err := net.SplitHostPort(addr); err == nil {
			host = h
		}

		if ip, err := netip.ParseAddr(host); err == nil {
			return isLocalIP(ip), nil
		}
		// mDNS names of LXI instruments
		if host == "" || host == "localhost" || strings.HasSuffix(host, ".local") {
			return true, nil
		}

		ips, err := resolver.LookupNetIP(ctx, "ip", host)
		if err != nil {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			// unresolvable here, the proxy may resolve it
			return false, nil
		}
		for _, ip := range ips {
			if isLocalIP(ip) {
				return true, nil
			}
		}
		return false, nil
	}
}

func isLocalIP(ip netip.Addr) bool {
	ip = ip.Unmap()
	return ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast()
}
