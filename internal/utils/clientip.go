// Package utils holds request helpers shared by the middlewares.
package utils

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// Headers consulted, in order, when the origin sits behind a trusted proxy.
var proxyHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// ClientIP returns the address the request came from. With trustProxy the
// first valid proxy header wins, X-Forwarded-For contributing its left-most
// entry. Otherwise only RemoteAddr is used.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		for _, h := range proxyHeaders {
			v := r.Header.Get(h)
			if h == "X-Forwarded-For" {
				v, _, _ = strings.Cut(v, ",")
			}
			if addr, ok := parseAddr(v); ok {
				return addr.String()
			}
		}
	}
	if addr, ok := parseAddr(r.RemoteAddr); ok {
		return addr.String()
	}
	return r.RemoteAddr
}

// parseAddr accepts "ip", "ip:port" and "[v6]:port". IPv4-mapped IPv6
// addresses are unmapped so CIDR rules written for IPv4 still match.
func parseAddr(s string) (netip.Addr, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return netip.Addr{}, false
	}
	if host, _, err := net.SplitHostPort(s); err == nil {
		s = host
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}

// AddrSet is a list of single addresses and CIDR ranges.
type AddrSet struct {
	prefixes []netip.Prefix
}

// NewAddrSet parses list. Blank entries are skipped and unparsable ones are
// returned in rejected.
func NewAddrSet(list []string) (set AddrSet, rejected []string) {
	for _, raw := range list {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		if p, err := netip.ParsePrefix(s); err == nil {
			set.prefixes = append(set.prefixes, p.Masked())
			continue
		}
		if addr, ok := parseAddr(s); ok {
			set.prefixes = append(set.prefixes, netip.PrefixFrom(addr, addr.BitLen()))
			continue
		}
		rejected = append(rejected, s)
	}
	return set, rejected
}

func (s AddrSet) Len() int { return len(s.prefixes) }

// Contains reports whether ip falls in one of the ranges.
func (s AddrSet) Contains(ip string) bool {
	addr, ok := parseAddr(ip)
	if !ok {
		return false
	}
	for _, p := range s.prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
