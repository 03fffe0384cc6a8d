// Package urlguard decides whether a user-supplied URL may be fetched at all.
package urlguard

import (
	"fmt"
	"net/netip"
	"net/url"
	"strings"

	"github.com/marcosevegrand/recipe-import/internal/recipe"
)

// blockedHosts are refused by name before any address check.
var blockedHosts = map[string]struct{}{
	"localhost":                {},
	"localhost.localdomain":    {},
	"ip6-localhost":            {},
	"metadata":                 {},
	"metadata.google.internal": {},
	"instance-data":            {},
}

// Validate rejects anything that is not an absolute http(s) URL pointing at a public host.
// It performs no I/O.
func Validate(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("%w: empty", recipe.ErrInvalidURL)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", recipe.ErrInvalidURL, err)
	}
	if !u.IsAbs() {
		return fmt.Errorf("%w: %q is not absolute", recipe.ErrInvalidURL, raw)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return fmt.Errorf("%w: %s", recipe.ErrDisallowedProtocol, u.Scheme)
	}

	host := normalizeHost(u.Hostname())
	if host == "" {
		return fmt.Errorf("%w: missing host", recipe.ErrInvalidURL)
	}

	if blockedHost(host) {
		return fmt.Errorf("%w: %s", recipe.ErrDisallowedHost, host)
	}

	return nil
}

func normalizeHost(host string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(host)), ".")
}

func blockedHost(host string) bool {
	if _, ok := blockedHosts[host]; ok {
		return true
	}
	if strings.HasSuffix(host, ".localhost") || strings.HasSuffix(host, ".internal") {
		return true
	}

	addr, err := netip.ParseAddr(strings.Trim(host, "[]"))
	if err != nil {
		return numericHost(host)
	}
	return blockedAddr(addr)
}

// numericHost reports whether host is an IPv4 literal in a non-canonical
// form (2130706433, 127.1, 0x7f.1, 0177.0.0.1) that resolvers still accept.
// No real TLD is numeric, so such hosts are refused outright.
func numericHost(host string) bool {
	for _, label := range strings.Split(host, ".") {
		digits := label
		if strings.HasPrefix(label, "0x") {
			digits = label[2:]
			if strings.Trim(digits, "0123456789abcdef") != "" {
				return false
			}
			continue
		}
		if digits == "" || strings.Trim(digits, "0123456789") != "" {
			return false
		}
	}
	return true
}

// blockedAddr covers loopback, unspecified, RFC 1918, unique-local and link-local ranges.
// 169.254.169.254 falls into link-local.
func blockedAddr(addr netip.Addr) bool {
	addr = addr.Unmap()
	return addr.IsLoopback() ||
		addr.IsUnspecified() ||
		addr.IsPrivate() ||
		addr.IsLinkLocalUnicast() ||
		addr.IsLinkLocalMulticast() ||
		addr.IsInterfaceLocalMulticast()
}
