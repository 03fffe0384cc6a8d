package urlguard

import (
	"net/url"
	"strings"
)

// NormalizeURL trims the input and adds https:// when no scheme was typed.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}

	if !strings.Contains(raw, "://") && !strings.Contains(strings.SplitN(raw, "/", 2)[0], ":") {
		raw = "https://" + raw
	}

	return raw
}

// Domain returns the lower-cased host of rawURL without a leading "www.".
func Domain(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	host := normalizeHost(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// MatchesDomain reports whether host equals domain or is one of its subdomains.
func MatchesDomain(host, domain string) bool {
	host = strings.TrimPrefix(normalizeHost(host), "www.")
	domain = strings.TrimPrefix(normalizeHost(domain), "www.")
	if host == "" || domain == "" {
		return false
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}
