package render

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// absoluteURL adds an https scheme to bare hosts such as "github.com/ada".
func absoluteURL(u string) string {
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return "https://" + u
}

// displayURL drops the scheme, a leading www. and any trailing slash.
func displayURL(u string) string {
	s := strings.TrimPrefix(strings.TrimPrefix(u, "https://"), "http://")
	s = strings.TrimPrefix(s, "www.")
	return strings.TrimSuffix(s, "/")
}

// hostLabel shortens a link to its registrable domain, e.g.
// "https://www.credly.com/badges/123" -> "credly.com".
func hostLabel(u string) string {
	parsed, err := url.Parse(absoluteURL(u))
	if err != nil {
		return u
	}
	host := parsed.Hostname()
	if host == "" {
		return u
	}
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return strings.TrimPrefix(etld, "www.")
	}
	return strings.TrimPrefix(host, "www.")
}
