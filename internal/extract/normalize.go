package extract

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

// placeholders are area titles the pixel page uses for unsold or reserved
// blocks. They are not domains.
var placeholders = map[string]struct{}{ //nolint: gochecknoglobals
	"pending order":     {},
	"paid & reserved":   {},
	"paid and reserved": {},
}

// NormalizeDomain returns the canonical host for a domain or URL string.
//
// The rules:
//   - Trim surrounding space and lower-case
//   - Accept bare hosts, scheme-relative ("//host") and absolute URLs
//   - Drop scheme, credentials, port, path, query and fragment
//   - Strip a leading "www." and a trailing root dot
//   - Reject placeholders, hosts containing whitespace and hosts without a dot
//
// An error is returned when the input does not yield a usable domain.
func NormalizeDomain(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", fmt.Errorf("empty domain")
	}
	if _, ok := placeholders[s]; ok {
		return "", fmt.Errorf("placeholder %q is not a domain", s)
	}

	switch {
	case strings.HasPrefix(s, "//"):
		s = "http:" + s
	case !strings.Contains(s, "://"):
		s = "http://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("could not parse domain: %w", err)
	}

	host := strings.TrimSuffix(u.Hostname(), ".")
	host = strings.TrimPrefix(host, "www.")

	if host == "" {
		return "", fmt.Errorf("no host in %q", raw)
	}
	if strings.IndexFunc(host, unicode.IsSpace) >= 0 {
		return "", fmt.Errorf("host %q contains whitespace", host)
	}
	if !strings.Contains(host, ".") {
		return "", fmt.Errorf("host %q has no dot", host)
	}

	return host, nil
}
