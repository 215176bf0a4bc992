// Package probe defines the three independent signal probes run for every
// domain: DNS resolution, HTTP reachability and WHOIS registration.
//
// Probes never return errors. Every failure path resolves to a defined value
// (a DNS status, HTTP status 0, WHOIS unknown) so a single failing signal can
// never abort the other two.
package probe

import (
	"context"

	"domainstatus/pkg/domain"
)

// DNSResult is the outcome of a DNS probe.
type DNSResult struct {
	// Status is the address-record resolution outcome.
	Status domain.DNSStatus
	// CNAME is the alias target, only looked up when Status is NXDOMAIN.
	CNAME string
}

// WhoisResult is the outcome of a WHOIS probe.
type WhoisResult struct {
	// Status is the registration classification.
	Status domain.WhoisStatus
	// Details is populated only when Status is registered.
	Details domain.WhoisDetails
}

// DNSProber resolves a domain's address record.
//
//go:generate mockgen -package mockprobe -source=interface.go -destination=mock/mockprobe.go *
type DNSProber interface {
	// LookupDNS resolves name and classifies the response. It returns within
	// the deadline of ctx.
	LookupDNS(ctx context.Context, name string) DNSResult
}

// HTTPProber checks whether a domain answers HTTP requests.
type HTTPProber interface {
	// Reachability returns the final status code of a HEAD request to name,
	// or 0 if neither HTTPS nor HTTP succeeded.
	Reachability(ctx context.Context, name string) int
}

// WhoisProber looks up registration metadata for a domain.
type WhoisProber interface {
	// Registration classifies name from its WHOIS record.
	Registration(ctx context.Context, name string) WhoisResult
}
