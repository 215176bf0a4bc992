package domain

import "time"

// WhoisDetails holds the auxiliary registration fields extracted from a WHOIS
// record. Every field is optional.
type WhoisDetails struct {
	// RegisteredAt is the creation date as reported by the registry.
	RegisteredAt string
	// ExpiryDate is the registry expiration date.
	ExpiryDate string
	// LastUpdated is the last time the registration record changed.
	LastUpdated string
	// Nameservers lists the delegated nameservers, lowercased.
	Nameservers []string
}

// ProbeResult is the outcome of probing a single domain across all three
// signals. It is created once by the resolver and never modified afterwards.
type ProbeResult struct {
	// Domain is the normalized host that was probed.
	Domain string
	// DNSStatus is the address-record resolution outcome.
	DNSStatus DNSStatus
	// CNAME is the alias target found for a name that returned NXDOMAIN.
	CNAME string
	// HTTPStatus is the final HEAD status code, 0 when unreachable.
	HTTPStatus int
	// WhoisStatus is the raw WHOIS classification.
	WhoisStatus WhoisStatus
	// Status is the reconciled classification of DNSStatus and WhoisStatus.
	Status ResolvedStatus
	// Whois carries registration details when WhoisStatus is registered.
	Whois WhoisDetails
	// AnalyzedAt is when the unit of work for this domain finished.
	AnalyzedAt time.Time
	// Error notes a failure of the unit of work itself. Records with an error
	// are synthetic: ERROR / 0 / unknown.
	Error string
}
