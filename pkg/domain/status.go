package domain

// DNSStatus is the outcome of the address-record resolution of a domain.
type DNSStatus string

const (
	// DNSNoError indicates the name exists. A name that resolves without any
	// address record is still NOERROR.
	DNSNoError DNSStatus = "NOERROR"
	// DNSNXDomain indicates the name does not exist in any zone.
	DNSNXDomain DNSStatus = "NXDOMAIN"
	// DNSTimeout indicates the resolver did not answer within the probe timeout.
	DNSTimeout DNSStatus = "TIMEOUT"
	// DNSServFail indicates the upstream resolver could not produce an answer.
	DNSServFail DNSStatus = "SERVFAIL"
	// DNSError covers every other resolution failure.
	DNSError DNSStatus = "ERROR"
)

// WhoisStatus is the registration classification derived from a WHOIS lookup.
type WhoisStatus string

const (
	// WhoisRegistered indicates the registry reports a status or a creation date.
	WhoisRegistered WhoisStatus = "registered"
	// WhoisAvailable indicates the registry has no record of the name.
	WhoisAvailable WhoisStatus = "available"
	// WhoisUnknown indicates the lookup failed or the registry is unsupported.
	WhoisUnknown WhoisStatus = "unknown"
)

// ResolvedStatus is the single classification reconciled from the DNS and WHOIS
// signals. It shares its values with WhoisStatus.
type ResolvedStatus = WhoisStatus

// HTTPClass buckets an HTTP status code for reporting.
type HTTPClass string

const (
	// HTTPSuccess holds 2xx codes.
	HTTPSuccess HTTPClass = "success"
	// HTTPRedirect holds 3xx codes.
	HTTPRedirect HTTPClass = "redirect"
	// HTTPClientError holds 4xx codes.
	HTTPClientError HTTPClass = "client_error"
	// HTTPServerError holds 5xx codes.
	HTTPServerError HTTPClass = "server_error"
	// HTTPUnreachable is status 0: neither HTTPS nor HTTP answered.
	HTTPUnreachable HTTPClass = "unreachable"
	// HTTPOther holds codes outside the 2xx-5xx range.
	HTTPOther HTTPClass = "other"
)

// ClassifyHTTP maps a status code to its reporting bucket. Zero means the
// domain was unreachable over both HTTPS and HTTP.
func ClassifyHTTP(code int) HTTPClass {
	switch {
	case code == 0:
		return HTTPUnreachable
	case code >= 200 && code < 300:
		return HTTPSuccess
	case code >= 300 && code < 400:
		return HTTPRedirect
	case code >= 400 && code < 500:
		return HTTPClientError
	case code >= 500 && code < 600:
		return HTTPServerError
	default:
		return HTTPOther
	}
}
