package resolver

import "domainstatus/pkg/domain"

// Reconcile combines the DNS and WHOIS signals into one classification.
//
// A live DNS answer is definitive. On NXDOMAIN the WHOIS record decides, since
// a name can be registered without DNS being configured. When DNS itself
// failed the WHOIS classification passes through unchanged.
func Reconcile(dns domain.DNSStatus, whois domain.WhoisStatus) domain.ResolvedStatus {
	switch dns {
	case domain.DNSNoError:
		return domain.WhoisRegistered
	case domain.DNSNXDomain:
		switch whois {
		case domain.WhoisRegistered, domain.WhoisAvailable:
			return whois
		default:
			return domain.WhoisUnknown
		}
	default:
		return whois
	}
}
