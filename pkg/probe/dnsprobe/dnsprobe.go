// Package dnsprobe implements probe.DNSProber with explicit queries against a
// single recursive resolver, so the response code can be mapped exactly.
package dnsprobe

import (
	"context"
	"errors"
	"net"
	"os"
	"strings"
	"time"

	"domainstatus/pkg/domain"
	"domainstatus/pkg/probe"

	"github.com/miekg/dns"
)

// FallbackServer is used when no resolver can be read from the system configuration.
const FallbackServer = "8.8.8.8:53"

// Prober sends A and CNAME queries to one resolver. It is safe for concurrent use.
type Prober struct {
	client *dns.Client
	server string
}

// Options configure a Prober.
type Options struct {
	// Server is the resolver address (host:port). Empty selects SystemServer().
	Server string
	// Timeout bounds every query.
	Timeout time.Duration
}

// New creates a Prober for the given options.
func New(opts Options) *Prober {
	server := opts.Server
	if server == "" {
		server = SystemServer()
	}
	if _, _, err := net.SplitHostPort(server); err != nil {
		server = net.JoinHostPort(server, "53")
	}

	return &Prober{
		client: &dns.Client{Net: "udp", Timeout: opts.Timeout},
		server: server,
	}
}

// SystemServer returns the first nameserver from /etc/resolv.conf, or FallbackServer.
func SystemServer() string {
	if _, err := os.Stat("/etc/resolv.conf"); err != nil {
		return FallbackServer
	}
	cfg, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil || len(cfg.Servers) == 0 {
		return FallbackServer
	}

	return net.JoinHostPort(cfg.Servers[0], cfg.Port)
}

// LookupDNS queries the A record of name. On NXDOMAIN it also looks for a
// CNAME, since a name parked behind a redirect service may alias a target
// that no longer resolves.
func (p *Prober) LookupDNS(ctx context.Context, name string) probe.DNSResult {
	resp, err := p.query(ctx, name, dns.TypeA)
	if err != nil {
		return probe.DNSResult{Status: classifyErr(err)}
	}

	status := classifyRcode(resp.Rcode)
	if status != domain.DNSNXDomain {
		return probe.DNSResult{Status: status}
	}

	// the alias may already be in the answer section of the A response
	if cname := firstCNAME(resp); cname != "" {
		return probe.DNSResult{Status: status, CNAME: cname}
	}

	return probe.DNSResult{Status: status, CNAME: p.lookupCNAME(ctx, name)}
}

// lookupCNAME is best-effort: any failure simply reports no alias.
func (p *Prober) lookupCNAME(ctx context.Context, name string) string {
	resp, err := p.query(ctx, name, dns.TypeCNAME)
	if err != nil {
		return ""
	}

	return firstCNAME(resp)
}

func (p *Prober) query(ctx context.Context, name string, qtype uint16) (*dns.Msg, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), qtype)
	msg.RecursionDesired = true

	resp, _, err := p.client.ExchangeContext(ctx, msg, p.server)
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	return resp, nil
}

func classifyRcode(rcode int) domain.DNSStatus {
	switch rcode {
	case dns.RcodeSuccess:
		return domain.DNSNoError
	case dns.RcodeNameError:
		return domain.DNSNXDomain
	case dns.RcodeServerFailure, dns.RcodeRefused:
		return domain.DNSServFail
	default:
		return domain.DNSError
	}
}

func classifyErr(err error) domain.DNSStatus {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.DNSTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.DNSTimeout
	}

	return domain.DNSError
}

func firstCNAME(resp *dns.Msg) string {
	for _, rr := range resp.Answer {
		if c, ok := rr.(*dns.CNAME); ok {
			return strings.TrimSuffix(c.Target, ".")
		}
	}

	return ""
}

var _ probe.DNSProber = (*Prober)(nil)
