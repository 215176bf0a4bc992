package dnsprobe_test

import (
	"context"
	"net"
	"testing"
	"time"

	"domainstatus/pkg/domain"
	"domainstatus/pkg/probe/dnsprobe"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"
)

// startServer runs an in-process UDP resolver that answers from a fixed zone.
func startServer(t *testing.T) string {
	t.Helper()

	handler := dns.HandlerFunc(func(w dns.ResponseWriter, r *dns.Msg) {
		q := r.Question[0]
		m := new(dns.Msg)
		m.SetReply(r)

		switch q.Name {
		case "a.test.":
			if q.Qtype == dns.TypeA {
				rr, _ := dns.NewRR("a.test. 60 IN A 192.0.2.1")
				m.Answer = append(m.Answer, rr)
			}
		case "noaddr.test.":
			// exists but has no A record
		case "nx.test.":
			m.SetRcode(r, dns.RcodeNameError)
		case "parked.test.":
			m.SetRcode(r, dns.RcodeNameError)
			if q.Qtype == dns.TypeCNAME {
				m.Rcode = dns.RcodeSuccess
				rr, _ := dns.NewRR("parked.test. 60 IN CNAME redirect.example.")
				m.Answer = append(m.Answer, rr)
			}
		case "chain.test.":
			m.SetRcode(r, dns.RcodeNameError)
			rr, _ := dns.NewRR("chain.test. 60 IN CNAME gone.example.")
			m.Answer = append(m.Answer, rr)
		case "fail.test.":
			m.SetRcode(r, dns.RcodeServerFailure)
		case "refused.test.":
			m.SetRcode(r, dns.RcodeRefused)
		case "notimp.test.":
			m.SetRcode(r, dns.RcodeNotImplemented)
		case "slow.test.":
			// never answer
			return
		}
		_ = w.WriteMsg(m)
	})

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)

	started := make(chan struct{})
	srv := &dns.Server{PacketConn: pc, Handler: handler, NotifyStartedFunc: func() { close(started) }}
	go func() { _ = srv.ActivateAndServe() }()
	t.Cleanup(func() { _ = srv.Shutdown() })

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("dns server did not start")
	}

	return pc.LocalAddr().String()
}

func TestProber_LookupDNS(t *testing.T) {
	addr := startServer(t)
	p := dnsprobe.New(dnsprobe.Options{Server: addr, Timeout: 300 * time.Millisecond})

	tests := []struct {
		name   string
		status domain.DNSStatus
		cname  string
	}{
		{"a.test", domain.DNSNoError, ""},
		{"noaddr.test", domain.DNSNoError, ""},
		{"nx.test", domain.DNSNXDomain, ""},
		{"parked.test", domain.DNSNXDomain, "redirect.example"},
		{"chain.test", domain.DNSNXDomain, "gone.example"},
		{"fail.test", domain.DNSServFail, ""},
		{"refused.test", domain.DNSServFail, ""},
		{"notimp.test", domain.DNSError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := p.LookupDNS(context.Background(), tt.name)
			require.Equal(t, tt.status, res.Status)
			require.Equal(t, tt.cname, res.CNAME)
		})
	}
}

func TestProber_LookupDNS_Timeout(t *testing.T) {
	addr := startServer(t)
	p := dnsprobe.New(dnsprobe.Options{Server: addr, Timeout: 100 * time.Millisecond})

	start := time.Now()
	res := p.LookupDNS(context.Background(), "slow.test")
	require.Equal(t, domain.DNSTimeout, res.Status)
	require.Empty(t, res.CNAME)
	require.Less(t, time.Since(start), 2*time.Second)
}

func TestProber_LookupDNS_ContextDeadline(t *testing.T) {
	addr := startServer(t)
	p := dnsprobe.New(dnsprobe.Options{Server: addr, Timeout: 5 * time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	require.Equal(t, domain.DNSTimeout, p.LookupDNS(ctx, "slow.test").Status)
}

func TestProber_LookupDNS_InvalidName(t *testing.T) {
	addr := startServer(t)
	p := dnsprobe.New(dnsprobe.Options{Server: addr, Timeout: 100 * time.Millisecond})

	// labels longer than 63 octets cannot be packed
	long := make([]byte, 70)
	for i := range long {
		long[i] = 'x'
	}
	require.Equal(t, domain.DNSError, p.LookupDNS(context.Background(), string(long)+".test").Status)
}
