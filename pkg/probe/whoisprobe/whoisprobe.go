// Package whoisprobe implements probe.WhoisProber on top of a raw WHOIS query
// and a registry-aware response parser.
package whoisprobe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"domainstatus/pkg/domain"
	"domainstatus/pkg/logger"
	"domainstatus/pkg/probe"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
	"go.uber.org/zap"
)

// Fetcher returns the raw WHOIS text for a domain. *whois.Client satisfies it.
type Fetcher interface {
	Whois(domain string, servers ...string) (string, error)
}

// ParseFunc turns raw WHOIS text into structured data.
type ParseFunc func(text string) (whoisparser.WhoisInfo, error)

// Options configure a Prober.
type Options struct {
	// Timeout bounds the WHOIS connection, including referral hops.
	Timeout time.Duration
	// Server pins every query to one server; empty follows IANA referrals.
	Server string
}

// Prober classifies domains from their WHOIS record. It is safe for concurrent use.
type Prober struct {
	fetcher Fetcher
	parse   ParseFunc
	servers []string
}

// New creates a Prober that queries WHOIS servers over the network.
func New(opts Options) *Prober {
	client := whois.NewClient().SetTimeout(opts.Timeout)

	return NewWithFetcher(client, whoisparser.Parse, opts.Server)
}

// NewWithFetcher creates a Prober from explicit collaborators.
func NewWithFetcher(fetcher Fetcher, parse ParseFunc, server string) *Prober {
	p := &Prober{fetcher: fetcher, parse: parse}
	if server != "" {
		p.servers = []string{server}
	}

	return p
}

type fetchResult struct {
	text string
	err  error
}

// Registration looks up name and classifies it. Network errors, malformed
// responses and unsupported top-level domains all yield unknown; a registry
// that explicitly reports the name as unregistered yields available.
func (p *Prober) Registration(ctx context.Context, name string) probe.WhoisResult {
	if name == "" || ctx.Err() != nil {
		return probe.WhoisResult{Status: domain.WhoisUnknown}
	}

	// the whois client is not context aware; its own timeout bounds the goroutine
	done := make(chan fetchResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fetchResult{err: fmt.Errorf("whois fetch panicked: %v", r)}
			}
		}()
		text, err := p.fetcher.Whois(name, p.servers...)
		done <- fetchResult{text: text, err: err}
	}()

	var res fetchResult
	select {
	case <-ctx.Done():
		logger.Debug(ctx, "whois lookup abandoned", zap.Error(ctx.Err()))

		return probe.WhoisResult{Status: domain.WhoisUnknown}
	case res = <-done:
	}
	if res.err != nil {
		logger.Debug(ctx, "whois lookup failed", zap.Error(res.err))

		return probe.WhoisResult{Status: domain.WhoisUnknown}
	}

	info, err := p.safeParse(res.text)
	if err != nil {
		if errors.Is(err, whoisparser.ErrNotFoundDomain) {
			return probe.WhoisResult{Status: domain.WhoisAvailable}
		}
		logger.Debug(ctx, "whois response not parseable", zap.Error(err))

		return probe.WhoisResult{Status: domain.WhoisUnknown}
	}

	return Classify(info)
}

// safeParse runs the parser, turning a panic on a malformed response into an
// error.
func (p *Prober) safeParse(text string) (info whoisparser.WhoisInfo, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("whois parser panicked: %v", r)
		}
	}()

	return p.parse(text)
}

// Classify applies the registration truth table to a parsed record: a status
// or a creation date means registered, neither means available.
func Classify(info whoisparser.WhoisInfo) probe.WhoisResult {
	d := info.Domain
	if d == nil || (len(d.Status) == 0 && d.CreatedDate == "") {
		return probe.WhoisResult{Status: domain.WhoisAvailable}
	}

	return probe.WhoisResult{
		Status: domain.WhoisRegistered,
		Details: domain.WhoisDetails{
			RegisteredAt: firstDate(d.CreatedDate, d.CreatedDateInTime),
			ExpiryDate:   firstDate(d.ExpirationDate, d.ExpirationDateInTime),
			LastUpdated:  firstDate(d.UpdatedDate, d.UpdatedDateInTime),
			Nameservers:  lowerAll(d.NameServers),
		},
	}
}

// firstDate prefers the parsed timestamp; otherwise a multi-valued raw field
// collapses to its first value.
func firstDate(raw string, parsed *time.Time) string {
	if parsed != nil && !parsed.IsZero() {
		return parsed.UTC().Format(time.RFC3339)
	}
	first, _, _ := strings.Cut(raw, ",")

	return strings.TrimSpace(first)
}

func lowerAll(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}

	return out
}

var _ probe.WhoisProber = (*Prober)(nil)
