// Package resolver probes a batch of domains across DNS, HTTP and WHOIS under
// a bounded worker budget and reconciles the signals into one status per
// domain.
//
// # Execution model
//
// Every domain is one unit of work: its three probes run one after another on
// the same worker, each under its own deadline, and none of them can abort the
// others because probes never fail (see package probe). In concurrent mode a
// fixed pool of workers drains a job channel; in sequential mode the
// dispatcher runs each unit itself. Either way finished results are sent to a
// single collector, which is the only place the result slice is appended to,
// so no lock is involved. Results are sorted by domain once the batch is
// complete; completion order therefore never shows up in the output.
//
// A unit of work that panics is recovered and recorded as a synthetic result
// (DNS ERROR, HTTP 0, WHOIS unknown) carrying an error note, so every input
// domain is always present in the output.
package resolver

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"domainstatus/pkg/domain"
	"domainstatus/pkg/logger"
	"domainstatus/pkg/metrics"
	"domainstatus/pkg/probe"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// attemptsPerProbe is the number of sequential network attempts a probe may
// make (HTTPS then HTTP, A then CNAME), each bounded by Options.Timeout.
const attemptsPerProbe = 2

const tracerName = "domainstatus/resolver"

// Options configure a Resolver.
type Options struct {
	// Workers is the number of domains probed simultaneously in concurrent mode.
	Workers int
	// Sequential probes one domain at a time.
	Sequential bool
	// Timeout is the per-attempt network timeout. Each probe call is given a
	// deadline of attemptsPerProbe times this value. Zero disables the deadline.
	Timeout time.Duration
}

// Probes groups the three signal probes run for every domain.
type Probes struct {
	DNS   probe.DNSProber
	HTTP  probe.HTTPProber
	Whois probe.WhoisProber
}

// Resolver runs the probes for a batch of domains. It holds no per-batch
// state, so one Resolver may serve several Resolve calls.
type Resolver struct {
	probes      Probes
	opts        Options
	observer    Observer
	instruments *metrics.Instruments
	tracer      trace.Tracer
	now         func() time.Time
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithObserver sets the progress observer. The default discards progress.
func WithObserver(o Observer) Option {
	return func(r *Resolver) { r.observer = o }
}

// WithInstruments records probe metrics on ins.
func WithInstruments(ins *metrics.Instruments) Option {
	return func(r *Resolver) { r.instruments = ins }
}

// WithTracerProvider traces units of work and probes with tp.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Resolver) { r.tracer = tp.Tracer(tracerName) }
}

// WithClock replaces the clock used to stamp AnalyzedAt.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// New creates a Resolver.
func New(probes Probes, opts Options, options ...Option) *Resolver {
	r := &Resolver{
		probes:   probes,
		opts:     opts,
		observer: ObserverFunc(func(context.Context, Progress) {}),
		tracer:   noop.NewTracerProvider().Tracer(tracerName),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, o := range options {
		o(r)
	}
	if r.instruments == nil {
		r.instruments, _ = metrics.NewInstruments(nil)
	}

	return r
}

// Resolve probes every domain and returns one result per distinct input
// domain, sorted by name. It always returns a complete batch: failures are
// encoded in the results, never returned.
func (r *Resolver) Resolve(ctx context.Context, domains []string) []domain.ProbeResult {
	names := unique(domains)
	results := make([]domain.ProbeResult, 0, len(names))
	if len(names) == 0 {
		return results
	}

	logger.Info(ctx, "resolving domains",
		zap.Int("domains", len(names)),
		zap.Bool("sequential", r.opts.Sequential),
		zap.Int("workers", r.workers(len(names))))

	resultChan := make(chan domain.ProbeResult)
	go r.dispatch(ctx, names, resultChan)

	throttle := newProgressThrottle(len(names))
	for res := range resultChan {
		results = append(results, res)
		if p, ok := throttle.next(); ok {
			r.observer.Progress(ctx, p)
		}
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Domain < results[j].Domain })

	return results
}

// dispatch runs a unit of work per name and closes out once all are done.
func (r *Resolver) dispatch(ctx context.Context, names []string, out chan<- domain.ProbeResult) {
	defer close(out)

	if r.opts.Sequential {
		for _, name := range names {
			out <- r.work(ctx, name)
		}

		return
	}

	jobs := make(chan string)
	var wg sync.WaitGroup
	for range r.workers(len(names)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				out <- r.work(ctx, name)
			}
		}()
	}

	for _, name := range names {
		jobs <- name
	}
	close(jobs)
	wg.Wait()
}

func (r *Resolver) workers(n int) int {
	if r.opts.Sequential {
		return 1
	}

	return max(1, min(r.opts.Workers, n))
}

// work runs the three probes for one domain. A panic anywhere in the unit is
// turned into a synthetic result.
func (r *Resolver) work(ctx context.Context, name string) (res domain.ProbeResult) {
	ctx = logger.WithFields(ctx, zap.String("domain", name))
	ctx, span := r.tracer.Start(ctx, "resolver.analyze", trace.WithAttributes(attribute.String("domain", name)))
	defer span.End()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "unit of work failed", zap.Any("panic", p))
			span.SetStatus(codes.Error, "unit of work failed")
			res = Synthetic(name, fmt.Sprintf("unit of work failed: %v", p), r.now())
		}
		r.instruments.ObserveDomain(ctx, string(res.Status), res.Error != "")
	}()

	dnsRes := runProbe(ctx, r, "dns", name, r.probes.DNS.LookupDNS,
		func(v probe.DNSResult) string { return string(v.Status) })
	httpCode := runProbe(ctx, r, "http", name, r.probes.HTTP.Reachability,
		func(v int) string { return string(domain.ClassifyHTTP(v)) })
	whoisRes := runProbe(ctx, r, "whois", name, r.probes.Whois.Registration,
		func(v probe.WhoisResult) string { return string(v.Status) })

	res = domain.ProbeResult{
		Domain:      name,
		DNSStatus:   dnsRes.Status,
		HTTPStatus:  httpCode,
		WhoisStatus: whoisRes.Status,
		Status:      Reconcile(dnsRes.Status, whoisRes.Status),
		AnalyzedAt:  r.now(),
	}
	if dnsRes.Status == domain.DNSNXDomain {
		res.CNAME = dnsRes.CNAME
	}
	if whoisRes.Status == domain.WhoisRegistered {
		res.Whois = whoisRes.Details
	}

	if logger.IsDebug(ctx) {
		logger.Debug(ctx, "domain analyzed",
			zap.String("dns", string(res.DNSStatus)),
			zap.String("cname", res.CNAME),
			zap.Int("http", res.HTTPStatus),
			zap.String("whois", string(res.WhoisStatus)),
			zap.String("status", string(res.Status)))
	}

	return res
}

// runProbe calls one probe under its own deadline and records its outcome.
func runProbe[T any](
	ctx context.Context,
	r *Resolver,
	signal, name string,
	call func(context.Context, string) T,
	outcome func(T) string,
) T {
	var cancel context.CancelFunc
	if r.opts.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, attemptsPerProbe*r.opts.Timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	ctx, span := r.tracer.Start(ctx, "probe."+signal)
	defer span.End()

	start := time.Now()
	v := call(ctx, name)
	o := outcome(v)

	span.SetAttributes(attribute.String("outcome", o))
	r.instruments.ObserveProbe(ctx, signal, o, time.Since(start))

	return v
}

// Synthetic is the result recorded for a domain whose unit of work failed
// outside the probes.
func Synthetic(name, note string, at time.Time) domain.ProbeResult {
	return domain.ProbeResult{
		Domain:      name,
		DNSStatus:   domain.DNSError,
		HTTPStatus:  0,
		WhoisStatus: domain.WhoisUnknown,
		Status:      Reconcile(domain.DNSError, domain.WhoisUnknown),
		AnalyzedAt:  at,
		Error:       note,
	}
}

// unique drops repeated names, keeping first occurrences.
func unique(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}

	return out
}
