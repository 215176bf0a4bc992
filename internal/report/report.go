// Package report turns a finished batch of probe results into the persisted
// report: metadata, per-signal histograms and the per-domain records.
package report

import (
	"slices"
	"strings"
	"time"

	"domainstatus/pkg/domain"
)

// Assemble builds the report for results. Results are copied and sorted by
// domain, so the caller's slice is left untouched. Every histogram sums to the
// number of results.
func Assemble(results []domain.ProbeResult, generatedAt time.Time) domain.Report {
	domains := slices.Clone(results)
	if domains == nil {
		domains = []domain.ProbeResult{}
	}
	slices.SortStableFunc(domains, func(a, b domain.ProbeResult) int { return strings.Compare(a.Domain, b.Domain) })

	return domain.Report{
		Metadata: domain.ReportMetadata{
			GeneratedAt:  generatedAt,
			TotalDomains: len(domains),
			Description:  domain.ReportDescription,
		},
		Summary: Summarize(domains),
		Domains: domains,
	}
}

// Summarize counts results per DNS status, HTTP class and reconciled status.
// The maps are never nil.
func Summarize(results []domain.ProbeResult) domain.ReportSummary {
	s := domain.ReportSummary{
		DNSStatus:   make(map[domain.DNSStatus]int),
		HTTPClass:   make(map[domain.HTTPClass]int),
		WhoisStatus: make(map[domain.ResolvedStatus]int),
	}
	for _, r := range results {
		s.DNSStatus[r.DNSStatus]++
		s.HTTPClass[domain.ClassifyHTTP(r.HTTPStatus)]++
		s.WhoisStatus[r.Status]++
	}

	return s
}
