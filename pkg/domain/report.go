package domain

import "time"

// ReportDescription is the fixed description stamped into report metadata.
const ReportDescription = "Domain analysis report from Million Dollar Homepage pixel data"

// ReportMetadata describes when and over how many domains a report was built.
type ReportMetadata struct {
	GeneratedAt  time.Time
	TotalDomains int
	Description  string
}

// ReportSummary holds the three histograms of a report. Each one sums to the
// number of domains in the report.
type ReportSummary struct {
	DNSStatus   map[DNSStatus]int
	HTTPClass   map[HTTPClass]int
	WhoisStatus map[ResolvedStatus]int
}

// Report is the analysis of a batch of domains. Domains are ordered by name.
type Report struct {
	Metadata ReportMetadata
	Summary  ReportSummary
	Domains  []ProbeResult
}
