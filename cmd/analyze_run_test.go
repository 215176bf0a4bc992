package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"domainstatus/internal/config"
	"domainstatus/internal/resolver"
	"domainstatus/pkg/domain"
	"domainstatus/pkg/probe"
	"domainstatus/pkg/serrors"

	"github.com/stretchr/testify/require"
)

const pixelData = `{"domains": [
  {"domain": "b.test", "total_pixels": 100, "areas": []},
  {"domain": "http://www.A.test/", "total_pixels": 400, "areas": []},
  {"domain": "a.test", "total_pixels": 1}
]}`

// fakeProbes answers a.test as live and b.test as unregistered.
type fakeProbes struct{}

func (fakeProbes) LookupDNS(_ context.Context, name string) probe.DNSResult {
	if name == "a.test" {
		return probe.DNSResult{Status: domain.DNSNoError}
	}

	return probe.DNSResult{Status: domain.DNSNXDomain}
}

func (fakeProbes) Reachability(_ context.Context, name string) int {
	if name == "a.test" {
		return 200
	}

	return 0
}

func (fakeProbes) Registration(context.Context, string) probe.WhoisResult {
	return probe.WhoisResult{Status: domain.WhoisAvailable}
}

func fakeApp(t *testing.T) *app {
	t.Helper()

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.HTTP.Addr = ""

	return &app{
		cfg: cfg,
		newProbes: func(*config.Config) resolver.Probes {
			return resolver.Probes{DNS: fakeProbes{}, HTTP: fakeProbes{}, Whois: fakeProbes{}}
		},
	}
}

func runAnalyze(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()

	cmd := analyzeCommand(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func TestAnalyzeWritesReport(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "pixels.json")
	require.NoError(t, os.WriteFile(input, []byte(pixelData), 0o600))
	outDir := filepath.Join(dir, "reports")

	a := fakeApp(t)
	a.cfg.Analyzer.Workers = 0 // invalid on its own, fixed by the flag below

	out, err := runAnalyze(t, a, input, "--output-dir", outDir, "-w", "5")
	require.NoError(t, err)
	require.Contains(t, out, "Analyzed 2 domains")

	files, err := filepath.Glob(filepath.Join(outDir, "report_*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Contains(t, out, files[0])

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)

	var rep struct {
		Metadata struct {
			TotalDomains int `json:"total_domains"`
		} `json:"metadata"`
		Summary struct {
			DNS   map[string]int `json:"dns_status_distribution"`
			Whois map[string]int `json:"whois_status_distribution"`
		} `json:"summary"`
		Domains []struct {
			Domain      string `json:"domain"`
			WhoisStatus string `json:"whois_status"`
		} `json:"domains"`
	}
	require.NoError(t, json.Unmarshal(data, &rep))
	require.Equal(t, 2, rep.Metadata.TotalDomains)
	require.Equal(t, map[string]int{"NOERROR": 1, "NXDOMAIN": 1}, rep.Summary.DNS)
	require.Equal(t, map[string]int{"registered": 1, "available": 1}, rep.Summary.Whois)
	require.Len(t, rep.Domains, 2)
	require.Equal(t, "a.test", rep.Domains[0].Domain)
	require.Equal(t, "registered", rep.Domains[0].WhoisStatus)
	require.Equal(t, "b.test", rep.Domains[1].Domain)
	require.Equal(t, "available", rep.Domains[1].WhoisStatus)
}

func TestAnalyzeBadInputWritesNothing(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("invalid json content"), 0o600))

	tests := []struct {
		name  string
		input string
		want  serrors.Kind
	}{
		{name: "missing file", input: filepath.Join(dir, "missing.json"), want: serrors.ErrNotFound},
		{name: "corrupt file", input: corrupt, want: serrors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outDir := filepath.Join(t.TempDir(), "reports")

			out, err := runAnalyze(t, fakeApp(t), tt.input, "--output-dir", outDir)
			require.ErrorIs(t, err, tt.want)
			require.Empty(t, out)

			_, statErr := os.Stat(outDir)
			require.ErrorIs(t, statErr, fs.ErrNotExist)
		})
	}
}

func TestAnalyzeRejectsInvalidWorkers(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "pixels.json")
	require.NoError(t, os.WriteFile(input, []byte(pixelData), 0o600))
	outDir := filepath.Join(dir, "reports")

	_, err := runAnalyze(t, fakeApp(t), input, "--output-dir", outDir, "--workers", "0")
	require.ErrorIs(t, err, serrors.ErrInvalidInput)

	_, statErr := os.Stat(outDir)
	require.ErrorIs(t, statErr, fs.ErrNotExist)
}
