// Package jsonfile streams reports to indented JSON files named after their
// generation time.
package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"time"

	"domainstatus/pkg/domain"
	"domainstatus/pkg/logger"
	"domainstatus/pkg/storage"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// FileTimeLayout is the timestamp layout used in report file names.
const FileTimeLayout = "20060102_150405"

const (
	indent        = 2
	streamBufSize = 32 * 1024
)

var _ storage.ReportWriter = (*Writer)(nil)

// Writer writes reports into a directory.
type Writer struct {
	dir string
}

// New returns a Writer for dir. The directory is created on first write.
func New(dir string) (*Writer, error) {
	if dir == "" {
		return nil, errors.Wrap(storage.ErrNoDestination, "output directory is empty")
	}

	return &Writer{dir: dir}, nil
}

// FileName is the name a report generated at t is written under.
func FileName(t time.Time) string {
	return "report_" + t.Format(FileTimeLayout) + ".json"
}

// WriteReport writes report to <dir>/report_<YYYYMMDD_HHMMSS>.json and returns
// the path. The file is written to a temporary name first and renamed into
// place, so a reader never sees a partial report.
func (w *Writer) WriteReport(ctx context.Context, report domain.Report) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create output dir")
	}

	path := filepath.Join(w.dir, FileName(report.Metadata.GeneratedAt))

	tmp, err := os.CreateTemp(w.dir, ".report-*.json")
	if err != nil {
		return "", errors.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name()) //nolint: errcheck

	e := jx.NewStreamingEncoder(tmp, streamBufSize)
	e.SetIdent(indent)
	EncodeReport(e, report)
	if err := e.Close(); err != nil {
		_ = tmp.Close()

		return "", errors.Wrap(err, "write report")
	}
	if _, err := tmp.WriteString("\n"); err != nil {
		_ = tmp.Close()

		return "", errors.Wrap(err, "write report")
	}
	if err := tmp.Close(); err != nil {
		return "", errors.Wrap(err, "close report")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", errors.Wrapf(err, "move report to %q", path)
	}

	logger.Info(ctx, "report written", zap.String("path", path), zap.Int("domains", report.Metadata.TotalDomains))

	return path, nil
}

// Marshal encodes report as indented JSON.
func Marshal(report domain.Report) []byte {
	e := &jx.Encoder{}
	e.SetIdent(indent)
	EncodeReport(e, report)

	return append(e.Bytes(), '\n')
}

// EncodeReport writes report to e.
func EncodeReport(e *jx.Encoder, report domain.Report) {
	e.ObjStart()

	e.FieldStart("metadata")
	e.ObjStart()
	e.FieldStart("generated_at")
	e.Str(report.Metadata.GeneratedAt.Format(time.RFC3339))
	e.FieldStart("total_domains")
	e.Int(report.Metadata.TotalDomains)
	e.FieldStart("description")
	e.Str(report.Metadata.Description)
	e.ObjEnd()

	e.FieldStart("summary")
	e.ObjStart()
	e.FieldStart("dns_status_distribution")
	encodeHistogram(e, report.Summary.DNSStatus)
	e.FieldStart("http_status_distribution")
	encodeHistogram(e, report.Summary.HTTPClass)
	e.FieldStart("whois_status_distribution")
	encodeHistogram(e, report.Summary.WhoisStatus)
	e.ObjEnd()

	e.FieldStart("domains")
	e.ArrStart()
	for _, r := range report.Domains {
		encodeResult(e, r)
	}
	e.ArrEnd()

	e.ObjEnd()
}

// encodeHistogram writes m with its keys in ascending order.
func encodeHistogram[K ~string](e *jx.Encoder, m map[K]int) {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	e.ObjStart()
	for _, k := range keys {
		e.FieldStart(string(k))
		e.Int(m[k])
	}
	e.ObjEnd()
}

func encodeResult(e *jx.Encoder, r domain.ProbeResult) {
	e.ObjStart()
	e.FieldStart("domain")
	e.Str(r.Domain)
	e.FieldStart("dns_status")
	e.Str(string(r.DNSStatus))
	e.FieldStart("http_status")
	e.Int(r.HTTPStatus)
	e.FieldStart("whois_status")
	e.Str(string(r.Status))
	e.FieldStart("whois_raw_status")
	e.Str(string(r.WhoisStatus))
	e.FieldStart("analyzed_at")
	e.Str(r.AnalyzedAt.Format(time.RFC3339))

	optStr(e, "cname_record", r.CNAME)
	optStr(e, "registered_at", r.Whois.RegisteredAt)
	optStr(e, "expiry_date", r.Whois.ExpiryDate)
	optStr(e, "last_updated", r.Whois.LastUpdated)
	if len(r.Whois.Nameservers) > 0 {
		e.FieldStart("nameservers")
		e.ArrStart()
		for _, ns := range r.Whois.Nameservers {
			e.Str(ns)
		}
		e.ArrEnd()
	}
	optStr(e, "error", r.Error)
	e.ObjEnd()
}

func optStr(e *jx.Encoder, name, v string) {
	if v == "" {
		return
	}
	e.FieldStart(name)
	e.Str(v)
}
