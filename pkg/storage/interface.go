// Package storage defines where finished reports go. Implementations live in
// subpackages (see jsonfile).
package storage

import (
	"context"

	"domainstatus/pkg/domain"
)

// ReportWriter persists a finished report.
type ReportWriter interface {
	// WriteReport stores report and returns a locator for it, such as a file path.
	WriteReport(ctx context.Context, report domain.Report) (string, error)
}
