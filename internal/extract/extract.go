// Package extract reads the pixel-area artifact and produces the set of
// domains to analyze.
//
// The artifact has the shape
//
//	{"domains": [{"domain": "example.com", "total_pixels": 100, "areas": [...]}, ...]}
//
// Only the "domain" field of each entry is used. Everything else is skipped
// without being decoded.
package extract

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"slices"

	"domainstatus/pkg/logger"
	"domainstatus/pkg/serrors"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

const readBufSize = 64 * 1024

// FromFile reads the artifact at path and returns its normalized domains,
// deduplicated and sorted. A missing file is reported as serrors.ErrNotFound
// and a corrupt one as serrors.ErrInvalidInput.
func FromFile(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, serrors.Wrap(serrors.ErrNotFound, err, "pixel data file %q not found", path)
		}

		return nil, serrors.Wrap(serrors.ErrInvalidInput, err, "could not open pixel data file %q", path)
	}
	defer f.Close() //nolint: errcheck

	domains, err := Decode(ctx, f)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "extracted domains", zap.String("path", path), zap.Int("domains", len(domains)))

	return domains, nil
}

// Decode reads an artifact from r. Entries whose domain is missing or does not
// normalize are skipped and logged at debug level.
func Decode(ctx context.Context, r io.Reader) ([]string, error) {
	var raw []string
	d := jx.Decode(r, readBufSize)
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		if string(key) != "domains" || d.Next() == jx.Null {
			return d.Skip()
		}

		return d.Arr(func(d *jx.Decoder) error {
			return decodeEntry(d, &raw)
		})
	})
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrInvalidInput, err, "could not decode pixel data")
	}

	return Normalize(ctx, raw), nil
}

func decodeEntry(d *jx.Decoder, raw *[]string) error {
	if d.Next() != jx.Object {
		return d.Skip()
	}

	return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		if string(key) != "domain" || d.Next() != jx.String {
			return d.Skip()
		}
		s, err := d.Str()
		if err != nil {
			return err
		}
		*raw = append(*raw, s)

		return nil
	})
}

// Normalize canonicalizes every name with NormalizeDomain, drops the ones that
// fail, and returns the distinct results in ascending order.
func Normalize(ctx context.Context, names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		host, err := NormalizeDomain(name)
		if err != nil {
			logger.Debug(ctx, "skipping entry", zap.String("entry", name), zap.Error(err))

			continue
		}
		if _, ok := seen[host]; ok {
			continue
		}
		seen[host] = struct{}{}
		out = append(out, host)
	}
	slices.Sort(out)

	return out
}
