package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/matzehuels/asciigraph/pkg/chart"
	agerrors "github.com/matzehuels/asciigraph/pkg/errors"
	"github.com/matzehuels/asciigraph/pkg/httputil"
	asciiio "github.com/matzehuels/asciigraph/pkg/io"
)

// loadRemote fetches an http(s) input and decodes it. The format comes
// from opts, then the URL path extension, then the Content-Type.
func (r *Runner) loadRemote(ctx context.Context, opts Options) (chart.Dataset, error) {
	f := r.Fetcher
	if f == nil {
		f = httputil.NewFetcher(nil)
	}

	entry, hit, err := f.Fetch(ctx, opts.Input, opts.Refresh)
	if errors.Is(err, httputil.ErrNotFound) {
		return chart.Dataset{}, agerrors.Wrap(agerrors.ErrCodeFileNotFound, err, "fetch %s", opts.Input)
	}
	if err != nil {
		return chart.Dataset{}, fmt.Errorf("fetch %s: %w", opts.Input, err)
	}
	opts.Logger.Debug("fetched dataset", "url", opts.Input, "bytes", len(entry.Body), "cached", hit)

	iopts := opts.ImportOptions()
	if iopts.Format == "" {
		iopts.Format = remoteFormat(opts.Input, entry.ContentType)
	}
	if iopts.Format == "" {
		return chart.Dataset{}, agerrors.New(agerrors.ErrCodeInvalidFormat,
			"cannot detect format of %s (content type %q); pass a format", opts.Input, entry.ContentType)
	}

	ds, err := asciiio.Read(bytes.NewReader(entry.Body), iopts)
	if err != nil {
		return chart.Dataset{}, fmt.Errorf("%s: %w", opts.Input, err)
	}
	return ds, nil
}

func remoteFormat(rawURL, contentType string) asciiio.Format {
	if u, err := url.Parse(rawURL); err == nil {
		if f, err := asciiio.DetectFormat(u.Path); err == nil {
			return f
		}
	}
	if hint := httputil.FormatHint(contentType); hint != "" {
		return asciiio.Format(hint)
	}
	return ""
}
