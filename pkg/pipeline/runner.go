package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/asciigraph/pkg/cache"
	"github.com/matzehuels/asciigraph/pkg/chart"
	"github.com/matzehuels/asciigraph/pkg/errors"
	"github.com/matzehuels/asciigraph/pkg/httputil"
	asciiio "github.com/matzehuels/asciigraph/pkg/io"
	"github.com/matzehuels/asciigraph/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no per-run state, so one instance may serve concurrent
// requests with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Fetcher loads http(s) inputs. Nil means an uncached fetcher.
	Fetcher *httputil.Fetcher

	// TTL is the lifetime of cached charts. Zero means cache.TTLChart.
	TTL time.Duration
}

// NewRunner creates a runner. A nil keyer means cache.DefaultKeyer, a nil
// cache disables caching and a nil logger means log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute loads opts.Input and renders it.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	loadStart := time.Now()
	ds, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	loadTime := time.Since(loadStart)

	result, err := r.RenderDataset(ctx, ds, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = loadTime
	return result, nil
}

// Load imports the dataset named by opts.Input.
func (r *Runner) Load(ctx context.Context, opts Options) (chart.Dataset, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return chart.Dataset{}, err
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Input, opts.Format)
	start := time.Now()

	var ds chart.Dataset
	var err error
	if httputil.IsURL(opts.Input) {
		ds, err = r.loadRemote(ctx, opts)
	} else {
		ds, err = asciiio.Import(opts.Input, opts.ImportOptions())
	}
	hooks.OnLoadComplete(ctx, opts.Input, ds.Len(), time.Since(start), err)
	if err != nil {
		return chart.Dataset{}, err
	}

	opts.Logger.Debug("loaded dataset", "source", opts.Input, "points", ds.Len(), "duration", time.Since(start))
	return ds, nil
}

// RenderDataset renders an in-memory dataset. It is the entry point for
// callers that decode datasets themselves.
func (r *Runner) RenderDataset(ctx context.Context, ds chart.Dataset, opts Options) (*Result, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if opts.Title != "" {
		ds.Title = opts.Title
	}

	start := time.Now()
	out, hash, hit, err := r.render(ctx, ds, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Dataset:     ds,
		DatasetHash: hash,
		Output:      out,
		CacheHit:    hit,
		Stats: Stats{
			Points:     ds.Len(),
			Lines:      bytes.Count(out, []byte{'\n'}),
			RenderTime: time.Since(start),
		},
	}

	r.Logger.Info("rendered chart",
		"points", result.Stats.Points,
		"lines", result.Stats.Lines,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo renders ds with caching and reports whether the text
// came from the cache. Chart errors are never cached. Labels and values are
// validated first, so non-finite values fail with INVALID_VALUE.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, ds chart.Dataset, opts Options) ([]byte, bool, error) {
	out, _, hit, err := r.render(ctx, ds, opts)
	return out, hit, err
}

func (r *Runner) render(ctx context.Context, ds chart.Dataset, opts Options) (out []byte, hash string, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, "", false, err
	}
	if err := asciiio.ValidateDataset(ds); err != nil {
		return nil, "", false, err
	}
	hash, err = DatasetHash(ds)
	if err != nil {
		return nil, "", false, err
	}

	cacheKey := r.Keyer.ChartKey(hash, opts.ChartKeyOpts())
	cacheHooks := observability.Cache()

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, cacheKey)
		if err != nil {
			opts.Logger.Warn("cache read failed", "error", err)
		}
		if err == nil && hit {
			cacheHooks.OnCacheHit(ctx, "chart")
			return data, hash, true, nil
		}
		cacheHooks.OnCacheMiss(ctx, "chart")
	}

	cfg, g := opts.Chart()
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, g.String(), ds.Len())
	start := time.Now()

	var buf bytes.Buffer
	err = chart.Render(&buf, ds, cfg, g)
	hooks.OnRenderComplete(ctx, g.String(), bytes.Count(buf.Bytes(), []byte{'\n'}), time.Since(start), err)
	if err != nil {
		return nil, "", false, err
	}

	out = buf.Bytes()
	if err := r.Cache.Set(ctx, cacheKey, out, r.ttl()); err != nil {
		opts.Logger.Warn("cache write failed", "error", err)
	} else {
		cacheHooks.OnCacheSet(ctx, "chart", len(out))
	}
	return out, hash, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// DatasetHash returns the content hash of ds used in cache keys. It fails
// for datasets JSON cannot encode, such as non-finite values.
func DatasetHash(ds chart.Dataset) (string, error) {
	data, err := json.Marshal(ds)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidValue, err, "hash dataset")
	}
	return cache.Hash(data), nil
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLChart
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
