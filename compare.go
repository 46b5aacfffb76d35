package daylight

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/thurmanmarka/daylight/internal/memo"
)

// MaxLocations is the default number of locations a comparison accepts.
const MaxLocations = 3

// DefaultCacheEntries caps a Builder cache unless WithCacheLimit says otherwise.
const DefaultCacheEntries = 1024

// ErrTooManyLocations is returned when a comparison exceeds the builder's limit.
var ErrTooManyLocations = errors.New("too many locations")

// Location names a latitude to build a year for.
type Location struct {
	Name     string  `json:"name"`
	Latitude float64 `json:"latitude"` // degrees, north positive
}

func (l Location) label() string {
	if l.Name != "" {
		return l.Name
	}
	return fmt.Sprintf("%.2f°", l.Latitude)
}

// LocationSummary is the solstice pair of one compared location.
type LocationSummary struct {
	Name                string         `json:"name"`
	Latitude            float64        `json:"latitude"`
	Winter              SolsticeRecord `json:"winterSolstice"`
	Summer              SolsticeRecord `json:"summerSolstice"`
	DifferenceHours     float64        `json:"differenceHours"`
	DifferenceFormatted string         `json:"differenceFormatted"`
}

// Comparison is an aligned multi-location table plus each location's solstices.
type Comparison struct {
	Granularity Granularity       `json:"granularity"`
	Columns     []string          `json:"columns"`
	Rows        []AlignedRow      `json:"rows"`
	Locations   []LocationSummary `json:"locations"`
}

// Builder builds LocationYearData, optionally memoizing results by latitude.
// The zero value builds without a cache and allows MaxLocations per comparison.
type Builder struct {
	cache        *memo.Cache[float64, LocationYearData]
	maxLocations int

	cacheOn    bool
	cacheTTL   time.Duration
	cacheLimit int
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithCache memoizes built years by latitude. A zero ttl never expires;
// the cache holds at most DefaultCacheEntries years, evicting the oldest.
func WithCache(ttl time.Duration) BuilderOption {
	return func(b *Builder) {
		b.cacheOn = true
		b.cacheTTL = ttl
	}
}

// WithCacheLimit overrides the number of years the cache holds. It has no
// effect without WithCache.
func WithCacheLimit(n int) BuilderOption {
	return func(b *Builder) {
		b.cacheLimit = n
	}
}

// WithMaxLocations overrides the number of locations a comparison accepts.
func WithMaxLocations(n int) BuilderOption {
	return func(b *Builder) {
		b.maxLocations = n
	}
}

// NewBuilder returns a Builder configured by opts.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	if b.cacheOn {
		limit := b.cacheLimit
		if limit <= 0 {
			limit = DefaultCacheEntries
		}
		b.cache = memo.New[float64, LocationYearData](b.cacheTTL, limit)
	}
	return b
}

// Build returns the year for a named latitude. Cached results share their
// slices with other callers and must be treated as read-only.
func (b *Builder) Build(name string, lat float64) (LocationYearData, error) {
	if b == nil || b.cache == nil {
		return BuildNamed(name, lat)
	}
	if err := checkLatitude(lat); err != nil {
		return LocationYearData{}, err
	}

	data, err := b.cache.GetOrCompute(lat, func() (LocationYearData, error) {
		return BuildNamed("", lat)
	})
	if err != nil {
		return LocationYearData{}, err
	}
	data.Name = name
	return data, nil
}

// BuildAll builds every location concurrently and returns the results in
// input order once all of them are done.
func (b *Builder) BuildAll(ctx context.Context, locations []Location) ([]LocationYearData, error) {
	results := make([]LocationYearData, len(locations))

	g, ctx := errgroup.WithContext(ctx)
	for i, loc := range locations {
		i, loc := i, loc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := b.Build(loc.Name, loc.Latitude)
			if err != nil {
				return fmt.Errorf("%s: %w", loc.label(), err)
			}
			results[i] = data
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Compare builds all locations, then aligns them at the requested granularity.
func (b *Builder) Compare(ctx context.Context, locations []Location, g Granularity) (Comparison, error) {
	if len(locations) == 0 {
		return Comparison{}, ErrNoLocations
	}
	if limit := b.limit(); len(locations) > limit {
		return Comparison{}, fmt.Errorf("%w: %d given, at most %d", ErrTooManyLocations, len(locations), limit)
	}
	if _, err := ParseGranularity(string(g)); err != nil {
		return Comparison{}, err
	}

	years, err := b.BuildAll(ctx, locations)
	if err != nil {
		return Comparison{}, err
	}

	rows, err := Align(years, g)
	if err != nil {
		return Comparison{}, err
	}

	summaries := make([]LocationSummary, len(years))
	for i, y := range years {
		diff, formatted := y.Difference()
		summaries[i] = LocationSummary{
			Name:                y.Name,
			Latitude:            y.Latitude,
			Winter:              y.Winter,
			Summer:              y.Summer,
			DifferenceHours:     diff,
			DifferenceFormatted: formatted,
		}
	}

	return Comparison{
		Granularity: g,
		Columns:     Columns(years),
		Rows:        rows,
		Locations:   summaries,
	}, nil
}

// CachedYears returns how many latitudes the builder currently memoizes.
func (b *Builder) CachedYears() int {
	if b == nil || b.cache == nil {
		return 0
	}
	return b.cache.Len()
}

func (b *Builder) limit() int {
	if b == nil || b.maxLocations <= 0 {
		return MaxLocations
	}
	return b.maxLocations
}

// BuildAll builds every location concurrently without caching.
func BuildAll(ctx context.Context, locations []Location) ([]LocationYearData, error) {
	return (*Builder)(nil).BuildAll(ctx, locations)
}

// Compare builds and aligns up to MaxLocations locations without caching.
func Compare(ctx context.Context, locations []Location, g Granularity) (Comparison, error) {
	return (*Builder)(nil).Compare(ctx, locations, g)
}
