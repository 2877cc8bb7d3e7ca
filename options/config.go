package options

import (
	"runtime"

	"github.com/patrickbrosi/spatialjoin/types"
)

// ConfigFunc is a functional option for [Config], following the same pattern
// as [GeometryOptionsFunc]: small, composable mutators applied over a set of
// defaults by [ApplyConfig].
type ConfigFunc func(*Config)

// Config holds the run-wide settings for a spatial join: which filter-cascade
// stages are enabled, how many worker threads to run, and where the
// disk-backed geometry cache and scratch files live.
type Config struct {
	// Epsilon is a floating-point tolerance stored on the Config; neither
	// the sweep nor the pair checker reads it. The exact segment-sweep
	// stage (C9 stage 5) is always exact integer arithmetic; see the Open
	// Question recorded in DESIGN.md about line-pair equals.
	Epsilon float64

	// UseBoxIDs enables the box-id cover-list cascade stage (C3/§4.8 stage 2).
	// Disabling it corresponds to the CLI's --no-box-ids flag.
	UseBoxIDs bool

	// UseSurfaceArea is the setting behind --no-surface-area. No stage
	// reads it: the pair checker has no inner/outer simplification stage
	// (C4), so the value does not change any result.
	UseSurfaceArea bool

	// UseOrientedBBox enables the 45°-rotated oriented-bbox cascade stage
	// (§4.8 stage 3).
	UseOrientedBBox bool

	// NumWorkers is the number of worker goroutines (T in spec.md §5) that
	// run the pair checker concurrently with the sweep goroutine.
	NumWorkers int

	// CacheDir is the directory holding the per-class geometry cache files
	// and scratch event store (spec.md §6, "-c <cache>").
	CacheDir string

	// ReuseCache, when true, skips truncating existing cache files on open
	// ("-C", reuse existing caches).
	ReuseCache bool

	// Prefix and Suffix bracket every emitted relation line ("--prefix",
	// "--suffix").
	Prefix, Suffix string

	// Separators gives the text placed between gidA and gidB for each
	// confirmed predicate ("--intersects", "--contains", ...). A predicate
	// missing from the map is emitted using DefaultSeparators' value; an
	// empty string is used as given. To suppress a predicate entirely,
	// filter it out of the Predicates value before formatting.
	Separators map[types.Predicates]string
}

// DefaultSeparators returns the default per-predicate separator text,
// matching spec.md §6: " intersects ", " contains ", " covers ",
// " touches ", " equals ", " overlaps ", " crosses ".
func DefaultSeparators() map[types.Predicates]string {
	return map[types.Predicates]string{
		types.PredIntersects: " intersects ",
		types.PredContains:   " contains ",
		types.PredCovers:     " covers ",
		types.PredTouches:    " touches ",
		types.PredEquals:     " equals ",
		types.PredOverlaps:   " overlaps ",
		types.PredCrosses:    " crosses ",
	}
}

// DefaultConfig returns the baseline [Config]: every cascade stage enabled,
// one worker per available CPU minus the sweep goroutine, and a cache
// directory under the OS temp dir.
func DefaultConfig() Config {
	n := runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}
	return Config{
		Epsilon:         0,
		UseBoxIDs:       true,
		UseSurfaceArea:  true,
		UseOrientedBBox: true,
		NumWorkers:      n,
		CacheDir:        "",
		ReuseCache:      false,
		Separators:      DefaultSeparators(),
	}
}

// WithPrefix sets the text emitted before gidA on every relation line.
func WithPrefix(prefix string) ConfigFunc {
	return func(c *Config) { c.Prefix = prefix }
}

// WithSuffix sets the text emitted after gidB on every relation line.
func WithSuffix(suffix string) ConfigFunc {
	return func(c *Config) { c.Suffix = suffix }
}

// WithSeparator overrides the separator text used for a single predicate,
// leaving every other predicate's separator at its current value.
func WithSeparator(pred types.Predicates, separator string) ConfigFunc {
	return func(c *Config) {
		if c.Separators == nil {
			c.Separators = DefaultSeparators()
		}
		c.Separators[pred] = separator
	}
}

// ApplyConfig applies opts over defaults in order, returning the result.
func ApplyConfig(defaults Config, opts ...ConfigFunc) Config {
	for _, opt := range opts {
		opt(&defaults)
	}
	return defaults
}

// WithBoxIDs toggles the box-id cascade stage. Corresponds to --no-box-ids
// when passed false.
func WithBoxIDs(enabled bool) ConfigFunc {
	return func(c *Config) { c.UseBoxIDs = enabled }
}

// WithSurfaceArea toggles the inner/outer simplification cascade stage.
// Corresponds to --no-surface-area when passed false.
func WithSurfaceArea(enabled bool) ConfigFunc {
	return func(c *Config) { c.UseSurfaceArea = enabled }
}

// WithOrientedBBox toggles the diagonal oriented-bbox cascade stage.
func WithOrientedBBox(enabled bool) ConfigFunc {
	return func(c *Config) { c.UseOrientedBBox = enabled }
}

// WithNumWorkers sets the number of pair-checker worker goroutines. Values
// less than 1 are clamped to 1.
func WithNumWorkers(n int) ConfigFunc {
	return func(c *Config) {
		if n < 1 {
			n = 1
		}
		c.NumWorkers = n
	}
}

// WithCacheDir sets the directory used for the geometry cache and event
// scratch files.
func WithCacheDir(dir string) ConfigFunc {
	return func(c *Config) { c.CacheDir = dir }
}

// WithReuseCache toggles reuse of a pre-existing cache directory rather than
// truncating it on open.
func WithReuseCache(reuse bool) ConfigFunc {
	return func(c *Config) { c.ReuseCache = reuse }
}

// WithConfigEpsilon sets the epsilon used by the oriented-bbox and
// simplification stages. Named distinctly from [WithEpsilon] since the two
// apply to different option structs ([Config] vs [GeometryOptions]).
func WithConfigEpsilon(epsilon float64) ConfigFunc {
	return func(c *Config) {
		if epsilon < 0 {
			epsilon = 0
		}
		c.Epsilon = epsilon
	}
}
