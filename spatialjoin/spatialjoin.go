// Package spatialjoin is the engine façade: it wires the coordinate
// primitives (geom), box-id engine (boxids), geometry cache (geomcache),
// sweep event store (eventstore), candidate generator (sweep), pair
// checker (pairwise) and relation aggregator (aggregate) into the single
// Sweeper API a caller drives: Add every geometry, Flush, then Sweep to
// stream relations to a relio.Writer.
package spatialjoin

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/patrickbrosi/spatialjoin/aggregate"
	"github.com/patrickbrosi/spatialjoin/eventstore"
	"github.com/patrickbrosi/spatialjoin/geomcache"
	"github.com/patrickbrosi/spatialjoin/options"
	"github.com/patrickbrosi/spatialjoin/types"
)

// ErrNotFlushed is returned by Sweep when called before Flush has
// completed, matching spec.md §5's ordering requirement.
var ErrNotFlushed = errors.New("spatialjoin: Sweep called before Flush")

// ErrInvalidGeometry is returned by Add for a geometry Sweeper cannot
// ingest: an empty ring, a degenerate line, or an unsupported wkt.GeomType.
var ErrInvalidGeometry = errors.New("spatialjoin: invalid geometry")

// geomInfo is everything the sweep (C8) and pair checker (C9) need about
// one sub-geometry without touching the geometry cache: the internal
// numeric id the event store and sweep speak in, and enough to look the
// full geometry record back up once a candidate names it.
type geomInfo struct {
	gid    string
	subID  uint16
	kind   types.GeomType
	offset int64
	side   bool
}

// Sweeper is the engine façade. The zero value is not usable; construct
// with New. Add must be called from a single goroutine (geometry parsing
// is not parallelized in this port; see DESIGN.md); Flush finishes
// ingestion, and Sweep performs the concurrent candidate-generation and
// pair-checking pass exactly once.
type Sweeper struct {
	cfg      options.Config
	cacheDir string
	ownsDir  bool

	pointCache      *geomcache.Cache[geomcache.PointRecord]
	simpleLineCache *geomcache.Cache[geomcache.SimpleLineRecord]
	lineCache       *geomcache.Cache[geomcache.LineRecord]
	simpleAreaCache *geomcache.Cache[geomcache.SimpleAreaRecord]
	areaCache       *geomcache.Cache[geomcache.AreaRecord]

	eventPath  string
	eventsOut  *eventstore.Writer
	sortedPath string

	mu        sync.Mutex
	nextID    uint64
	registry  map[uint64]geomInfo
	subCounts map[string]int

	// aliasesOf[target] lists every reference id that replays target's
	// relations (spec.md §3 "References"), built purely from TypeRefs
	// input lines — references never enter the sweep itself.
	aliasesOf map[string][]string

	agg *aggregate.Aggregator

	// sawSide is set the first time Add sees a geometry with Side true.
	// The sweep runs as a single-dataset self-join (sweep.Config.NumSides
	// 1) until that happens, and as a two-dataset bilateral join
	// (NumSides 2) from then on, matching the original engine's
	// _numSides, which starts at 1 and is bumped to 2 on the first
	// side-1 input.
	sawSide bool

	flushed bool
}

// New constructs a Sweeper backed by cfg.CacheDir (or a fresh temp
// directory if empty).
func New(cfg options.Config) (*Sweeper, error) {
	dir := cfg.CacheDir
	ownsDir := false
	if dir == "" {
		var err error
		dir, err = os.MkdirTemp("", "spatialjoin-cache-")
		if err != nil {
			return nil, fmt.Errorf("spatialjoin: creating cache dir: %w", err)
		}
		ownsDir = true
	}

	gcCfg := geomcache.Config{
		CacheDir:           dir,
		NumShards:          cfg.NumWorkers,
		MaxEntriesPerShard: 4096,
		Reuse:              cfg.ReuseCache,
	}

	s := &Sweeper{
		cfg:       cfg,
		cacheDir:  dir,
		ownsDir:   ownsDir,
		registry:  make(map[uint64]geomInfo),
		subCounts: make(map[string]int),
		aliasesOf: make(map[string][]string),
		agg:       aggregate.New(),
	}

	var err error
	if s.pointCache, err = geomcache.New[geomcache.PointRecord](geomcache.PointCodec{}, "points", gcCfg); err != nil {
		return nil, err
	}
	if s.simpleLineCache, err = geomcache.New[geomcache.SimpleLineRecord](geomcache.SimpleLineCodec{}, "simplelines", gcCfg); err != nil {
		return nil, err
	}
	if s.lineCache, err = geomcache.New[geomcache.LineRecord](geomcache.LineCodec{}, "lines", gcCfg); err != nil {
		return nil, err
	}
	if s.simpleAreaCache, err = geomcache.New[geomcache.SimpleAreaRecord](geomcache.SimpleAreaCodec{}, "simpleareas", gcCfg); err != nil {
		return nil, err
	}
	if s.areaCache, err = geomcache.New[geomcache.AreaRecord](geomcache.AreaCodec{}, "areas", gcCfg); err != nil {
		return nil, err
	}

	s.eventPath = dir + "/events.bin"
	s.sortedPath = dir + "/events.sorted.bin"
	if s.eventsOut, err = eventstore.NewWriter(s.eventPath); err != nil {
		return nil, fmt.Errorf("spatialjoin: opening event store: %w", err)
	}

	return s, nil
}

// allocID returns a fresh internal numeric id and records info for it.
func (s *Sweeper) allocID(info geomInfo) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.registry[id] = info
	return id
}

// Close releases every cache and closes the event log, removing the cache
// directory if Sweeper created it itself.
func (s *Sweeper) Close() error {
	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	record(s.pointCache.Close())
	record(s.simpleLineCache.Close())
	record(s.lineCache.Close())
	record(s.simpleAreaCache.Close())
	record(s.areaCache.Close())
	if s.eventsOut != nil {
		record(s.eventsOut.Close())
	}
	if s.ownsDir {
		record(os.RemoveAll(s.cacheDir))
	}
	return firstErr
}
