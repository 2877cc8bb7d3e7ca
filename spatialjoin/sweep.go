package spatialjoin

import (
	"fmt"
	"os"
	"sync"

	"github.com/patrickbrosi/spatialjoin/aggregate"
	"github.com/patrickbrosi/spatialjoin/eventstore"
	"github.com/patrickbrosi/spatialjoin/geom"
	"github.com/patrickbrosi/spatialjoin/options"
	"github.com/patrickbrosi/spatialjoin/pairwise"
	"github.com/patrickbrosi/spatialjoin/relio"
	"github.com/patrickbrosi/spatialjoin/sweep"
	"github.com/patrickbrosi/spatialjoin/types"
)

// candidateBuffer sizes the channel the sweep goroutine feeds workers
// from; see sweep.Config.CandidateBuffer's doc for why a buffered Go
// channel replaces the original's fixed-size batch queue.
const candidateBuffer = 4096

// Sweep streams the flushed event log through the sweep (C8), dispatches
// every candidate pair to cfg.NumWorkers pair-checker (C9) workers, folds
// their verdicts into the relation aggregator (C10), and writes every
// confirmed parent-level relation — expanded across reference aliases
// (spec.md §3) — to out. Must be called exactly once, after Flush.
func (s *Sweeper) Sweep(out *relio.Writer) error {
	if !s.flushed {
		return ErrNotFlushed
	}

	f, err := os.Open(s.sortedPath)
	if err != nil {
		return fmt.Errorf("spatialjoin: opening sorted event store: %w", err)
	}
	defer f.Close()
	reader := eventstore.NewReader(f)

	numSides := 1
	if s.sawSide {
		numSides = 2
	}

	candidates := make(chan sweep.Candidate, candidateBuffer)
	sweepCfg := sweep.Config{
		NumSides:        numSides,
		UseDiagBox:      s.cfg.UseOrientedBBox,
		EmitSelfChecks:  false,
		CandidateBuffer: candidateBuffer,
	}

	sweepDone := make(chan error, 1)
	go func() {
		sweepDone <- sweep.Run(reader, sweepCfg, candidates)
	}()

	numWorkers := s.cfg.NumWorkers
	if numWorkers < 1 {
		numWorkers = 1
	}

	var wg sync.WaitGroup
	errs := make(chan error, numWorkers)
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(shardID int) {
			defer wg.Done()
			for cand := range candidates {
				if err := s.checkCandidate(shardID, cand); err != nil {
					errs <- err
					return
				}
			}
		}(w)
	}

	wg.Wait()
	close(errs)
	if err := <-sweepDone; err != nil {
		return fmt.Errorf("spatialjoin: sweep: %w", err)
	}
	for err := range errs {
		if err != nil {
			return err
		}
	}

	return s.emitRelations(out)
}

// lookupInfo reads the registry built during Add. Safe without a lock: by
// the time Sweep runs, ingestion has completed (Flush already happened)
// and nothing writes to registry again.
func (s *Sweeper) lookupInfo(id uint64) (geomInfo, bool) {
	info, ok := s.registry[id]
	return info, ok
}

// checkCandidate resolves both sides of cand to their full geometry,
// normalizes them into a (left, right) pair ordered by side so the
// emitted relation direction is stable, and folds both the (left, right)
// and (right, left) verdicts into the aggregator — Finalize only ever
// reports relations with a given gid as the "A" side, so both directions
// need their own recorded stats.
func (s *Sweeper) checkCandidate(shardID int, cand sweep.Candidate) error {
	if cand.Self {
		return nil
	}

	infoA, ok := s.lookupInfo(cand.A.ID)
	if !ok {
		return nil
	}
	infoB, ok := s.lookupInfo(cand.B.ID)
	if !ok {
		return nil
	}

	left, right := infoA, infoB
	if left.side && !right.side {
		left, right = right, left
	}

	gLeft, err := s.loadGeometry(shardID, left)
	if err != nil {
		return fmt.Errorf("loading geometry %q: %w", left.gid, err)
	}
	gRight, err := s.loadGeometry(shardID, right)
	if err != nil {
		return fmt.Errorf("loading geometry %q: %w", right.gid, err)
	}

	pcfg := pairwise.Config{UseBoxIDs: s.cfg.UseBoxIDs}

	predsLR := pairwise.Check(gLeft, gRight, pcfg)
	if !predsLR.None() {
		s.agg.Record(aggregate.SubVerdict{GidA: left.gid, GidB: right.gid, Preds: predsLR})
	}

	predsRL := pairwise.Check(gRight, gLeft, pcfg)
	if !predsRL.None() {
		s.agg.Record(aggregate.SubVerdict{GidA: right.gid, GidB: left.gid, Preds: predsRL})
	}

	return nil
}

// loadGeometry resolves info's cache record, by kind, into the uniform
// shape pairwise.Check consumes.
func (s *Sweeper) loadGeometry(shardID int, info geomInfo) (pairwise.Geometry, error) {
	switch info.kind {
	case types.GeomPoint:
		rec, err := s.pointCache.Get(shardID, info.offset)
		if err != nil {
			return pairwise.Geometry{}, err
		}
		return pairwise.FromPoint(rec.Geom), nil

	case types.GeomSimpleLine:
		rec, err := s.simpleLineCache.Get(shardID, info.offset)
		if err != nil {
			return pairwise.Geometry{}, err
		}
		return pairwise.FromSimpleLine(geom.Seg(rec.A, rec.B)), nil

	case types.GeomLine:
		rec, err := s.lineCache.Get(shardID, info.offset)
		if err != nil {
			return pairwise.Geometry{}, err
		}
		return pairwise.FromLine(rec.Points, rec.Box, rec.BoxIDs), nil

	case types.GeomSimpleArea:
		rec, err := s.simpleAreaCache.Get(shardID, info.offset)
		if err != nil {
			return pairwise.Geometry{}, err
		}
		return pairwise.FromSimpleArea(rec.Outer), nil

	case types.GeomArea:
		rec, err := s.areaCache.Get(shardID, info.offset)
		if err != nil {
			return pairwise.Geometry{}, err
		}
		return pairwise.FromArea(rec.Rings, rec.Box, rec.BoxIDs), nil

	default:
		return pairwise.Geometry{}, fmt.Errorf("%w: unknown cached kind %v", ErrInvalidGeometry, info.kind)
	}
}

// emitRelations finalizes every gid Add ever registered, expands each
// resulting relation across its reference aliases, and writes one output
// line per confirmed predicate (spec.md §6: "prefix gidA separator gidB
// suffix", with a configurable separator per predicate) to out, sharded
// round-robin across its shards.
func (s *Sweeper) emitRelations(out *relio.Writer) error {
	gids := make([]string, 0, len(s.subCounts))
	for gid := range s.subCounts {
		gids = append(gids, gid)
	}

	shard := 0
	numShards := out.NumShards()
	if numShards < 1 {
		// stdout and discard writers have no shards and ignore the index.
		numShards = 1
	}
	for _, gid := range gids {
		for _, rel := range s.agg.Finalize(gid) {
			for _, expanded := range s.expandRelation(rel) {
				for _, line := range s.formatRelation(expanded) {
					if err := out.WriteLine(shard%numShards, line); err != nil {
						return fmt.Errorf("spatialjoin: writing relation: %w", err)
					}
					shard++
				}
			}
		}
	}
	return nil
}

// predicateOrder lists every predicate bit in spec.md §6's emission order.
var predicateOrder = []types.Predicates{
	types.PredIntersects,
	types.PredContains,
	types.PredCovers,
	types.PredTouches,
	types.PredEquals,
	types.PredOverlaps,
	types.PredCrosses,
}

// formatRelation renders rel as one "prefix gidA separator gidB suffix"
// line per confirmed predicate, using s.cfg's configured separators
// (falling back to the package default for any predicate the caller
// didn't override).
func (s *Sweeper) formatRelation(rel aggregate.Relation) []string {
	seps := s.cfg.Separators
	var lines []string
	for _, pred := range predicateOrder {
		if !rel.Preds.Has(pred) {
			continue
		}
		sep, ok := seps[pred]
		if !ok {
			sep = options.DefaultSeparators()[pred]
		}
		lines = append(lines, s.cfg.Prefix+rel.GidA+sep+rel.GidB+s.cfg.Suffix)
	}
	return lines
}

// transitiveAliases returns every reference id that replays gid's
// relations, following chains of references to references.
func (s *Sweeper) transitiveAliases(gid string) []string {
	seen := map[string]bool{gid: true}
	queue := []string{gid}
	var out []string
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, alias := range s.aliasesOf[cur] {
			if seen[alias] {
				continue
			}
			seen[alias] = true
			out = append(out, alias)
			queue = append(queue, alias)
		}
	}
	return out
}

// expandRelation replays rel for every (transitive) alias of GidA and of
// GidB, per spec.md §3: "every emitted relation for a gid is also emitted
// for each referrer, transitively."
func (s *Sweeper) expandRelation(rel aggregate.Relation) []aggregate.Relation {
	as := append([]string{rel.GidA}, s.transitiveAliases(rel.GidA)...)
	bs := append([]string{rel.GidB}, s.transitiveAliases(rel.GidB)...)

	out := make([]aggregate.Relation, 0, len(as)*len(bs))
	for _, a := range as {
		for _, b := range bs {
			out = append(out, aggregate.Relation{GidA: a, GidB: b, Preds: rel.Preds})
		}
	}
	return out
}
