package sweep

import (
	"io"

	"github.com/patrickbrosi/spatialjoin/eventstore"
)

// Candidate is one pair of geometries the sweep has determined might
// relate: both were active at the sweep coordinate the second one
// closed at, and their y-ranges overlap. Self is set for the candidates
// the sweep emits for every closing geometry when [Config].EmitSelfChecks
// is on; for those, A and B are the same geometry. The spatialjoin
// façade runs with EmitSelfChecks off and drops any Self candidate
// without a spatial test.
type Candidate struct {
	A, B Active
	Self bool
}

// Config controls candidate generation.
type Config struct {
	// NumSides is the number of independent active sets the sweep
	// maintains. 1 (the default, used for a zero value) runs a
	// single-dataset self-join: every geometry shares one active set,
	// so same-side geometries are matched against each other. 2 runs a
	// bilateral join between two datasets (side false vs. side true),
	// matching each closing geometry only against the opposite side's
	// active set. Any other value is invalid; values are taken modulo
	// NumSides the same way the original engine's _numSides does.
	NumSides int
	// UseDiagBox pre-filters candidates by their oriented ("diagonal",
	// 45-degree-rotated) bounding boxes before emitting them, rejecting
	// pairs that cannot possibly intersect even though their y-ranges
	// overlap. Disabling it emits every y-overlapping pair.
	UseDiagBox bool
	// EmitSelfChecks additionally emits a Self candidate for every
	// closing geometry. The spatialjoin façade leaves it off: reference
	// aliases are expanded when relations are written, not through the
	// sweep.
	EmitSelfChecks bool
	// CandidateBuffer sizes the output channel. A sufficiently buffered
	// channel is this package's idiomatic-Go analogue of the batched
	// job queue the original sweep feeds its worker pool from: Go's
	// scheduler already amortizes per-send overhead across a buffered
	// channel, so there's no need to hand-assemble fixed-size batches
	// the way the original does to limit queue contention.
	CandidateBuffer int
}

// Run streams events from r in sweep order, maintaining one active set
// per side, and sends a Candidate on out for every pair of
// y-overlapping, opposite-side active geometries a closing event
// produces. Run closes out before returning. r must already yield
// events in EventLess order (see eventstore.ExternalSort).
func Run(r *eventstore.Reader, cfg Config, out chan<- Candidate) error {
	defer close(out)

	numSides := cfg.NumSides
	if numSides < 1 {
		numSides = 1
	}
	actives := make([]*ActiveIndex, numSides)
	for i := range actives {
		actives[i] = NewActiveIndex()
	}

	for {
		ev, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		side := sideIndex(ev.Side) % numSides
		active := Active{ID: ev.ID, Type: ev.Type, B45: ev.B45, Point: ev.Point, Side: ev.Side, Large: ev.Large}

		if !ev.Out {
			actives[side].Insert(ev.LoY, ev.UpY, active)
			continue
		}

		actives[side].Erase(ev.LoY, ev.UpY, ev.ID)

		if cfg.EmitSelfChecks {
			out <- Candidate{A: active, B: active, Self: true}
		}

		opposite := actives[oppositeSide(side, numSides)]
		for _, other := range opposite.OverlapFindAll(ev.LoY, ev.UpY) {
			if cfg.UseDiagBox && !active.B45.Intersects(other.B45) {
				continue
			}
			out <- Candidate{A: active, B: other}
		}
	}

	return nil
}

func sideIndex(side bool) int {
	if side {
		return 1
	}
	return 0
}

// oppositeSide mirrors the original engine's actives[((int)side+1) %
// _numSides]: with numSides 1 this collapses to the same active set
// (self-join), and with numSides 2 it alternates between the two
// datasets' active sets (bilateral join).
func oppositeSide(side, numSides int) int {
	return (side + 1) % numSides
}
