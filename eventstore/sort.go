package eventstore

import (
	"container/heap"
	"fmt"
	"io"
	"os"
	"sort"
)

// runSize bounds how many events are sorted in memory per run before
// being spilled to a temporary file. The original holds the entire event
// log's file descriptor open and sorts in a single pass over an
// explicit on-disk buffer; here the equivalent bound is expressed as an
// event count, so memory use during the sort stays proportional to
// runSize regardless of how large the whole log is.
var runSize = 1 << 20

// ExternalSort reads every event from src (from its current position to
// EOF), and writes them back to dst in EventLess order. Runs of up to
// runSize events are sorted in memory and spilled to temporary files,
// then merged with a min-heap keyed by EventLess — the same two-phase
// structure (bounded in-memory runs, then a single merge pass) as the
// external merge sort the original engine calls out to in its own
// sortCache step.
func ExternalSort(src io.Reader, dst io.Writer) (int64, error) {
	runFiles, err := splitSortedRuns(src)
	for _, rf := range runFiles {
		defer os.Remove(rf.Name())
		defer rf.Close()
	}
	if err != nil {
		return 0, fmt.Errorf("%w: splitting runs: %v", ErrEventIO, err)
	}

	return mergeRuns(runFiles, dst)
}

func splitSortedRuns(src io.Reader) ([]*os.File, error) {
	r := NewReader(src)
	var runFiles []*os.File

	buf := make([]BoxEvent, 0, runSize)
	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		sort.Slice(buf, func(i, j int) bool { return EventLess(buf[i], buf[j]) })

		tmp, err := os.CreateTemp("", "eventstore-run-*")
		if err != nil {
			return fmt.Errorf("%w: create run file: %v", ErrEventIO, err)
		}
		w := NewWriterFromFile(tmp)
		for _, ev := range buf {
			if err := w.Add(ev); err != nil {
				return err
			}
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if _, err := tmp.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("%w: rewind run file: %v", ErrEventIO, err)
		}
		runFiles = append(runFiles, tmp)
		buf = buf[:0]
		return nil
	}

	for {
		ev, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return runFiles, fmt.Errorf("%w: reading event: %v", ErrEventIO, err)
		}
		buf = append(buf, ev)
		if len(buf) == runSize {
			if err := flush(); err != nil {
				return runFiles, err
			}
		}
	}
	if err := flush(); err != nil {
		return runFiles, err
	}

	return runFiles, nil
}

// heapItem pairs the next unread event from one run with the run's index,
// so the merge can read the next event from whichever run it popped.
type heapItem struct {
	ev     BoxEvent
	runIdx int
}

type mergeHeap []heapItem

func (h mergeHeap) Len() int           { return len(h) }
func (h mergeHeap) Less(i, j int) bool { return EventLess(h[i].ev, h[j].ev) }
func (h mergeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *mergeHeap) Push(x any)        { *h = append(*h, x.(heapItem)) }
func (h *mergeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func mergeRuns(runFiles []*os.File, dst io.Writer) (int64, error) {
	readers := make([]*Reader, len(runFiles))
	for i, f := range runFiles {
		readers[i] = NewReader(f)
	}

	h := make(mergeHeap, 0, len(readers))
	for i, r := range readers {
		ev, err := r.Next()
		if err == io.EOF {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("%w: merge read: %v", ErrEventIO, err)
		}
		h = append(h, heapItem{ev: ev, runIdx: i})
	}
	heap.Init(&h)

	var n int64
	for h.Len() > 0 {
		top := heap.Pop(&h).(heapItem)
		if err := Encode(dst, top.ev); err != nil {
			return n, fmt.Errorf("%w: merge write: %v", ErrEventIO, err)
		}
		n++

		next, err := readers[top.runIdx].Next()
		if err == io.EOF {
			continue
		}
		if err != nil {
			return n, fmt.Errorf("%w: merge read: %v", ErrEventIO, err)
		}
		heap.Push(&h, heapItem{ev: next, runIdx: top.runIdx})
	}

	return n, nil
}
