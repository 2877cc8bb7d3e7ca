package spatialjoin

import (
	"fmt"
	"io"
	"os"

	"github.com/patrickbrosi/spatialjoin/eventstore"
)

// Flush finishes ingestion: every geometry cache is synced to disk, the
// event log is closed, and its contents are externally sorted into sweep
// order (eventstore.ExternalSort) so Sweep can stream it strictly left to
// right. Must be called exactly once, after every Add and before Sweep.
func (s *Sweeper) Flush() error {
	if s.flushed {
		return fmt.Errorf("spatialjoin: Flush called twice")
	}

	for _, syncFn := range []func() error{
		s.pointCache.Sync,
		s.simpleLineCache.Sync,
		s.lineCache.Sync,
		s.simpleAreaCache.Sync,
		s.areaCache.Sync,
	} {
		if err := syncFn(); err != nil {
			return fmt.Errorf("spatialjoin: syncing geometry cache: %w", err)
		}
	}

	unsorted, err := s.eventsOut.File()
	if err != nil {
		return fmt.Errorf("spatialjoin: flushing event store: %w", err)
	}
	if _, err := unsorted.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("spatialjoin: rewinding event store: %w", err)
	}

	sorted, err := os.OpenFile(s.sortedPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("spatialjoin: creating sorted event store: %w", err)
	}
	defer sorted.Close()

	if _, err := eventstore.ExternalSort(unsorted, sorted); err != nil {
		return fmt.Errorf("spatialjoin: sorting event store: %w", err)
	}

	s.flushed = true
	return nil
}
