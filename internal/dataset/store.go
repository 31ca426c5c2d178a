package dataset

import (
	"context"
	"fmt"
	"sync"

	"happydash/adapters/excel"
	"happydash/domain/happiness"

	"golang.org/x/sync/singleflight"
)

// LoadFunc produces the dataset and its load report
type LoadFunc func(ctx context.Context) (*happiness.Dataset, *LoadReport, error)

// Store holds the process-wide dataset. The source is read at most once;
// concurrent first callers share a single load.
type Store struct {
	load LoadFunc

	mu     sync.RWMutex
	ds     *happiness.Dataset
	report *LoadReport
	group  singleflight.Group
}

// NewStore creates a store that lazily loads from the given file
func NewStore(loader *Loader, reader excel.ReaderConfig) *Store {
	return NewStoreFunc(func(context.Context) (*happiness.Dataset, *LoadReport, error) {
		return loader.Load(reader)
	})
}

// NewRecordStore creates a store that lazily loads from a record source
func NewRecordStore(loader *Loader, src RecordSource) *Store {
	return NewStoreFunc(func(ctx context.Context) (*happiness.Dataset, *LoadReport, error) {
		return loader.LoadRecords(ctx, src)
	})
}

// NewStoreFunc creates a store around an arbitrary load function
func NewStoreFunc(load LoadFunc) *Store {
	return &Store{load: load}
}

// NewStaticStore wraps an already built dataset
func NewStaticStore(ds *happiness.Dataset) *Store {
	return &Store{ds: ds, report: &LoadReport{Source: ds.Source(), Rows: ds.Len()}}
}

// Get returns the dataset, loading it on first use. Failed loads are not
// cached so a later call retries. The shared load outlives a cancelled caller.
func (s *Store) Get(ctx context.Context) (*happiness.Dataset, error) {
	s.mu.RLock()
	ds := s.ds
	s.mu.RUnlock()
	if ds != nil {
		return ds, nil
	}

	ch := s.group.DoChan("dataset", func() (any, error) {
		s.mu.RLock()
		cached := s.ds
		s.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		loaded, report, err := s.load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.ds = loaded
		s.report = report
		s.mu.Unlock()
		return loaded, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		loaded, ok := res.Val.(*happiness.Dataset)
		if !ok {
			return nil, fmt.Errorf("unexpected type from dataset load: got %T", res.Val)
		}
		return loaded, nil
	}
}

// Report returns the load report, or nil before the first successful load
func (s *Store) Report() *LoadReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// Loaded reports whether the dataset is already in memory
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds != nil
}
