package analysis

import (
	"sync"
	"sync/atomic"
	"testing"

	"happydash/domain/happiness"

	"github.com/stretchr/testify/assert"
)

func TestMemo_EvictsOldest(t *testing.T) {
	m := NewMemo(2)
	var calls int

	compute := func(v string) func() any {
		return func() any {
			calls++
			return v
		}
	}

	assert.Equal(t, "a", m.Do("a", compute("a")))
	assert.Equal(t, "b", m.Do("b", compute("b")))
	assert.Equal(t, "a", m.Do("a", compute("a")))
	assert.Equal(t, 2, calls)

	m.Do("c", compute("c"))
	assert.Equal(t, 2, m.Stats().Entries)

	m.Do("a", compute("a"))
	assert.Equal(t, 4, calls, "oldest entry was evicted")
}

func TestMemo_ConcurrentMissComputesOnce(t *testing.T) {
	m := NewMemo(8)
	var calls atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v := m.Do("key", func() any {
				calls.Add(1)
				<-release
				return 42
			})
			assert.Equal(t, 42, v)
		}()
	}
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, calls.Load(), int32(16))
	assert.Equal(t, 42, m.Do("key", func() any { return 0 }))
	assert.Equal(t, 1, m.Stats().Entries)
}

func TestMemo_NilAndReset(t *testing.T) {
	var nilMemo *Memo
	assert.Equal(t, 1, nilMemo.Do("x", func() any { return 1 }))
	assert.Equal(t, MemoStats{}, nilMemo.Stats())

	m := NewMemo(4)
	m.Do("x", func() any { return 1 })
	m.Reset()
	assert.Equal(t, 0, m.Stats().Entries)
	assert.Equal(t, 2, m.Do("x", func() any { return 2 }))
}

func TestMemoized_RestoresType(t *testing.T) {
	m := NewMemo(4)
	rows := []happiness.RankRow{{Rank: 1, Country: "Finland"}, {Rank: 2, Country: "Chad"}}
	got := memoized(m, "k", func() happiness.Table[happiness.RankRow] {
		return happiness.OK(happiness.AnalysisRanking, rows)
	})
	assert.Equal(t, rows, got.Rows)

	again := memoized(m, "k", func() happiness.Table[happiness.RankRow] {
		return happiness.Empty[happiness.RankRow](happiness.AnalysisRanking, "recomputed")
	})
	assert.Equal(t, happiness.StatusOK, again.Status)
	assert.Equal(t, rows, again.Rows)
}

func TestMemoized_CallersCannotAlterCachedRows(t *testing.T) {
	m := NewMemo(4)
	compute := func() happiness.Table[happiness.RankRow] {
		return happiness.OK(happiness.AnalysisRanking, []happiness.RankRow{{Rank: 1, Country: "Finland"}})
	}

	first := memoized(m, "k", compute)
	first.Rows[0].Country = "Changed"

	second := memoized(m, "k", compute)
	assert.Equal(t, "Finland", second.Rows[0].Country)
	second.Rows[0].Country = "Changed again"

	third := memoized(m, "k", compute)
	assert.Equal(t, "Finland", third.Rows[0].Country)
	assert.Equal(t, int64(2), m.Stats().Hits)
}
