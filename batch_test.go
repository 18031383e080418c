package wallet

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

// slowSource counts concurrent in-flight PriceAt calls and records the peak.
type slowSource struct {
	known    map[string]float64
	inFlight atomic.Int64
	peak     atomic.Int64
}

func (s *slowSource) PriceAt(asset string, at time.Time) Price {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(2 * time.Millisecond) // simulate network latency
	if v, ok := s.known[asset]; ok {
		return PriceOf(v)
	}
	return UnknownPrice
}

func TestBatchPrices_completeAndBounded(t *testing.T) {
	src := &slowSource{known: map[string]float64{}}
	var assets []string
	for i := 0; i < 25; i++ {
		asset := fmt.Sprintf("AS%02d", i)
		assets = append(assets, asset)
		if i%2 == 0 {
			src.known[asset] = float64(i)
		}
	}

	got := BatchPrices(src, assets, time.Now())

	// complete: one entry per requested asset, failures included
	if len(got) != len(assets) {
		t.Fatalf("len(results) = %d, want %d", len(got), len(assets))
	}
	for i, asset := range assets {
		p, ok := got[asset]
		if !ok {
			t.Errorf("results missing %s", asset)
			continue
		}
		if i%2 == 0 {
			if want := PriceOf(float64(i)); !p.Equal(want) {
				t.Errorf("results[%s] = %s, want %s", asset, p, want)
			}
		} else if p.IsKnown() {
			t.Errorf("results[%s] = %s, want unknown", asset, p)
		}
	}

	if peak := src.peak.Load(); peak > batchConcurrency {
		t.Errorf("peak concurrency = %d, want <= %d", peak, batchConcurrency)
	}
}

func TestBatchPrices_empty(t *testing.T) {
	got := BatchPrices(&slowSource{}, nil, time.Now())
	if len(got) != 0 {
		t.Errorf("len(results) = %d, want 0", len(got))
	}
}
