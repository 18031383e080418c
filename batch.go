package wallet

import (
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// batchConcurrency bounds the number of outstanding price fetches when
// valuing a whole snapshot's open positions at once.
const batchConcurrency = 10

// BatchPrices fans out one PriceAt call per asset for the same instant,
// bounded to batchConcurrency concurrent fetches.
//
// The returned mapping is complete: one entry per requested asset, whatever
// the completion order. An individual fetch failure degrades to an unknown
// price for that asset only and never aborts the batch.
func BatchPrices(src PriceSource, assets []string, at time.Time) map[string]Price {
	results := make(map[string]Price, len(assets))
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(batchConcurrency)
	for _, asset := range assets {
		g.Go(func() error {
			p := src.PriceAt(asset, at)
			mu.Lock()
			results[asset] = p
			mu.Unlock()
			return nil
		})
	}
	// workers never return an error: a failed fetch is an unknown price
	g.Wait()
	return results
}
