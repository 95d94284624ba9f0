package news

import (
	"context"
	"sync"
	"time"
)

// EnrichOptions bounds the concurrent article fetch.
type EnrichOptions struct {
	Workers           int           // concurrent fetches (default 8)
	PerRequestTimeout time.Duration // per-article timeout (default 10s)
	MaxFetch          int           // articles to attempt (default 20)
}

func (o EnrichOptions) withDefaults() EnrichOptions {
	if o.Workers <= 0 {
		o.Workers = DefaultEnrichWorkers
	}
	if o.PerRequestTimeout <= 0 {
		o.PerRequestTimeout = DefaultEnrichTimeout
	}
	if o.MaxFetch <= 0 {
		o.MaxFetch = DefaultMaxEnrichedDocs
	}
	return o
}

// Enrich fetches article bodies for the first MaxFetch items in place, using
// a bounded worker set with a per-request timeout. Failures leave the item's
// Content empty; Enrich never fails as a whole.
func (f *Fetcher) Enrich(ctx context.Context, items []Item, opts EnrichOptions) {
	opts = opts.withDefaults()

	limit := len(items)
	if limit > opts.MaxFetch {
		limit = opts.MaxFetch
	}

	sem := make(chan struct{}, opts.Workers)
	var wg sync.WaitGroup

	for idx := 0; idx < limit; idx++ {
		if items[idx].Link == "" {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			body, err := f.get(ctx, items[i].Link, opts.PerRequestTimeout)
			if err != nil {
				return
			}
			if text := CleanHTML(body); text != "" {
				items[i].Content = text
			}
		}(idx)
	}

	wg.Wait()
}
