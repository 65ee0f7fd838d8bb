// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package feed keeps a live, newest-first list of nominations.

	f := feed.New(feed.StoreSource{Client: store})
	if err := f.Start(ctx); err != nil {
		return err
	}
	defer f.Stop()

	state := f.State() // Nominations, Loaded, Loading

	for s := range f.Observe(ctx) {
		// every replacement
	}

Each snapshot from the store replaces the whole list in one atomic swap.
Documents without a nominee are dropped. A subscription error is logged,
clears Loading and keeps the last list; the feed then ends and is not
retried.
*/
package feed
