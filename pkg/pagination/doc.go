// Package pagination walks IGDB scroll chains.
//
// IGDB scrolls are started by requesting an endpoint with scroll=1. Each
// response carries the path of the next page in X-Next-Page and the total
// result count in X-Count; the last page has no X-Next-Page. Cursors expire
// after a few minutes of inactivity.
//
// A Scroller holds the cursor of one chain explicitly, so several chains can
// share a client:
//
//	s := pagination.NewScroller(igdbClient, pagination.DefaultConfig())
//	first, err := s.Seed(ctx, "games", params.NewBuilder().SetLimit(50))
//	...
//	err = s.Walk(ctx, func(p *pagination.Page) error {
//		return process(p.Data)
//	})
//
// With a CursorStore and a chain name configured, the cursor is written after
// every page and Resume picks the chain up again, e.g. after a restart.
//
// Pages are requested one at a time.
package pagination
