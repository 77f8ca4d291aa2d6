package pagination

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sternrassler/igdb-api-client/pkg/client"
	"github.com/Sternrassler/igdb-api-client/pkg/cursor"
	"github.com/Sternrassler/igdb-api-client/pkg/params"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// ErrExhausted is returned by Next once the chain has no next page
	ErrExhausted = errors.New("scroll exhausted")

	// ErrNotSeeded is returned when paging before Seed or Resume
	ErrNotSeeded = errors.New("scroll not seeded")

	// ErrNoStore is returned by Resume without a cursor store and chain name
	ErrNoStore = errors.New("no cursor store configured")
)

// Fetcher is the part of the IGDB client the scroller needs.
// *client.Client implements it.
type Fetcher interface {
	FetchResponse(ctx context.Context, endpoint string, b *params.Builder) (*client.Response, error)
	ScrollResponse(ctx context.Context, path string) (*client.Response, error)
	ScrollNextPage(resp *client.Response) (string, error)
	ScrollCount(resp *client.Response) (int, error)
	ProcessResponse(resp *client.Response) client.Result
}

// CursorStore persists scroll cursors. *cursor.Store implements it.
type CursorStore interface {
	Get(ctx context.Context, key cursor.Key) (*cursor.Entry, error)
	Set(ctx context.Context, key cursor.Key, entry *cursor.Entry) error
	Delete(ctx context.Context, key cursor.Key) error
}

// Config holds scroller configuration
type Config struct {
	// MaxPages stops Walk once this many pages of the chain were read,
	// including the seed page (0 = unlimited)
	MaxPages int

	// Store persists the cursor after each page (optional)
	Store CursorStore

	// Chain names the chain in the store; required together with Store
	Chain string
}

// DefaultConfig returns an unlimited configuration without persistence.
func DefaultConfig() Config {
	return Config{}
}

// Page is one page of a scroll chain.
type Page struct {
	// Number is the 1-based position of the page in the chain
	Number int

	// Data is the decoded body
	Data client.Result

	// Response is the raw IGDB response
	Response *client.Response
}

// Scroller follows one scroll chain. It is not safe for concurrent use.
type Scroller struct {
	fetcher Fetcher
	config  Config
	logger  zerolog.Logger

	endpoint string
	cursor   string
	count    int
	pages    int
	seeded   bool
	done     bool
}

// NewScroller creates a scroller on top of fetcher.
func NewScroller(fetcher Fetcher, config Config) *Scroller {
	return &Scroller{
		fetcher: fetcher,
		config:  config,
		logger:  log.With().Str("component", "igdb-scroller").Logger(),
	}
}

// Seed starts a new chain on endpoint. The request is sent with scroll=1 on a
// copy of b, so b itself is left untouched. A nil b requests all fields.
//
// An IGDB error response is returned as its *client.APIError. A failed seed
// leaves the scroller unseeded.
func (s *Scroller) Seed(ctx context.Context, endpoint string, b *params.Builder) (*Page, error) {
	if b == nil {
		b = params.NewBuilder()
	}
	seed := b.Clone().SetScroll("1")

	s.endpoint = endpoint
	s.cursor = ""
	s.count = 0
	s.pages = 0
	s.seeded = false
	s.done = false

	s.logger.Debug().
		Str("endpoint", endpoint).
		Str("chain", s.config.Chain).
		Msg("Seeding scroll")

	resp, err := s.fetcher.FetchResponse(ctx, endpoint, seed)
	if err != nil {
		return nil, fmt.Errorf("seed scroll: %w", err)
	}

	page, err := s.advance(ctx, resp)
	if err != nil {
		return nil, err
	}
	s.seeded = true
	return page, nil
}

// Resume restores the chain stored for endpoint under the configured chain
// name. It returns cursor.ErrCursorMiss when nothing is stored, e.g. because
// the cursor expired.
func (s *Scroller) Resume(ctx context.Context, endpoint string) error {
	if s.config.Store == nil || s.config.Chain == "" {
		return ErrNoStore
	}

	entry, err := s.config.Store.Get(ctx, s.key(endpoint))
	if err != nil {
		return fmt.Errorf("resume scroll: %w", err)
	}

	s.endpoint = endpoint
	s.cursor = entry.NextPage
	s.count = entry.Count
	s.pages = entry.Pages
	s.seeded = true
	s.done = false

	s.logger.Info().
		Str("endpoint", endpoint).
		Str("chain", s.config.Chain).
		Int("pages", entry.Pages).
		Dur("age", entry.Age()).
		Msg("Resuming scroll")

	return nil
}

// Next requests the page the cursor points at.
func (s *Scroller) Next(ctx context.Context) (*Page, error) {
	if s.done {
		return nil, ErrExhausted
	}
	if !s.seeded || s.cursor == "" {
		return nil, ErrNotSeeded
	}

	resp, err := s.fetcher.ScrollResponse(ctx, s.cursor)
	if err != nil {
		return nil, fmt.Errorf("scroll page %d: %w", s.pages+1, err)
	}
	return s.advance(ctx, resp)
}

// Walk calls fn for every remaining page of the chain, in order. It stops
// without error when the chain is exhausted or MaxPages is reached, and
// returns the first error of fn or of a page request.
func (s *Scroller) Walk(ctx context.Context, fn func(*Page) error) error {
	if !s.seeded {
		return ErrNotSeeded
	}

	start := time.Now()
	visited := 0

	for !s.done {
		if s.config.MaxPages > 0 && s.pages >= s.config.MaxPages {
			s.logger.Info().
				Str("endpoint", s.endpoint).
				Int("max_pages", s.config.MaxPages).
				Msg("Scroll page limit reached")
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		page, err := s.Next(ctx)
		if err != nil {
			return err
		}
		visited++

		if err := fn(page); err != nil {
			return err
		}
	}

	s.logger.Debug().
		Str("endpoint", s.endpoint).
		Int("pages", visited).
		Bool("done", s.done).
		Dur("duration", time.Since(start)).
		Msg("Scroll walk finished")

	return nil
}

// Cursor returns the path of the next page, or "" once exhausted.
func (s *Scroller) Cursor() string {
	return s.cursor
}

// Count returns the last X-Count seen on the chain (0 if none).
func (s *Scroller) Count() int {
	return s.count
}

// Pages returns the number of pages read in the chain.
func (s *Scroller) Pages() int {
	return s.pages
}

// Done reports whether the chain has no next page.
func (s *Scroller) Done() bool {
	return s.done
}

func (s *Scroller) advance(ctx context.Context, resp *client.Response) (*Page, error) {
	if resp.IsError() {
		return nil, resp.Err()
	}

	s.pages++
	page := &Page{
		Number:   s.pages,
		Data:     s.fetcher.ProcessResponse(resp),
		Response: resp,
	}

	if count, err := s.fetcher.ScrollCount(resp); err == nil {
		s.count = count
	}

	next, err := s.fetcher.ScrollNextPage(resp)
	switch {
	case errors.Is(err, client.ErrScrollHeaderNotFound):
		s.cursor = ""
		s.done = true
	case err != nil:
		return nil, err
	default:
		s.cursor = next
	}

	s.persist(ctx)
	return page, nil
}

// persist writes the cursor to the store. Store failures are logged and do
// not fail the page, which was already read.
func (s *Scroller) persist(ctx context.Context) {
	if s.config.Store == nil || s.config.Chain == "" {
		return
	}

	key := s.key(s.endpoint)

	var err error
	if s.done {
		err = s.config.Store.Delete(ctx, key)
	} else {
		err = s.config.Store.Set(ctx, key, &cursor.Entry{
			NextPage: s.cursor,
			Count:    s.count,
			Pages:    s.pages,
		})
	}

	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("key", key.String()).
			Msg("Failed to persist scroll cursor")
	}
}

func (s *Scroller) key(endpoint string) cursor.Key {
	return cursor.Key{Endpoint: endpoint, Chain: s.config.Chain}
}
