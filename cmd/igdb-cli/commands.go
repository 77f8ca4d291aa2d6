package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Sternrassler/igdb-api-client/pkg/client"
	"github.com/Sternrassler/igdb-api-client/pkg/cursor"
	"github.com/Sternrassler/igdb-api-client/pkg/logging"
	"github.com/Sternrassler/igdb-api-client/pkg/pagination"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// fetchCmd fetches one page of an endpoint.
type fetchCmd struct {
	Endpoint string `arg:"" help:"Endpoint to query, e.g. games."`
	ID       []int  `help:"Resource id (repeatable)."`
	IDs      string `name:"ids" help:"Comma separated resource ids."`
	Raw      bool   `help:"Print the response body as received."`

	queryFlags
}

func (cmd *fetchCmd) Run(g *globalOptions) error {
	if !client.IsEndpoint(cmd.Endpoint) {
		return fmt.Errorf("unknown endpoint %q (see igdb-cli endpoints)", cmd.Endpoint)
	}

	b, err := cmd.builder()
	if err != nil {
		return err
	}
	for _, id := range cmd.ID {
		b.SetID(id)
	}
	if cmd.IDs != "" {
		b.SetIDs(cmd.IDs)
	}

	c, err := g.newClient()
	if err != nil {
		return err
	}

	resp, err := c.FetchResponse(context.Background(), cmd.Endpoint, b)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return resp.Err()
	}

	return printResult(g.stdout(), c.ProcessResponse(resp), resp.Body, cmd.Raw)
}

// scrollCmd walks an endpoint page by page.
type scrollCmd struct {
	Endpoint  string        `arg:"" help:"Endpoint to scroll, e.g. games."`
	Pages     int           `help:"Stop after this many pages (0 = all)." default:"0"`
	Chain     string        `help:"Persist the cursor under this chain name and resume it on the next run."`
	RedisAddr string        `help:"Redis address for --chain." env:"REDIS_ADDR" default:"localhost:6379"`
	CursorTTL time.Duration `help:"How long a persisted cursor is kept." default:"10m"`
	Raw       bool          `help:"Print page bodies as received."`

	queryFlags
}

var errPageLimit = errors.New("page limit reached")

func (cmd *scrollCmd) Run(g *globalOptions) error {
	if !client.IsEndpoint(cmd.Endpoint) {
		return fmt.Errorf("unknown endpoint %q (see igdb-cli endpoints)", cmd.Endpoint)
	}

	b, err := cmd.builder()
	if err != nil {
		return err
	}

	c, err := g.newClient()
	if err != nil {
		return err
	}

	ctx := context.Background()
	logger := logging.NewLogger("igdb-cli")
	config := pagination.DefaultConfig()

	if cmd.Chain != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cmd.RedisAddr})
		defer redisClient.Close()

		config.Store = cursor.NewStore(redisClient, cmd.CursorTTL)
		config.Chain = cmd.Chain
	}

	scroller := pagination.NewScroller(c, config)
	out := g.stdout()
	printed := 0

	emit := func(p *pagination.Page) error {
		if err := printResult(out, p.Data, p.Response.Body, cmd.Raw); err != nil {
			return err
		}
		printed++
		if cmd.Pages > 0 && printed >= cmd.Pages {
			return errPageLimit
		}
		return nil
	}

	resumed := false
	if cmd.Chain != "" {
		switch err := scroller.Resume(ctx, cmd.Endpoint); {
		case err == nil:
			resumed = true
		case !errors.Is(err, cursor.ErrCursorMiss):
			return err
		}
	}

	if !resumed {
		page, err := scroller.Seed(ctx, cmd.Endpoint, b)
		if err != nil {
			return err
		}
		if err := emit(page); err != nil {
			return ignorePageLimit(err)
		}
	}

	if err := scroller.Walk(ctx, emit); err != nil {
		return ignorePageLimit(err)
	}

	logger.Info().
		Str("endpoint", cmd.Endpoint).
		Int("pages", scroller.Pages()).
		Int("count", scroller.Count()).
		Msg("Scroll complete")

	return nil
}

func ignorePageLimit(err error) error {
	if errors.Is(err, errPageLimit) {
		return nil
	}
	return err
}

type endpointsCmd struct{}

func (cmd *endpointsCmd) Run(g *globalOptions) error {
	out := g.stdout()
	for _, name := range client.Endpoints() {
		fmt.Fprintln(out, name)
	}
	return nil
}

// printResult writes body verbatim when raw is set, the indented result otherwise.
func printResult(out io.Writer, result client.Result, body []byte, raw bool) error {
	if raw {
		_, err := fmt.Fprintln(out, string(body))
		return err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
