package main

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Sternrassler/igdb-api-client/pkg/client"
	"github.com/Sternrassler/igdb-api-client/pkg/logging"
	"github.com/alecthomas/kong"
)

type globalOptions struct {
	BaseURL  string        `help:"IGDB API base URL." env:"IGDB_BASE_URL" default:"https://api-endpoint.igdb.com"`
	APIKey   string        `help:"IGDB user key." env:"IGDB_API_KEY" required:""`
	Timeout  time.Duration `help:"Request timeout." default:"30s"`
	LogLevel string        `help:"Log level." enum:"trace,debug,info,warn,error" default:"warn" env:"LOG_LEVEL"`

	out io.Writer `kong:"-"`
}

type cliApp struct {
	globalOptions

	Fetch     fetchCmd     `cmd:"" help:"Fetch one page of an endpoint."`
	Scroll    scrollCmd    `cmd:"" help:"Walk an endpoint with scroll pagination."`
	Endpoints endpointsCmd `cmd:"" help:"List the known endpoints."`
}

func main() {
	var cli cliApp
	ctx := kong.Parse(&cli, kongOptions()...)
	cli.out = os.Stdout
	ctx.FatalIfErrorf(ctx.Run(&cli.globalOptions))
}

func kongOptions() []kong.Option {
	return []kong.Option{
		kong.Name("igdb-cli"),
		kong.Description("Command line client for the IGDB API."),
		kong.UsageOnError(),
	}
}

// newClient sets up logging and creates the IGDB client. Logs go to stderr so
// stdout only carries results.
func (g *globalOptions) newClient() (*client.Client, error) {
	logging.Setup(logging.Config{
		Level:  logging.LogLevel(g.LogLevel),
		Pretty: true,
		Output: os.Stderr,
	})

	cfg := client.DefaultConfig(g.BaseURL, g.APIKey)
	cfg.HTTPClient = &http.Client{Timeout: g.Timeout}
	return client.New(cfg)
}

func (g *globalOptions) stdout() io.Writer {
	if g.out == nil {
		return os.Stdout
	}
	return g.out
}
