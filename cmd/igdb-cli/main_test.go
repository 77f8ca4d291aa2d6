package main

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/Sternrassler/igdb-api-client/internal/testutil"
	"github.com/Sternrassler/igdb-api-client/pkg/client"
	"github.com/Sternrassler/igdb-api-client/pkg/cursor"
	"github.com/alecthomas/kong"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI parses args like main does and runs the selected command.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var app cliApp
	opts := append(kongOptions(), kong.Exit(func(code int) {
		t.Fatalf("unexpected exit with code %d", code)
	}))
	parser, err := kong.New(&app, opts...)
	require.NoError(t, err)

	kctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}

	buf := &bytes.Buffer{}
	app.out = buf
	err = kctx.Run(&app.globalOptions)
	return buf.String(), err
}

func mockArgs(mock *testutil.MockIGDB, args ...string) []string {
	return append([]string{"--base-url", mock.URL(), "--api-key", "test-user-key", "--log-level", "error"}, args...)
}

func TestEndpointsCommand(t *testing.T) {
	out, err := runCLI(t, "--api-key", "k", "endpoints")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, client.Endpoints(), lines)
}

func TestFetchCommand(t *testing.T) {
	mock := testutil.NewMockIGDB()
	defer mock.Close()
	mock.APIKey = "test-user-key"

	mock.SetEndpointResponse(client.EndpointGames, "1,2,3", testutil.NewOKResponse(`[{"id":1,"name":"Mass Effect"}]`))

	out, err := runCLI(t, mockArgs(mock,
		"fetch", "games",
		"--id", "1", "--ids", "2,3",
		"--fields", "name", "--fields", "rating",
		"--filter", "rating[gt]=80",
		"--filter", "[release_dates.date][gt]=2010-01-01",
		"--limit", "10",
		"--order", "rating:desc",
	)...)
	require.NoError(t, err)

	assert.Equal(t,
		"/games/1,2,3?fields=name,rating&limit=10&order=rating:desc&filter[rating][gt]=80&filter[release_dates.date][gt]=2010-01-01",
		mock.GetLastRequestURI())
	assert.Contains(t, out, `"name": "Mass Effect"`)
}

func TestFetchCommand_Raw(t *testing.T) {
	mock := testutil.NewMockIGDB()
	defer mock.Close()
	mock.SetEndpointResponse(client.EndpointCharacters, "", testutil.NewOKResponse(`[{"id":9}]`))

	out, err := runCLI(t, mockArgs(mock, "fetch", "characters", "--search", "Urdnot Wrex", "--raw")...)
	require.NoError(t, err)

	assert.Equal(t, "[{\"id\":9}]\n", out)
	assert.Equal(t, "/characters/?fields=*&search=Urdnot%20Wrex", mock.GetLastRequestURI())
}

func TestFetchCommand_Errors(t *testing.T) {
	mock := testutil.NewMockIGDB()
	defer mock.Close()
	mock.SetEndpointResponse(client.EndpointGames, "", testutil.NewServerErrorResponse())

	_, err := runCLI(t, mockArgs(mock, "fetch", "unicorns")...)
	assert.ErrorContains(t, err, "unknown endpoint")

	_, err = runCLI(t, mockArgs(mock, "fetch", "games", "--filter", "novalue")...)
	assert.ErrorContains(t, err, "KEY=VALUE")

	_, err = runCLI(t, mockArgs(mock, "fetch", "games")...)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestScrollCommand(t *testing.T) {
	mock := testutil.NewMockIGDB()
	defer mock.Close()
	mock.SetScrollPages(client.EndpointGames, "abc", 3, []string{`[{"id":1}]`, `[{"id":2}]`, `[{"id":3}]`})

	out, err := runCLI(t, mockArgs(mock, "scroll", "games", "--raw", "--limit", "1")...)
	require.NoError(t, err)
	assert.Equal(t, "[{\"id\":1}]\n[{\"id\":2}]\n[{\"id\":3}]\n", out)

	out, err = runCLI(t, mockArgs(mock, "scroll", "games", "--raw", "--pages", "2")...)
	require.NoError(t, err)
	assert.Equal(t, "[{\"id\":1}]\n[{\"id\":2}]\n", out)
}

func TestScrollCommand_Chain(t *testing.T) {
	mock := testutil.NewMockIGDB()
	defer mock.Close()
	mock.SetScrollPages(client.EndpointGames, "abc", 3, []string{`[{"id":1}]`, `[{"id":2}]`, `[{"id":3}]`})

	mr := miniredis.RunT(t)
	key := cursor.Key{Endpoint: client.EndpointGames, Chain: "nightly"}
	chainArgs := func(pages string) []string {
		return mockArgs(mock, "scroll", "games", "--raw", "--pages", pages, "--chain", "nightly", "--redis-addr", mr.Addr())
	}

	out, err := runCLI(t, chainArgs("1")...)
	require.NoError(t, err)
	assert.Equal(t, "[{\"id\":1}]\n", out)
	assert.True(t, mr.Exists(key.String()), "cursor should be stored after the first run")

	out, err = runCLI(t, chainArgs("0")...)
	require.NoError(t, err)
	assert.Equal(t, "[{\"id\":2}]\n[{\"id\":3}]\n", out)
	assert.False(t, mr.Exists(key.String()), "cursor should be removed once the chain ends")
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in        string
		wantKey   string
		wantValue string
		wantErr   bool
	}{
		{in: "[rating][gt]=80", wantKey: "[rating][gt]", wantValue: "80"},
		{in: "rating[gt]=80", wantKey: "[rating][gt]", wantValue: "80"},
		{in: "release_dates.date[gt]=2018-01-01", wantKey: "[release_dates.date][gt]", wantValue: "2018-01-01"},
		{in: "name=Zelda", wantKey: "[name]", wantValue: "Zelda"},
		{in: "noequals", wantErr: true},
		{in: "=x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			key, value, err := parseFilter(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}
