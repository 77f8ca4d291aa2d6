package client

import (
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// Scroll headers set by IGDB on scroll-enabled responses.
const (
	// HeaderNextPage holds the path and query of the next scroll page.
	HeaderNextPage = "X-Next-Page"

	// HeaderCount holds the total number of results of a scroll.
	HeaderCount = "X-Count"
)

// Result is a decoded IGDB response. It is usually a list of records
// (map[string]any), but may hold a single raw string when IGDB answers with
// something that is not JSON.
type Result []any

// Response is a fully read IGDB response.
//
// A Response with a non-2xx status is still a response: it is returned without
// an error so its headers and body can be inspected. Use IsError or Err to
// branch on the upstream status.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	URL        string
}

// IsError reports whether IGDB answered with a 4xx or 5xx status.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

// Err returns an *APIError for an error response, nil otherwise.
func (r *Response) Err() error {
	if !r.IsError() {
		return nil
	}
	return &APIError{
		StatusCode: r.StatusCode,
		ErrorClass: classifyStatus(r.StatusCode),
		URL:        r.URL,
		Body:       strings.TrimSpace(string(r.Body)),
	}
}

// HeaderValues returns every value of the named header.
func (r *Response) HeaderValues(name string) []string {
	return r.Header.Values(name)
}

// ProcessResponse decodes the body of resp.
//
// JSON arrays are returned as is and any other JSON value is wrapped in a
// single-element result. A body that is not JSON, or is JSON null, becomes a
// single-element result holding the raw body text. A nil resp decodes like an
// empty body.
func (c *Client) ProcessResponse(resp *Response) Result {
	if resp == nil {
		return Result{""}
	}
	return decodeBody(resp.Body)
}

func decodeBody(body []byte) Result {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil || decoded == nil {
		return Result{string(body)}
	}

	if list, ok := decoded.([]any); ok {
		return Result(list)
	}
	return Result{decoded}
}
