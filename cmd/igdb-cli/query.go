package main

import (
	"fmt"
	"strings"

	"github.com/Sternrassler/igdb-api-client/pkg/params"
)

// queryFlags are the builder parameters shared by fetch and scroll.
type queryFlags struct {
	Fields []string `short:"f" help:"Fields to return (repeatable, default all)."`
	Expand []string `help:"Fields to expand (repeatable)."`
	Filter []string `sep:"none" help:"Filter as KEY=VALUE, e.g. rating[gt]=80 or [rating][gt]=80 (repeatable)."`
	Limit  *int     `help:"Maximum number of results."`
	Offset *int     `help:"Results to skip."`
	Order  string   `help:"Sort order, e.g. popularity:desc."`
	Search string   `help:"Search term."`
}

func (q *queryFlags) builder() (*params.Builder, error) {
	b := params.NewBuilder()

	for _, f := range q.Fields {
		b.SetFields(f)
	}
	for _, e := range q.Expand {
		b.SetExpand(e)
	}
	for _, f := range q.Filter {
		key, value, err := parseFilter(f)
		if err != nil {
			return nil, err
		}
		b.SetFilters(key, value)
	}
	if q.Limit != nil {
		b.SetLimit(*q.Limit)
	}
	if q.Offset != nil {
		b.SetOffset(*q.Offset)
	}
	if q.Order != "" {
		b.SetOrder(q.Order)
	}
	if q.Search != "" {
		b.SetSearch(q.Search)
	}

	return b, nil
}

// parseFilter splits KEY=VALUE and brackets the leading field name of KEY,
// so "rating[gt]" and "[rating][gt]" both become "[rating][gt]".
func parseFilter(s string) (string, string, error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return "", "", fmt.Errorf("filter %q: expected KEY=VALUE", s)
	}

	if !strings.HasPrefix(key, "[") {
		field, rest, _ := strings.Cut(key, "[")
		key = "[" + field + "]"
		if rest != "" {
			key += "[" + rest
		}
	}

	return key, value, nil
}
