package main

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Sternrassler/igdb-api-client/pkg/params"
)

// builderFromQuery translates proxy query parameters into a builder.
//
// ids, fields, expand, limit, offset, order, search and scroll map to the
// builder setters of the same name; every "filter[...]..." parameter becomes a
// filter, in the order given. fields and expand may be repeated.
func builderFromQuery(rawQuery string) (*params.Builder, error) {
	b := params.NewBuilder()

	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, fmt.Errorf("invalid query key %q: %w", rawKey, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", key, err)
		}

		switch {
		case key == "ids":
			b.SetIDs(value)
		case key == "fields":
			b.SetFields(value)
		case key == "expand":
			b.SetExpand(value)
		case key == "limit":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("limit must be a non-negative integer, got %q", value)
			}
			b.SetLimit(n)
		case key == "offset":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("offset must be a non-negative integer, got %q", value)
			}
			b.SetOffset(n)
		case key == "order":
			b.SetOrder(value)
		case key == "search":
			b.SetSearch(value)
		case key == "scroll":
			b.SetScroll(value)
		case strings.HasPrefix(key, "filter["):
			b.SetFilters(strings.TrimPrefix(key, "filter"), value)
		default:
			return nil, fmt.Errorf("unsupported query parameter %q", key)
		}
	}

	return b, nil
}
