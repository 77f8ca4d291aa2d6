// Package params builds the query strings sent to the IGDB API.
//
// A Builder accumulates parameters through chained setters and renders them as
// "<ids>?<query><filters>". IGDB expects list values with literal commas and
// filter keys with literal brackets, so nothing in the output is percent-encoded.
package params

import (
	"strconv"
	"strings"
)

// Wildcard selects every field of a resource.
const Wildcard = "*"

// Builder accumulates query parameters for a single logical request.
// A Builder is not safe for concurrent use.
type Builder struct {
	expand []string
	fields []string

	// filters keep the position of the first write for each key
	filterKeys []string
	filters    map[string]string

	ids []string

	limit  *int
	offset *int
	order  *string
	search *string
	scroll *string
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// SetExpand appends a relation to expand (e.g. "game.developers").
func (b *Builder) SetExpand(expand string) *Builder {
	b.expand = append(b.expand, expand)
	return b
}

// SetFields appends a field to the selection. Without any field the builder
// selects everything.
func (b *Builder) SetFields(fields string) *Builder {
	b.fields = append(b.fields, fields)
	return b
}

// SetFilters sets the value for a bracketed filter key, replacing any previous
// value for the same key.
//
// Usage:
//
//	builder.SetFilters("[release_dates.date][gt]", "2018-01-01")
func (b *Builder) SetFilters(key, value string) *Builder {
	if b.filters == nil {
		b.filters = make(map[string]string)
	}
	if _, ok := b.filters[key]; !ok {
		b.filterKeys = append(b.filterKeys, key)
	}
	b.filters[key] = value
	return b
}

// SetID appends a single numeric id.
func (b *Builder) SetID(id int) *Builder {
	b.ids = append(b.ids, strconv.Itoa(id))
	return b
}

// SetIDs appends a pre-joined, comma separated list of ids (e.g. "2,3").
func (b *Builder) SetIDs(ids string) *Builder {
	b.ids = append(b.ids, ids)
	return b
}

func (b *Builder) SetLimit(limit int) *Builder {
	b.limit = &limit
	return b
}

func (b *Builder) SetOffset(offset int) *Builder {
	b.offset = &offset
	return b
}

// SetOrder sets the sort order, conventionally "field:asc" or "field:desc".
func (b *Builder) SetOrder(order string) *Builder {
	b.order = &order
	return b
}

func (b *Builder) SetSearch(search string) *Builder {
	b.search = &search
	return b
}

// SetScroll enables scroll pagination (IGDB expects "1").
func (b *Builder) SetScroll(scroll string) *Builder {
	b.scroll = &scroll
	return b
}

// BuildQueryString renders the accumulated parameters.
//
// The ids become the path segment in front of the "?", the remaining
// parameters follow in a fixed order and every filter is appended as
// "&filter<key>=<value>" in the order the keys were first set.
func (b *Builder) BuildQueryString() string {
	var sb strings.Builder

	sb.WriteString(strings.Join(b.ids, ","))
	sb.WriteByte('?')

	fields := strings.Join(b.fields, ",")
	if fields == "" {
		fields = Wildcard
	}

	pairs := make([]string, 0, 7)
	if len(b.expand) > 0 {
		pairs = append(pairs, "expand="+strings.Join(b.expand, ","))
	}
	pairs = append(pairs, "fields="+fields)
	if b.limit != nil {
		pairs = append(pairs, "limit="+strconv.Itoa(*b.limit))
	}
	if b.offset != nil {
		pairs = append(pairs, "offset="+strconv.Itoa(*b.offset))
	}
	if b.order != nil {
		pairs = append(pairs, "order="+*b.order)
	}
	if b.search != nil {
		pairs = append(pairs, "search="+*b.search)
	}
	if b.scroll != nil {
		pairs = append(pairs, "scroll="+*b.scroll)
	}
	sb.WriteString(strings.Join(pairs, "&"))

	for _, key := range b.filterKeys {
		sb.WriteString("&filter")
		sb.WriteString(key)
		sb.WriteByte('=')
		sb.WriteString(b.filters[key])
	}

	return sb.String()
}

// String implements fmt.Stringer.
func (b *Builder) String() string {
	return b.BuildQueryString()
}

// Clear resets every parameter so the builder can be reused.
func (b *Builder) Clear() {
	*b = Builder{}
}

// Clone returns a deep copy of the builder.
func (b *Builder) Clone() *Builder {
	c := &Builder{
		expand:     append([]string(nil), b.expand...),
		fields:     append([]string(nil), b.fields...),
		filterKeys: append([]string(nil), b.filterKeys...),
		ids:        append([]string(nil), b.ids...),
		limit:      clonePtr(b.limit),
		offset:     clonePtr(b.offset),
		order:      clonePtr(b.order),
		search:     clonePtr(b.search),
		scroll:     clonePtr(b.scroll),
	}
	if b.filters != nil {
		c.filters = make(map[string]string, len(b.filters))
		for k, v := range b.filters {
			c.filters[k] = v
		}
	}
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
