package cursor

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Header names IGDB uses for scroll pagination.
const (
	headerNextPage = "X-Next-Page"
	headerCount    = "X-Count"
)

// Entry is the stored state of a scroll chain.
type Entry struct {
	// NextPage is the continuation path from the X-Next-Page header
	NextPage string `json:"next_page"`

	// Count is the total result count from the X-Count header (0 if unknown)
	Count int `json:"count"`

	// Pages is the number of pages read so far in the chain
	Pages int `json:"pages"`

	// UpdatedAt is when the entry was last written
	UpdatedAt time.Time `json:"updated_at"`
}

// Age returns the time since the entry was last written.
func (e *Entry) Age() time.Duration {
	return time.Since(e.UpdatedAt)
}

// FromHeaders builds an entry from the scroll headers of a response.
// It reports false when the response carries no continuation.
func FromHeaders(headers http.Header) (*Entry, bool) {
	next := headers.Get(headerNextPage)
	if next == "" {
		return nil, false
	}

	entry := &Entry{
		NextPage:  next,
		UpdatedAt: time.Now(),
	}

	if countStr := strings.TrimSpace(headers.Get(headerCount)); countStr != "" {
		if count, err := strconv.Atoi(countStr); err == nil {
			entry.Count = count
		}
	}

	return entry, true
}
