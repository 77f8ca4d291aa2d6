package cursor

import (
	"strings"
)

// KeyPrefix prefixes every Redis key written by the store.
const KeyPrefix = "igdb:scroll"

// Key identifies the cursor of one scroll chain.
type Key struct {
	// Endpoint is the IGDB endpoint being scrolled (e.g. "games")
	Endpoint string

	// Chain names the scroll chain, so several walks over the same endpoint
	// can be tracked independently
	Chain string
}

// String generates a deterministic Redis key.
// Format: igdb:scroll:endpoint:chain
//
// Example:
//
//	igdb:scroll:games:nightly-import
func (k Key) String() string {
	parts := []string{KeyPrefix}

	endpoint := strings.Trim(k.Endpoint, "/")
	if endpoint == "" {
		endpoint = "_"
	}
	parts = append(parts, endpoint)

	chain := strings.TrimSpace(k.Chain)
	if chain == "" {
		chain = "default"
	}
	parts = append(parts, chain)

	return strings.Join(parts, ":")
}
