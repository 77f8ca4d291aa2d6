// Package testutil provides testing utilities for the IGDB client.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"
)

// MockIGDBResponse defines the behavior for a mock IGDB endpoint response.
type MockIGDBResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockIGDB is a configurable mock IGDB server for testing.
type MockIGDB struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// APIKey, when set, is required in the user-key header of every request.
	APIKey string

	// Tracking
	RequestCount      int
	LastRequestURI    string
	LastRequestHeader http.Header
}

// NewMockIGDB creates a new mock IGDB server.
func NewMockIGDB() *MockIGDB {
	mock := &MockIGDB{
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastRequestURI = r.RequestURI
		mock.LastRequestHeader = r.Header.Clone()
		apiKey := mock.APIKey
		mock.mu.Unlock()

		if apiKey != "" && r.Header.Get("user-key") != apiKey {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"Err":{"status":403,"message":"Authentication failed"}}`))
			return
		}

		// Check for custom handler
		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockIGDB) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockIGDB) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockIGDB) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.LastRequestURI = ""
	m.LastRequestHeader = nil
}

// SetHandler sets a custom handler for a specific path.
func (m *MockIGDB) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a simple response for a path.
func (m *MockIGDB) SetResponse(path string, resp MockIGDBResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// SetEndpointResponse configures the response for an endpoint, optionally
// addressed by ids (e.g. "games", "1,2").
func (m *MockIGDB) SetEndpointResponse(endpoint, ids string, resp MockIGDBResponse) {
	m.SetResponse(fmt.Sprintf("/%s/%s", endpoint, ids), resp)
}

// SetScrollPages serves pages as a scroll over endpoint. The seed request on
// "/<endpoint>/" returns the first page; every page but the last carries an
// X-Next-Page header pointing at "/<endpoint>/scroll/<cursor>/?page=<n>".
// Every page carries X-Count with total.
func (m *MockIGDB) SetScrollPages(endpoint, cursor string, total int, pages []string) {
	scrollPath := fmt.Sprintf("/%s/scroll/%s/", endpoint, cursor)

	writePage := func(w http.ResponseWriter, n int) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("X-Count", strconv.Itoa(total))
		if n+1 < len(pages) {
			w.Header().Set("X-Next-Page", fmt.Sprintf("%s?page=%d", scrollPath, n+1))
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(pages[n]))
	}

	m.SetHandler("/"+endpoint+"/", func(w http.ResponseWriter, r *http.Request) {
		writePage(w, 0)
	})

	m.SetHandler(scrollPath, func(w http.ResponseWriter, r *http.Request) {
		n, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || n < 0 || n >= len(pages) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"Err":{"status":404,"message":"Scroll cursor expired"}}`))
			return
		}
		writePage(w, n)
	})
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockIGDB) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetLastRequestURI returns the raw request URI of the last request.
func (m *MockIGDB) GetLastRequestURI() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.LastRequestURI
}

// GetLastRequestHeader returns the headers of the last request.
func (m *MockIGDB) GetLastRequestHeader() http.Header {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.LastRequestHeader
}

// defaultHandler answers with an empty result list.
func (m *MockIGDB) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`[]`))
}

// NewOKResponse creates a standard 200 OK JSON response.
func NewOKResponse(data string) MockIGDBResponse {
	return MockIGDBResponse{
		StatusCode: http.StatusOK,
		Body:       data,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewNotFoundResponse creates a 404 response carrying scroll headers, as IGDB
// does for an unknown resource inside a scroll.
func NewNotFoundResponse() MockIGDBResponse {
	return MockIGDBResponse{
		StatusCode: http.StatusNotFound,
		Body:       `{"Err":{"status":404,"message":"Not found"}}`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
			"X-Count":      "0",
		},
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockIGDBResponse {
	return MockIGDBResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error": "Internal server error"}`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewTextResponse creates a 200 response with a non-JSON body.
func NewTextResponse(text string) MockIGDBResponse {
	return MockIGDBResponse{
		StatusCode: http.StatusOK,
		Body:       text,
		Headers: map[string]string{
			"Content-Type": "text/plain; charset=utf-8",
		},
	}
}

// JSONList joins raw JSON objects into a JSON array.
func JSONList(objects ...string) string {
	return "[" + strings.Join(objects, ",") + "]"
}
