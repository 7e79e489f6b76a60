//go:build e2e

package e2e

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// MockPokeAPI simulates the upstream creature API.
type MockPokeAPI struct {
	server       *httptest.Server
	mu           sync.Mutex
	requests     []RecordedRequest
	failNext     bool
	failWithCode int
}

// RecordedRequest stores information about a received request.
type RecordedRequest struct {
	Method  string
	Path    string
	Headers http.Header
}

// creatures holds the canned upstream payloads served by the mock, keyed by
// the lowercase resource name.
var creatures = map[string]string{
	"pikachu": `{
		"name": "pikachu",
		"types": [
			{"slot": 1, "type": {"name": "electric", "url": "https://pokeapi.co/api/v2/type/13/"}}
		],
		"moves": [
			{"move": {"name": "mega-punch", "url": "https://pokeapi.co/api/v2/move/5/"}},
			{"move": {"name": "thunder-shock", "url": "https://pokeapi.co/api/v2/move/84/"}},
			{"move": {"name": "quick-attack", "url": "https://pokeapi.co/api/v2/move/98/"}}
		],
		"sprites": {
			"front_default": "https://sprites.test/pikachu/front.png",
			"front_shiny": "https://sprites.test/pikachu/front-shiny.png",
			"back_default": "https://sprites.test/pikachu/back.png",
			"back_shiny": null
		}
	}`,
	"gyarados": `{
		"name": "gyarados",
		"types": [
			{"slot": 1, "type": {"name": "water", "url": "https://pokeapi.co/api/v2/type/11/"}},
			{"slot": 2, "type": {"name": "flying", "url": "https://pokeapi.co/api/v2/type/3/"}}
		],
		"moves": [
			{"move": {"name": "bite", "url": "https://pokeapi.co/api/v2/move/44/"}},
			{"move": {"name": "hydro-pump", "url": "https://pokeapi.co/api/v2/move/56/"}}
		],
		"sprites": {
			"front_default": "https://sprites.test/gyarados/front.png",
			"front_shiny": null,
			"back_default": null,
			"back_shiny": null
		}
	}`,
}

// NewMockPokeAPI creates a new mock creature API server.
func NewMockPokeAPI() *MockPokeAPI {
	m := &MockPokeAPI{
		requests: make([]RecordedRequest, 0),
	}

	m.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		m.requests = append(m.requests, RecordedRequest{
			Method:  r.Method,
			Path:    r.URL.Path,
			Headers: r.Header.Clone(),
		})

		// Check if we should fail
		if m.failNext {
			m.failNext = false
			code := m.failWithCode
			m.mu.Unlock()
			w.WriteHeader(code)
			_, _ = fmt.Fprint(w, `{"detail": "upstream failure"}`)
			return
		}
		m.mu.Unlock()

		name, ok := strings.CutPrefix(r.URL.Path, "/pokemon/")
		if !ok {
			http.NotFound(w, r)
			return
		}
		body, ok := creatures[name]
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = fmt.Fprint(w, `{"detail": "Not found."}`)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, body)
	}))

	return m
}

// URL returns the mock server's base URL.
func (m *MockPokeAPI) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockPokeAPI) Close() {
	m.server.Close()
}

// Requests returns a copy of all recorded requests.
func (m *MockPokeAPI) Requests() []RecordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RecordedRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// RequestCount returns the number of requests received so far.
func (m *MockPokeAPI) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Reset clears recorded requests and failure state.
func (m *MockPokeAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = m.requests[:0]
	m.failNext = false
}

// FailNextWithStatus makes the next request fail with the given HTTP status.
func (m *MockPokeAPI) FailNextWithStatus(code int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = true
	m.failWithCode = code
}
