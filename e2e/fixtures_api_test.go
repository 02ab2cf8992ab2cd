//go:build e2e && unix

package main

import (
	"net/http"
	"net/http/httptest"
	"sync"
)

// fakeAPI serves canned movie API responses and records the queries it saw
type fakeAPI struct {
	server *httptest.Server

	mu      sync.Mutex
	queries []string
}

const discoverBody = `{"results":[{"id":1,"title":"Popular Pick","vote_average":6.4,"original_language":"en","release_date":"2024-03-01"}]}`

var searchBodies = map[string]string{
	"batman": `{"results":[{"id":272,"title":"Batman Begins","vote_average":7.7,"original_language":"en","release_date":"2005-06-10","poster_path":"/bb.jpg","overview":"Bruce Wayne returns to Gotham."},{"id":414906,"title":"The Batman","vote_average":7.6,"original_language":"en","release_date":"2022-03-01","overview":"A masked vigilante hunts the Riddler."}]}`,
	"nokey":  `{"response":false,"Error":"Invalid API key"}`,
}

func newFakeAPI() *fakeAPI {
	api := &fakeAPI{}
	api.server = httptest.NewServer(http.HandlerFunc(api.handle))
	return api
}

func (a *fakeAPI) handle(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "Bearer e2e-token" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")

	switch r.URL.Path {
	case "/discover/movie":
		_, _ = w.Write([]byte(discoverBody))
	case "/search/movie":
		query := r.URL.Query().Get("query")
		a.mu.Lock()
		a.queries = append(a.queries, query)
		a.mu.Unlock()

		if body, ok := searchBodies[query]; ok {
			_, _ = w.Write([]byte(body))
			return
		}
		if query == "boom" {
			http.Error(w, "upstream down", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"results":[]}`))
	default:
		http.NotFound(w, r)
	}
}

// Queries returns the search terms received so far
func (a *fakeAPI) Queries() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.queries...)
}

func (a *fakeAPI) Close() {
	a.server.Close()
}

// CreateTestWorkspace creates an isolated HOME and a fake movie API for the app
func (tf *TUITestFramework) CreateTestWorkspace() (*fakeAPI, error) {
	tf.workspace = tf.t.TempDir()
	api := newFakeAPI()
	tf.apiURL = api.server.URL
	tf.t.Cleanup(api.Close)
	return api, nil
}
