package dropbox

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchParsesMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files/search_v2" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("expected bearer header, got %q", got)
		}

		var body struct {
			Query   string `json:"query"`
			Options struct {
				Path       string `json:"path"`
				MaxResults int    `json:"max_results"`
			} `json:"options"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.Query != "coa" {
			t.Errorf("expected query \"coa\", got %q", body.Query)
		}
		if body.Options.Path != "/업무자료" {
			t.Errorf("search must be scoped to the root folder, got %q", body.Options.Path)
		}
		if body.Options.MaxResults != 25 {
			t.Errorf("expected default max_results 25, got %d", body.Options.MaxResults)
		}

		w.Write([]byte(`{"matches":[
			{"metadata":{"metadata":{".tag":"file","name":"coa.pdf","path_display":"/업무자료/coa/42/coa.pdf","size":1234}}},
			{"metadata":{"metadata":{".tag":"folder","name":"coa","path_display":"/업무자료/coa"}}}
		]}`))
	}))
	defer server.Close()

	c := NewClient("tok", "/업무자료")
	c.APIBase = server.URL

	matches, err := c.Search("coa", 0)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Name != "coa.pdf" || matches[0].Size != 1234 || matches[0].IsFolder {
		t.Errorf("unexpected file match: %+v", matches[0])
	}
	if !matches[1].IsFolder {
		t.Errorf("folder match not flagged: %+v", matches[1])
	}
}

func TestSearchSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error_summary":"path/not_found/.."}`))
	}))
	defer server.Close()

	c := NewClient("tok", "/업무자료")
	c.APIBase = server.URL

	if _, err := c.Search("anything", 10); err == nil {
		t.Fatal("expected API error to surface")
	}
}
