package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/five82/stash/internal/fault"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultBaseURL {
		t.Fatalf("host = %q, want %q", u.Host, defaultBaseURL)
	}

	u, err = parseBaseURL("https://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}
}

func TestClient_FetchCatalogDecodesAndNormalizes(t *testing.T) {
	t.Parallel()

	var gotUserAgent, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != catalogPath {
			http.NotFound(w, r)
			return
		}
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ListResponse{Items: []Item{
			{ID: "b", Name: "Bravo"},
			{ID: "", Name: "No id"},
			{ID: " a ", Name: "Alpha", Category: "tools"},
			{ID: "b", Name: "Bravo duplicate"},
		}})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	items, err := c.FetchCatalog(context.Background())
	if err != nil {
		t.Fatalf("FetchCatalog returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("FetchCatalog items = %#v, want 2 items", items)
	}
	if items[0].ID != "b" || items[0].Name != "Bravo" {
		t.Fatalf("items[0] = %#v, want first Bravo", items[0])
	}
	if items[1].ID != "a" || items[1].Category != "tools" {
		t.Fatalf("items[1] = %#v, want trimmed id a", items[1])
	}
	if gotUserAgent != defaultUserAgent {
		t.Fatalf("User-Agent = %q, want %q", gotUserAgent, defaultUserAgent)
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q, want application/json", gotAccept)
	}
}

func TestClient_FetchCatalogAcceptsBareArray(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`  [{"id":"x","name":"X","iconUrl":"https://img/x.png"}]`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	items, err := c.FetchCatalog(context.Background())
	if err != nil {
		t.Fatalf("FetchCatalog returned error: %v", err)
	}
	if len(items) != 1 || items[0].IconURL != "https://img/x.png" {
		t.Fatalf("items = %#v, want one item with icon", items)
	}
}

func TestClient_ClassifiesFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		timeout time.Duration
		want    fault.Kind
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			want: fault.KindHTTP,
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
			want: fault.KindHTTP,
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"items": [`))
			},
			want: fault.KindGeneric,
		},
		{
			name: "empty body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			want: fault.KindGeneric,
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			},
			timeout: 50 * time.Millisecond,
			want:    fault.KindNetworkTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			server := httptest.NewServer(tt.handler)
			t.Cleanup(server.Close)

			c, err := NewClient(server.URL, tt.timeout)
			if err != nil {
				t.Fatalf("NewClient returned error: %v", err)
			}
			_, err = c.FetchCatalog(context.Background())
			if err == nil {
				t.Fatal("FetchCatalog returned nil error")
			}
			if got := fault.KindOf(err); got != tt.want {
				t.Fatalf("KindOf(%v) = %v, want %v", err, got, tt.want)
			}
		})
	}
}

func TestClient_UnreachableIsNetworkFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	c, err := NewClient(addr, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchCatalog(context.Background())
	if got := fault.KindOf(err); got != fault.KindNetworkOther {
		t.Fatalf("KindOf(%v) = %v, want %v", err, got, fault.KindNetworkOther)
	}
}

func TestClient_CancellationIsNotClassified(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	c, err := NewClient(server.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	_, err = c.FetchCatalog(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("FetchCatalog error = %v, want context.Canceled", err)
	}
	var fe *fault.Error
	if errors.As(err, &fe) {
		t.Fatalf("cancellation was wrapped as %v", fe)
	}
}
