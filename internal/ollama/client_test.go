package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGenerateRequestShape(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/generate" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response":"fine"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "analyst", 5*time.Second)
	reply, err := c.Generate(context.Background(), "the prompt", "the system")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if reply != "fine" {
		t.Fatalf("unexpected reply %q", reply)
	}

	if got["model"] != "analyst" || got["prompt"] != "the prompt" || got["system"] != "the system" {
		t.Fatalf("unexpected payload: %v", got)
	}
	// stream and think must be present and explicitly false
	for _, k := range []string{"stream", "think"} {
		v, ok := got[k]
		if !ok {
			t.Fatalf("payload missing %q: %v", k, got)
		}
		if v != false {
			t.Fatalf("expected %q=false, got %v", k, v)
		}
	}
	opts, ok := got["options"].(map[string]any)
	if !ok {
		t.Fatalf("payload missing options: %v", got)
	}
	if opts["temperature"] != 0.3 || opts["num_predict"] != float64(512) {
		t.Fatalf("unexpected options: %v", opts)
	}
}

func TestGenerateThinkingFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":"","thinking":"leaked advice"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", 0)
	reply, err := c.Generate(context.Background(), "p", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if reply != "leaked advice" {
		t.Fatalf("expected thinking fallback, got %q", reply)
	}
}

func TestGenerateHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, "missing", time.Second)
	if _, err := c.Generate(context.Background(), "p", ""); err == nil {
		t.Fatalf("expected error on 404")
	} else if !strings.Contains(err.Error(), "model not found") {
		t.Fatalf("expected body in error, got %v", err)
	}
}

func TestGenerateTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := New(srv.URL, "analyst", 50*time.Millisecond)
	start := time.Now()
	_, err := c.Generate(context.Background(), "p", "")
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("timeout not enforced, took %v", time.Since(start))
	}
}

func TestNewDefaults(t *testing.T) {
	c := New("", "", 0)
	if c.baseURL != DefaultBaseURL || c.model != DefaultModel || c.timeout != DefaultTimeout {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	trimmed := New("http://example.com/", "m", time.Second)
	if trimmed.baseURL != "http://example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", trimmed.baseURL)
	}
}
