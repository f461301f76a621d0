package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDoJSON_RelativePathAgainstBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("User-Agent") != userAgent {
			t.Fatalf("expected service user agent, got %q", r.Header.Get("User-Agent"))
		}
		if r.Header.Get("X-Token") != "abc" {
			t.Fatalf("expected extra header forwarded")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"user-1"}`))
	}))
	defer srv.Close()

	c, err := NewWithBaseURL(srv.URL, 0)
	if err != nil {
		t.Fatalf("NewWithBaseURL error: %v", err)
	}

	var out struct {
		ID string `json:"id"`
	}
	err = c.DoJSON(context.Background(), http.MethodGet, "user", map[string]string{"X-Token": "abc"}, nil, &out)
	if err != nil {
		t.Fatalf("DoJSON error: %v", err)
	}
	if out.ID != "user-1" {
		t.Fatalf("expected decoded id, got %q", out.ID)
	}
}

func TestDoJSON_Non2xxReturnsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(0)
	err := c.DoJSON(context.Background(), http.MethodGet, srv.URL, nil, nil, nil)

	var he *HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *HTTPError, got %v", err)
	}
	if he.StatusCode != http.StatusUnauthorized || he.Body != "nope" {
		t.Fatalf("unexpected error payload: %#v", he)
	}
}

func TestDoJSON_RelativePathRequiresBaseURL(t *testing.T) {
	c := New(0)
	if err := c.DoJSON(context.Background(), http.MethodGet, "user", nil, nil, nil); err == nil {
		t.Fatalf("expected error for relative path without BaseURL")
	}
}

func TestNewWithBaseURL_RejectsMalformed(t *testing.T) {
	if _, err := NewWithBaseURL("://broken", 0); err == nil {
		t.Fatalf("expected error for malformed base url")
	}
}
