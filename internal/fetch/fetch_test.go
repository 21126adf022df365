package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchSendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	data, err := New(srv.Client()).Fetch(context.Background(), srv.URL+"/icon.png")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("body: got %q", data)
	}
	if gotUA != UserAgent {
		t.Errorf("user agent: got %q, want %q", gotUA, UserAgent)
	}
}

func TestFetchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := New(srv.Client()).Fetch(context.Background(), srv.URL+"/missing.png")
	if !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("error: got %v, want ErrFetchFailed", err)
	}
}

func TestFetchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(nil).Fetch(context.Background(), url+"/gone.png")
	if !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("error: got %v, want ErrFetchFailed", err)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("//cdn.example.com/a.png"); got != "https://cdn.example.com/a.png" {
		t.Errorf("protocol-relative: got %q", got)
	}
	if got := Normalize("http://x.test/a.png"); got != "http://x.test/a.png" {
		t.Errorf("absolute: got %q", got)
	}
}
