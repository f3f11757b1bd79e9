package installer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func quietFetcher() *Fetcher {
	f := NewFetcher()
	f.Quiet = true
	return f
}

func TestFetchFirstMirrorWins(t *testing.T) {
	content := []byte("bundle bytes")
	var secondHits int

	first := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(content)
	}))
	defer first.Close()
	second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secondHits++
		w.Write(content)
	}))
	defer second.Close()

	dest := filepath.Join(t.TempDir(), "out")
	err := quietFetcher().Fetch(context.Background(), []string{first.URL, second.URL}, dest, sha256hex(content))
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read dest: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("dest content = %q, want %q", got, content)
	}
	if secondHits != 0 {
		t.Errorf("second mirror was contacted %d times after first succeeded", secondHits)
	}
}

func TestFetchFallsBackOnHTTPError(t *testing.T) {
	content := []byte("good mirror content")

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer bad.Close()
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(content)
	}))
	defer good.Close()

	dest := filepath.Join(t.TempDir(), "out")
	err := quietFetcher().Fetch(context.Background(), []string{bad.URL, good.URL}, dest, sha256hex(content))
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	got, _ := os.ReadFile(dest)
	if string(got) != string(content) {
		t.Errorf("dest content = %q, want second mirror's content", got)
	}
}

func TestFetchFallsBackOnDigestMismatch(t *testing.T) {
	content := []byte("authentic content")

	tampered := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("tampered content"))
	}))
	defer tampered.Close()
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(content)
	}))
	defer good.Close()

	dest := filepath.Join(t.TempDir(), "out")
	err := quietFetcher().Fetch(context.Background(), []string{tampered.URL, good.URL}, dest, sha256hex(content))
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	got, _ := os.ReadFile(dest)
	if string(got) != string(content) {
		t.Errorf("dest content = %q, want the verified mirror's content", got)
	}
}

func TestFetchAllMirrorsFail(t *testing.T) {
	notFound := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer notFound.Close()
	tampered := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("wrong bytes"))
	}))
	defer tampered.Close()

	dest := filepath.Join(t.TempDir(), "out")
	err := quietFetcher().Fetch(context.Background(), []string{notFound.URL, tampered.URL}, dest, sha256hex([]byte("real bytes")))
	if err == nil {
		t.Fatal("Fetch should fail when every mirror is exhausted")
	}

	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Error("partial file left behind after all mirrors failed")
	}
}

func TestFetchNoMirrors(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out")
	if err := quietFetcher().Fetch(context.Background(), nil, dest, "deadbeef"); err == nil {
		t.Error("empty mirror list should error")
	}
}

func TestFetchFollowsRedirects(t *testing.T) {
	content := []byte("redirected content")

	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(content)
	}))
	defer target.Close()
	redirecting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL, http.StatusFound)
	}))
	defer redirecting.Close()

	dest := filepath.Join(t.TempDir(), "out")
	err := quietFetcher().Fetch(context.Background(), []string{redirecting.URL}, dest, sha256hex(content))
	if err != nil {
		t.Fatalf("Fetch through redirect failed: %v", err)
	}
}
