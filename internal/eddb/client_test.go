package eddb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestFetchFile_WritesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/commodities.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`[{"id":1,"name":"Tea"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	dest := filepath.Join(t.TempDir(), "commodities.json")
	if err := c.FetchFile(context.Background(), "commodities.json", dest); err != nil {
		t.Fatalf("FetchFile: %v", err)
	}

	body, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != `[{"id":1,"name":"Tea"}]` {
		t.Errorf("fetched body = %q", body)
	}
}

func TestFetchFile_HTTPErrorLeavesNoFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	dest := filepath.Join(t.TempDir(), "systems.json")
	if err := c.FetchFile(context.Background(), "systems.json", dest); err == nil {
		t.Fatal("FetchFile should fail on non-200")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("failed download should not leave a destination file")
	}
}

func TestFetchFile_CoalescesConcurrentDownloads(t *testing.T) {
	var hits int32
	firstHit := make(chan struct{})
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			close(firstHit)
		}
		<-block
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	dest := filepath.Join(t.TempDir(), "listings.csv")

	done := make(chan error, 2)
	go func() {
		done <- c.FetchFile(context.Background(), "listings.csv", dest)
	}()
	<-firstHit
	// Second call joins the in-flight download.
	go func() {
		done <- c.FetchFile(context.Background(), "listings.csv", dest)
	}()
	time.Sleep(100 * time.Millisecond)
	close(block)
	for i := 0; i < 2; i++ {
		if err := <-done; err != nil {
			t.Fatalf("FetchFile: %v", err)
		}
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("server hits = %d, want 1 (singleflight coalescing)", got)
	}
}
