package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/depviz/depviz/pkg/cache"
	"github.com/depviz/depviz/pkg/errors"
)

func TestFetchPackage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/requests/2.31.0" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"dependencies": {"urllib3": ">=1.21", "idna": ">=2.5"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, cache.NewNullCache(), time.Hour)
	info, err := c.FetchPackage(context.Background(), "requests", "2.31.0", false)
	if err != nil {
		t.Fatalf("FetchPackage: %v", err)
	}

	if info.Name != "requests" || info.Version != "2.31.0" {
		t.Errorf("info = %+v", info)
	}
	if info.Dependencies["urllib3"] != ">=1.21" {
		t.Errorf("Dependencies = %v", info.Dependencies)
	}
	if got := info.DependencyNames(); !reflect.DeepEqual(got, []string{"idna", "urllib3"}) {
		t.Errorf("DependencyNames() = %v, want sorted [idna urllib3]", got)
	}
}

func TestFetchPackageNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, cache.NewNullCache(), time.Hour)
	_, err := c.FetchPackage(context.Background(), "ghost", "1.0.0", false)
	if err == nil {
		t.Fatal("FetchPackage should fail for 404")
	}
	if !errors.Is(err, errors.ErrCodePackageNotFound) {
		t.Errorf("code = %q, want PACKAGE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestFetchPackageServerErrorRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"dependencies": {}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, cache.NewNullCache(), time.Hour)
	info, err := c.FetchPackage(context.Background(), "flaky", "1.0.0", false)
	if err != nil {
		t.Fatalf("FetchPackage: %v", err)
	}
	if len(info.Dependencies) != 0 {
		t.Errorf("Dependencies = %v, want empty", info.Dependencies)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("calls = %d, want 2 (one retry)", calls)
	}
}

func TestFetchPackageClientErrorNoRetry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, cache.NewNullCache(), time.Hour)
	_, err := c.FetchPackage(context.Background(), "denied", "1.0.0", false)
	if err == nil {
		t.Fatal("FetchPackage should fail for 403")
	}
	if !errors.Is(err, errors.ErrCodeNetwork) {
		t.Errorf("code = %q, want NETWORK_ERROR", errors.GetCode(err))
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("calls = %d, want 1 (4xx must not retry)", calls)
	}
}

func TestFetchPackageCaching(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"dependencies": {"B": "^1.0"}}`))
	}))
	defer srv.Close()

	backend, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := NewClient(srv.URL, backend, time.Hour)

	ctx := context.Background()
	if _, err := c.FetchPackage(ctx, "A", "1.0.0", false); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	info, err := c.FetchPackage(ctx, "A", "1.0.0", false)
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("calls = %d, want 1 (second fetch served from cache)", calls)
	}
	if info.Dependencies["B"] != "^1.0" {
		t.Errorf("cached Dependencies = %v", info.Dependencies)
	}

	// refresh=true bypasses the cache.
	if _, err := c.FetchPackage(ctx, "A", "1.0.0", true); err != nil {
		t.Fatalf("refresh fetch: %v", err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("calls = %d, want 2 after refresh", calls)
	}
}
