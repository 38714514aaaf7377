package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/depviz/depviz/pkg/cache"
	"github.com/depviz/depviz/pkg/errors"
	"github.com/depviz/depviz/pkg/registry"
)

func TestRegistryLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"dependencies": {"C": "^2.0", "B": "^1.0"}}`))
	}))
	defer srv.Close()

	client := registry.NewClient(srv.URL, cache.NewNullCache(), time.Hour)
	g, err := NewRegistry(client, "A", "1.0.0", false).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !reflect.DeepEqual(g.Packages(), []string{"A"}) {
		t.Errorf("Packages() = %v, want [A]", g.Packages())
	}
	deps, _ := g.Deps("A")
	if !reflect.DeepEqual(deps, []string{"B", "C"}) {
		t.Errorf("Deps(A) = %v, want sorted [B C]", deps)
	}
	// Dependencies are leaves: present as nodes, not declared.
	if g.Has("B") {
		t.Error("B should be an undeclared leaf")
	}
	if !reflect.DeepEqual(g.Nodes(), []string{"A", "B", "C"}) {
		t.Errorf("Nodes() = %v", g.Nodes())
	}
}

func TestRegistryLoadNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := registry.NewClient(srv.URL, cache.NewNullCache(), time.Hour)
	_, err := NewRegistry(client, "A", "9.9.9", false).Load(context.Background())
	if err == nil {
		t.Fatal("Load should fail for unknown package")
	}
	if !errors.Is(err, errors.ErrCodePackageNotFound) {
		t.Errorf("code = %q, want PACKAGE_NOT_FOUND", errors.GetCode(err))
	}
}
