package depgraph

import (
	"testing"

	"github.com/depviz/depviz/pkg/errors"
)

func TestResolveRootExactMatch(t *testing.T) {
	g := New()
	g.Declare("X", []string{"Y"})

	res, err := ResolveRoot(g, "X")
	if err != nil {
		t.Fatalf("ResolveRoot: %v", err)
	}
	if res.Resolved != "X" || res.Fallback {
		t.Errorf("ResolveRoot = %+v, want exact match on X", res)
	}
}

func TestResolveRootFallback(t *testing.T) {
	g := New()
	g.Declare("X", []string{"Y"})

	res, err := ResolveRoot(g, "Z")
	if err != nil {
		t.Fatalf("ResolveRoot: %v", err)
	}
	if res.Resolved != "X" {
		t.Errorf("Resolved = %q, want first declared package X", res.Resolved)
	}
	if !res.Fallback {
		t.Error("Fallback = false, fallback resolution must be reported")
	}
	if res.Requested != "Z" {
		t.Errorf("Requested = %q, want Z", res.Requested)
	}
}

func TestResolveRootEmptyGraph(t *testing.T) {
	_, err := ResolveRoot(New(), "A")
	if err == nil {
		t.Fatal("ResolveRoot on empty graph should fail")
	}
	if !errors.Is(err, errors.ErrCodeNoRootAvailable) {
		t.Errorf("error code = %q, want NO_ROOT_AVAILABLE", errors.GetCode(err))
	}
}
