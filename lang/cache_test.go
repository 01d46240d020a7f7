package lang

import (
	"context"
	"strings"
	"sync"
	"testing"
)

func TestParseModuleCached_ReusesTree(t *testing.T) {
	t.Cleanup(ClearCache)

	const src = "{\n  a: 1\n}"

	first, err := ParseModuleCached(src)
	if err != nil {
		t.Fatal(err)
	}

	second, err := ParseModuleCached(src)
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Error("expected identical source to return the cached tree")
	}

	other, err := ParseModuleCached("{\n  a: 2\n}")
	if err != nil {
		t.Fatal(err)
	}

	if other == first {
		t.Error("different source must not share a tree")
	}
}

func TestParseModuleCached_CachesFailures(t *testing.T) {
	t.Cleanup(ClearCache)

	const src = "{\n  broken"

	if _, err := ParseModuleCached(src); err == nil {
		t.Fatal("expected parse error")
	}

	if _, err := ParseModuleCached(src); err == nil {
		t.Fatal("expected cached parse error")
	}
}

func TestParseModuleCached_Concurrent(t *testing.T) {
	t.Cleanup(ClearCache)

	const src = "{\n  x: 1 + 2\n}"

	var wg sync.WaitGroup

	mods := make([]*Module, 8)

	for i := range mods {
		wg.Add(1)

		go func() {
			defer wg.Done()

			m, err := ParseModuleCached(src)
			if err != nil {
				t.Error(err)

				return
			}

			mods[i] = m
		}()
	}

	wg.Wait()

	for _, m := range mods[1:] {
		if m != mods[0] {
			t.Fatal("concurrent parses must converge on one tree")
		}
	}
}

func TestParseReader(t *testing.T) {
	t.Cleanup(ClearCache)

	mod, err := ParseReader(context.Background(), strings.NewReader("{\n  a: 1\n}\n"))
	if err != nil {
		t.Fatal(err)
	}

	v, err := Eval(mod.Expr, GlobalContext())
	if err != nil {
		t.Fatal(err)
	}

	a, _ := v.Rec.Get("a")
	if !a.Equal(IntVal(1)) {
		t.Errorf("got %v", a)
	}
}

func TestClearCache(t *testing.T) {
	const src = "{\n  a: 1\n}"

	first, err := ParseModuleCached(src)
	if err != nil {
		t.Fatal(err)
	}

	ClearCache()

	second, err := ParseModuleCached(src)
	if err != nil {
		t.Fatal(err)
	}

	if first == second {
		t.Error("expected a fresh tree after clearing the cache")
	}
}
