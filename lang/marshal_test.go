package lang

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/kr/pretty"
)

func TestToNative(t *testing.T) {
	v := mustEval(t, `{
  name: "api"
  port: 8000 + 80
  debug: 1 == 1
  limits: {
    depth: 3
  }
}`)

	got, err := v.ToNative()
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]any{
		"name":  "api",
		"port":  int64(8080),
		"debug": true,
		"limits": map[string]any{
			"depth": int64(3),
		},
	}

	for _, d := range pretty.Diff(want, got) {
		t.Error(d)
	}
}

func TestToNative_NonFiniteDouble(t *testing.T) {
	for _, f := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		if _, err := DoubleVal(f).ToNative(); !errors.Is(err, ErrNonFiniteDouble) {
			t.Errorf("%v: got %v, want non-finite error", f, err)
		}
	}

	// A non-finite double buried in a record poisons the whole encoding.
	rec := NewRecord()
	rec.Set("x", DoubleVal(math.NaN()))

	if _, err := RecVal(rec).ToNative(); !errors.Is(err, ErrNonFiniteDouble) {
		t.Errorf("nested: got %v", err)
	}
}

func TestWriteJSON(t *testing.T) {
	v := mustEval(t, "{\n  a: 1\n  b: \"two\"\n}")

	var sb strings.Builder
	if err := v.WriteJSON(context.Background(), &sb, 2); err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(sb.String()), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, sb.String())
	}

	if decoded["a"] != float64(1) || decoded["b"] != "two" {
		t.Errorf("unexpected decode: %# v", pretty.Formatter(decoded))
	}

	if !strings.HasSuffix(sb.String(), "\n") {
		t.Error("expected trailing newline")
	}
}

func TestWriteJSON_Compact(t *testing.T) {
	var sb strings.Builder
	if err := IntVal(42).WriteJSON(context.Background(), &sb, 0); err != nil {
		t.Fatal(err)
	}

	if sb.String() != "42\n" {
		t.Errorf("got %q", sb.String())
	}
}

func TestWriteYAML(t *testing.T) {
	v := mustEval(t, "{\n  a: 1\n  list: {\n    b: \"x\"\n  }\n}")

	var sb strings.Builder
	if err := v.WriteYAML(context.Background(), &sb, 2); err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := yaml.Unmarshal([]byte(sb.String()), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, sb.String())
	}

	if decoded["a"] != uint64(1) && decoded["a"] != int64(1) {
		t.Errorf("unexpected decode: %# v", pretty.Formatter(decoded))
	}
}
