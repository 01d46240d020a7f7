package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/konfi/lang"
)

// writeSource writes module source to a temp file and returns its path.
func writeSource(t *testing.T, source string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "module.konfi")
	if err := os.WriteFile(path, []byte(source), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestEvalOutputs(t *testing.T) {
	const source = `
let base = 8000

{
	name: "api"
	port: base + 80
}
`

	tests := []struct {
		name   string
		output string
		indent int
		want   string
	}{
		{
			name:   "konfi",
			output: "konfi",
			indent: 2,
			want:   "{\n  name: \"api\"\n  port: 8080\n}\n",
		},
		{
			name:   "json_pretty",
			output: "json",
			indent: 2,
			want:   "{\n  \"name\": \"api\",\n  \"port\": 8080\n}\n",
		},
		{
			name:   "json_compact",
			output: "json",
			indent: 0,
			want:   "{\"name\":\"api\",\"port\":8080}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := &Eval{
				Source: writeSource(t, source),
				Output: tt.output,
				Indent: tt.indent,
			}

			var buf bytes.Buffer

			err := eval.run(context.Background(), &buf)
			if err != nil {
				t.Fatalf("Eval.run() error = %v", err)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("Eval.run() output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEvalYAMLOutput(t *testing.T) {
	eval := &Eval{
		Source: writeSource(t, `{ name: "api"` + "\n" + ` port: 8080 }`),
		Output: "yaml",
		Indent: 2,
	}

	var buf bytes.Buffer

	err := eval.run(context.Background(), &buf)
	if err != nil {
		t.Fatalf("Eval.run() error = %v", err)
	}

	got := buf.String()
	for _, want := range []string{"name: api", "port: 8080"} {
		if !strings.Contains(got, want) {
			t.Errorf("Eval.run() output %q missing %q", got, want)
		}
	}
}

func TestEvalScalarModule(t *testing.T) {
	eval := &Eval{
		Source: writeSource(t, "1 + 2 * 3"),
		Output: "konfi",
		Indent: 2,
	}

	var buf bytes.Buffer

	err := eval.run(context.Background(), &buf)
	if err != nil {
		t.Fatalf("Eval.run() error = %v", err)
	}

	if got := buf.String(); got != "7\n" {
		t.Errorf("Eval.run() output = %q, want %q", got, "7\n")
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   error
	}{
		{
			name:   "unbound_variable",
			source: "{ a: missing }",
			want:   lang.ErrUnboundVariable,
		},
		{
			name:   "division_by_zero",
			source: "{ a: 1 / 0 }",
			want:   lang.ErrDivisionByZero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := &Eval{
				Source: writeSource(t, tt.source),
				Output: "konfi",
				Indent: 2,
			}

			var buf bytes.Buffer

			err := eval.run(context.Background(), &buf)
			if !errors.Is(err, tt.want) {
				t.Errorf("Eval.run() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEvalParseError(t *testing.T) {
	eval := &Eval{
		Source: writeSource(t, "{ a: }"),
		Output: "konfi",
		Indent: 2,
	}

	var buf bytes.Buffer

	err := eval.run(context.Background(), &buf)
	if err == nil {
		t.Fatal("Eval.run() expected parse error")
	}

	var perr *lang.ParseError
	if !errors.As(err, &perr) {
		t.Errorf("Eval.run() error = %T, want *lang.ParseError", err)
	}
}

func TestEvalMissingSource(t *testing.T) {
	eval := &Eval{
		Source: filepath.Join(t.TempDir(), "nonexistent.konfi"),
		Output: "konfi",
		Indent: 2,
	}

	var buf bytes.Buffer

	err := eval.run(context.Background(), &buf)
	if !errors.Is(err, ErrOpenSource) {
		t.Errorf("Eval.run() error = %v, want %v", err, ErrOpenSource)
	}
}
