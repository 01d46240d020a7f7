package lang

import (
	"errors"
	"slices"
	"testing"
)

func loadSession(t *testing.T, source string) *Session {
	t.Helper()

	mod, err := ParseModule(source)
	if err != nil {
		t.Fatal(err)
	}

	s := NewSession()
	if _, err := s.Load(mod); err != nil {
		t.Fatal(err)
	}

	return s
}

func TestSession_EvalAgainstRoot(t *testing.T) {
	s := loadSession(t, `{
  base: 10
  svc: {
    port: base * 100
  }
}`)

	tests := []struct {
		input string
		want  Val
	}{
		{"base", IntVal(10)},
		{"base + 1", IntVal(11)},
		{"svc.port", IntVal(1000)},
		{"svc.port > base", BoolVal(true)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := s.Eval(tt.input)
			if err != nil {
				t.Fatal(err)
			}

			if !v.Equal(tt.want) {
				t.Errorf("got %v, want %v", v, tt.want)
			}
		})
	}
}

func TestSession_UnboundWithoutModule(t *testing.T) {
	s := NewSession()

	if _, err := s.Eval("base"); !errors.Is(err, ErrUnboundVariable) {
		t.Errorf("got %v, want unbound variable", err)
	}

	// Self-contained expressions evaluate fine in an empty scope.
	v, err := s.Eval("{x: 2}.x")
	if err != nil {
		t.Fatal(err)
	}

	if !v.Equal(IntVal(2)) {
		t.Errorf("got %v", v)
	}
}

func TestSession_FieldPaths(t *testing.T) {
	s := loadSession(t, `{
  a: 1
  b: {
    c: 2
    d: {
      e: 3
    }
  }
}`)

	want := []string{"a", "b", "b.c", "b.d", "b.d.e"}

	if got := s.FieldPaths(); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSession_NonRecordRoot(t *testing.T) {
	s := loadSession(t, "1 + 2")

	if !s.Root().Equal(IntVal(3)) {
		t.Errorf("root = %v", s.Root())
	}

	if got := s.FieldPaths(); len(got) != 0 {
		t.Errorf("expected no paths, got %v", got)
	}
}
