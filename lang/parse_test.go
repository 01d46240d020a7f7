package lang

import (
	"errors"
	"strings"
	"testing"

	"github.com/kr/pretty"
)

func mustParseExpr(t *testing.T, source string) Expr {
	t.Helper()

	e, err := ParseExpr(source)
	if err != nil {
		t.Fatalf("ParseExpr(%q): %v", source, err)
	}

	return e
}

func bin(l Expr, op BinOp, r Expr) Expr { return &BinaryExpr{Left: l, Op: op, Right: r} }
func un(op UnOp, e Expr) Expr           { return &UnaryExpr{Op: op, Operand: e} }
func ref(name string) Expr              { return &VarRef{Name: name} }
func acc(base Expr, name string) Expr   { return &FieldAccess{Base: base, Name: name} }

func rec(fields ...Field) Expr {
	return &RecordLiteral{Fields: fields}
}

func field(name string, value Expr) Field {
	return Field{Name: name, Value: value}
}

func TestParseExpr_Integers(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"123", 123},
		{"+1", 1},
		{"-2", -2},
		{"1_000_000", 1000000},
		{"0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			e := mustParseExpr(t, tt.input)

			lit, ok := e.(*Literal)
			if !ok || lit.Kind != LitInt {
				t.Fatalf("expected int literal, got %# v", pretty.Formatter(e))
			}

			if lit.Int != tt.want {
				t.Errorf("got %d, want %d", lit.Int, tt.want)
			}
		})
	}
}

func TestParseExpr_IntegerOverflow(t *testing.T) {
	if _, err := ParseExpr("99999999999999999999"); err == nil {
		t.Fatal("expected parse error for out-of-range integer")
	}
}

func TestParseExpr_Precedence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Expr
	}{
		{
			name:  "multiplication binds tighter on the right",
			input: "x+y *3",
			want:  bin(ref("x"), Plus, bin(ref("y"), Times, IntLit(3))),
		},
		{
			name:  "multiplication binds tighter on the left",
			input: "x * y + 3",
			want:  bin(bin(ref("x"), Times, ref("y")), Plus, IntLit(3)),
		},
		{
			name:  "parentheses override precedence",
			input: "(x + y ) *3",
			want:  bin(bin(ref("x"), Plus, ref("y")), Times, IntLit(3)),
		},
		{
			name:  "same level associates right",
			input: "x+y+z",
			want:  bin(ref("x"), Plus, bin(ref("y"), Plus, ref("z"))),
		},
		{
			name:  "and binds tighter than or",
			input: "a || b && c",
			want:  bin(ref("a"), LogicalOr, bin(ref("b"), LogicalAnd, ref("c"))),
		},
		{
			name:  "comparison below logic",
			input: "1 < 2 && 2 < 3",
			want: bin(
				bin(IntLit(1), LessThan, IntLit(2)),
				LogicalAnd,
				bin(IntLit(2), LessThan, IntLit(3)),
			),
		},
		{
			name:  "subtraction associates right",
			input: "3 - 8 - 1",
			want:  bin(IntLit(3), Minus, bin(IntLit(8), Minus, IntLit(1))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParseExpr(t, tt.input)

			for _, d := range pretty.Diff(tt.want, got) {
				t.Error(d)
			}
		})
	}
}

func TestParseExpr_Unary(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Expr
	}{
		{
			name:  "double negation with space",
			input: "! !x",
			want:  un(Not, un(Not, ref("x"))),
		},
		{
			name:  "unary minus after operator",
			input: "x + - y",
			want:  bin(ref("x"), Plus, un(UnaryMinus, ref("y"))),
		},
		{
			name:  "sign adjacent to digits is a literal",
			input: "-2",
			want:  IntLit(-2),
		},
		{
			name:  "sign separated from digits is an operator",
			input: "- 2",
			want:  un(UnaryMinus, IntLit(2)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParseExpr(t, tt.input)

			for _, d := range pretty.Diff(tt.want, got) {
				t.Error(d)
			}
		})
	}
}

func TestParseExpr_FieldAccess(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Expr
	}{
		{
			name:  "access on record literal",
			input: "{x: 7}.x",
			want:  acc(rec(field("x", IntLit(7))), "x"),
		},
		{
			name:  "chained access",
			input: "{x: {y: 7}}.x.y",
			want:  acc(acc(rec(field("x", rec(field("y", IntLit(7))))), "x"), "y"),
		},
		{
			name:  "whitespace around dots",
			input: "a . b\n. c",
			want:  acc(acc(ref("a"), "b"), "c"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParseExpr(t, tt.input)

			for _, d := range pretty.Diff(tt.want, got) {
				t.Error(d)
			}
		})
	}
}

func TestParseExpr_Records(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Expr
	}{
		{
			name:  "empty",
			input: "{}",
			want:  rec(),
		},
		{
			name:  "two fields",
			input: "{\n  x: 7\n  y: 10\n}",
			want:  rec(field("x", IntLit(7)), field("y", IntLit(10))),
		},
		{
			name:  "blank lines between fields",
			input: "{\n  x: 1\n\n\n  y: 2\n}",
			want:  rec(field("x", IntLit(1)), field("y", IntLit(2))),
		},
		{
			name:  "nested",
			input: "{\n  x: {\n    y: {\n      z: \"foo\"\n    }\n  }\n}",
			want: rec(field("x",
				rec(field("y",
					rec(field("z", StrLit("foo"))))))),
		},
		{
			name:  "crlf separators",
			input: "{\r\n  x: 1\r\n  y: 2\r\n}",
			want:  rec(field("x", IntLit(1)), field("y", IntLit(2))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParseExpr(t, tt.input)

			for _, d := range pretty.Diff(tt.want, got) {
				t.Error(d)
			}
		})
	}
}

func TestParseExpr_LongChains(t *testing.T) {
	// A chain of a thousand operands must not blow up the backtracking
	// parser combinatorially.
	for _, sep := range []string{"*", "||", ">>"} {
		long := "a" + strings.Repeat(sep+"a", 999)

		if _, err := ParseExpr(long); err != nil {
			t.Fatalf("long chain %q: %v", sep, err)
		}
	}
}

func TestParseModule_LetBindings(t *testing.T) {
	mod, err := ParseModule("\nlet x = 1\n\nlet y = 2\n\n{\n  a: 1\n}\n")
	if err != nil {
		t.Fatalf("ParseModule: %v", err)
	}

	want := &Module{
		Lets: []LetBinding{
			{Name: "x", Value: IntLit(1)},
			{Name: "y", Value: IntLit(2)},
		},
		Expr: rec(field("a", IntLit(1))),
	}

	for _, d := range pretty.Diff(want, mod) {
		t.Error(d)
	}
}

func TestParseModule_LetPrefixIdent(t *testing.T) {
	// An identifier beginning with "let" is a variable, not a binding.
	mod, err := ParseModule("letter")
	if err != nil {
		t.Fatalf("ParseModule: %v", err)
	}

	if len(mod.Lets) != 0 {
		t.Errorf("expected no bindings, got %d", len(mod.Lets))
	}

	v, ok := mod.Expr.(*VarRef)
	if !ok || v.Name != "letter" {
		t.Errorf("expected variable letter, got %# v", pretty.Formatter(mod.Expr))
	}
}

func TestParseModule_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"trailing input", "1 2"},
		{"unclosed record", "{\n  x: 1\n"},
		{"missing operand", "x * "},
		{"unclosed paren", "(1 + 2"},
		{"two fields on one line", "{ x: 1 y: 2 }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseModule(tt.input); err == nil {
				t.Fatalf("expected error for %q", tt.input)
			}
		})
	}
}

func TestParseModule_ErrorPosition(t *testing.T) {
	_, err := ParseModule("{\n  x: 1\n  y: @\n}")
	if err == nil {
		t.Fatal("expected parse error")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}

	if perr.Line != 3 {
		t.Errorf("line = %d, want 3", perr.Line)
	}

	if perr.Snippet() == "" {
		t.Error("expected a source snippet")
	}
}
