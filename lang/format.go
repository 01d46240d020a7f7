package lang

import (
	"fmt"
	"io"
	"strings"
)

// Format writes the module back out in source syntax: let bindings first,
// then the module expression, normalized to one field per line with the
// given indent width.
func (m *Module) Format(w io.Writer, indent int) error {
	for _, lb := range m.Lets {
		if _, err := fmt.Fprintf(w, "let %s = ", lb.Name); err != nil {
			return err
		}

		if err := formatExpr(w, lb.Value, indent, 0); err != nil {
			return err
		}

		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	if len(m.Lets) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	if err := formatExpr(w, m.Expr, indent, 0); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w)

	return err
}

// FormatExpr renders an expression in source syntax.
func FormatExpr(e Expr, indent int) (string, error) {
	var sb strings.Builder

	if err := formatExpr(&sb, e, indent, 0); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// binOpLevel returns the precedence level of op, matching the parser's
// levels so the formatter can decide where parentheses are required.
func binOpLevel(op BinOp) int {
	switch op {
	case LogicalOr:
		return levelLogicalOr
	case LogicalAnd:
		return levelLogicalAnd
	case Eq, NotEq:
		return levelEquality
	case LessThan, GreaterThan, LessEq, GreaterEq:
		return levelRelational
	case ShiftLeft, ShiftRight:
		return levelShift
	case Plus, Minus:
		return levelAdditive
	default:
		return levelMultiplicative
	}
}

func formatExpr(w io.Writer, e Expr, indent, depth int) error {
	switch n := e.(type) {
	case *Literal:
		_, err := io.WriteString(w, formatLiteral(n))

		return err

	case *VarRef:
		_, err := io.WriteString(w, n.Name)

		return err

	case *FieldAccess:
		if err := formatOperand(w, n.Base, indent, depth); err != nil {
			return err
		}

		_, err := fmt.Fprintf(w, ".%s", n.Name)

		return err

	case *UnaryExpr:
		if _, err := io.WriteString(w, n.Op.String()); err != nil {
			return err
		}

		// A sign directly before digits would lex as part of the
		// integer literal.
		if lit, ok := n.Operand.(*Literal); ok && lit.Kind == LitInt {
			if _, err := io.WriteString(w, " "); err != nil {
				return err
			}
		}

		return formatOperand(w, n.Operand, indent, depth)

	case *BinaryExpr:
		return formatBinary(w, n, indent, depth)

	case *RecordLiteral:
		return formatRecord(w, n, indent, depth)

	case *FunctionLiteral, *CallExpr:
		return ErrNotSupported

	default:
		return ErrNotSupported
	}
}

// formatBinary parenthesizes operands that bind more loosely than the
// operator. A left operand at the same level also needs parentheses, since
// bare chains within one level parse right-associated.
func formatBinary(w io.Writer, n *BinaryExpr, indent, depth int) error {
	lvl := binOpLevel(n.Op)

	leftParen := false
	if lb, ok := n.Left.(*BinaryExpr); ok {
		leftParen = binOpLevel(lb.Op) <= lvl
	}

	if err := formatChild(w, n.Left, leftParen, indent, depth); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, " %s ", n.Op); err != nil {
		return err
	}

	rightParen := false
	if rb, ok := n.Right.(*BinaryExpr); ok {
		rightParen = binOpLevel(rb.Op) < lvl
	}

	return formatChild(w, n.Right, rightParen, indent, depth)
}

// formatOperand wraps unary and binary subexpressions in parentheses when
// they appear where only an atom may.
func formatOperand(w io.Writer, e Expr, indent, depth int) error {
	switch e.(type) {
	case *BinaryExpr, *UnaryExpr:
		return formatChild(w, e, true, indent, depth)
	default:
		return formatChild(w, e, false, indent, depth)
	}
}

func formatChild(w io.Writer, e Expr, paren bool, indent, depth int) error {
	if paren {
		if _, err := io.WriteString(w, "("); err != nil {
			return err
		}
	}

	if err := formatExpr(w, e, indent, depth); err != nil {
		return err
	}

	if paren {
		if _, err := io.WriteString(w, ")"); err != nil {
			return err
		}
	}

	return nil
}

func formatRecord(w io.Writer, n *RecordLiteral, indent, depth int) error {
	if len(n.Fields) == 0 {
		_, err := io.WriteString(w, "{}")

		return err
	}

	if _, err := io.WriteString(w, "{\n"); err != nil {
		return err
	}

	inner := strings.Repeat(" ", indent*(depth+1))

	for i := range n.Fields {
		fld := &n.Fields[i]

		if _, err := fmt.Fprintf(w, "%s%s: ", inner, fld.Name); err != nil {
			return err
		}

		if err := formatExpr(w, fld.Value, indent, depth+1); err != nil {
			return err
		}

		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%s}", strings.Repeat(" ", indent*depth))

	return err
}

func formatLiteral(n *Literal) string {
	switch n.Kind {
	case LitNil:
		return "nil"
	case LitInt:
		return fmt.Sprintf("%d", n.Int)
	case LitDouble:
		return fmt.Sprintf("%g", n.Double)
	default:
		return EncodeString(n.Str)
	}
}

// FormatValue renders an evaluated value in source syntax. Records render
// one field per line in declaration order.
func FormatValue(v Val, indent int) string {
	var sb strings.Builder

	formatValue(&sb, v, indent, 0)

	return sb.String()
}

func formatValue(sb *strings.Builder, v Val, indent, depth int) {
	if v.Kind == KindStr {
		sb.WriteString(EncodeString(v.Str))

		return
	}

	if v.Kind != KindRec {
		sb.WriteString(v.String())

		return
	}

	if v.Rec.IsEmpty() {
		sb.WriteString("{}")

		return
	}

	sb.WriteString("{\n")

	inner := strings.Repeat(" ", indent*(depth+1))

	for _, name := range v.Rec.Names() {
		fv, _ := v.Rec.Get(name)

		sb.WriteString(inner)
		sb.WriteString(name)
		sb.WriteString(": ")
		formatValue(sb, fv, indent, depth+1)
		sb.WriteString("\n")
	}

	sb.WriteString(strings.Repeat(" ", indent*depth))
	sb.WriteString("}")
}

// EncodeString renders s as a double-quoted source literal, escaping
// characters the string syntax cannot hold verbatim. Control characters
// without a named escape use the "\u{...}" form.
func EncodeString(s string) string {
	var sb strings.Builder

	sb.WriteByte('"')

	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\u{%x}`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}

	sb.WriteByte('"')

	return sb.String()
}
