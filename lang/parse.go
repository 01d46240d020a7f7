package lang

import (
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseModule parses a complete source file: zero or more let bindings,
// each on its own line, followed by exactly one expression. The entire
// input must be consumed.
func ParseModule(source string) (*Module, error) {
	p := &parser{src: source}

	mod, ok := p.module()
	if !ok || p.pos != len(p.src) {
		return nil, p.syntaxError()
	}

	return mod, nil
}

// ParseExpr parses a single expression. The entire input must be consumed.
func ParseExpr(source string) (Expr, error) {
	p := &parser{src: source}

	e, ok := p.expr()
	if !ok {
		return nil, p.syntaxError()
	}

	if p.pos != len(p.src) {
		p.fail(p.pos, "end of input")

		return nil, p.syntaxError()
	}

	return e, nil
}

// parser is a backtracking recursive-descent parser. Alternatives are tried
// in order, restoring the input position on failure. The furthest failure
// offset and its expected tokens survive backtracking so the final error
// points at the most advanced parse attempt.
type parser struct {
	src      string
	pos      int
	furthest int
	expected []string

	// fatal is set once an error can no longer be recovered by trying
	// another alternative, such as a malformed parenthesized expression.
	fatal *ParseError
}

// binary operator precedence levels, loosest first
const (
	levelLogicalOr = iota
	levelLogicalAnd
	levelEquality
	levelRelational
	levelShift
	levelAdditive
	levelMultiplicative
)

func (p *parser) syntaxError() error {
	if p.fatal != nil {
		return p.fatal
	}

	exp := slices.Clone(p.expected)
	slices.Sort(exp)

	return NewParseError(p.src, p.furthest, slices.Compact(exp)...)
}

// fail records what was expected at the given offset. Only the failures at
// the furthest offset reached are retained.
func (p *parser) fail(pos int, expected ...string) {
	switch {
	case pos > p.furthest:
		p.furthest = pos
		p.expected = append(p.expected[:0], expected...)
	case pos == p.furthest:
		p.expected = append(p.expected, expected...)
	}
}

// lit consumes the exact text s, or records it as expected and leaves the
// position unchanged.
func (p *parser) lit(s string) bool {
	if strings.HasPrefix(p.src[p.pos:], s) {
		p.pos += len(s)

		return true
	}

	p.fail(p.pos, strconv.Quote(s))

	return false
}

// skipInline consumes spaces and tabs.
func (p *parser) skipInline() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

// skipMulti consumes all whitespace, including line breaks.
func (p *parser) skipMulti() {
	for p.pos < len(p.src) && isSpaceByte(p.src[p.pos]) {
		p.pos++
	}
}

// eol consumes inline whitespace followed by exactly one line break.
func (p *parser) eol() bool {
	mark := p.pos

	p.skipInline()

	if p.lit("\r\n") || p.lit("\n") {
		return true
	}

	p.pos = mark

	return false
}

// ident consumes a name: a letter or underscore followed by letters,
// digits, and underscores.
func (p *parser) ident() (string, bool) {
	start := p.pos

	r, size := utf8.DecodeRuneInString(p.src[p.pos:])
	if size == 0 || (!unicode.IsLetter(r) && r != '_') {
		p.fail(p.pos, "identifier")

		return "", false
	}

	p.pos += size

	for p.pos < len(p.src) {
		r, size = utf8.DecodeRuneInString(p.src[p.pos:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}

		p.pos += size
	}

	return p.src[start:p.pos], true
}

// intLiteral consumes an optionally signed decimal integer. Underscores may
// follow any digit as separators.
func (p *parser) intLiteral() (int64, bool) {
	mark := p.pos

	if p.pos < len(p.src) && (p.src[p.pos] == '+' || p.src[p.pos] == '-') {
		p.pos++
	}

	start := p.pos

	digits := 0
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c >= '0' && c <= '9' {
			digits++
			p.pos++

			for p.pos < len(p.src) && p.src[p.pos] == '_' {
				p.pos++
			}

			continue
		}

		break
	}

	if digits == 0 {
		p.fail(mark, "integer")
		p.pos = mark

		return 0, false
	}

	text := p.src[mark:start] + strings.ReplaceAll(p.src[start:p.pos], "_", "")

	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		p.fail(mark, "integer")
		p.pos = mark

		return 0, false
	}

	return i, true
}

func (p *parser) unop() (UnOp, bool) {
	switch {
	case p.lit("-"):
		return UnaryMinus, true
	case p.lit("+"):
		return UnaryPlus, true
	case p.lit("!"):
		return Not, true
	default:
		return 0, false
	}
}

// binop consumes a binary operator of the given precedence level. Operators
// sharing a prefix are tried longest first.
func (p *parser) binop(lvl int) (BinOp, bool) {
	switch lvl {
	case levelMultiplicative:
		switch {
		case p.lit("*"):
			return Times, true
		case p.lit("/"):
			return Div, true
		}
	case levelAdditive:
		switch {
		case p.lit("+"):
			return Plus, true
		case p.lit("-"):
			return Minus, true
		}
	case levelShift:
		switch {
		case p.lit("<<"):
			return ShiftLeft, true
		case p.lit(">>"):
			return ShiftRight, true
		}
	case levelRelational:
		switch {
		case p.lit("<="):
			return LessEq, true
		case p.lit(">="):
			return GreaterEq, true
		case p.lit("<"):
			return LessThan, true
		case p.lit(">"):
			return GreaterThan, true
		}
	case levelEquality:
		switch {
		case p.lit("=="):
			return Eq, true
		case p.lit("!="):
			return NotEq, true
		}
	case levelLogicalAnd:
		if p.lit("&&") {
			return LogicalAnd, true
		}
	case levelLogicalOr:
		if p.lit("||") {
			return LogicalOr, true
		}
	}

	return 0, false
}

// expr parses a full expression, starting at the loosest precedence level.
func (p *parser) expr() (Expr, bool) {
	return p.binExpr(levelLogicalOr)
}

// binExpr parses one precedence level. The right operand is parsed at the
// same level, so operators within a level associate to the right. A single
// function parameterized by level replaces the usual cascade of one parse
// function per level.
func (p *parser) binExpr(lvl int) (Expr, bool) {
	var (
		left Expr
		ok   bool
	)

	if lvl == levelMultiplicative {
		left, ok = p.atom()
	} else {
		left, ok = p.binExpr(lvl + 1)
	}

	if !ok {
		return nil, false
	}

	mark := p.pos

	p.skipMulti()

	op, ok := p.binop(lvl)
	if !ok {
		p.pos = mark

		return left, true
	}

	p.skipMulti()

	// The operator is committed: a missing right operand is an error, not
	// a reason to fall back to the bare left operand.
	right, ok := p.binExpr(lvl)
	if !ok {
		return nil, false
	}

	return &BinaryExpr{Left: left, Op: op, Right: right}, true
}

// atom parses a primary expression and any trailing field access chain.
// Alternatives are ordered so a leading sign binds to an integer literal
// when digits follow directly, and parses as a unary operator otherwise.
func (p *parser) atom() (Expr, bool) {
	e, ok := p.atomBase()
	if !ok {
		return nil, false
	}

	// Fold ".name" suffixes into nested field accesses.
	for {
		mark := p.pos

		p.skipMulti()

		if !p.lit(".") {
			p.pos = mark

			break
		}

		p.skipMulti()

		name, ok := p.ident()
		if !ok {
			p.pos = mark

			break
		}

		e = &FieldAccess{Base: e, Name: name}
	}

	return e, true
}

func (p *parser) atomBase() (Expr, bool) {
	if p.fatal != nil {
		return nil, false
	}

	if r, ok := p.record(); ok {
		return r, true
	}

	if p.fatal == nil && p.lit("(") {
		return p.parenExpr()
	}

	if p.pos < len(p.src) && p.src[p.pos] == '"' {
		s, end, err := scanString(p.src, p.pos)
		if err == nil {
			p.pos = end

			return StrLit(s), true
		}

		p.fail(p.pos, "string")
	}

	if i, ok := p.intLiteral(); ok {
		return IntLit(i), true
	}

	mark := p.pos

	p.skipMulti()

	if op, ok := p.unop(); ok {
		p.skipMulti()

		if operand, ok := p.atom(); ok {
			return &UnaryExpr{Op: op, Operand: operand}, true
		}
	}

	p.pos = mark

	if name, ok := p.ident(); ok {
		return &VarRef{Name: name}, true
	}

	return nil, false
}

// parenExpr parses the remainder of a parenthesized expression after the
// opening parenthesis has been consumed. At this point the parse is
// committed: failure is fatal rather than an alternative to backtrack from.
func (p *parser) parenExpr() (Expr, bool) {
	p.skipMulti()

	e, ok := p.expr()
	if !ok {
		p.abort()

		return nil, false
	}

	p.skipMulti()

	if !p.lit(")") {
		p.abort()

		return nil, false
	}

	return e, true
}

// abort converts the current furthest failure into a fatal error.
func (p *parser) abort() {
	if p.fatal == nil {
		exp := slices.Clone(p.expected)
		slices.Sort(exp)
		p.fatal = NewParseError(p.src, p.furthest, slices.Compact(exp)...)
	}
}

// record parses a record literal. Fields are separated by line breaks, one
// field per line, with blank lines permitted between them.
func (p *parser) record() (Expr, bool) {
	mark := p.pos

	if !p.lit("{") {
		return nil, false
	}

	p.skipMulti()

	var fields []Field

	if f, ok := p.recField(); ok {
		fields = append(fields, f)

		for {
			sep := p.pos

			if !p.eol() {
				break
			}

			p.skipMulti()

			f, ok := p.recField()
			if !ok {
				p.pos = sep

				break
			}

			fields = append(fields, f)
		}
	}

	if p.fatal != nil {
		return nil, false
	}

	p.skipMulti()

	if !p.lit("}") {
		p.pos = mark

		return nil, false
	}

	return &RecordLiteral{Fields: fields}, true
}

// recField parses one "name: expr" entry.
func (p *parser) recField() (Field, bool) {
	mark := p.pos

	name, ok := p.ident()
	if !ok {
		return Field{}, false
	}

	p.skipMulti()

	if !p.lit(":") {
		p.pos = mark

		return Field{}, false
	}

	p.skipMulti()

	e, ok := p.expr()
	if !ok {
		p.pos = mark

		return Field{}, false
	}

	return Field{Name: name, Value: e}, true
}

// letBinding parses "let name = expr". The keyword must be followed by
// whitespace so identifiers with a "let" prefix parse as variables.
func (p *parser) letBinding() (LetBinding, bool) {
	mark := p.pos

	if !p.lit("let") {
		return LetBinding{}, false
	}

	if p.pos >= len(p.src) || !isSpaceByte(p.src[p.pos]) {
		p.pos = mark

		return LetBinding{}, false
	}

	p.skipMulti()

	name, ok := p.ident()
	if !ok {
		p.pos = mark

		return LetBinding{}, false
	}

	p.skipMulti()

	if !p.lit("=") {
		p.pos = mark

		return LetBinding{}, false
	}

	p.skipMulti()

	e, ok := p.expr()
	if !ok {
		p.pos = mark

		return LetBinding{}, false
	}

	return LetBinding{Name: name, Value: e}, true
}

// module parses let bindings, each terminated by a line break, followed by
// the module expression. Surrounding whitespace is consumed.
func (p *parser) module() (*Module, bool) {
	p.skipMulti()

	var lets []LetBinding

	for {
		mark := p.pos

		p.skipMulti()

		lb, ok := p.letBinding()
		if !ok || !p.eol() {
			p.pos = mark

			break
		}

		lets = append(lets, lb)
	}

	p.skipMulti()

	e, ok := p.expr()
	if !ok {
		return nil, false
	}

	p.skipMulti()

	return &Module{Lets: lets, Expr: e}, true
}
