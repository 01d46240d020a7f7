package lang

import (
	"log/slog"
	"math"
)

// DefaultMaxEvalDepth bounds expression nesting and lazy field resolution.
// Mutually recursive field definitions exhaust the budget and fail instead
// of recursing without limit.
const DefaultMaxEvalDepth = 1000

// Context is one link of the lexical scope chain. It pairs the record being
// populated with the literal that defines it, so unresolved names can be
// located as unevaluated fields of an enclosing record.
type Context struct {
	rec    *Record
	lit    *RecordLiteral
	parent *Context
}

// GlobalContext returns the root of a scope chain: an empty record with no
// parent. Each evaluation of an independent module should start from its
// own global context.
func GlobalContext() *Context {
	return &Context{rec: NewRecord(), lit: &RecordLiteral{}}
}

func childContext(parent *Context, rec *Record, lit *RecordLiteral) *Context {
	return &Context{rec: rec, lit: lit, parent: parent}
}

// Record returns the record this context populates.
func (c *Context) Record() *Record { return c.rec }

// lookupValue walks the chain innermost first for a field that has already
// been evaluated.
func (c *Context) lookupValue(name string) (Val, bool) {
	for s := c; s != nil; s = s.parent {
		if v, ok := s.rec.Get(name); ok {
			return v, true
		}
	}

	return Val{}, false
}

// lookupField walks the chain innermost first for a record literal that
// declares the named field, returning the declaring context. The field is
// evaluated there, not at the point of reference.
func (c *Context) lookupField(name string) (*Context, *Field) {
	for s := c; s != nil; s = s.parent {
		if f := s.lit.FieldByName(name); f != nil {
			return s, f
		}
	}

	return nil, nil
}

// EvalOption adjusts evaluator behavior.
type EvalOption func(*evaluator)

// WithMaxDepth overrides the evaluation depth limit.
func WithMaxDepth(n int) EvalOption {
	return func(ev *evaluator) { ev.maxDepth = n }
}

// WithLogger enables trace logging of name resolution and memoization.
func WithLogger(l *slog.Logger) EvalOption {
	return func(ev *evaluator) { ev.log = l }
}

type evaluator struct {
	maxDepth int
	log      *slog.Logger
}

// Eval evaluates an expression against a scope chain. Records evaluate
// lazily: a field's expression runs the first time its name is resolved,
// and the result is memoized in the defining record.
func Eval(e Expr, ctx *Context, opts ...EvalOption) (Val, error) {
	ev := &evaluator{maxDepth: DefaultMaxEvalDepth}

	for _, opt := range opts {
		opt(ev)
	}

	return ev.eval(e, ctx, 0)
}

func (ev *evaluator) eval(e Expr, ctx *Context, depth int) (Val, error) {
	if depth > ev.maxDepth {
		return Val{}, ErrMaxDepthExceeded.With(slog.Int("max_depth", ev.maxDepth))
	}

	switch n := e.(type) {
	case *Literal:
		return evalLiteral(n), nil

	case *VarRef:
		return ev.evalVar(n, ctx, depth)

	case *FieldAccess:
		base, err := ev.eval(n.Base, ctx, depth+1)
		if err != nil {
			return Val{}, err
		}

		if base.Kind != KindRec {
			return Val{}, ErrInvalidFieldAccess.With(
				slog.String("type", base.TypeName()),
				slog.String("field", n.Name),
			)
		}

		v, ok := base.Rec.Get(n.Name)
		if !ok {
			return Val{}, ErrFieldNotFound.With(slog.String("field", n.Name))
		}

		return v, nil

	case *UnaryExpr:
		v, err := ev.eval(n.Operand, ctx, depth+1)
		if err != nil {
			return Val{}, err
		}

		return evalUnary(n.Op, v)

	case *BinaryExpr:
		// Both operands always evaluate. Logical operators do not
		// short-circuit.
		lv, err := ev.eval(n.Left, ctx, depth+1)
		if err != nil {
			return Val{}, err
		}

		rv, err := ev.eval(n.Right, ctx, depth+1)
		if err != nil {
			return Val{}, err
		}

		return evalBinary(n.Op, lv, rv)

	case *RecordLiteral:
		rec, err := ev.evalRecord(n, ctx, depth)
		if err != nil {
			return Val{}, err
		}

		return RecVal(rec), nil

	case *CallExpr:
		return Val{}, ErrNotSupported.With(slog.String("construct", "function call"))

	case *FunctionLiteral:
		return Val{}, ErrNotSupported.With(slog.String("construct", "function literal"))

	default:
		return Val{}, ErrNotSupported
	}
}

// evalVar resolves a name against the scope chain: first as an already
// evaluated field, then as a pending field of an enclosing record literal.
func (ev *evaluator) evalVar(n *VarRef, ctx *Context, depth int) (Val, error) {
	if v, ok := ctx.lookupValue(n.Name); ok {
		return v, nil
	}

	defCtx, fld := ctx.lookupField(n.Name)
	if fld == nil {
		return Val{}, ErrUnboundVariable.With(slog.String("name", n.Name))
	}

	if ev.log != nil {
		ev.log.Debug("resolving field out of order", "name", n.Name)
	}

	v, err := ev.eval(fld.Value, defCtx, depth+1)
	if err != nil {
		return Val{}, err
	}

	defCtx.rec.Set(fld.Name, v)

	return v, nil
}

// evalRecord builds a record by evaluating fields in declaration order. A
// field already memoized by an out-of-order reference is not evaluated
// again. The record is shared, not copied, so every reference observes the
// same memoized fields.
func (ev *evaluator) evalRecord(lit *RecordLiteral, ctx *Context, depth int) (*Record, error) {
	rec := NewRecord()
	recCtx := childContext(ctx, rec, lit)

	for i := range lit.Fields {
		fld := &lit.Fields[i]
		if rec.Has(fld.Name) {
			continue
		}

		v, err := ev.eval(fld.Value, recCtx, depth+1)
		if err != nil {
			return nil, err
		}

		rec.Set(fld.Name, v)
	}

	return rec, nil
}

func evalLiteral(n *Literal) Val {
	switch n.Kind {
	case LitInt:
		return IntVal(n.Int)
	case LitDouble:
		return DoubleVal(n.Double)
	case LitStr:
		return StrVal(n.Str)
	default:
		return NilVal()
	}
}

func evalUnary(op UnOp, v Val) (Val, error) {
	switch op {
	case UnaryPlus:
		return v, nil

	case UnaryMinus:
		switch v.Kind {
		case KindInt:
			return IntVal(-v.Int), nil
		case KindDouble:
			return DoubleVal(-v.Double), nil
		default:
			return Val{}, ErrTypeMismatch.With(
				slog.String("op", op.String()),
				slog.String("type", v.TypeName()),
			)
		}

	case Not:
		return BoolVal(!v.Truthy()), nil

	default:
		return Val{}, ErrUnsupportedOperator.With(slog.String("op", op.String()))
	}
}

func evalBinary(op BinOp, lv, rv Val) (Val, error) {
	switch op {
	case Times, Div, Plus, Minus:
		return evalArith(op, lv, rv)

	case LessThan, GreaterThan, LessEq, GreaterEq, Eq, NotEq:
		return evalCompare(op, lv, rv)

	case LogicalAnd:
		return BoolVal(lv.Truthy() && rv.Truthy()), nil

	case LogicalOr:
		return BoolVal(lv.Truthy() || rv.Truthy()), nil

	default:
		return Val{}, ErrUnsupportedOperator.With(slog.String("op", op.String()))
	}
}

// evalArith applies an arithmetic operator to two numbers. Mixing int and
// double promotes to double.
func evalArith(op BinOp, lv, rv Val) (Val, error) {
	if lv.Kind == KindInt && rv.Kind == KindInt {
		return intArith(op, lv.Int, rv.Int)
	}

	a, aok := asDouble(lv)
	b, bok := asDouble(rv)

	if !aok || !bok {
		return Val{}, arithTypeError(op, lv, rv)
	}

	switch op {
	case Times:
		return DoubleVal(a * b), nil
	case Div:
		return DoubleVal(a / b), nil
	case Plus:
		return DoubleVal(a + b), nil
	default:
		return DoubleVal(a - b), nil
	}
}

func intArith(op BinOp, a, b int64) (Val, error) {
	switch op {
	case Times:
		return IntVal(a * b), nil
	case Div:
		if b == 0 {
			return Val{}, ErrDivisionByZero
		}

		return IntVal(a / b), nil
	case Plus:
		return IntVal(a + b), nil
	default:
		return IntVal(a - b), nil
	}
}

// evalCompare applies a comparison operator. Numbers compare with cross
// promotion; strings and booleans compare with operands of their own kind.
// Booleans order false before true.
func evalCompare(op BinOp, lv, rv Val) (Val, error) {
	var cmp int

	switch {
	case isNumeric(lv) && isNumeric(rv):
		if lv.Kind == KindInt && rv.Kind == KindInt {
			cmp = compareOrdered(lv.Int, rv.Int)
		} else {
			a, _ := asDouble(lv)
			b, _ := asDouble(rv)
			cmp = compareFloat(a, b, op)
		}

	case lv.Kind == KindStr && rv.Kind == KindStr:
		cmp = compareOrdered(lv.Str, rv.Str)

	case lv.Kind == KindBool && rv.Kind == KindBool:
		cmp = compareOrdered(boolInt(lv.Bool), boolInt(rv.Bool))

	default:
		return Val{}, arithTypeError(op, lv, rv)
	}

	switch op {
	case LessThan:
		return BoolVal(cmp < 0), nil
	case GreaterThan:
		return BoolVal(cmp > 0), nil
	case LessEq:
		return BoolVal(cmp <= 0), nil
	case GreaterEq:
		return BoolVal(cmp >= 0), nil
	case Eq:
		return BoolVal(cmp == 0), nil
	default:
		return BoolVal(cmp != 0), nil
	}
}

func compareOrdered[T int64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareFloat returns an ordering for two doubles. NaN is unordered: the
// result is chosen per operator so that only != reports true when either
// operand is NaN.
func compareFloat(a, b float64, op BinOp) int {
	if math.IsNaN(a) || math.IsNaN(b) {
		if op == GreaterThan || op == GreaterEq {
			return -1
		}

		return 1
	}

	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func isNumeric(v Val) bool {
	return v.Kind == KindInt || v.Kind == KindDouble
}

func asDouble(v Val) (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.Int), true
	case KindDouble:
		return v.Double, true
	default:
		return 0, false
	}
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}

	return 0
}

func arithTypeError(op BinOp, lv, rv Val) error {
	return ErrTypeMismatch.With(
		slog.String("op", op.String()),
		slog.String("left", lv.TypeName()),
		slog.String("right", rv.TypeName()),
	)
}
