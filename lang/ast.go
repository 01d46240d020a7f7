package lang

// UnOp identifies a unary operator.
type UnOp int

const (
	// UnaryPlus is the identity prefix operator.
	UnaryPlus UnOp = iota

	// UnaryMinus negates a numeric operand.
	UnaryMinus

	// Not negates the truthiness of its operand.
	Not
)

// String returns the source spelling of the operator.
func (op UnOp) String() string {
	switch op {
	case UnaryPlus:
		return "+"
	case UnaryMinus:
		return "-"
	case Not:
		return "!"
	default:
		return "?"
	}
}

// BinOp identifies a binary operator.
type BinOp int

const (
	Times BinOp = iota
	Div
	Plus
	Minus
	ShiftLeft
	ShiftRight
	LessThan
	GreaterThan
	LessEq
	GreaterEq
	Eq
	NotEq
	LogicalAnd
	LogicalOr
)

// String returns the source spelling of the operator.
func (op BinOp) String() string {
	switch op {
	case Times:
		return "*"
	case Div:
		return "/"
	case Plus:
		return "+"
	case Minus:
		return "-"
	case ShiftLeft:
		return "<<"
	case ShiftRight:
		return ">>"
	case LessThan:
		return "<"
	case GreaterThan:
		return ">"
	case LessEq:
		return "<="
	case GreaterEq:
		return ">="
	case Eq:
		return "=="
	case NotEq:
		return "!="
	case LogicalAnd:
		return "&&"
	case LogicalOr:
		return "||"
	default:
		return "?"
	}
}

// Expr is the interface implemented by all expression nodes.
// The tree is immutable once built by the parser.
type Expr interface {
	exprNode()
}

// LitKind identifies the kind of a literal expression.
type LitKind int

const (
	LitNil LitKind = iota
	LitInt
	LitDouble
	LitStr
)

// Literal is a source-level constant. Exactly one payload field is
// meaningful, selected by Kind. There is no floating-point literal syntax;
// LitDouble never originates from the parser.
type Literal struct {
	Kind   LitKind
	Int    int64
	Double float64
	Str    string
}

// VarRef is a reference to a named field or let binding, resolved lazily
// against the context chain at evaluation time.
type VarRef struct {
	Name string
}

// FieldAccess selects a named field from an already-evaluated record value.
type FieldAccess struct {
	Base Expr
	Name string
}

// UnaryExpr applies a unary operator to an operand.
type UnaryExpr struct {
	Op      UnOp
	Operand Expr
}

// BinaryExpr applies a binary operator to two operands.
type BinaryExpr struct {
	Left  Expr
	Op    BinOp
	Right Expr
}

// Field is one named entry of a record literal, in declaration order.
type Field struct {
	Name  string
	Value Expr
}

// RecordLiteral is the syntax of a record: an ordered sequence of named
// fields. Declaration order is the evaluator's iteration order only; lookup
// is by name.
type RecordLiteral struct {
	Lets   []LetBinding
	Fields []Field
}

// CallExpr is a function application. Calls are part of the expression
// model but have no evaluation semantics.
type CallExpr struct {
	Fn   Expr
	Args []Expr
}

// FunctionLiteral is a function value. Functions are part of the expression
// model but have no evaluation semantics.
type FunctionLiteral struct {
	Params []string
	Body   Expr
}

// LetBinding is a top-level "let name = expr" declaration. Bindings are
// parsed but not consulted by the evaluator.
type LetBinding struct {
	Name  string
	Value Expr
}

// Module is a parsed source file: optional let bindings followed by exactly
// one trailing expression.
type Module struct {
	Lets []LetBinding
	Expr Expr
}

func (*Literal) exprNode()         {}
func (*VarRef) exprNode()          {}
func (*FieldAccess) exprNode()     {}
func (*UnaryExpr) exprNode()       {}
func (*BinaryExpr) exprNode()      {}
func (*RecordLiteral) exprNode()   {}
func (*CallExpr) exprNode()        {}
func (*FunctionLiteral) exprNode() {}

// NilLit returns a nil literal expression.
func NilLit() *Literal { return &Literal{Kind: LitNil} }

// IntLit returns an integer literal expression.
func IntLit(i int64) *Literal { return &Literal{Kind: LitInt, Int: i} }

// DoubleLit returns a double literal expression.
func DoubleLit(f float64) *Literal { return &Literal{Kind: LitDouble, Double: f} }

// StrLit returns a string literal expression.
func StrLit(s string) *Literal { return &Literal{Kind: LitStr, Str: s} }

// FieldByName returns the first field with the given name, or nil.
func (r *RecordLiteral) FieldByName(name string) *Field {
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			return &r.Fields[i]
		}
	}

	return nil
}
