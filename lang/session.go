package lang

// Session holds evaluation state for interactive use. Loading a module
// whose expression is a record puts that record in scope, so later inputs
// can reference its fields by name.
type Session struct {
	ctx  *Context
	root Val
	opts []EvalOption
}

// NewSession returns a session with an empty scope.
func NewSession(opts ...EvalOption) *Session {
	return &Session{ctx: GlobalContext(), opts: opts}
}

// Load evaluates a module and makes its value the session root. The root
// record, if any, becomes the innermost scope for subsequent Eval calls.
func (s *Session) Load(mod *Module) (Val, error) {
	global := GlobalContext()

	v, err := Eval(mod.Expr, global, s.opts...)
	if err != nil {
		return Val{}, err
	}

	s.root = v
	s.ctx = global

	if lit, ok := mod.Expr.(*RecordLiteral); ok && v.Kind == KindRec {
		s.ctx = childContext(global, v.Rec, lit)
	}

	return v, nil
}

// Eval parses one expression and evaluates it in the session scope.
func (s *Session) Eval(source string) (Val, error) {
	e, err := ParseExpr(source)
	if err != nil {
		return Val{}, err
	}

	return Eval(e, s.ctx, s.opts...)
}

// Root returns the value of the most recently loaded module.
func (s *Session) Root() Val { return s.root }

// FieldPaths returns the dotted paths of all record fields reachable from
// the session root, in declaration order, for input completion.
func (s *Session) FieldPaths() []string {
	var paths []string

	if s.root.Kind == KindRec {
		paths = collectPaths(paths, "", s.root.Rec)
	}

	return paths
}

func collectPaths(paths []string, prefix string, rec *Record) []string {
	for _, name := range rec.Names() {
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}

		paths = append(paths, path)

		if v, _ := rec.Get(name); v.Kind == KindRec {
			paths = collectPaths(paths, path, v.Rec)
		}
	}

	return paths
}
