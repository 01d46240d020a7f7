// Package lang implements the konfi configuration language: a recursive
// descent parser and a tree-walking evaluator with lazy, memoized record
// fields.
//
// # Grammar
//
// Informal EBNF, operators listed loosest to tightest:
//
//	Module     → Let* Expr EOF
//	Let        → "let" ident "=" Expr eol
//	Expr       → OrExpr
//	OrExpr     → AndExpr ("||" OrExpr)?
//	AndExpr    → EqExpr ("&&" AndExpr)?
//	EqExpr     → RelExpr (("==" | "!=") EqExpr)?
//	RelExpr    → ShiftExpr (("<" | ">" | "<=" | ">=") RelExpr)?
//	ShiftExpr  → AddExpr (("<<" | ">>") ShiftExpr)?
//	AddExpr    → MulExpr (("+" | "-") AddExpr)?
//	MulExpr    → Atom (("*" | "/") MulExpr)?
//	Atom       → (Record | "(" Expr ")" | String | Int | UnOp Atom | ident)
//	             ("." ident)*
//	Record     → "{" (Field (eol Field)*)? "}"
//	Field      → ident ":" Expr
//
// Each binary level parses its right operand at the same level, so operators
// within one precedence class associate right to left: 3-8-1 is 3-(8-1).
//
// Record fields are separated by line breaks, never commas. A field may
// reference any sibling, ancestor, or ancestor-sibling field regardless of
// declaration order; the evaluator resolves references lazily and memoizes
// each field's value the first time it is computed.
//
// # Evaluation
//
//	mod, err := lang.ParseModule(source)
//	val, err := lang.Eval(mod.Expr, lang.GlobalContext())
//
// Function literals and calls exist in the expression model but have no
// evaluation semantics; evaluating either is an error. The shift operators
// parse but do not evaluate.
package lang
