package ast

import "fmt"

// The constructors below panic on structurally invalid input. A malformed
// identifier or a nil required child is a programmer error in the caller,
// not a data error, and must abort generation immediately.

// NewModule returns a Module with the given package name and declarations.
func NewModule(pkg string, imports []*Import, decls ...Decl) *Module {
	mustIdent(pkg)
	return &Module{Package: pkg, Imports: imports, Decls: decls}
}

// NewImport returns an Import of names from path.
func NewImport(names []string, path string) *Import {
	return &Import{Path: path, Names: names}
}

// NewClassDef returns a ClassDef with the given name and embedded base.
func NewClassDef(name string, base TypeExpr) *ClassDef {
	mustIdent(name)
	return &ClassDef{Name: name, Base: base}
}

// NewFuncDef returns a function definition.
func NewFuncDef(name string, recv *Param, params []*Param, results []TypeExpr, body []Stmt) *FuncDef {
	mustIdent(name)
	return &FuncDef{Name: name, Recv: recv, Params: params, Results: results, Body: body}
}

// NewParam returns a named, typed parameter.
func NewParam(name string, typ TypeExpr) *Param {
	mustIdent(name)
	if typ == nil {
		panic("ast: parameter without a type")
	}
	return &Param{Name: name, Type: typ}
}

// NewAssign returns a short variable declaration statement.
func NewAssign(name string, value Expr) *Assign {
	mustIdent(name)
	mustExpr(value)
	return &Assign{Name: name, Value: value}
}

// NewCheckedAssign returns an error-checked assignment statement.
func NewCheckedAssign(name string, call Expr) *CheckedAssign {
	mustIdent(name)
	mustExpr(call)
	return &CheckedAssign{Name: name, Call: call}
}

// NewReturn returns a return statement.
func NewReturn(value Expr) *Return {
	mustExpr(value)
	return &Return{Value: value}
}

// NewIdent returns an identifier expression.
func NewIdent(name string) *Ident {
	mustIdent(name)
	return &Ident{Name: name}
}

// NewSelector returns x.name.
func NewSelector(x Expr, name string) *Selector {
	mustExpr(x)
	mustIdent(name)
	return &Selector{X: x, Name: name}
}

// NewCall returns a call of fn with args.
func NewCall(fn Expr, args ...Expr) *Call {
	mustExpr(fn)
	for _, a := range args {
		mustExpr(a)
	}
	return &Call{Fn: fn, Args: args}
}

// NewString returns a string literal.
func NewString(v string) *StringLit {
	return &StringLit{Value: v}
}

// NewMultilineString returns a string literal split one quoted line per
// source line.
func NewMultilineString(lines []string) *MultilineString {
	return &MultilineString{Lines: lines}
}

// NewMapLit returns a map[string]any composite literal.
func NewMapLit(entries ...*MapEntry) *MapLit {
	return &MapLit{Entries: entries}
}

// NewMapEntry returns a single map literal entry.
func NewMapEntry(key string, value Expr) *MapEntry {
	mustExpr(value)
	return &MapEntry{Key: key, Value: value}
}

// NewNamed returns a type reference, qualified by pkg when non-empty.
func NewNamed(pkg, name string) *Named {
	mustIdent(name)
	if pkg != "" {
		mustIdent(pkg)
	}
	return &Named{Pkg: pkg, Name: name}
}

func mustIdent(name string) {
	if !isIdent(name) {
		panic(fmt.Sprintf("ast: invalid identifier %q", name))
	}
}

func mustExpr(e Expr) {
	if e == nil {
		panic("ast: nil expression")
	}
}

func isIdent(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_',
			'a' <= r && r <= 'z',
			'A' <= r && r <= 'Z':
		case '0' <= r && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
