// Package ast declares the syntax tree built by the client generator and
// provides constructors for each node kind. The tree models the pieces of a
// generated client module: imports, a helper function, a client class and
// its methods. A small printer (see print.go) renders the tree as Go source.
package ast

// Node is the interface satisfied by every syntax tree node.
type Node interface {
	node()
}

// Decl is a top-level declaration in a Module.
type Decl interface {
	Node
	declNode()
}

// Stmt is a statement in a function body.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression.
type Expr interface {
	Node
	exprNode()
}

// TypeExpr is a type reference.
type TypeExpr interface {
	Node
	typeNode()
}

// A Module is the generation unit's final artifact: imports followed by
// top-level declarations.
type Module struct {
	Package string
	Header  []string // comment lines emitted above the package clause
	Imports []*Import
	Decls   []Decl
}

// An Import records a single imported package together with the names that
// motivated the import. An Import with no Names or an empty Path is invalid
// and is dropped by the generator rather than rendered.
type Import struct {
	Alias string
	Path  string
	Names []string
}

// Valid reports whether the import references a package and at least one name.
func (i *Import) Valid() bool {
	return i != nil && i.Path != "" && len(i.Names) > 0
}

// A ClassDef renders as a struct type embedding Base, followed by its
// methods. Methods appear in the order they were appended.
type ClassDef struct {
	Name    string
	Base    TypeExpr
	Methods []*FuncDef
}

// A FuncDef is a function or method definition.
type FuncDef struct {
	Name    string
	Recv    *Param // nil for plain functions
	Params  []*Param
	Results []TypeExpr
	Body    []Stmt
	Doc     string // optional single-line doc comment
}

// A Param is a named, typed function parameter (or receiver).
type Param struct {
	Name string
	Type TypeExpr
}

// An Assign is a short variable declaration: name := value.
type Assign struct {
	Name  string
	Value Expr
}

// A CheckedAssign assigns the results of a call that also yields an error,
// followed by a guard returning (nil, err) on failure. It counts as a single
// statement of the method skeleton.
type CheckedAssign struct {
	Name string
	Call Expr
}

// A Return returns a single expression.
type Return struct {
	Value Expr
}

// An Ident names a variable, function or package.
type Ident struct {
	Name string
}

// A Selector is X.Name.
type Selector struct {
	X    Expr
	Name string
}

// A Call applies Fn to Args.
type Call struct {
	Fn   Expr
	Args []Expr
}

// A StringLit is a quoted string literal.
type StringLit struct {
	Value string
}

// A MultilineString renders as one quoted line per element, joined with "+"
// so the generated source preserves the line structure of the original text.
type MultilineString struct {
	Lines []string
}

// A MapLit is a map[string]any composite literal.
type MapLit struct {
	Entries []*MapEntry
}

// A MapEntry is a single key/value pair of a MapLit.
type MapEntry struct {
	Key   string
	Value Expr
}

// A Named type reference, optionally package qualified.
type Named struct {
	Pkg  string
	Name string
}

// A Pointer type reference: *Elem.
type Pointer struct {
	Elem TypeExpr
}

// A List type reference: []Elem.
type List struct {
	Elem TypeExpr
}

// A Generic type reference: Base[Args...].
type Generic struct {
	Base TypeExpr
	Args []TypeExpr
}

// A MapType reference: map[Key]Value.
type MapType struct {
	Key   TypeExpr
	Value TypeExpr
}

func (*Module) node()          {}
func (*Import) node()          {}
func (*ClassDef) node()        {}
func (*FuncDef) node()         {}
func (*Param) node()           {}
func (*Assign) node()          {}
func (*CheckedAssign) node()   {}
func (*Return) node()          {}
func (*Ident) node()           {}
func (*Selector) node()        {}
func (*Call) node()            {}
func (*StringLit) node()       {}
func (*MultilineString) node() {}
func (*MapLit) node()          {}
func (*MapEntry) node()        {}
func (*Named) node()           {}
func (*Pointer) node()         {}
func (*List) node()            {}
func (*Generic) node()         {}
func (*MapType) node()         {}

func (*ClassDef) declNode() {}
func (*FuncDef) declNode()  {}

func (*Assign) stmtNode()        {}
func (*CheckedAssign) stmtNode() {}
func (*Return) stmtNode()        {}

func (*Ident) exprNode()           {}
func (*Selector) exprNode()        {}
func (*Call) exprNode()            {}
func (*StringLit) exprNode()       {}
func (*MultilineString) exprNode() {}
func (*MapLit) exprNode()          {}

func (*Named) typeNode()   {}
func (*Pointer) typeNode() {}
func (*List) typeNode()    {}
func (*Generic) typeNode() {}
func (*MapType) typeNode() {}
