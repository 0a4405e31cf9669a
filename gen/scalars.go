package gen

import "github.com/gqlcgen/gqlcgen/ast"

// ScalarData describes how a custom scalar maps onto Go: the Go type that
// represents it, optional serialize/parse helper functions, and the import
// path all three live at. An empty ImportPath means the names are local to
// the generated package.
type ScalarData struct {
	Type       string
	Serialize  string
	Parse      string
	ImportPath string
}

// Qualifier returns the package qualifier for the scalar's names, or "" when
// they are local.
func (d ScalarData) Qualifier() string {
	if d.ImportPath == "" {
		return ""
	}
	return ast.PkgName(d.ImportPath)
}

// ScalarImports returns the imports a used custom scalar requires. A scalar
// with no import path needs none.
func ScalarImports(d ScalarData) []*ast.Import {
	if d.ImportPath == "" {
		return nil
	}
	var names []string
	for _, n := range []string{d.Type, d.Serialize, d.Parse} {
		if n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return []*ast.Import{ast.NewImport(names, d.ImportPath)}
}
