package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gqlcgen/gqlcgen/ast"
)

func testMethod() *ast.FuncDef {
	return ast.NewFuncDef(
		"GetThing",
		ast.NewParam("c", &ast.Pointer{Elem: ast.NewNamed("", "Client")}),
		[]*ast.Param{ast.NewParam("ctx", ast.NewNamed("context", "Context"))},
		[]ast.TypeExpr{
			&ast.Pointer{Elem: ast.NewNamed("", "GetThing")},
			ast.NewNamed("", "error"),
		},
		[]ast.Stmt{
			ast.NewAssign("query", ast.NewCall(
				ast.NewIdent("gql"),
				ast.NewMultilineString([]string{"query {\n", "  thing\n", "}\n"}),
			)),
			ast.NewAssign("variables", ast.NewMapLit()),
			ast.NewCheckedAssign("response", ast.NewCall(
				ast.NewSelector(ast.NewIdent("c"), "Execute"),
				ast.NewIdent("ctx"), ast.NewIdent("query"), ast.NewIdent("variables"),
			)),
			ast.NewCheckedAssign("data", ast.NewCall(
				ast.NewSelector(ast.NewIdent("c"), "GetData"),
				ast.NewIdent("response"),
			)),
			ast.NewReturn(ast.NewCall(ast.NewIdent("ParseGetThing"), ast.NewIdent("data"))),
		},
	)
}

func TestPrintModule(t *testing.T) {
	gqlFunc := ast.NewFuncDef(
		"gql",
		nil,
		[]*ast.Param{ast.NewParam("q", ast.NewNamed("", "string"))},
		[]ast.TypeExpr{ast.NewNamed("", "string")},
		[]ast.Stmt{ast.NewReturn(ast.NewIdent("q"))},
	)
	gqlFunc.Doc = "gql returns q."

	class := ast.NewClassDef("Client", &ast.Pointer{Elem: ast.NewNamed("runtime", "BaseClient")})
	class.Methods = append(class.Methods, testMethod())

	module := ast.NewModule("api",
		[]*ast.Import{
			ast.NewImport([]string{"Context"}, "context"),
			ast.NewImport([]string{"BaseClient"}, "example.com/runtime"),
			ast.NewImport(nil, "example.com/skipped"),
			ast.NewImport([]string{"X"}, ""),
			ast.NewImport([]string{"Opt"}, "example.com/runtime"),
		},
		gqlFunc, class,
	)

	want := `package api

import (
	"context"

	"example.com/runtime"
)

// gql returns q.
func gql(q string) string {
	return q
}

type Client struct {
	*runtime.BaseClient
}

func (c *Client) GetThing(ctx context.Context) (*GetThing, error) {
	query := gql("query {\n" +
		"  thing\n" +
		"}\n")
	variables := map[string]any{}
	response, err := c.Execute(ctx, query, variables)
	if err != nil {
		return nil, err
	}
	data, err := c.GetData(response)
	if err != nil {
		return nil, err
	}
	return ParseGetThing(data)
}
`

	require.Equal(t, want, string(ast.Print(module)))
}

func TestPrintModuleHeader(t *testing.T) {
	module := ast.NewModule("api", nil)
	module.Header = []string{"Code generated by gqlcgen. DO NOT EDIT."}

	want := `// Code generated by gqlcgen. DO NOT EDIT.

package api
`
	require.Equal(t, want, string(ast.Print(module)))
}

func TestPrintSingleImport(t *testing.T) {
	module := ast.NewModule("api", []*ast.Import{
		ast.NewImport([]string{"Context"}, "context"),
	})

	want := `package api

import "context"
`
	require.Equal(t, want, string(ast.Print(module)))
}

func TestPrintImportAlias(t *testing.T) {
	module := ast.NewModule("api", []*ast.Import{
		{Alias: "gqlruntime", Path: "example.com/runtime", Names: []string{"Opt"}},
		ast.NewImport([]string{"Context"}, "context"),
	})

	got := string(ast.Print(module))
	assert.Contains(t, got, "gqlruntime \"example.com/runtime\"")
	assert.Contains(t, got, "\"context\"")
}

func TestPrintEmptyClass(t *testing.T) {
	module := ast.NewModule("api", nil, ast.NewClassDef("Client", nil))

	want := `package api

type Client struct{}
`
	require.Equal(t, want, string(ast.Print(module)))
}

func TestPrintMapLitAlignment(t *testing.T) {
	fn := ast.NewFuncDef("vars", nil, nil, nil, []ast.Stmt{
		ast.NewAssign("variables", ast.NewMapLit(
			ast.NewMapEntry("id", ast.NewIdent("id")),
			ast.NewMapEntry("filter", ast.NewIdent("filter")),
		)),
	})
	module := ast.NewModule("api", nil, fn)

	want := `package api

func vars() {
	variables := map[string]any{
		"id":     id,
		"filter": filter,
	}
}
`
	require.Equal(t, want, string(ast.Print(module)))
}

func TestPkgName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"context", "context"},
		{"example.com/runtime", "runtime"},
		{"github.com/vektah/gqlparser/v2", "gqlparser"},
		{"example.com/x/v10", "x"},
		{"example.com/go-graphql-client", "gographqlclient"},
		{"v2", "v2"},
		{"example.com/versions", "versions"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ast.PkgName(tt.path))
		})
	}
}

func TestPrintVersionedImportAlias(t *testing.T) {
	module := ast.NewModule("api", []*ast.Import{
		{Alias: "gqlparser", Path: "github.com/vektah/gqlparser/v2", Names: []string{"LoadQuery"}},
	})

	// The alias matches the qualifier implied by the path, so it is omitted.
	want := `package api

import "github.com/vektah/gqlparser/v2"
`
	require.Equal(t, want, string(ast.Print(module)))
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		name string
		typ  ast.TypeExpr
		want string
	}{
		{"plain", ast.NewNamed("", "string"), "string"},
		{"qualified", ast.NewNamed("api", "User"), "api.User"},
		{"pointer", &ast.Pointer{Elem: ast.NewNamed("", "User")}, "*User"},
		{"list", &ast.List{Elem: ast.NewNamed("", "string")}, "[]string"},
		{"map", &ast.MapType{Key: ast.NewNamed("", "string"), Value: ast.NewNamed("", "any")}, "map[string]any"},
		{
			"generic",
			&ast.Generic{Base: ast.NewNamed("runtime", "Opt"), Args: []ast.TypeExpr{ast.NewNamed("", "string")}},
			"runtime.Opt[string]",
		},
		{
			"nested",
			&ast.Generic{
				Base: ast.NewNamed("runtime", "Opt"),
				Args: []ast.TypeExpr{&ast.List{Elem: ast.NewNamed("", "int64")}},
			},
			"runtime.Opt[[]int64]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ast.TypeString(tt.typ))
		})
	}
}
