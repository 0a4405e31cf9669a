package gen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2"

	"github.com/gqlcgen/gqlcgen/ast"
	"github.com/gqlcgen/gqlcgen/gen"
	"github.com/gqlcgen/gqlcgen/plugin"
)

const runtimePath = "github.com/gqlcgen/gqlcgen/runtime"

func testConfig() gen.Config {
	return gen.Config{
		Package:          "api",
		Name:             "Client",
		BaseClient:       "BaseClient",
		BaseClientImport: ast.NewImport([]string{"BaseClient"}, runtimePath),
		UnsetImport:      ast.NewImport([]string{"Opt", "Serialize"}, runtimePath),
	}
}

const getUserOperation = `query GetUser($id: ID!) {
  user(id: $id) {
    id
    name
  }
}
`

func addGetUser(t *testing.T, g *gen.ClientGenerator) {
	t.Helper()
	doc := gqlparser.MustLoadQuery(loadTestSchema(t), `
query GetUser($id: ID!) {
  user(id: $id, names: [], input: {name: "x"}, when: "now", page: 1) {
    id
    name
  }
}
`)
	require.NoError(t, g.AddMethod(doc.Operations[0], "GetUser", "GetUser", "", getUserOperation))
}

func TestClientGeneratorGolden(t *testing.T) {
	g := gen.NewClientGenerator(testConfig(), loadTestSchema(t))
	addGetUser(t, g)

	module, err := g.Generate()
	require.NoError(t, err)

	want := `// Code generated by gqlcgen. DO NOT EDIT.

package api

import (
	"context"

	"github.com/gqlcgen/gqlcgen/runtime"
)

// gql marks its argument as a GraphQL operation source.
func gql(q string) string {
	return q
}

type Client struct {
	*runtime.BaseClient
}

func (c *Client) GetUser(ctx context.Context, id string) (*GetUser, error) {
	query := gql("query GetUser($id: ID!) {\n" +
		"  user(id: $id) {\n" +
		"    id\n" +
		"    name\n" +
		"  }\n" +
		"}\n")
	variables := map[string]any{
		"id": id,
	}
	response, err := c.Execute(ctx, query, variables)
	if err != nil {
		return nil, err
	}
	data, err := c.GetData(response)
	if err != nil {
		return nil, err
	}
	return ParseGetUser(data)
}
`
	require.Equal(t, want, string(ast.Print(module)))
}

func TestMethodSkeleton(t *testing.T) {
	g := gen.NewClientGenerator(testConfig(), loadTestSchema(t))
	addGetUser(t, g)

	module, err := g.Generate()
	require.NoError(t, err)
	require.Len(t, module.Decls, 2)

	class, ok := module.Decls[1].(*ast.ClassDef)
	require.True(t, ok)
	require.Len(t, class.Methods, 1)
	method := class.Methods[0]

	// One parameter per operation variable, plus the leading context.
	require.Len(t, method.Params, 2)
	assert.Equal(t, "ctx", method.Params[0].Name)
	assert.Equal(t, "context.Context", ast.TypeString(method.Params[0].Type))
	assert.Equal(t, "id", method.Params[1].Name)

	require.Len(t, method.Results, 2)
	assert.Equal(t, "*GetUser", ast.TypeString(method.Results[0]))
	assert.Equal(t, "error", ast.TypeString(method.Results[1]))

	require.Len(t, method.Body, 5)
	assert.IsType(t, &ast.Assign{}, method.Body[0])
	assert.IsType(t, &ast.Assign{}, method.Body[1])
	assert.IsType(t, &ast.CheckedAssign{}, method.Body[2])
	assert.IsType(t, &ast.CheckedAssign{}, method.Body[3])
	assert.IsType(t, &ast.Return{}, method.Body[4])
}

func TestMethodsKeepCallOrder(t *testing.T) {
	schema := loadTestSchema(t)
	doc := gqlparser.MustLoadQuery(schema, `
query B {
  user(id: "1", names: [], input: {name: "x"}, when: "now", page: 1) { id }
}
query A {
  user(id: "1", names: [], input: {name: "x"}, when: "now", page: 1) { id }
}
`)

	g := gen.NewClientGenerator(testConfig(), schema)
	require.NoError(t, g.AddMethod(doc.Operations[0], "B", "B", "", "query B { user { id } }\n"))
	require.NoError(t, g.AddMethod(doc.Operations[1], "A", "A", "", "query A { user { id } }\n"))

	module, err := g.Generate()
	require.NoError(t, err)
	class := module.Decls[1].(*ast.ClassDef)
	require.Len(t, class.Methods, 2)
	assert.Equal(t, "B", class.Methods[0].Name)
	assert.Equal(t, "A", class.Methods[1].Name)
}

func TestQualifiedReturnType(t *testing.T) {
	g := gen.NewClientGenerator(testConfig(), loadTestSchema(t))
	doc := gqlparser.MustLoadQuery(loadTestSchema(t), `
query GetUser {
  user(id: "1", names: [], input: {name: "x"}, when: "now", page: 1) { id }
}
`)
	require.NoError(t, g.AddMethod(doc.Operations[0], "GetUser", "GetUser", "example.com/models", "query GetUser { user { id } }\n"))

	module, err := g.Generate()
	require.NoError(t, err)
	rendered := string(ast.Print(module))
	assert.Contains(t, rendered, `"example.com/models"`)
	assert.Contains(t, rendered, "(*models.GetUser, error)")
	assert.Contains(t, rendered, "return models.ParseGetUser(data)")
}

func TestUsedTypeImports(t *testing.T) {
	cfg := testConfig()
	cfg.EnumsImport = "example.com/enums"
	cfg.InputsImport = "example.com/inputs"
	cfg.Scalars = testScalars

	g := gen.NewClientGenerator(cfg, loadTestSchema(t))
	doc := gqlparser.MustLoadQuery(loadTestSchema(t), `
query GetUser($role: Role, $input: UserInput!, $when: Datetime!) {
  user(id: "1", names: [], role: $role, input: $input, when: $when, page: 1) { id }
}
`)
	require.NoError(t, g.AddMethod(doc.Operations[0], "GetUser", "GetUser", "", "query GetUser { user { id } }\n"))

	module, err := g.Generate()
	require.NoError(t, err)
	rendered := string(ast.Print(module))
	assert.Contains(t, rendered, `"example.com/enums"`)
	assert.Contains(t, rendered, `"example.com/inputs"`)
	assert.Contains(t, rendered, `"example.com/scalars"`)
	assert.Contains(t, rendered, "role runtime.Opt[enums.Role]")
	assert.Contains(t, rendered, "input inputs.UserInput")
	assert.Contains(t, rendered, "when scalars.Datetime")
}

// renamePlugin suffixes generated method names.
type renamePlugin struct {
	plugin.Base

	suffix string
}

func (p renamePlugin) GenerateClientMethod(f *ast.FuncDef) *ast.FuncDef {
	f.Name += p.suffix
	return f
}

// noContextPlugin drops the context import.
type noContextPlugin struct {
	plugin.Base
}

func (noContextPlugin) GenerateClientImport(i *ast.Import) *ast.Import {
	if i.Path == "context" {
		return &ast.Import{}
	}
	return i
}

func TestEmptyPluginChainIsIdentity(t *testing.T) {
	plain := gen.NewClientGenerator(testConfig(), loadTestSchema(t))
	addGetUser(t, plain)
	plainModule, err := plain.Generate()
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Plugins = plugin.NewManager()
	hooked := gen.NewClientGenerator(cfg, loadTestSchema(t))
	addGetUser(t, hooked)
	hookedModule, err := hooked.Generate()
	require.NoError(t, err)

	assert.Equal(t, ast.Print(plainModule), ast.Print(hookedModule))
}

func TestPluginHooks(t *testing.T) {
	cfg := testConfig()
	cfg.Plugins = plugin.NewManager(renamePlugin{suffix: "V2"}, noContextPlugin{})

	g := gen.NewClientGenerator(cfg, loadTestSchema(t))
	addGetUser(t, g)

	module, err := g.Generate()
	require.NoError(t, err)
	rendered := string(ast.Print(module))
	assert.Contains(t, rendered, "func (c *Client) GetUserV2(")
	assert.NotContains(t, rendered, `"context"`)
}
