package gen

import (
	"fmt"

	gqlast "github.com/vektah/gqlparser/v2/ast"

	"github.com/gqlcgen/gqlcgen/ast"
)

// builtinScalars maps GraphQL builtin scalars onto Go types.
var builtinScalars = map[string]string{
	"ID":      "string",
	"String":  "string",
	"Int":     "int64",
	"Float":   "float64",
	"Boolean": "bool",
}

// goKeywords guards generated parameter names against identifiers Go
// reserves; a colliding GraphQL variable name gets an "Arg" suffix.
var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

// ArgumentsGenerator turns a GraphQL variable definition list into a
// generated parameter list and the mapping literal binding parameter names
// to parameter values. It records which input types, enums and custom
// scalars were referenced so the client generator can emit their imports.
type ArgumentsGenerator struct {
	schema     *gqlast.Schema
	scalars    map[string]ScalarData
	enumsPkg   string
	inputsPkg  string
	runtimePkg string

	usedInputs  []string
	usedEnums   []string
	usedScalars []string
}

// NewArgumentsGenerator returns an ArgumentsGenerator resolving named types
// against schema and scalars. The package qualifiers apply to enum, input
// and optional-wrapper references in generated parameter types; an empty
// qualifier means the names are local to the generated package.
func NewArgumentsGenerator(
	schema *gqlast.Schema,
	scalars map[string]ScalarData,
	enumsPkg, inputsPkg, runtimePkg string,
) *ArgumentsGenerator {
	if runtimePkg == "" {
		runtimePkg = "runtime"
	}
	return &ArgumentsGenerator{
		schema:     schema,
		scalars:    scalars,
		enumsPkg:   enumsPkg,
		inputsPkg:  inputsPkg,
		runtimePkg: runtimePkg,
	}
}

// Generate produces one parameter per variable definition, in definition
// order, and the map literal binding each variable name to its parameter.
// Values whose bound type requires custom serialization (inputs, enums,
// custom scalars) or that are optional-valued are wrapped in a
// serialization call; a variable with a default still participates as a
// plain reference, since unset filtering happens at call time.
func (g *ArgumentsGenerator) Generate(defs gqlast.VariableDefinitionList) ([]*ast.Param, *ast.MapLit, error) {
	params := make([]*ast.Param, 0, len(defs))
	entries := make([]*ast.MapEntry, 0, len(defs))

	for _, def := range defs {
		typ, needsSerialize, err := g.typeExpr(def.Type)
		if err != nil {
			return nil, nil, fmt.Errorf("variable $%s: %w", def.Variable, err)
		}
		if def.DefaultValue != nil && def.Type.NonNull {
			typ = g.optOf(typ)
			needsSerialize = true
		}

		name := paramName(def.Variable)
		params = append(params, ast.NewParam(name, typ))
		entries = append(entries, ast.NewMapEntry(def.Variable, g.valueExpr(def, name, needsSerialize)))
	}

	return params, ast.NewMapLit(entries...), nil
}

// UsedInputs returns the referenced input type names in first-use order.
func (g *ArgumentsGenerator) UsedInputs() []string { return g.usedInputs }

// UsedEnums returns the referenced enum names in first-use order.
func (g *ArgumentsGenerator) UsedEnums() []string { return g.usedEnums }

// UsedCustomScalars returns the referenced custom scalar names in first-use
// order.
func (g *ArgumentsGenerator) UsedCustomScalars() []string { return g.usedScalars }

// typeExpr maps a GraphQL type reference onto a generated Go type: lists
// become slices, nullable positions become optionals, named types resolve
// through the builtin table, the custom scalar config, then the schema.
// The second result reports whether values of the type go through a
// serialization call when the variables mapping is built.
func (g *ArgumentsGenerator) typeExpr(t *gqlast.Type) (ast.TypeExpr, bool, error) {
	var base ast.TypeExpr
	var needsSerialize bool

	switch {
	case t.Elem != nil:
		elem, ns, err := g.typeExpr(t.Elem)
		if err != nil {
			return nil, false, err
		}
		base = &ast.List{Elem: elem}
		needsSerialize = ns
	default:
		var err error
		base, needsSerialize, err = g.namedType(t.NamedType)
		if err != nil {
			return nil, false, err
		}
	}

	if !t.NonNull {
		base = g.optOf(base)
		needsSerialize = true
	}
	return base, needsSerialize, nil
}

func (g *ArgumentsGenerator) namedType(name string) (ast.TypeExpr, bool, error) {
	if goType, ok := builtinScalars[name]; ok {
		return ast.NewNamed("", goType), false, nil
	}

	if data, ok := g.scalars[name]; ok {
		g.usedScalars = appendUnique(g.usedScalars, name)
		return ast.NewNamed(data.Qualifier(), data.Type), true, nil
	}

	if g.schema != nil {
		if def, ok := g.schema.Types[name]; ok {
			switch def.Kind {
			case gqlast.Enum:
				g.usedEnums = appendUnique(g.usedEnums, name)
				return ast.NewNamed(g.enumsPkg, name), true, nil
			case gqlast.InputObject:
				g.usedInputs = appendUnique(g.usedInputs, name)
				return ast.NewNamed(g.inputsPkg, name), true, nil
			case gqlast.Scalar:
				// Custom scalar without configured mapping.
				return ast.NewNamed("", "any"), false, nil
			}
		}
	}

	return nil, false, fmt.Errorf("no Go mapping for type %s", name)
}

// valueExpr builds the mapping value for one variable. A bare custom scalar
// with a configured serialize function uses that function; everything else
// needing conversion goes through the runtime serializer.
func (g *ArgumentsGenerator) valueExpr(def *gqlast.VariableDefinition, name string, needsSerialize bool) ast.Expr {
	var value ast.Expr = ast.NewIdent(name)

	if fn, qualifier, ok := g.bareScalarSerializer(def); ok {
		var callee ast.Expr = ast.NewIdent(fn)
		if qualifier != "" {
			callee = ast.NewSelector(ast.NewIdent(qualifier), fn)
		}
		return ast.NewCall(callee, value)
	}

	if needsSerialize {
		return ast.NewCall(ast.NewSelector(ast.NewIdent(g.runtimePkg), "Serialize"), value)
	}
	return value
}

// bareScalarSerializer reports the serialize function to apply when the
// variable is a required, non-list custom scalar with a configured
// serializer.
func (g *ArgumentsGenerator) bareScalarSerializer(def *gqlast.VariableDefinition) (fn, qualifier string, ok bool) {
	t := def.Type
	if t.Elem != nil || !t.NonNull || def.DefaultValue != nil {
		return "", "", false
	}
	data, found := g.scalars[t.NamedType]
	if !found || data.Serialize == "" {
		return "", "", false
	}
	return data.Serialize, data.Qualifier(), true
}

func (g *ArgumentsGenerator) optOf(elem ast.TypeExpr) ast.TypeExpr {
	return &ast.Generic{
		Base: ast.NewNamed(g.runtimePkg, "Opt"),
		Args: []ast.TypeExpr{elem},
	}
}

func paramName(variable string) string {
	if goKeywords[variable] {
		return variable + "Arg"
	}
	return variable
}

func appendUnique(list []string, name string) []string {
	for _, n := range list {
		if n == name {
			return list
		}
	}
	return append(list, name)
}
