// Package plugin defines the hook points the client generator exposes.
//
// A Plugin is invoked at well-defined moments of a generation run: when an
// import is added, when a method is added, when the gql helper is built,
// when the class is finished and when the module is finished. Each hook
// receives a syntax tree node and returns a (possibly modified) node of the
// same kind. Plugins run in registration order; a nil Manager is the
// identity chain.
package plugin

import "github.com/gqlcgen/gqlcgen/ast"

// Plugin rewrites generated syntax tree nodes. Implementations must return
// a structurally valid node of the same kind they received.
type Plugin interface {
	GenerateGQLFunction(*ast.FuncDef) *ast.FuncDef
	GenerateClientClass(*ast.ClassDef) *ast.ClassDef
	GenerateClientMethod(*ast.FuncDef) *ast.FuncDef
	GenerateClientModule(*ast.Module) *ast.Module
	GenerateClientImport(*ast.Import) *ast.Import
}

// Base is an identity Plugin. Embed it to implement only the hooks a
// plugin cares about.
type Base struct{}

func (Base) GenerateGQLFunction(f *ast.FuncDef) *ast.FuncDef   { return f }
func (Base) GenerateClientClass(c *ast.ClassDef) *ast.ClassDef { return c }
func (Base) GenerateClientMethod(f *ast.FuncDef) *ast.FuncDef  { return f }
func (Base) GenerateClientModule(m *ast.Module) *ast.Module    { return m }
func (Base) GenerateClientImport(i *ast.Import) *ast.Import    { return i }

// Manager applies an ordered chain of plugins. Every method is safe to call
// on a nil receiver.
type Manager struct {
	plugins []Plugin
}

// NewManager returns a Manager invoking plugins in the given order.
func NewManager(plugins ...Plugin) *Manager {
	return &Manager{plugins: plugins}
}

func (m *Manager) GenerateGQLFunction(f *ast.FuncDef) *ast.FuncDef {
	if m == nil {
		return f
	}
	for _, p := range m.plugins {
		f = p.GenerateGQLFunction(f)
	}
	return f
}

func (m *Manager) GenerateClientClass(c *ast.ClassDef) *ast.ClassDef {
	if m == nil {
		return c
	}
	for _, p := range m.plugins {
		c = p.GenerateClientClass(c)
	}
	return c
}

func (m *Manager) GenerateClientMethod(f *ast.FuncDef) *ast.FuncDef {
	if m == nil {
		return f
	}
	for _, p := range m.plugins {
		f = p.GenerateClientMethod(f)
	}
	return f
}

func (m *Manager) GenerateClientModule(mod *ast.Module) *ast.Module {
	if m == nil {
		return mod
	}
	for _, p := range m.plugins {
		mod = p.GenerateClientModule(mod)
	}
	return mod
}

func (m *Manager) GenerateClientImport(i *ast.Import) *ast.Import {
	if m == nil {
		return i
	}
	for _, p := range m.plugins {
		i = p.GenerateClientImport(i)
	}
	return i
}
