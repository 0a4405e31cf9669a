package ast

import (
	"bytes"
	"strconv"
	"strings"
)

// Print renders a Module as Go source text. Output is deterministic:
// imports are de-duplicated by path and grouped standard-library first,
// declarations appear in tree order.
func Print(m *Module) []byte {
	p := &printer{}
	p.module(m)
	return append([]byte(nil), p.Bytes()...)
}

type printer struct {
	bytes.Buffer

	indent []byte
}

// P prints the arguments on a single indented line.
func (p *printer) P(str ...string) {
	p.Write(p.indent)
	for _, s := range str {
		p.WriteString(s)
	}
	p.WriteByte('\n')
}

// In increases the indent.
func (p *printer) In() {
	p.indent = append(p.indent, '\t')
}

// Out decreases the indent.
func (p *printer) Out() {
	if len(p.indent) > 0 {
		p.indent = p.indent[:len(p.indent)-1]
	}
}

func (p *printer) module(m *Module) {
	for _, line := range m.Header {
		p.P("// ", line)
	}
	if len(m.Header) > 0 {
		p.P()
	}
	p.P("package ", m.Package)

	p.imports(m.Imports)

	for _, d := range m.Decls {
		p.P()
		switch v := d.(type) {
		case *ClassDef:
			p.class(v)
		case *FuncDef:
			p.funcDef(v)
		}
	}
}

func (p *printer) imports(imports []*Import) {
	seen := make(map[string]bool)
	var std, other []*Import
	for _, im := range imports {
		if !im.Valid() || seen[im.Path] {
			continue
		}
		seen[im.Path] = true
		if strings.Contains(im.Path, ".") {
			other = append(other, im)
		} else {
			std = append(std, im)
		}
	}
	if len(std)+len(other) == 0 {
		return
	}

	p.P()
	if len(std)+len(other) == 1 {
		for _, im := range append(std, other...) {
			p.P("import ", importLine(im))
		}
		return
	}

	p.P("import (")
	p.In()
	for _, im := range std {
		p.P(importLine(im))
	}
	if len(std) > 0 && len(other) > 0 {
		p.WriteByte('\n')
	}
	for _, im := range other {
		p.P(importLine(im))
	}
	p.Out()
	p.P(")")
}

func importLine(im *Import) string {
	path := strconv.Quote(im.Path)
	if im.Alias != "" && im.Alias != PkgName(im.Path) {
		return im.Alias + " " + path
	}
	return path
}

// PkgName returns the package qualifier implied by an import path: the last
// path segment, skipping a major-version suffix like "/v2", with hyphens
// removed since they cannot appear in an identifier.
func PkgName(path string) string {
	segments := strings.Split(path, "/")
	name := segments[len(segments)-1]
	if len(segments) > 1 && isVersionSegment(name) {
		name = segments[len(segments)-2]
	}
	return strings.ReplaceAll(name, "-", "")
}

func isVersionSegment(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (p *printer) class(c *ClassDef) {
	if c.Base == nil {
		p.P("type ", c.Name, " struct{}")
	} else {
		p.P("type ", c.Name, " struct {")
		p.In()
		p.P(TypeString(c.Base))
		p.Out()
		p.P("}")
	}

	for _, m := range c.Methods {
		p.P()
		p.funcDef(m)
	}
}

func (p *printer) funcDef(f *FuncDef) {
	if f.Doc != "" {
		p.P("// ", f.Doc)
	}

	var b strings.Builder
	b.WriteString("func ")
	if f.Recv != nil {
		b.WriteString("(")
		b.WriteString(f.Recv.Name)
		b.WriteByte(' ')
		b.WriteString(TypeString(f.Recv.Type))
		b.WriteString(") ")
	}
	b.WriteString(f.Name)
	b.WriteByte('(')
	for i, param := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(param.Name)
		b.WriteByte(' ')
		b.WriteString(TypeString(param.Type))
	}
	b.WriteString(")")

	switch len(f.Results) {
	case 0:
	case 1:
		b.WriteByte(' ')
		b.WriteString(TypeString(f.Results[0]))
	default:
		b.WriteString(" (")
		for i, r := range f.Results {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(TypeString(r))
		}
		b.WriteByte(')')
	}
	b.WriteString(" {")
	p.P(b.String())

	p.In()
	for _, s := range f.Body {
		p.stmt(s)
	}
	p.Out()
	p.P("}")
}

func (p *printer) stmt(s Stmt) {
	switch v := s.(type) {
	case *Assign:
		p.Write(p.indent)
		p.WriteString(v.Name)
		p.WriteString(" := ")
		p.expr(v.Value)
		p.WriteByte('\n')
	case *CheckedAssign:
		p.Write(p.indent)
		p.WriteString(v.Name)
		p.WriteString(", err := ")
		p.expr(v.Call)
		p.WriteByte('\n')
		p.P("if err != nil {")
		p.In()
		p.P("return nil, err")
		p.Out()
		p.P("}")
	case *Return:
		p.Write(p.indent)
		p.WriteString("return ")
		p.expr(v.Value)
		p.WriteByte('\n')
	}
}

func (p *printer) expr(e Expr) {
	switch v := e.(type) {
	case *Ident:
		p.WriteString(v.Name)
	case *Selector:
		p.expr(v.X)
		p.WriteByte('.')
		p.WriteString(v.Name)
	case *Call:
		p.expr(v.Fn)
		p.WriteByte('(')
		for i, a := range v.Args {
			if i > 0 {
				p.WriteString(", ")
			}
			p.expr(a)
		}
		p.WriteByte(')')
	case *StringLit:
		p.WriteString(strconv.Quote(v.Value))
	case *MultilineString:
		if len(v.Lines) == 0 {
			p.WriteString(`""`)
			return
		}
		for i, line := range v.Lines {
			if i > 0 {
				p.WriteString(" +\n")
				p.Write(p.indent)
				p.WriteByte('\t')
			}
			p.WriteString(strconv.Quote(line))
		}
	case *MapLit:
		if len(v.Entries) == 0 {
			p.WriteString("map[string]any{}")
			return
		}
		width := 0
		for _, en := range v.Entries {
			if l := len(strconv.Quote(en.Key)) + 1; l > width {
				width = l
			}
		}
		p.WriteString("map[string]any{\n")
		p.In()
		for _, en := range v.Entries {
			p.Write(p.indent)
			key := strconv.Quote(en.Key) + ":"
			p.WriteString(key)
			for i := len(key); i <= width; i++ {
				p.WriteByte(' ')
			}
			p.expr(en.Value)
			p.WriteString(",\n")
		}
		p.Out()
		p.Write(p.indent)
		p.WriteByte('}')
	}
}

// TypeString renders a type expression.
func TypeString(t TypeExpr) string {
	switch v := t.(type) {
	case *Named:
		if v.Pkg != "" {
			return v.Pkg + "." + v.Name
		}
		return v.Name
	case *Pointer:
		return "*" + TypeString(v.Elem)
	case *List:
		return "[]" + TypeString(v.Elem)
	case *MapType:
		return "map[" + TypeString(v.Key) + "]" + TypeString(v.Value)
	case *Generic:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = TypeString(a)
		}
		return TypeString(v.Base) + "[" + strings.Join(args, ", ") + "]"
	}
	return ""
}
