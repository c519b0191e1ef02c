// Package gen renders Go source for bound enums from the generator IR.
package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"path"
	"strconv"
	"strings"
	"text/template"

	"github.com/reoring/serialenum/internal/ir"
)

// Render produces the gofmt-formatted source of f. When formatting fails the
// raw output is returned together with the error.
func Render(f *ir.File) ([]byte, error) {
	if f.Package == "" {
		return nil, fmt.Errorf("gen: package name is required")
	}
	if len(f.Enums) == 0 {
		return nil, fmt.Errorf("gen: no enums to render")
	}
	imports := f.Imports()
	for i := range f.Enums {
		e := &f.Enums[i]
		for _, id := range e.Idents() {
			if ir.Reserved(id, imports) {
				return nil, fmt.Errorf("gen: enum %s: identifier %s is reserved in generated code", e.Name, id)
			}
		}
	}
	v := buildFileView(f)
	var buf bytes.Buffer
	if err := fileTmpl.Execute(&buf, v); err != nil {
		return nil, fmt.Errorf("gen: %w", err)
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return buf.Bytes(), fmt.Errorf("gen: format: %w", err)
	}
	return out, nil
}

type fileView struct {
	Source  string
	Package string
	Imports []string
	Enums   []enumView
}

type enumView struct {
	Name        string
	Visitor     string
	Parser      string
	Values      string
	Tokens      string
	DocLines    []string
	Variants    []variantView
	Match       []variantView // token map order
	First, Last string
	ValuesLit   string
	TokensLit   string
	ErrFunc     string
	Description string // quoted; empty when the enum has no doc
	Full        bool
}

type variantView struct {
	Const    string
	Token    string // quoted
	DocLines []string
}

func buildFileView(f *ir.File) fileView {
	v := fileView{Source: f.Source, Package: f.Package}
	imports := newImportSet()
	for _, p := range f.Imports() {
		imports.add(p)
	}
	for i := range f.Enums {
		e := &f.Enums[i]
		ev := enumView{
			Name:     e.Name,
			Visitor:  e.Visitor,
			Parser:   e.ParserName(),
			Values:   e.ValuesName(),
			Tokens:   e.TokensName(),
			DocLines: docLines(e.Doc),
			Full:     e.Mode != ir.ModeText,
		}
		if e.Doc != "" {
			ev.Description = strconv.Quote(strings.TrimSpace(e.Doc))
		}
		consts := make([]string, 0, len(e.Variants))
		tokens := make([]string, 0, len(e.Variants))
		for _, vr := range e.Variants {
			vv := variantView{Const: e.ConstName(vr), Token: strconv.Quote(vr.Token), DocLines: docLines(vr.Doc)}
			ev.Variants = append(ev.Variants, vv)
			consts = append(consts, vv.Const)
			tokens = append(tokens, vv.Token)
		}
		order := e.TokenOrder
		if len(order) != len(e.Variants) {
			order = make([]int, len(e.Variants))
			for i := range order {
				order[i] = i
			}
		}
		for _, i := range order {
			ev.Match = append(ev.Match, ev.Variants[i])
		}
		ev.First, ev.Last = consts[0], consts[len(consts)-1]
		ev.ValuesLit = strings.Join(consts, ", ")
		ev.TokensLit = strings.Join(tokens, ", ")
		switch {
		case !e.Error.Qualified():
			ev.ErrFunc = e.Error.Func
		case e.Error.ImportPath == ir.RuntimeImport:
			ev.ErrFunc = "serialenum." + e.Error.Func
		default:
			ev.ErrFunc = imports.add(e.Error.ImportPath) + "." + e.Error.Func
		}
		v.Enums = append(v.Enums, ev)
	}
	v.Imports = imports.lines()
	return v
}

// importSet assigns a unique package name to every import path.
type importSet struct {
	paths []string
	names map[string]string // path -> local name
	taken map[string]bool
}

func newImportSet() *importSet {
	return &importSet{names: map[string]string{}, taken: map[string]bool{}}
}

func (s *importSet) add(p string) string {
	if n, ok := s.names[p]; ok {
		return n
	}
	base := ir.PackageName(p)
	name := base
	for i := 2; s.taken[name]; i++ {
		name = base + strconv.Itoa(i)
	}
	s.taken[name] = true
	s.names[p] = name
	s.paths = append(s.paths, p)
	return name
}

// lines renders the import block: standard library first, then a blank line
// and everything else.
func (s *importSet) lines() []string {
	var std, other []string
	for _, p := range s.paths {
		line := strconv.Quote(p)
		if s.names[p] != path.Base(p) {
			line = s.names[p] + " " + line
		}
		if strings.Contains(strings.SplitN(p, "/", 2)[0], ".") {
			other = append(other, line)
		} else {
			std = append(std, line)
		}
	}
	if len(std) > 0 && len(other) > 0 {
		std = append(std, "")
	}
	return append(std, other...)
}
