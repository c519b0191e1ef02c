package gen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	ir "github.com/reoring/serialenum/internal/ir"
)

func contentFormat() ir.Enum {
	return ir.Enum{
		Name:    "ContentFormat",
		Doc:     "ContentFormat lists the supported content formats.",
		Visitor: "ContentFormatVisitor",
		Mode:    ir.ModeFull,
		Error:   ir.ErrorFunc{ImportPath: ir.RuntimeImport, Func: "NewParseError"},
		Variants: []ir.Variant{
			{Name: "Markdown", Doc: "Markdown", Token: "markdown"},
			{Name: "Html", Doc: "HTML", Token: "html"},
		},
	}
}

// parse fails the test unless code is valid Go and returns its declarations
// by name.
func parse(t *testing.T, code []byte) (*ast.File, map[string]bool) {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), "out.go", code, parser.ParseComments)
	if err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, code)
	}
	decls := map[string]bool{}
	for _, d := range f.Decls {
		switch d := d.(type) {
		case *ast.FuncDecl:
			name := d.Name.Name
			if d.Recv != nil && len(d.Recv.List) == 1 {
				name = recvName(d.Recv.List[0].Type) + "." + name
			}
			decls[name] = true
		case *ast.GenDecl:
			for _, s := range d.Specs {
				switch s := s.(type) {
				case *ast.TypeSpec:
					decls[s.Name.Name] = true
				case *ast.ValueSpec:
					for _, n := range s.Names {
						decls[n.Name] = true
					}
				}
			}
		}
	}
	return f, decls
}

func recvName(e ast.Expr) string {
	if s, ok := e.(*ast.StarExpr); ok {
		e = s.X
	}
	if id, ok := e.(*ast.Ident); ok {
		return id.Name
	}
	return ""
}

func imports(f *ast.File) map[string]string {
	out := map[string]string{}
	for _, s := range f.Imports {
		name := ""
		if s.Name != nil {
			name = s.Name.Name
		}
		out[strings.Trim(s.Path.Value, `"`)] = name
	}
	return out
}

func TestRender_FullMode(t *testing.T) {
	code, err := Render(&ir.File{Package: "contentformat", Source: "enums.yaml", Enums: []ir.Enum{contentFormat()}})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.HasPrefix(string(code), "// Code generated by serialenum from enums.yaml. DO NOT EDIT.\n") {
		t.Fatalf("missing generated header:\n%s", code)
	}
	f, decls := parse(t, code)
	if f.Name.Name != "contentformat" {
		t.Fatalf("package=%s", f.Name.Name)
	}
	for _, want := range []string{
		"ContentFormat", "ContentFormatMarkdown", "ContentFormatHtml",
		"ContentFormat.String", "ContentFormat.IsValid", "ParseContentFormat",
		"ContentFormatValues", "ContentFormatTokens", "ContentFormatVisitor",
		"ContentFormatVisitor.Name", "ContentFormatVisitor.Expecting", "ContentFormatVisitor.Tokens",
		"ContentFormatVisitor.VisitString", "ContentFormatVisitor.Description",
		"ContentFormat.MarshalText", "ContentFormat.UnmarshalText",
		"ContentFormat.MarshalJSON", "ContentFormat.UnmarshalJSON",
		"ContentFormat.MarshalYAML", "ContentFormat.UnmarshalYAML",
	} {
		if !decls[want] {
			t.Fatalf("missing declaration %s in:\n%s", want, code)
		}
	}
	if decls["ContentFormatVisitor.Diagnostics"] {
		t.Fatalf("full mode keeps the default allow-list diagnostics")
	}
	imp := imports(f)
	if _, ok := imp["gopkg.in/yaml.v3"]; !ok {
		t.Fatalf("yaml import missing: %v", imp)
	}
	if _, ok := imp[ir.RuntimeImport]; !ok {
		t.Fatalf("runtime import missing: %v", imp)
	}
	s := string(code)
	if !strings.Contains(s, `serialenum.NewParseError(serialenum.UnknownVariantMessage(s, "ContentFormat"))`) {
		t.Fatalf("default error constructor not bound:\n%s", s)
	}
	if !strings.Contains(s, "// ContentFormat lists the supported content formats.\ntype ContentFormat int") {
		t.Fatalf("enum doc not carried:\n%s", s)
	}
	if !strings.Contains(s, "\t// HTML\n\tContentFormatHtml\n") {
		t.Fatalf("variant doc not carried:\n%s", s)
	}
}

func TestRender_TextModeOmitsJSONAndYAML(t *testing.T) {
	e := contentFormat()
	e.Name, e.Visitor, e.Mode = "privContentFormat", "privContentFormatVisitor", ir.ModeText
	e.Error = ir.ErrorFunc{Func: "NewError"}
	code, err := Render(&ir.File{Package: "contentformat", Enums: []ir.Enum{e}})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	f, decls := parse(t, code)
	for _, want := range []string{"parsePrivContentFormat", "privContentFormatValues", "privContentFormatTokens", "privContentFormatVisitor.Diagnostics", "privContentFormat.UnmarshalText"} {
		if !decls[want] {
			t.Fatalf("missing declaration %s in:\n%s", want, code)
		}
	}
	for _, banned := range []string{"ParsePrivContentFormat", "privContentFormat.MarshalJSON", "privContentFormat.UnmarshalYAML"} {
		if decls[banned] {
			t.Fatalf("unexpected declaration %s", banned)
		}
	}
	if _, ok := imports(f)["gopkg.in/yaml.v3"]; ok {
		t.Fatalf("text mode must not import yaml")
	}
	if !strings.Contains(string(code), `return 0, NewError(serialenum.UnknownVariantMessage(s, "privContentFormat"))`) {
		t.Fatalf("local error constructor not bound:\n%s", code)
	}
	if !strings.HasPrefix(string(code), "// Code generated by serialenum. DO NOT EDIT.\n") {
		t.Fatalf("header without source:\n%s", code)
	}
}

func TestRender_ForeignErrorConstructorIsImported(t *testing.T) {
	e := contentFormat()
	e.Error = ir.ErrorFunc{ImportPath: "example.com/app/errs", Func: "Invalid"}
	other := contentFormat()
	other.Name, other.Visitor = "Kind", "KindVisitor"
	other.Error = ir.ErrorFunc{ImportPath: "example.com/lib/errs", Func: "Invalid"}
	code, err := Render(&ir.File{Package: "p", Enums: []ir.Enum{e, other}})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	f, _ := parse(t, code)
	imp := imports(f)
	if imp["example.com/app/errs"] != "" || imp["example.com/lib/errs"] != "errs2" {
		t.Fatalf("imports=%v", imp)
	}
	s := string(code)
	if !strings.Contains(s, "errs.Invalid(serialenum.UnknownVariantMessage(s, \"ContentFormat\"))") ||
		!strings.Contains(s, "errs2.Invalid(serialenum.UnknownVariantMessage(s, \"Kind\"))") {
		t.Fatalf("qualified constructors not used:\n%s", s)
	}
}

func TestRender_ParserFollowsTokenOrder(t *testing.T) {
	e := contentFormat()
	e.TokenOrder = []int{1, 0}
	code, err := Render(&ir.File{Package: "p", Enums: []ir.Enum{e}})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	s := string(code)
	parseFn := s[strings.Index(s, "func ParseContentFormat"):]
	if strings.Index(parseFn, `case "html"`) > strings.Index(parseFn, `case "markdown"`) {
		t.Fatalf("parser should match html first:\n%s", parseFn)
	}
	projector := s[strings.Index(s, "func (v ContentFormat) String"):]
	if strings.Index(projector, `case ContentFormatMarkdown`) > strings.Index(projector, `case ContentFormatHtml`) {
		t.Fatalf("projector keeps declaration order:\n%s", projector)
	}
}

func TestRender_QuotesTokens(t *testing.T) {
	e := contentFormat()
	e.Variants[0].Token = `with "quotes" and \ backslash`
	code, err := Render(&ir.File{Package: "p", Enums: []ir.Enum{e}})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	parse(t, code)
	if !strings.Contains(string(code), `"with \"quotes\" and \\ backslash"`) {
		t.Fatalf("token not quoted:\n%s", code)
	}
}

func TestRender_Rejects(t *testing.T) {
	if _, err := Render(&ir.File{Enums: []ir.Enum{contentFormat()}}); err == nil {
		t.Fatalf("expected error without package")
	}
	if _, err := Render(&ir.File{Package: "p"}); err == nil {
		t.Fatalf("expected error without enums")
	}
}

func TestRender_RejectsReservedIdentifiers(t *testing.T) {
	cases := map[string]func(e *ir.Enum){
		"template parameter": func(e *ir.Enum) { e.Name, e.Visitor = "data", "dataVisitor" },
		"receiver":           func(e *ir.Enum) { e.Name, e.Visitor = "node", "nodeVisitor" },
		"predeclared type":   func(e *ir.Enum) { e.Name, e.Visitor = "string", "stringVisitor" },
		"import":             func(e *ir.Enum) { e.Name, e.Visitor = "strconv", "strconvVisitor" },
		"visitor":            func(e *ir.Enum) { e.Visitor = "yaml" },
		"variant constant":   func(e *ir.Enum) { e.Name, e.Visitor, e.Variants[0].Name = "str", "strVisitor", "conv" },
		"error package": func(e *ir.Enum) {
			e.Name, e.Visitor = "errs", "errsVisitor"
			e.Error = ir.ErrorFunc{ImportPath: "example.com/app/errs", Func: "New"}
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			e := contentFormat()
			mutate(&e)
			code, err := Render(&ir.File{Package: "p", Enums: []ir.Enum{e}})
			if err == nil || !strings.Contains(err.Error(), "reserved") {
				t.Fatalf("expected reserved identifier error, got err=%v\n%s", err, code)
			}
		})
	}
}
