// Package ir defines the minimal intermediate representation used by the
// code generator. This package is internal and not part of the public API.
package ir

import (
	"go/token"
	"go/types"
	"path"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Mode selects which serialization protocols the generated code binds to.
type Mode string

const (
	// ModeFull emits text, JSON and YAML adapters with allow-list diagnostics.
	ModeFull Mode = "full"
	// ModeText emits only encoding.TextMarshaler/TextUnmarshaler.
	ModeText Mode = "text"
)

// Visibility mirrors Go's exported/unexported split.
type Visibility string

const (
	Public  Visibility = "public"
	Private Visibility = "private"
)

// File is everything rendered into one generated source file.
type File struct {
	Package string
	Source  string // schema file the code was generated from, for the header
	Enums   []Enum
}

// Enum is one bound enum: declaration plus token map plus error binding.
type Enum struct {
	Name       string
	Doc        string
	Visibility Visibility
	Visitor    string // auxiliary adapter type name
	Mode       Mode
	Error      ErrorFunc
	Variants   []Variant // declaration order
	// TokenOrder lists indexes into Variants in token map declaration order;
	// the parser matches in this order.
	TokenOrder []int
}

// Variant is one data-less case of an enum.
type Variant struct {
	Name  string
	Doc   string
	Token string
}

// ErrorFunc names the single-argument constructor invoked on parse failure.
// An empty ImportPath refers to a function of the generated package.
type ErrorFunc struct {
	ImportPath string
	Func       string
}

// Qualified reports whether the constructor lives in another package.
func (e ErrorFunc) Qualified() bool { return e.ImportPath != "" }

// ConstName is the constant declared for variant v.
func (e *Enum) ConstName(v Variant) string { return e.Name + v.Name }

// ParserName is the parse function name, exported like the type.
func (e *Enum) ParserName() string {
	if e.Exported() {
		return "Parse" + e.Name
	}
	r, n := utf8.DecodeRuneInString(e.Name)
	return "parse" + string(unicode.ToUpper(r)) + e.Name[n:]
}

// ValuesName is the function listing all variants.
func (e *Enum) ValuesName() string { return e.Name + "Values" }

// TokensName is the function listing all canonical tokens.
func (e *Enum) TokensName() string { return e.Name + "Tokens" }

// Exported reports whether the enum type is visible outside its package.
func (e *Enum) Exported() bool { return token.IsExported(e.Name) }

// Idents lists every package-level identifier generated for e.
func (e *Enum) Idents() []string {
	ids := []string{e.Name, e.Visitor, e.ParserName(), e.ValuesName(), e.TokensName()}
	for _, v := range e.Variants {
		ids = append(ids, e.ConstName(v))
	}
	return ids
}

// RuntimeImport is the import path of the serialenum runtime package.
const RuntimeImport = "github.com/reoring/serialenum"

// Imports lists the import paths a generated file needs, without duplicates:
// strconv, the runtime, yaml.v3 when any enum is in full mode, then every
// foreign error constructor package in enum order.
func (f *File) Imports() []string {
	paths := []string{"strconv", RuntimeImport}
	for i := range f.Enums {
		if f.Enums[i].Mode != ModeText {
			paths = append(paths, "gopkg.in/yaml.v3")
			break
		}
	}
	for i := range f.Enums {
		if p := f.Enums[i].Error.ImportPath; p != "" && !slices.Contains(paths, p) {
			paths = append(paths, p)
		}
	}
	return paths
}

// templateParams are the receiver and parameter names of generated methods.
var templateParams = []string{"v", "s", "text", "data", "node"}

// Reserved reports whether id cannot be declared at package level of a
// generated file importing imports: it is predeclared, it is the name of one
// of the imports, or generated method bodies use it as a parameter name.
func Reserved(id string, imports []string) bool {
	if types.Universe.Lookup(id) != nil || slices.Contains(templateParams, id) {
		return true
	}
	for _, p := range imports {
		if PackageName(p) == id {
			return true
		}
	}
	return false
}

// PackageName guesses the package name of an import path: the last element
// without a major version suffix, gopkg.in ".vN" suffix or dashes.
func PackageName(p string) string {
	elem := path.Base(p)
	if len(elem) > 1 && elem[0] == 'v' && isDigits(elem[1:]) && path.Dir(p) != "." {
		elem = path.Base(path.Dir(p))
	}
	if i := strings.Index(elem, ".v"); i > 0 && isDigits(elem[i+2:]) {
		elem = elem[:i]
	}
	elem = strings.TrimPrefix(elem, "go-")
	return strings.NewReplacer("-", "", ".", "").Replace(elem)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
