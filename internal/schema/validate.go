package schema

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/reoring/serialenum"
	"github.com/reoring/serialenum/internal/ir"
)

// DefaultError is the constructor bound when an enum names none.
var DefaultError = ir.ErrorFunc{ImportPath: ir.RuntimeImport, Func: "NewParseError"}

// Validate checks f and returns every problem found, or nil.
func Validate(f *File) serialenum.Issues {
	var iss serialenum.Issues
	root := serialenum.Root()
	if f.Package != "" && !isIdent(f.Package) {
		iss = append(iss, root.Field("package").Issue(serialenum.CodeInvalidIdentifier,
			fmt.Sprintf("package %q is not a valid Go identifier", f.Package)))
	}
	if len(f.Enums) == 0 {
		iss = append(iss, root.Field("enums").Issue(serialenum.CodeEmptyEnum, "schema declares no enums"))
	}
	owners := map[string]string{} // generated identifier -> declaring enum
	imports := fileImports(f)
	for i := range f.Enums {
		iss = append(iss, validateEnum(&f.Enums[i], root.Field("enums").Index(i), owners, imports)...)
	}
	if len(iss) == 0 {
		return nil
	}
	return iss
}

func validateEnum(e *Enum, at serialenum.PathRef, owners map[string]string, imports []string) serialenum.Issues {
	var iss serialenum.Issues
	if !isIdent(e.Name) {
		iss = append(iss, at.Field("name").Issue(serialenum.CodeInvalidIdentifier,
			fmt.Sprintf("enum name %q is not a valid Go identifier", e.Name)))
		// every other check derives identifiers from the name
		return iss
	}
	switch ir.Visibility(e.Visibility) {
	case "":
	case ir.Public, ir.Private:
		if token.IsExported(e.Name) != (ir.Visibility(e.Visibility) == ir.Public) {
			iss = append(iss, at.Field("visibility").Issue(serialenum.CodeVisibilityMismatch,
				fmt.Sprintf("enum %s is declared %s but its name is %s", e.Name, e.Visibility, visibilityOf(e.Name)),
				"visibility", e.Visibility))
		}
	default:
		iss = append(iss, at.Field("visibility").Issue(serialenum.CodeVisibilityMismatch,
			fmt.Sprintf("visibility %q must be public or private", e.Visibility)))
	}
	if e.Visitor != "" && !isIdent(e.Visitor) {
		iss = append(iss, at.Field("visitor").Issue(serialenum.CodeInvalidIdentifier,
			fmt.Sprintf("visitor %q is not a valid Go identifier", e.Visitor)))
	}
	switch ir.Mode(e.Mode) {
	case "", ir.ModeFull, ir.ModeText:
	default:
		iss = append(iss, at.Field("mode").Issue(serialenum.CodeInvalidMode,
			fmt.Sprintf("mode %q must be %s or %s", e.Mode, ir.ModeFull, ir.ModeText)))
	}
	if _, err := ParseErrorFunc(e.Error); err != nil {
		iss = append(iss, at.Field("error").Issue(serialenum.CodeInvalidErrorFunc, err.Error()))
	}
	if len(e.Variants) == 0 {
		iss = append(iss, at.Field("variants").Issue(serialenum.CodeEmptyEnum,
			fmt.Sprintf("enum %s declares no variants", e.Name)))
	}

	declared := map[string]int{}
	for i, v := range e.Variants {
		vat := at.Field("variants").Index(i)
		if !isIdent(v.Name) {
			iss = append(iss, vat.Field("name").Issue(serialenum.CodeInvalidIdentifier,
				fmt.Sprintf("variant name %q is not a valid Go identifier", v.Name)))
			continue
		}
		if _, dup := declared[v.Name]; dup {
			iss = append(iss, vat.Field("name").Issue(serialenum.CodeDuplicateVariant,
				fmt.Sprintf("variant %s.%s is declared twice", e.Name, v.Name)))
			continue
		}
		declared[v.Name] = i
	}

	// token map: exactly one non-empty token per variant, tokens distinct
	bound := map[string]string{} // variant -> token
	byToken := map[string]string{}
	bind := func(at serialenum.PathRef, variant, tok string) {
		if _, ok := declared[variant]; !ok {
			iss = append(iss, at.Issue(serialenum.CodeUnknownVariant,
				fmt.Sprintf("token %q is bound to undeclared variant %s.%s", tok, e.Name, variant)))
			return
		}
		if _, dup := bound[variant]; dup {
			iss = append(iss, at.Issue(serialenum.CodeDuplicateVariant,
				fmt.Sprintf("variant %s.%s is bound to more than one token", e.Name, variant)))
			return
		}
		if tok == "" {
			iss = append(iss, at.Issue(serialenum.CodeMissingToken,
				fmt.Sprintf("variant %s.%s has an empty token", e.Name, variant)))
			bound[variant] = tok
			return
		}
		if prev, dup := byToken[tok]; dup {
			iss = append(iss, at.Issue(serialenum.CodeDuplicateToken,
				fmt.Sprintf("token %q of %s.%s is already bound to %s.%s", tok, e.Name, variant, e.Name, prev),
				"token", tok))
		}
		bound[variant] = tok
		byToken[tok] = variant
	}
	for _, t := range e.Tokens {
		bind(at.Field("tokens").Field(t.Variant), t.Variant, t.Token)
	}
	for i, v := range e.Variants {
		if v.Token != "" {
			bind(at.Field("variants").Index(i).Field("token"), v.Name, v.Token)
		}
	}
	for i, v := range e.Variants {
		if _, ok := bound[v.Name]; !ok && isIdent(v.Name) {
			iss = append(iss, at.Field("variants").Index(i).Field("token").Issue(serialenum.CodeMissingToken,
				fmt.Sprintf("variant %s.%s has no token", e.Name, v.Name)))
		}
	}

	for _, id := range generatedIdents(e) {
		if ir.Reserved(id, imports) {
			iss = append(iss, at.Issue(serialenum.CodeNameCollision,
				fmt.Sprintf("generated identifier %s of enum %s is predeclared, imported or reserved by the generated methods", id, e.Name),
				"identifier", id))
			continue
		}
		if prev, taken := owners[id]; taken {
			iss = append(iss, at.Issue(serialenum.CodeNameCollision,
				fmt.Sprintf("generated identifier %s of enum %s collides with enum %s", id, e.Name, prev),
				"identifier", id))
			continue
		}
		owners[id] = e.Name
	}
	return iss
}

// fileImports lists the imports the generated file will carry, skipping error
// constructors that fail to parse.
func fileImports(f *File) []string {
	tmp := ir.File{}
	for i := range f.Enums {
		fn, err := ParseErrorFunc(f.Enums[i].Error)
		if err != nil {
			continue
		}
		tmp.Enums = append(tmp.Enums, ir.Enum{Mode: modeOf(&f.Enums[i]), Error: fn})
	}
	return tmp.Imports()
}

func modeOf(e *Enum) ir.Mode {
	if e.Mode == "" {
		return ir.ModeFull
	}
	return ir.Mode(e.Mode)
}

// generatedIdents lists the package-level identifiers the generator declares
// for e.
func generatedIdents(e *Enum) []string {
	tmp := ir.Enum{Name: e.Name, Visitor: VisitorName(e)}
	seen := map[string]bool{}
	for _, v := range e.Variants {
		if seen[v.Name] {
			continue // reported as duplicate_variant
		}
		seen[v.Name] = true
		tmp.Variants = append(tmp.Variants, ir.Variant{Name: v.Name})
	}
	return tmp.Idents()
}

// VisitorName returns the visitor type name of e, defaulting to NameVisitor.
func VisitorName(e *Enum) string {
	if e.Visitor != "" {
		return e.Visitor
	}
	return e.Name + "Visitor"
}

// ParseErrorFunc parses an error constructor reference: "" (default),
// "Func" (same package) or "import/path.Func".
func ParseErrorFunc(ref string) (ir.ErrorFunc, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return DefaultError, nil
	}
	dot := strings.LastIndex(ref, ".")
	if dot < 0 {
		if !isIdent(ref) {
			return ir.ErrorFunc{}, fmt.Errorf("error constructor %q is not a valid Go identifier", ref)
		}
		return ir.ErrorFunc{Func: ref}, nil
	}
	path, fn := ref[:dot], ref[dot+1:]
	if dot < strings.LastIndex(ref, "/") || path == "" {
		return ir.ErrorFunc{}, fmt.Errorf("error constructor %q must be of the form import/path.Func", ref)
	}
	if !isIdent(fn) || !token.IsExported(fn) {
		return ir.ErrorFunc{}, fmt.Errorf("error constructor %q must name an exported function", ref)
	}
	return ir.ErrorFunc{ImportPath: path, Func: fn}, nil
}

func isIdent(s string) bool { return token.IsIdentifier(s) && s != "_" }

func visibilityOf(name string) ir.Visibility {
	if token.IsExported(name) {
		return ir.Public
	}
	return ir.Private
}
