package schema

import (
	"github.com/reoring/serialenum/internal/ir"
)

// Build validates f and lowers it to the generator IR. pkg overrides the
// package declared in the file when non-empty.
func Build(f *File, pkg string) (*ir.File, error) {
	if iss := Validate(f); iss != nil {
		return nil, iss
	}
	out := &ir.File{Package: f.Package}
	if pkg != "" {
		out.Package = pkg
	}
	for i := range f.Enums {
		out.Enums = append(out.Enums, lower(&f.Enums[i]))
	}
	return out, nil
}

func lower(e *Enum) ir.Enum {
	errFn, _ := ParseErrorFunc(e.Error) // validated
	out := ir.Enum{
		Name:       e.Name,
		Doc:        e.Doc,
		Visibility: visibilityOf(e.Name),
		Visitor:    VisitorName(e),
		Mode:       modeOf(e),
		Error:      errFn,
	}
	index := make(map[string]int, len(e.Variants))
	for i, v := range e.Variants {
		index[v.Name] = i
		out.Variants = append(out.Variants, ir.Variant{Name: v.Name, Doc: v.Doc, Token: v.Token})
	}
	// tokens block first, in its own order, then inline tokens
	for _, t := range e.Tokens {
		i := index[t.Variant]
		out.Variants[i].Token = t.Token
		out.TokenOrder = append(out.TokenOrder, i)
	}
	for i, v := range e.Variants {
		if v.Token != "" {
			out.TokenOrder = append(out.TokenOrder, i)
		}
	}
	return out
}
