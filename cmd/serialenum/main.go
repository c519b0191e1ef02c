package main

import (
	"errors"
	"flag"
	"fmt"
	"go/parser"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	gojson "github.com/goccy/go-json"

	"github.com/reoring/serialenum"
	"github.com/reoring/serialenum/internal/gen"
	"github.com/reoring/serialenum/internal/ir"
	"github.com/reoring/serialenum/internal/schema"
	js "github.com/reoring/serialenum/jsonschema"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	pathColor = color.New(color.FgYellow)
	hintColor = color.New(color.FgCyan)
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	var err error
	switch args[0] {
	case "gen":
		err = genCmd(args[1:], stderr)
	case "check":
		err = checkCmd(args[1:], stdout, stderr)
	case "jsonschema":
		err = jsonSchemaCmd(args[1:], stdout, stderr)
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return 0
	default:
		usage(stderr)
		return 2
	}
	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp), errors.Is(err, errUsage):
		return 2
	default:
		report(stderr, err)
		return 1
	}
}

var errUsage = errors.New("usage")

func usage(w io.Writer) {
	fmt.Fprintln(w, "serialenum CLI\n\nUsage:\n  serialenum gen -schema enums.yaml [-o out.go] [-pkg name] [-v]\n  serialenum check -schema enums.yaml\n  serialenum jsonschema -schema enums.yaml [-o out.json]\n\nSchema files may be YAML (.yaml/.yml) or JSON (.json/.jsonc, comments allowed).")
}

func genCmd(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var schemaPath, out, pkg string
	var verbose bool
	fs.StringVar(&schemaPath, "schema", "", "schema file (YAML, JSON or JSONC)")
	fs.StringVar(&out, "o", "", "output filename (default: <schema>_enum.go next to the schema)")
	fs.StringVar(&pkg, "pkg", "", "package name (default: schema package, then the output directory's package)")
	fs.BoolVar(&verbose, "v", false, "enable verbose logs")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if schemaPath == "" {
		fs.Usage()
		return errUsage
	}
	logf := func(format string, a ...any) {
		if verbose {
			fmt.Fprintf(stderr, format+"\n", a...)
		}
	}
	if out == "" {
		out = defaultOutput(schemaPath)
	}

	f, err := schema.LoadFile(schemaPath)
	if err != nil {
		return err
	}
	if pkg == "" && f.Package == "" {
		pkg = detectPackageNameFor(filepath.Dir(out))
		if pkg == "" {
			pkg = "main"
		}
	}
	file, err := schema.Build(f, pkg)
	if err != nil {
		return err
	}
	file.Source = filepath.Base(schemaPath)
	logf("gen: schema=%s package=%s enums=%d out=%s", schemaPath, file.Package, len(file.Enums), out)
	for _, e := range file.Enums {
		logf("  %s: variants=%d visitor=%s mode=%s error=%s", e.Name, len(e.Variants), e.Visitor, e.Mode, errorRef(e.Error))
	}

	code, err := gen.Render(file)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	if err := os.WriteFile(out, code, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	logf("wrote generated file: %s", out)
	return nil
}

func checkCmd(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var schemaPath string
	fs.StringVar(&schemaPath, "schema", "", "schema file (YAML, JSON or JSONC)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if schemaPath == "" {
		fs.Usage()
		return errUsage
	}
	f, err := schema.LoadFile(schemaPath)
	if err != nil {
		return err
	}
	if iss := schema.Validate(f); iss != nil {
		return iss
	}
	fmt.Fprintf(stdout, "%s: %d enum(s) ok\n", schemaPath, len(f.Enums))
	return nil
}

func jsonSchemaCmd(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("jsonschema", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var schemaPath, out string
	fs.StringVar(&schemaPath, "schema", "", "schema file (YAML, JSON or JSONC)")
	fs.StringVar(&out, "o", "", "output filename (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if schemaPath == "" {
		fs.Usage()
		return errUsage
	}
	f, err := schema.LoadFile(schemaPath)
	if err != nil {
		return err
	}
	file, err := schema.Build(f, "")
	if err != nil {
		return err
	}
	data, err := gojson.MarshalIndent(documentFor(file), "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if out == "" {
		_, err = stdout.Write(data)
		return err
	}
	return os.WriteFile(out, data, 0o644)
}

// documentFor projects every enum of file into a JSON Schema definition.
func documentFor(file *ir.File) *js.Document {
	defs := make(map[string]*js.Schema, len(file.Enums))
	for _, e := range file.Enums {
		s := &js.Schema{Type: "string", Title: e.Name, Description: strings.TrimSpace(e.Doc)}
		for _, v := range e.Variants {
			s.Enum = append(s.Enum, v.Token)
		}
		defs[e.Name] = s
	}
	return js.NewDocument(defs)
}

func defaultOutput(schemaPath string) string {
	base := strings.TrimSuffix(filepath.Base(schemaPath), filepath.Ext(schemaPath))
	return filepath.Join(filepath.Dir(schemaPath), base+"_enum.go")
}

// detectPackageNameFor reads the package clause of the Go files in dir,
// ignoring tests and generated output.
func detectPackageNameFor(dir string) string {
	fset := token.NewFileSet()
	matches, _ := filepath.Glob(filepath.Join(dir, "*.go"))
	for _, m := range matches {
		if strings.HasSuffix(m, "_test.go") || strings.HasSuffix(m, "_enum.go") {
			continue
		}
		f, err := parser.ParseFile(fset, m, nil, parser.PackageClauseOnly)
		if err != nil || f.Name == nil {
			continue
		}
		return f.Name.Name
	}
	return ""
}

func errorRef(e ir.ErrorFunc) string {
	if e.Qualified() {
		return e.ImportPath + "." + e.Func
	}
	return e.Func
}

// report prints err to w, one colored line per issue.
func report(w io.Writer, err error) {
	iss, ok := serialenum.AsIssues(err)
	if !ok {
		errColor.Fprint(w, "error: ")
		fmt.Fprintln(w, err)
		return
	}
	for _, it := range iss {
		errColor.Fprintf(w, "%s ", it.Code)
		pathColor.Fprintf(w, "%s", it.Path)
		fmt.Fprintf(w, ": %s", it.Message)
		if it.Hint != "" {
			hintColor.Fprintf(w, " (%s)", it.Hint)
		}
		fmt.Fprintln(w)
	}
}
