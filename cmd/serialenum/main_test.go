package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"

	js "github.com/reoring/serialenum/jsonschema"
)

const exampleDir = "../../examples/contentformat"

func TestGen_MatchesCommittedExample(t *testing.T) {
	out := filepath.Join(t.TempDir(), "contentformat_enum.go")
	var stdout, stderr bytes.Buffer
	code := run([]string{"gen", "-schema", filepath.Join(exampleDir, "enums.yaml"), "-o", out}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit=%d stderr=%s", code, stderr.String())
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want, err := os.ReadFile(filepath.Join(exampleDir, "contentformat_enum.go"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("generated code drifted from the committed example; run go generate ./examples/...\n%s", got)
	}
}

func TestGen_DefaultsAndVerbose(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "doc.go"), []byte("package shapes\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	schemaPath := filepath.Join(dir, "kinds.json")
	doc := `{"enums": [{"name": "Shape", "variants": [{"name": "Circle", "token": "circle"}, {"name": "Square", "token": "square"}]}]}`
	if err := os.WriteFile(schemaPath, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	if code := run([]string{"gen", "-schema", schemaPath, "-v"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit=%d stderr=%s", code, stderr.String())
	}
	got, err := os.ReadFile(filepath.Join(dir, "kinds_enum.go"))
	if err != nil {
		t.Fatalf("default output not written: %v", err)
	}
	if !strings.Contains(string(got), "package shapes\n") || !strings.Contains(string(got), "from kinds.json.") {
		t.Fatalf("unexpected output:\n%s", got)
	}
	if !strings.Contains(stderr.String(), "wrote generated file") || !strings.Contains(stderr.String(), "Shape: variants=2") {
		t.Fatalf("verbose log missing: %s", stderr.String())
	}
}

func TestGen_ReportsIssues(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "bad.yaml")
	doc := "enums:\n  - name: Shape\n    variants:\n      - {name: Circle, token: round}\n      - {name: Oval, token: round}\n"
	if err := os.WriteFile(schemaPath, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	if code := run([]string{"gen", "-schema", schemaPath}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit=%d", code)
	}
	if !strings.Contains(stderr.String(), "duplicate_token") || !strings.Contains(stderr.String(), "/enums/0/variants/1/token") {
		t.Fatalf("stderr=%s", stderr.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "bad_enum.go")); !os.IsNotExist(err) {
		t.Fatalf("no file should be written on error")
	}
}

func TestCheck(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"check", "-schema", filepath.Join(exampleDir, "enums.yaml")}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit=%d stderr=%s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "2 enum(s) ok") {
		t.Fatalf("stdout=%s", stdout.String())
	}
}

func TestCheck_RejectsReservedNames(t *testing.T) {
	for _, name := range []string{"data", "node", "string", "strconv"} {
		schemaPath := filepath.Join(t.TempDir(), "reserved.yaml")
		doc := "enums:\n  - name: " + name + "\n    variants:\n      - {name: A, token: a}\n"
		if err := os.WriteFile(schemaPath, []byte(doc), 0o644); err != nil {
			t.Fatal(err)
		}
		var stdout, stderr bytes.Buffer
		if code := run([]string{"check", "-schema", schemaPath}, &stdout, &stderr); code != 1 {
			t.Fatalf("%s: exit=%d stdout=%s", name, code, stdout.String())
		}
		if !strings.Contains(stderr.String(), "name_collision") {
			t.Fatalf("%s: stderr=%s", name, stderr.String())
		}
	}
}

func TestJSONSchema(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"jsonschema", "-schema", filepath.Join(exampleDir, "enums.yaml")}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit=%d stderr=%s", code, stderr.String())
	}
	var doc js.Document
	if err := gojson.Unmarshal(stdout.Bytes(), &doc); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, stdout.String())
	}
	s := doc.Defs["ContentFormat"]
	if doc.Schema != js.Draft || s == nil || strings.Join(s.Enum, ",") != "markdown,html" {
		t.Fatalf("doc=%+v", doc)
	}
}

func TestUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(nil, &stdout, &stderr); code != 2 || !strings.Contains(stderr.String(), "Usage:") {
		t.Fatalf("exit=%d stderr=%s", code, stderr.String())
	}
	if code := run([]string{"gen"}, &stdout, &stderr); code != 2 {
		t.Fatalf("missing -schema exit=%d", code)
	}
	if code := run([]string{"nope"}, &stdout, &stderr); code != 2 {
		t.Fatalf("unknown subcommand exit=%d", code)
	}
}
