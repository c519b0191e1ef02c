package serialenum_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/reoring/serialenum"
	"github.com/reoring/serialenum/i18n"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := serialenum.Issues{
		{Path: "/a", Code: serialenum.CodeInvalidType, Message: "m"},
		{Path: "/b", Code: serialenum.CodeInvalidEnum, Hint: "h"},
		{Path: "/c", Code: serialenum.CodeDuplicateToken},
		{Path: "/d", Code: serialenum.CodeMissingToken},
	}
	want := "invalid_type at /a: m; invalid_enum at /b (h); duplicate_token at /c; ... (total 4)"
	if s := iss.Error(); s != want {
		t.Fatalf("summary=%q", s)
	}
	if (serialenum.Issues{}).Error() != "" {
		t.Fatalf("empty issues should render empty")
	}
}

func TestIssues_Unwrap(t *testing.T) {
	sentinel := errors.New("boom")
	iss := serialenum.Issues{{Code: serialenum.CodeParseError}, {Code: serialenum.CodeInvalidEnum, Cause: sentinel}}
	if !errors.Is(iss, sentinel) {
		t.Fatalf("cause not reachable")
	}
	got, ok := serialenum.AsIssues(iss)
	if !ok || len(got) != 2 {
		t.Fatalf("AsIssues ok=%v got=%v", ok, got)
	}
	if _, ok := serialenum.AsIssues(sentinel); ok {
		t.Fatalf("plain error is not Issues")
	}
	if _, ok := serialenum.AsIssues(nil); ok {
		t.Fatalf("nil is not Issues")
	}
}

func TestParseError(t *testing.T) {
	err := serialenum.NewParseError(serialenum.UnknownVariantMessage("x", "Color"))
	if err.Error() != "`x` is not a known `Color` variant" {
		t.Fatalf("message=%q", err.Error())
	}
	if !errors.Is(err, serialenum.ErrUnknownVariant) {
		t.Fatalf("ParseError should match ErrUnknownVariant")
	}
}

func TestPathRef(t *testing.T) {
	p := serialenum.Root().Field("enums").Index(2).Field("tokens").Field("a/b~c")
	if got := p.Pointer(); got != "/enums/2/tokens/a~1b~0c" {
		t.Fatalf("pointer=%s", got)
	}
	it := p.Issue(serialenum.CodeDuplicateToken, "dup", "token", "x")
	if it.Path != p.Pointer() || it.Params["token"] != "x" || it.Offset != -1 {
		t.Fatalf("issue=%+v", it)
	}
	it = serialenum.IssueAt(serialenum.Root().Field("x"), serialenum.CodeInvalidValue, "m", nil)
	if it.Path != "/x" || it.Code != serialenum.CodeInvalidValue || it.Offset != -1 {
		t.Fatalf("issue=%+v", it)
	}
}

func TestInvalidVariant(t *testing.T) {
	err := serialenum.InvalidVariant("Color", 9)
	iss, ok := serialenum.AsIssues(err)
	if !ok || iss[0].Code != serialenum.CodeInvalidValue || iss[0].Params["value"] != int64(9) {
		t.Fatalf("err=%v", err)
	}
	if iss[0].Message != "Color(9) is not a declared Color variant" || iss[0].Path != "/" || iss[0].Offset != -1 {
		t.Fatalf("issue=%+v", iss[0])
	}
}

func TestUnknownValue_Localized(t *testing.T) {
	i18n.SetLanguage("ja")
	t.Cleanup(func() { i18n.SetLanguage("en") })
	err := serialenum.UnknownValue("Color", "pink", []string{"red"}, nil, serialenum.DiagnosticsAllowList)
	iss, _ := serialenum.AsIssues(err)
	if !strings.Contains(iss[0].Hint, "`red`") || strings.HasPrefix(iss[0].Hint, "expected") {
		t.Fatalf("hint=%q", iss[0].Hint)
	}
	if iss[0].Message != "`pink` is not a known `Color` variant" {
		t.Fatalf("message=%q", iss[0].Message)
	}
}
