package serialenum

import (
	"strconv"
	"strings"

	"github.com/reoring/serialenum/i18n"
)

// IssueAt creates an Issue at p with the given code, message and params and an
// unknown offset.
func IssueAt(p PathRef, code, msg string, params map[string]any) Issue {
	return Issue{Path: p.Pointer(), Code: code, Message: msg, Params: params, Offset: -1}
}

func singleIssue(code, msg string) Issues {
	return Issues{IssueAt(Root(), code, msg, nil)}
}

// UnknownValue shapes a parser failure for input into the adapter error
// model. With DiagnosticsAllowList the accepted tokens are attached.
func UnknownValue(enum, input string, tokens []string, cause error, d Diagnostics) error {
	msg := UnknownVariantMessage(input, enum)
	if cause != nil {
		msg = cause.Error()
	}
	it := IssueAt(Root(), CodeInvalidEnum, msg, map[string]any{"enum": enum, "value": input})
	it.Cause = cause
	if d == DiagnosticsAllowList && len(tokens) > 0 {
		expected := append([]string(nil), tokens...)
		it.Params["expected"] = expected
		it.Hint = i18n.T(CodeInvalidEnum, map[string]string{"expected": quoteList(expected)})
	}
	return Issues{it}
}

// InvalidVariant reports an integer value outside the declared variants of
// enum. Generated marshalers return it for values that are not variants.
func InvalidVariant(enum string, v int64) error {
	value := enum + "(" + strconv.FormatInt(v, 10) + ")"
	msg := i18n.T(CodeInvalidValue, map[string]string{"enum": enum, "value": value})
	return Issues{IssueAt(Root(), CodeInvalidValue, msg, map[string]any{"enum": enum, "value": v})}
}

func invalidType(expecting, got string, offset int64) Issues {
	it := IssueAt(Root(), CodeInvalidType, i18n.T(CodeInvalidType, map[string]string{"expected": expecting}),
		map[string]any{"expected": expecting, "got": got})
	it.Offset = offset
	return Issues{it}
}

// quoteList renders tokens the way unknown keys are reported: `a`, `b`.
func quoteList(tokens []string) string {
	b := &strings.Builder{}
	for i, t := range tokens {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("`")
		b.WriteString(t)
		b.WriteString("`")
	}
	return b.String()
}
