// Package serialenum binds data-less Go enums to canonical string tokens.
//
// A bound enum provides:
//
// - A total projector (String) from every variant to its token
// - An exact, case-sensitive parser from a token back to the variant
// - Serializer adapters that emit the bare token (text, JSON, YAML)
// - Deserializer adapters that trim surrounding whitespace, parse, and report
// unknown values as Issues listing the accepted tokens
//
// Bindings come from two places. cmd/serialenum generates a typed enum from a
// YAML or JSON schema (see examples/contentformat); Bind builds the same
// behavior at runtime for an existing comparable type.
//
// Typical usage:
//
//	var colors = serialenum.MustBind("Color", []serialenum.Pair[Color]{
//		{Variant: Red, Token: "red"},
//		{Variant: Green, Token: "green"},
//	})
//
//	tok := colors.String(Red)          // "red"
//	c, err := colors.Parse("green")     // Green, nil
//	err = colors.UnmarshalJSON(data, &c) // trims, parses, reports Issues
//
// Errors from the adapters are Issues. The error returned by the bound error
// constructor stays reachable through errors.Is and errors.As.
package serialenum
