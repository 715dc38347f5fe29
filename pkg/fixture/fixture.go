// Package fixture provides a small declarative TOML format describing
// callables and call sites, standing in for the syntax-tree construction
// and name resolution collaborators spec.md §1 keeps out of scope.
// cmd/callsig's `check` subcommand builds pkg/checker inputs from this
// loader (the unit tests construct inputs directly), grounded on vovakirdan-surge's
// BurntSushi/toml-based config loading pattern.
package fixture

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/singularitti/zuban/pkg/types"
)

// File is the root of one fixture document: a handful of named
// signatures, plus the call sites to check against them.
type File struct {
	Signature []SignatureDecl `toml:"signature"`
	Call      []CallDecl      `toml:"call"`
}

// SignatureDecl declares a callable (one or more overload alternatives
// share a Name; order in the file is overload source order, spec §4.5).
type SignatureDecl struct {
	Name   string      `toml:"name"`
	Params []ParamDecl `toml:"params"`
	Return string      `toml:"returns"`
}

// ParamDecl is one declared parameter. Kind selects among the closed set
// in pkg/types.ParamKind; the zero value "positional_or_keyword" covers
// the overwhelmingly common case so most fixtures can omit it.
type ParamDecl struct {
	Name       string `toml:"name"`
	Type       string `toml:"type"`
	Kind       string `toml:"kind"` // "positional_only" | "positional_or_keyword" | "keyword_only" | "star" | "star_star"
	HasDefault bool   `toml:"has_default"`
}

// CallDecl is one call site: which declared signature it targets and the
// raw argument list exactly as written.
type CallDecl struct {
	Target string     `toml:"target"`
	Args   []ArgDecl  `toml:"args"`
}

// ArgDecl is one argument as written at the call site.
type ArgDecl struct {
	Kind string `toml:"kind"` // "positional" | "keyword" | "star" | "star_star"
	Name string `toml:"name"` // set when Kind == "keyword"
	Type string `toml:"type"` // the fixture's stand-in for "infer this expression's type"
}

// Load parses a fixture document from TOML text.
func Load(data []byte) (*File, error) {
	var f File
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	return &f, nil
}

// BuildSignature resolves a SignatureDecl's textual type annotations
// into a *types.Signature using the shared primitive/builtin vocabulary
// TypeByName understands.
func BuildSignature(decl SignatureDecl) (*types.Signature, error) {
	sig := &types.Signature{ReturnType: types.Any}
	if decl.Return != "" {
		t, err := TypeByName(decl.Return)
		if err != nil {
			return nil, err
		}
		sig.ReturnType = t
	}
	for _, pd := range decl.Params {
		p, err := buildParam(pd)
		if err != nil {
			return nil, err
		}
		sig.Params = append(sig.Params, p)
	}
	return sig, nil
}

func buildParam(pd ParamDecl) (*types.Param, error) {
	p := &types.Param{Name: pd.Name, HasDefault: pd.HasDefault, Kind: types.PositionalOrKeyword}
	if pd.Type != "" {
		t, err := TypeByName(pd.Type)
		if err != nil {
			return nil, err
		}
		p.Type = t
	}
	switch pd.Kind {
	case "", "positional_or_keyword":
		p.Kind = types.PositionalOrKeyword
	case "positional_only":
		p.Kind = types.PositionalOnly
	case "keyword_only":
		p.Kind = types.KeywordOnly
	case "star":
		p.Kind = types.StarParam
		p.StarKind = types.StarArbitraryLen
	case "star_star":
		p.Kind = types.StarStarParam
		p.StarStarKind = types.StarStarValueType
	default:
		return nil, fmt.Errorf("fixture: unknown param kind %q", pd.Kind)
	}
	return p, nil
}

// TypeByName resolves a fixture's textual type name to a types.Type. It
// understands the primitive names only; composite spellings such as
// `list[T]` or `dict[K, V]` are not parsed and return an unknown-type
// error (a full type-expression parser is a name-resolution concern
// spec §1 excludes).
func TypeByName(name string) (types.Type, error) {
	switch name {
	case "Any":
		return types.Any, nil
	case "Unknown":
		return types.Unknown, nil
	case "Never":
		return types.Never, nil
	case "None":
		return types.None, nil
	case "bool":
		return types.Bool, nil
	case "int":
		return types.Int, nil
	case "float":
		return types.Float, nil
	case "str":
		return types.Str, nil
	case "bytes":
		return types.Bytes, nil
	}
	return nil, fmt.Errorf("fixture: unknown type name %q", name)
}
