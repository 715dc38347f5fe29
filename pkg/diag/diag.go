// Package diag defines the stable diagnostic vocabulary the call-site
// checker emits (spec §6) and a small Position/Diagnostic pair modeled
// on the teacher's pkg/errors (Position + Kind + Msg, one concrete error
// type per family).
package diag

import "fmt"

// Kind is a stable diagnostic identifier, stable across renderers (spec
// §6 lists these as "stable identifiers, not wire-formatted here").
type Kind string

const (
	TooManyArguments                      Kind = "TooManyArguments"
	TooFewArguments                        Kind = "TooFewArguments"
	UnexpectedKeywordArgument              Kind = "UnexpectedKeywordArgument"
	MultipleValuesForKeywordArgument       Kind = "MultipleValuesForKeywordArgument"
	ArgumentTypeIncompatible               Kind = "ArgumentTypeIncompatible"
	InvalidTypeVarValue                    Kind = "InvalidTypeVarValue"
	OverloadMismatch                       Kind = "OverloadMismatch"
	OverloadTooManyUnions                  Kind = "OverloadTooManyUnions"
	ParamSpecArgumentsNeedsBothStarAndStarStar Kind = "ParamSpecArgumentsNeedsBothStarAndStarStar"
	KeywordsMustBeStrings                  Kind = "KeywordsMustBeStrings"
	OnlyConcreteClassAllowedWhereTypeExpected  Kind = "OnlyConcreteClassAllowedWhereTypeExpected"
	MultipleTypeVarTuplesInClassDef        Kind = "MultipleTypeVarTuplesInClassDef"
	TypeVarDefaultWrongOrder               Kind = "TypeVarDefaultWrongOrder"
	Deprecated                             Kind = "Deprecated"
	MissingNamedArgument                   Kind = "MissingNamedArgument"

	// InvalidSpreadArgument covers *expr/**expr targets that are neither
	// iterable nor mapping-shaped; not named individually in spec §6 but
	// needed so C1 has somewhere to attach a diagnostic for it.
	InvalidSpreadArgument Kind = "InvalidSpreadArgument"
)

// Position is a location in source, matching the granularity the core's
// callers are expected to supply (byte-free here: the core only ever
// needs enough to attribute an error, never to render a caret).
type Position struct {
	Line   int
	Column int
}

// Diagnostic is a single emitted issue.
type Diagnostic struct {
	Kind    Kind
	Pos     Position
	Msg     string
	Args    []string // alternative signatures, argument type strings, etc.
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Pos.Line, d.Pos.Column, d.Kind, d.Msg)
}

// Sink accumulates diagnostics (spec §6 issue_sink.add(kind, location)).
type Sink interface {
	Add(d *Diagnostic)
}

// Collector is the default in-memory Sink the driver and tests use.
type Collector struct {
	Diagnostics []*Diagnostic
}

func (c *Collector) Add(d *Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// Shadow is a scratch Sink used during trial matches (spec §5/§7): it
// collects without ever reaching the real sink. Replay copies its
// contents onto a real Sink when a trial is chosen as the winner.
type Shadow struct {
	Collector
}

func NewShadow() *Shadow { return &Shadow{} }

func (s *Shadow) Replay(real Sink) {
	for _, d := range s.Diagnostics {
		real.Add(d)
	}
}
