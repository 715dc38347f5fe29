package fixture

import (
	"fmt"

	"github.com/singularitti/zuban/pkg/checker"
	"github.com/singularitti/zuban/pkg/external"
	"github.com/singularitti/zuban/pkg/types"
)

// LiteralExpr is the fixture format's stand-in for a real argument
// expression (spec §1 excludes syntax-tree construction): its type is
// simply whatever the fixture declared, already resolved, rather than
// computed by an inference algorithm.
type LiteralExpr struct {
	index int
	line  int
	typ   types.Type
}

func NewLiteralExpr(index, line int, t types.Type) *LiteralExpr {
	return &LiteralExpr{index: index, line: line, typ: t}
}

func (e *LiteralExpr) Index() int { return e.index }
func (e *LiteralExpr) Line() int  { return e.line }

func (e *LiteralExpr) Infer(ctx *external.ExpectedType) (types.Type, error) {
	return e.typ, nil
}

// BuildRawArgs resolves a CallDecl's argument list into the
// []checker.RawArg the checker's Normalizer consumes. Declared here,
// rather than in pkg/checker, so pkg/checker stays free of any
// dependency on the fixture format — the dependency runs the other way.
func BuildRawArgs(call CallDecl) ([]checker.RawArg, error) {
	out := make([]checker.RawArg, len(call.Args))
	for i, a := range call.Args {
		t, err := TypeByName(a.Type)
		if err != nil {
			return nil, err
		}
		expr := NewLiteralExpr(i, i+1, t)

		var kind checker.RawArgKind
		switch a.Kind {
		case "", "positional":
			kind = checker.RawPositional
		case "keyword":
			kind = checker.RawKeyword
		case "star":
			kind = checker.RawStar
		case "star_star":
			kind = checker.RawStarStar
		case "comprehension":
			kind = checker.RawComprehension
		default:
			return nil, fmt.Errorf("fixture: unknown arg kind %q", a.Kind)
		}
		out[i] = checker.RawArg{Kind: kind, Name: a.Name, Expr: expr}
	}
	return out, nil
}

var _ external.Expression = (*LiteralExpr)(nil)
