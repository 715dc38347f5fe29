package checker

import "github.com/singularitti/zuban/pkg/types"

// Pairing is one (param, argument-or-absence) pairing produced by the
// Pairer (spec §4.2). Most parameters pair with a single Arg; starred
// parameters and typed-dict unpacks may gather several.
type Pairing struct {
	Param *types.Param
	Args  []*Arg
	Absent bool

	// Duplicate is set on a PositionalOrKeyword pairing when a keyword
	// argument with the same name was also supplied (spec §4.3
	// "MultipleValuesForKeywordArgument").
	Duplicate *Arg

	// FromWildcard marks a pairing satisfied by a **kwargs wildcard
	// spread rather than a direct keyword argument.
	FromWildcard bool

	// FieldArgs is populated for a StarStarUnpackTypedDict pairing:
	// field name -> the Arg providing it.
	FieldArgs map[string]*Arg

	// ParamSpecBundle is set when this pairing is half of a
	// Star(ParamSpecArgs)/StarStar(ParamSpecKwargs) pair consuming the
	// call's remaining arguments as a single param-spec binding, or the
	// single forwarded ArgParamSpecForward argument.
	ParamSpecBundle bool
	ParamSpecForward *Arg // set when satisfied by `*P.args, **P.kwargs` forwarding
}

// PairResult is the Pairer's full output for one signature attempt.
type PairResult struct {
	Pairings               []*Pairing
	TooManyPositional      bool
	UnusedKeywords         []*Arg
	ArbitraryLengthHandled bool
	MissingFields          []string
}

// Pairer is C2.
type Pairer struct{}

// Pair walks params against the normalized argument stream, producing a
// Pairing per parameter (spec §4.2).
func (Pairer) Pair(params []*types.Param, args []*Arg) *PairResult {
	var positional []*Arg
	var named []*Arg
	var wildcard *Arg
	seenWildcard := false

	for _, a := range args {
		// A union-math override pairs exactly like the argument it wraps.
		kind := a.Kind
		for orig := a; kind == ArgOverridden && orig.Original != nil; {
			orig = orig.Original
			kind = orig.Kind
		}
		switch kind {
		case ArgPositional, ArgStarSpread, ArgComprehension, ArgParamSpecForward:
			positional = append(positional, a)
		case ArgKeyword, ArgStarStarField:
			named = append(named, a)
		case ArgStarStarWildcard:
			// Only the first simultaneous **spread is honored; a second
			// one is silently ignored (spec §9 open question).
			if !seenWildcard {
				wildcard = a
				seenWildcard = true
			}
		}
	}

	consumeNamed := func(name string) *Arg {
		for i, a := range named {
			if a.Name == name {
				named = append(named[:i], named[i+1:]...)
				return a
			}
		}
		return nil
	}

	peekPositional := func() (*Arg, bool) {
		if len(positional) == 0 {
			return nil, false
		}
		return positional[0], true
	}

	consumeOnePositional := func() (*Arg, bool) {
		a, ok := peekPositional()
		if !ok {
			return nil, false
		}
		if !a.ArbitraryLength {
			positional = positional[1:]
		}
		return a, true
	}

	res := &PairResult{ArbitraryLengthHandled: true}
	imprecise := false
	precise := false

	for i := 0; i < len(params); i++ {
		param := params[i]
		pairing := &Pairing{Param: param}

		switch param.Kind {
		case types.PositionalOnly:
			if a, ok := consumeOnePositional(); ok {
				pairing.Args = []*Arg{a}
				if a.ArbitraryLength {
					imprecise = true
				}
			} else {
				pairing.Absent = true
			}

		case types.PositionalOrKeyword:
			if a, ok := consumeOnePositional(); ok {
				pairing.Args = []*Arg{a}
				if a.ArbitraryLength {
					imprecise = true
				}
				if dup := consumeNamed(param.Name); dup != nil {
					pairing.Duplicate = dup
				}
			} else if kw := consumeNamed(param.Name); kw != nil {
				pairing.Args = []*Arg{kw}
			} else if wildcard != nil {
				pairing.Args = []*Arg{wildcard}
				pairing.FromWildcard = true
			} else {
				pairing.Absent = true
			}

		case types.KeywordOnly:
			if kw := consumeNamed(param.Name); kw != nil {
				pairing.Args = []*Arg{kw}
			} else if wildcard != nil {
				pairing.Args = []*Arg{wildcard}
				pairing.FromWildcard = true
			} else {
				pairing.Absent = true
			}

		case types.StarParam:
			switch param.StarKind {
			case types.StarArbitraryLen, types.StarUnpackedTuple:
				pairing.Args = append([]*Arg{}, positional...)
				for _, a := range pairing.Args {
					if a.ArbitraryLength {
						precise = true
					}
				}
				positional = nil

			case types.StarParamSpecArgs:
				var next *types.Param
				if i+1 < len(params) {
					next = params[i+1]
				}
				if next != nil && next.Kind == types.StarStarParam &&
					next.StarStarKind == types.StarStarParamSpecKwargs &&
					next.ParamSpecRef == param.ParamSpecRef {

					if len(positional) == 1 && positional[0].Kind == ArgParamSpecForward &&
						positional[0].ParamSpecRef == param.ParamSpecRef {
						pairing.ParamSpecForward = positional[0]
					} else {
						pairing.Args = append([]*Arg{}, positional...)
					}
					pairing.ParamSpecBundle = true
					positional = nil

					kwPairing := &Pairing{Param: next, ParamSpecBundle: true}
					if pairing.ParamSpecForward != nil {
						kwPairing.ParamSpecForward = pairing.ParamSpecForward
					} else {
						kwPairing.Args = append([]*Arg{}, named...)
						if wildcard != nil {
							kwPairing.Args = append(kwPairing.Args, wildcard)
							wildcard = nil
						}
						named = nil
					}
					res.Pairings = append(res.Pairings, pairing, kwPairing)
					i++ // consumed the matching StarStarParam too
					continue
				}
				// Malformed signature (no matching kwargs param): treat
				// as an ordinary arbitrary-length rest parameter so the
				// call can still be checked best-effort.
				pairing.Args = append([]*Arg{}, positional...)
				positional = nil
			}

		case types.StarStarParam:
			switch param.StarStarKind {
			case types.StarStarUnpackTypedDict:
				fields := map[string]*Arg{}
				for _, f := range param.TypedDict.Fields {
					if a := consumeNamed(f.Name); a != nil {
						fields[f.Name] = a
					} else if f.Required {
						res.MissingFields = append(res.MissingFields, f.Name)
					}
				}
				pairing.FieldArgs = fields

			default: // StarStarValueType, or an orphaned StarStarParamSpecKwargs
				var bundle []*Arg
				bundle = append(bundle, named...)
				named = nil
				if wildcard != nil {
					bundle = append(bundle, wildcard)
					wildcard = nil
				}
				pairing.Args = bundle
			}
		}

		res.Pairings = append(res.Pairings, pairing)
	}

	res.TooManyPositional = len(positional) > 0
	res.UnusedKeywords = named
	res.ArbitraryLengthHandled = !imprecise || precise
	return res
}
