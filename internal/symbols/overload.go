package symbols

import (
	"co/internal/types"
)

// ResolveStatus reports the outcome of overload resolution.
type ResolveStatus uint8

const (
	ResolveOK ResolveStatus = iota
	ResolveNoMatch
	ResolveAmbiguous
)

// ResolveOverload picks the unique best candidate for the argument types.
// An argument matches a parameter when it is implicitly convertible to it;
// an exact type match beats a conversion. On ambiguity the viable set is
// returned so the caller can attach one note per candidate.
func (t *Table) ResolveOverload(candidates []SymbolID, argTypes []types.TypeID) (SymbolID, []SymbolID, ResolveStatus) {
	var viable []SymbolID
	for _, c := range candidates {
		if t.viable(c, argTypes) {
			viable = append(viable, c)
		}
	}
	switch len(viable) {
	case 0:
		return NoSymbolID, nil, ResolveNoMatch
	case 1:
		return viable[0], nil, ResolveOK
	}
	best := viable[0]
	for _, v := range viable[1:] {
		if t.strictlyBetter(v, best, argTypes) {
			best = v
		}
	}
	for _, v := range viable {
		if v != best && !t.strictlyBetter(best, v, argTypes) {
			return NoSymbolID, viable, ResolveAmbiguous
		}
	}
	return best, nil, ResolveOK
}

func (t *Table) viable(c SymbolID, argTypes []types.TypeID) bool {
	sig := t.Symbol(c).Sig
	if sig == nil || len(sig.ParamTypes) != len(argTypes) {
		return false
	}
	for i, at := range argTypes {
		if !t.Types.ConvertibleTo(at, sig.ParamTypes[i]) {
			return false
		}
	}
	return true
}

// matchRank is 0 for an exact match and 1 for a conversion. The unknown
// sentinel ranks as exact everywhere so broken arguments never skew the
// choice.
func (t *Table) matchRank(arg, param types.TypeID) int {
	if arg == param || t.Types.IsUnknown(arg) || t.Types.IsUnknown(param) {
		return 0
	}
	return 1
}

// strictlyBetter reports whether a beats b: no parameter matches worse and
// at least one matches strictly better.
func (t *Table) strictlyBetter(a, b SymbolID, argTypes []types.TypeID) bool {
	sa := t.Symbol(a).Sig
	sb := t.Symbol(b).Sig
	betterSomewhere := false
	for i, at := range argTypes {
		ra := t.matchRank(at, sa.ParamTypes[i])
		rb := t.matchRank(at, sb.ParamTypes[i])
		if ra > rb {
			return false
		}
		if ra < rb {
			betterSomewhere = true
		}
	}
	return betterSomewhere
}
