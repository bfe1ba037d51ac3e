package types

// ConvertibleTo implements the implicit conversion rules:
// T converts to T; T& converts to T by implicit dereference; T never
// converts to T& (no implicit address-taking); unknown converts to and
// accepts anything.
func (in *Interner) ConvertibleTo(from, to TypeID) bool {
	if in.IsUnknown(from) || in.IsUnknown(to) {
		return true
	}
	if from == to {
		return true
	}
	fromInfo := in.MustLookup(from)
	return fromInfo.Kind == KindReference && fromInfo.Elem == to
}

// LeastUpperBound returns a if b converts to a, else b if a converts to b,
// else reports failure.
func (in *Interner) LeastUpperBound(a, b TypeID) (TypeID, bool) {
	if in.ConvertibleTo(b, a) {
		return a, true
	}
	if in.ConvertibleTo(a, b) {
		return b, true
	}
	return NoTypeID, false
}
