package types

// SelfType is the marker encountered when a method's signature mentions
// `Self`. The solver consults an optional replace-Self callback whenever
// it is encountered during substitution (spec §4.4).
var SelfType Type = &Primitive{Name: "Self"}
