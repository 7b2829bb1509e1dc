package docs

// scopes are skipped in this order at every step of the backward scan, so a
// dot nested in any of them is never counted as a separator.
var scopes = []struct{ opener, closer byte }{
	{'{', '}'}, // cref generics
	{'(', ')'}, // method parameters
	{'<', '>'}, // generics
}

// ReduceTypeName strips the namespace from a qualified type name.
//
//	ReduceTypeName("Ns.Sub.TypeName")     // "TypeName"
//	ReduceTypeName("Ns.List<Ns2.Item>")   // "List<Ns2.Item>"
func ReduceTypeName(name string) string {
	return reduceFullName(name, 1)
}

// ReduceMemberName keeps the declaring type and the member.
//
//	ReduceMemberName("Ns.Sub.TypeName.Member") // "TypeName.Member"
func ReduceMemberName(name string) string {
	return reduceFullName(name, 2)
}

// ReduceCrefValue reduces a doc-comment cross reference such as
// "T:Ns.Type", "P:Ns.Type.Prop" or "M:Ns.Type.Method(System.String)".
// Values shorter than the kind prefix reduce to "", unknown kinds are
// returned without the prefix untouched.
func ReduceCrefValue(value string) string {
	if len(value) < 2 {
		return ""
	}

	kind, name := value[0], value[2:]
	switch kind {
	case 'T':
		return ReduceTypeName(name)
	case 'P', 'M':
		return ReduceMemberName(name)
	default:
		return name
	}
}

// reduceFullName scans backward and returns what follows the dots-th
// separating dot. Names it cannot balance or reduce come back unchanged.
func reduceFullName(name string, dots int) string {
	seen := 0
	for i := len(name) - 1; i >= 0; i-- {
		for _, s := range scopes {
			var ok bool
			if i, ok = skipScope(name, i, s.opener, s.closer); !ok {
				return name
			}
		}

		if name[i] == '.' {
			seen++
			if seen == dots {
				return name[i+1:]
			}
		}
	}
	return name
}

// skipScope moves i backward past a scope that closes at name[i], leaving it
// on the opening byte. A byte that opens nothing leaves i where it is.
func skipScope(name string, i int, opener, closer byte) (int, bool) {
	depth := 0
	for ; i >= 0; i-- {
		switch name[i] {
		case closer:
			depth++
		case opener:
			depth--
		}

		if depth == 0 {
			return i, true
		}
		if depth < 0 {
			// an opener with nothing to close, e.g. "Weird(Unbalanced"
			return i, false
		}
	}
	return i, false
}
