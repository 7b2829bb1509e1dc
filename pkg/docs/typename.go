package docs

var simpleTypeNames = map[string]string{
	"System.Boolean": "bool",
	"System.Byte":    "byte",
	"System.SByte":   "sbyte",
	"System.Char":    "char",
	"System.Decimal": "decimal",
	"System.Double":  "double",
	"System.Single":  "float",
	"System.Int16":   "short",
	"System.UInt16":  "ushort",
	"System.Int32":   "int",
	"System.UInt32":  "uint",
	"System.Int64":   "long",
	"System.UInt64":  "ulong",
	"System.Object":  "object",
	"System.String":  "string",
	"System.Void":    "void",
}

// SimpleTypeName returns the keyword alias of a well-known runtime type,
// e.g. "System.Int32" is shown as "int".
func SimpleTypeName(fullName string) (string, bool) {
	name, ok := simpleTypeNames[fullName]
	return name, ok
}
