// Package sema implements semantic analysis for Nexus programs.
package sema

// Kind classifies a Type.
type Kind int

const (
	Any Kind = iota
	Int
	Float
	Bool
	String
	Number // untyped numeric literal
	Null
	Function
	Object
	Error
	Struct // user-defined struct or class, see Type.Name
	Block  // process body given as a block
)

var kindNames = [...]string{
	Any:      "any",
	Int:      "int",
	Float:    "float",
	Bool:     "bool",
	String:   "string",
	Number:   "number",
	Null:     "null",
	Function: "function",
	Object:   "object",
	Error:    "Error",
	Struct:   "struct",
	Block:    "block",
}

// Type is the static type of a name or expression.
type Type struct {
	Kind Kind
	Name string // struct name, for Kind == Struct
}

// Predeclared types.
var (
	TypAny      = Type{Kind: Any}
	TypInt      = Type{Kind: Int}
	TypFloat    = Type{Kind: Float}
	TypBool     = Type{Kind: Bool}
	TypString   = Type{Kind: String}
	TypNumber   = Type{Kind: Number}
	TypNull     = Type{Kind: Null}
	TypFunction = Type{Kind: Function}
	TypObject   = Type{Kind: Object}
	TypError    = Type{Kind: Error}
	TypBlock    = Type{Kind: Block}
)

func (t Type) String() string {
	if t.Kind == Struct {
		return t.Name
	}
	if int(t.Kind) < len(kindNames) {
		return kindNames[t.Kind]
	}
	return "invalid"
}

// IsAny reports whether t is the dynamic type.
func (t Type) IsAny() bool {
	return t.Kind == Any
}

// isNumeric reports whether t may appear as an operand of unary minus.
func (t Type) isNumeric() bool {
	switch t.Kind {
	case Number, Int, Float, Any:
		return true
	}
	return false
}

// Identical reports whether t and u are the same type.
func Identical(t, u Type) bool {
	return t == u
}

// Compatible reports whether a value of type u may be used where t is
// expected. Any is compatible with everything, and an untyped number
// literal is compatible with int and float.
func Compatible(t, u Type) bool {
	if t.IsAny() || u.IsAny() || Identical(t, u) {
		return true
	}
	return isLiteralNumeric(t, u) || isLiteralNumeric(u, t)
}

func isLiteralNumeric(lit, typ Type) bool {
	return lit.Kind == Number && (typ.Kind == Int || typ.Kind == Float)
}

// annotations are the type names accepted in annotations besides struct names.
var annotations = map[string]Type{
	"any":    TypAny,
	"int":    TypInt,
	"float":  TypFloat,
	"bool":   TypBool,
	"string": TypString,
}

// Parse maps a type annotation to a Type. The empty annotation is Any.
// Names other than the predeclared ones yield a Struct type whose
// existence the caller must check.
func Parse(name string) Type {
	if name == "" {
		return TypAny
	}
	if t, ok := annotations[name]; ok {
		return t
	}
	return Type{Kind: Struct, Name: name}
}

// literalType maps a literal's type tag to its Type.
func literalType(tag string) Type {
	switch tag {
	case "number":
		return TypNumber
	case "string":
		return TypString
	case "bool":
		return TypBool
	case "null":
		return TypNull
	case "block":
		return TypBlock
	}
	return TypAny
}
