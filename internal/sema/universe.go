package sema

// Predeclared names, bound in the outermost scope of every analysis.
var (
	universeFuncs = []string{
		"print", "println", "error", "assert", "len",
		"toString", "parseInt", "parseFloat", "isNaN", "isFinite",
	}
	universeObjects = []string{
		"Math", "Date", "Array", "Object", "String", "Number", "Boolean", "Error",
	}
)

// builtinCalls may be called without a function declaration.
var builtinCalls = map[string]bool{
	"println": true,
	"print":   true,
	"error":   true,
}

// defPredeclared binds the predeclared names as variables in the current scope.
func defPredeclared(s *Scopes) {
	for _, name := range universeFuncs {
		s.DefineVar(&Var{Name: name, Type: TypFunction})
	}
	for _, name := range universeObjects {
		s.DefineVar(&Var{Name: name, Type: TypObject})
	}
}
