package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 2 classes of nodes: Expressions and Statements. All nodes
// implement the Node interface. The variant sets are closed: consumers
// dispatch with a type switch over the concrete node types below.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of the first token belonging to the node
	aNode()   // marker method to restrict implementations to this package
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) aNode()   {}

// expr is embedded in all expression nodes.
type expr struct{ node }

func (*expr) aExpr() {}

// stmt is embedded in all statement nodes.
type stmt struct{ node }

func (*stmt) aStmt() {}

// Literal type names.
const (
	NumberLit = "number"
	StringLit = "string"
	BoolLit   = "bool"
	NullLit   = "null"
	BlockLit  = "block" // process body given as a block
)

// Param is a name with an optional type annotation, used for function
// parameters, lambda parameters and struct fields.
type Param struct {
	Name string
	Type string // "" if not annotated
}

// Property is a key/value pair of an object literal.
type Property struct {
	Key   string
	Value Expr
}

// ----------------------------------------------------------------------------
// Expressions

type (
	// Binary represents Left Op Right.
	Binary struct {
		expr
		Left  Expr
		Op    string
		Right Expr
	}

	// Unary represents Op Right.
	Unary struct {
		expr
		Op    string
		Right Expr
	}

	// Literal represents a literal value kept as source text.
	// Type is one of NumberLit, StringLit, BoolLit, NullLit or BlockLit.
	Literal struct {
		expr
		Value string
		Type  string
	}

	// Identifier represents a name reference.
	Identifier struct {
		expr
		Name string
	}

	// Assign represents Name = Value.
	Assign struct {
		expr
		Name  string
		Value Expr
	}

	// Call represents Callee(Args...).
	Call struct {
		expr
		Callee Expr
		Args   []Expr
	}

	// Member represents Object.Name.
	Member struct {
		expr
		Object Expr
		Name   string
	}

	// This represents the this keyword.
	This struct {
		expr
	}

	// Super represents super.Method.
	Super struct {
		expr
		Method string
	}

	// Grouping represents (Inner).
	Grouping struct {
		expr
		Inner Expr
	}

	// Array represents [Elements...].
	Array struct {
		expr
		Elements []Expr
	}

	// Object represents {key: value, ...}.
	Object struct {
		expr
		Properties []Property
	}

	// Index represents Object[Index].
	Index struct {
		expr
		Object Expr
		Index  Expr
	}

	// Lambda represents (Params) -> Body.
	Lambda struct {
		expr
		Params []Param
		Body   Expr
	}

	// Await represents await Inner.
	Await struct {
		expr
		Inner Expr
	}

	// Yield represents yield [Inner]. Inner may be nil.
	Yield struct {
		expr
		Inner Expr
	}
)

// ----------------------------------------------------------------------------
// Statements

type (
	// ExprStmt is an expression evaluated for its effects.
	ExprStmt struct {
		stmt
		X Expr
	}

	// PrintStmt prints the value of X.
	PrintStmt struct {
		stmt
		X Expr
	}

	// VarStmt represents let Name[: Type] [= Init];
	VarStmt struct {
		stmt
		Name string
		Type string // "" if not annotated
		Init Expr   // nil if absent
	}

	// ConstStmt represents const Name[: Type] = Init;
	ConstStmt struct {
		stmt
		Name string
		Type string
		Init Expr
	}

	// BlockStmt represents { Stmts }.
	BlockStmt struct {
		stmt
		Stmts []Stmt
	}

	// IfStmt represents if (Cond) Then [else Else].
	IfStmt struct {
		stmt
		Cond Expr
		Then Stmt
		Else Stmt // nil if absent
	}

	// WhileStmt represents while (Cond) Body.
	WhileStmt struct {
		stmt
		Cond Expr
		Body Stmt
	}

	// ForStmt represents for (Init; Cond; Incr) Body.
	// Init, Cond and Incr are nil when omitted.
	ForStmt struct {
		stmt
		Init Stmt
		Cond Expr
		Incr Expr
		Body Stmt
	}

	// ReturnStmt represents return [Value];
	ReturnStmt struct {
		stmt
		Value Expr // nil for a bare return
	}

	// FuncStmt represents a function declaration.
	FuncStmt struct {
		stmt
		Name        string
		Params      []Param
		ReturnType  string // "" if not annotated
		Body        *BlockStmt
		IsAsync     bool
		IsCoroutine bool
	}

	// ClassStmt represents class Name [< Superclass] { Methods }.
	ClassStmt struct {
		stmt
		Name       string
		Superclass string // "" if none
		Methods    []*FuncStmt
	}

	// StructStmt represents struct Name { Fields }.
	StructStmt struct {
		stmt
		Name   string
		Fields []Param
	}

	// TryStmt represents try Body catch... [finally Finally].
	TryStmt struct {
		stmt
		Body    *BlockStmt
		Catches []*CatchStmt
		Finally *BlockStmt // nil if absent
	}

	// CatchStmt represents catch (Name[: Type]) Body.
	CatchStmt struct {
		stmt
		Name string
		Type string
		Body *BlockStmt
	}

	// ThrowStmt represents throw X;
	ThrowStmt struct {
		stmt
		X Expr
	}

	// ProcessStmt represents process.spawn(...) with a generated ID.
	ProcessStmt struct {
		stmt
		ID   string
		Body Expr
	}
)
