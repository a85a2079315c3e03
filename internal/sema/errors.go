package sema

import "github.com/you-not-fish/nexus/internal/diag"

var ErrorVariableRedefined = &diag.Diag{
	ID:      200,
	Message: "Variable '%s' is already defined.",
}

var ErrorConstantRedefined = &diag.Diag{
	ID:      201,
	Message: "Constant '%s' is already defined.",
}

var ErrorConstantUninitialized = &diag.Diag{
	ID:      202,
	Message: "Constant '%s' must be initialized.",
}

var ErrorUnknownType = &diag.Diag{
	ID:      203,
	Message: "Unknown type '%s'.",
}

var ErrorTypeMismatch = &diag.Diag{
	ID:      204,
	Message: "Type mismatch: expected '%s', got '%s'.",
}

var ErrorFunctionRedefined = &diag.Diag{
	ID:      205,
	Message: "Function '%s' is already defined.",
}

var ErrorClassRedefined = &diag.Diag{
	ID:      206,
	Message: "Class '%s' is already defined.",
}

var ErrorSuperclassUndefined = &diag.Diag{
	ID:      207,
	Message: "Superclass '%s' is not defined.",
}

var ErrorStructRedefined = &diag.Diag{
	ID:      208,
	Message: "Struct '%s' is already defined.",
}

var ErrorConditionNotBool = &diag.Diag{
	ID:      209,
	Message: "%s condition must be a boolean, got '%s'.",
}

var ErrorBinaryMismatch = &diag.Diag{
	ID:      210,
	Message: "Type mismatch in binary expression: expected '%s', got '%s'.",
}

var ErrorLogicalOperands = &diag.Diag{
	ID:      211,
	Message: "Logical operator '%s' expects boolean operands, got '%s'.",
}

var ErrorLogicalOperand = &diag.Diag{
	ID:      212,
	Message: "Logical operator '%s' expects boolean operand, got '%s'.",
}

var ErrorNegateOperand = &diag.Diag{
	ID:      213,
	Message: "Unary operator '-' expects number operand, got '%s'.",
}

var ErrorUndefinedIdentifier = &diag.Diag{
	ID:      214,
	Message: "Undefined identifier '%s'.",
}

var ErrorUndefinedVariable = &diag.Diag{
	ID:      215,
	Message: "Undefined variable '%s'.",
}

var ErrorAssignMismatch = &diag.Diag{
	ID:      216,
	Message: "Type mismatch in assignment: expected '%s', got '%s'.",
}

var ErrorUndefinedFunction = &diag.Diag{
	ID:      217,
	Message: "Undefined function '%s'.",
}

var ErrorFunctionReserved = &diag.Diag{
	ID:      218,
	Message: "Function name '%s' is reserved for the program entry.",
}

var WarningConstAssign = &diag.Diag{
	ID:      250,
	Message: "Assignment to constant '%s'.",
}
