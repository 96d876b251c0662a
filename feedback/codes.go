package feedback

import "fmt"

// Code identifies one kind of diagnostic. Every code maps to exactly one fixed
// message and one classification
type Code int

// Lexical diagnostics
const (
	ErrEndOfComment Code = iota
	ErrIdentTooLong
	ErrInvalidCharConstant
	ErrInvalidSymbol
)

// Syntax diagnostics
const (
	ErrMissingToken Code = iota + 100
	ErrInvalidConstDecl
	ErrInvalidTypeDecl
	ErrInvalidVarDecl
	ErrInvalidSubDecl
	ErrInvalidConstant
	ErrInvalidType
	ErrInvalidBasicType
	ErrInvalidParam
	ErrInvalidStatement
	ErrInvalidComparator
	ErrInvalidFactor
)

// Semantic diagnostics
const (
	ErrDuplicateIdent Code = iota + 200
	ErrUndeclaredIdent
	ErrUndeclaredConstant
	ErrUndeclaredType
	ErrUndeclaredVariable
	ErrUndeclaredFunction
	ErrUndeclaredProcedure
	ErrInvalidIdent
	ErrInvalidConstantIdent
	ErrInvalidTypeIdent
	ErrInvalidVariable
	ErrInvalidFunction
	ErrInvalidProcedure
)

// Error classification constants
const (
	LexicalError  string = "lexical error"
	SyntaxError   string = "syntax error"
	SemanticError string = "semantic error"
)

var messages = map[Code]string{
	ErrEndOfComment:        "End of comment expected!",
	ErrIdentTooLong:        "Identification too long!",
	ErrInvalidCharConstant: "Invalid const char!",
	ErrInvalidSymbol:       "Invalid symbol!",

	ErrMissingToken:      "Missing %s",
	ErrInvalidConstDecl:  "Invalid constant declaration!",
	ErrInvalidTypeDecl:   "Invalid type declaration!",
	ErrInvalidVarDecl:    "Invalid variable declaration!",
	ErrInvalidSubDecl:    "Invalid subroutine declaration!",
	ErrInvalidConstant:   "Invalid constant!",
	ErrInvalidType:       "Invalid type!",
	ErrInvalidBasicType:  "Invalid basic type!",
	ErrInvalidParam:      "Invalid parameter!",
	ErrInvalidStatement:  "Invalid statement!",
	ErrInvalidComparator: "Invalid comparator!",
	ErrInvalidFactor:     "Invalid factor!",

	ErrDuplicateIdent:       "Duplicate identifier!",
	ErrUndeclaredIdent:      "Undeclared identifier!",
	ErrUndeclaredConstant:   "Undeclared constant!",
	ErrUndeclaredType:       "Undeclared type!",
	ErrUndeclaredVariable:   "Undeclared variable!",
	ErrUndeclaredFunction:   "Undeclared function!",
	ErrUndeclaredProcedure:  "Undeclared procedure!",
	ErrInvalidIdent:         "Invalid identifier!",
	ErrInvalidConstantIdent: "A constant expected!",
	ErrInvalidTypeIdent:     "A type expected!",
	ErrInvalidVariable:      "A variable expected!",
	ErrInvalidFunction:      "A function expected!",
	ErrInvalidProcedure:     "A procedure expected!",
}

// Message renders the fixed human-readable text for a code. Only
// ErrMissingToken takes an argument: the description of the missing token
func (c Code) Message(args ...interface{}) string {
	msg, ok := messages[c]
	if !ok {
		return fmt.Sprintf("Unknown error %d!", int(c))
	}

	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}

	return msg
}

// Classification returns the pipeline stage that raises the code
func (c Code) Classification() string {
	switch {
	case c < ErrMissingToken:
		return LexicalError
	case c < ErrDuplicateIdent:
		return SyntaxError
	default:
		return SemanticError
	}
}

// Fatal reports whether the code ends the compilation run. Only the three
// recoverable lexical errors let scanning continue
func (c Code) Fatal() bool {
	switch c {
	case ErrIdentTooLong, ErrInvalidCharConstant, ErrInvalidSymbol:
		return false
	}

	return true
}
