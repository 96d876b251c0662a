package frontend

import (
	"fmt"

	"github.com/isaacev/kplc/feedback"
	"github.com/isaacev/kplc/source"
)

// Every check below reports at most one error and returns a nil Object along
// with it. Semantic errors are fatal, callers stop at the first one.

// CheckFreshIdent reports ErrDuplicateIdent if the identifier is already
// declared in the current scope. Declarations in enclosing scopes may be
// shadowed freely
func (t *SymbolTable) CheckFreshIdent(ident Token) feedback.Message {
	scope := t.Current()
	if scope == nil {
		return nil
	}

	prev := scope.find(ident.Lexeme)
	if prev == nil {
		return nil
	}

	err := feedback.NewError(feedback.ErrDuplicateIdent, t.File, ident.Span)

	if prev.Pos.IsValid() {
		err.Why = []feedback.Selection{{
			Description: fmt.Sprintf("`%s` originally declared here", prev.Name),
			Span:        source.Point(prev.Pos),
		}}
	}

	return err
}

// CheckDeclaredIdent resolves an identifier of any kind
func (t *SymbolTable) CheckDeclaredIdent(ident Token) (*Object, feedback.Message) {
	return t.checkDeclared(ident, feedback.ErrUndeclaredIdent, feedback.ErrInvalidIdent)
}

// CheckDeclaredConstant resolves an identifier that must name a constant
func (t *SymbolTable) CheckDeclaredConstant(ident Token) (*Object, feedback.Message) {
	return t.checkDeclared(ident, feedback.ErrUndeclaredConstant, feedback.ErrInvalidConstantIdent, ConstantObject)
}

// CheckDeclaredType resolves an identifier that must name a type
func (t *SymbolTable) CheckDeclaredType(ident Token) (*Object, feedback.Message) {
	return t.checkDeclared(ident, feedback.ErrUndeclaredType, feedback.ErrInvalidTypeIdent, TypeObject)
}

// CheckDeclaredVariable resolves an identifier that must name a variable
func (t *SymbolTable) CheckDeclaredVariable(ident Token) (*Object, feedback.Message) {
	return t.checkDeclared(ident, feedback.ErrUndeclaredVariable, feedback.ErrInvalidVariable, VariableObject)
}

// CheckDeclaredFunction resolves an identifier that must name a function
func (t *SymbolTable) CheckDeclaredFunction(ident Token) (*Object, feedback.Message) {
	return t.checkDeclared(ident, feedback.ErrUndeclaredFunction, feedback.ErrInvalidFunction, FunctionObject)
}

// CheckDeclaredProcedure resolves an identifier that must name a procedure
func (t *SymbolTable) CheckDeclaredProcedure(ident Token) (*Object, feedback.Message) {
	return t.checkDeclared(ident, feedback.ErrUndeclaredProcedure, feedback.ErrInvalidProcedure, ProcedureObject)
}

// CheckDeclaredLValueIdent resolves the target of an assignment. A function
// name is accepted because it doubles as the slot for the return value
func (t *SymbolTable) CheckDeclaredLValueIdent(ident Token) (*Object, feedback.Message) {
	return t.checkDeclared(ident, feedback.ErrUndeclaredIdent, feedback.ErrInvalidIdent,
		VariableObject, ParameterObject, FunctionObject)
}

// checkDeclared looks an identifier up and, when "kinds" is not empty,
// requires the object found to have one of those kinds
func (t *SymbolTable) checkDeclared(ident Token, undeclared, invalid feedback.Code, kinds ...ObjectKind) (*Object, feedback.Message) {
	obj := t.LookupObject(ident.Lexeme)
	if obj == nil {
		return nil, feedback.NewError(undeclared, t.File, ident.Span)
	}

	if len(kinds) == 0 {
		return obj, nil
	}

	for _, kind := range kinds {
		if obj.Kind == kind {
			return obj, nil
		}
	}

	err := feedback.NewError(invalid, t.File, ident.Span)

	if obj.Pos.IsValid() {
		err.Why = []feedback.Selection{{
			Description: fmt.Sprintf("`%s` declared here as a %s", obj.Name, obj.Kind),
			Span:        source.Point(obj.Pos),
		}}
	}

	return nil, err
}
