package frontend

import (
	"github.com/isaacev/kplc/source"
)

// ObjectKind classifies what a declared name stands for
type ObjectKind string

// Object kinds
const (
	ProgramObject   ObjectKind = "program"
	ConstantObject  ObjectKind = "constant"
	TypeObject      ObjectKind = "type"
	VariableObject  ObjectKind = "variable"
	ParameterObject ObjectKind = "parameter"
	FunctionObject  ObjectKind = "function"
	ProcedureObject ObjectKind = "procedure"
)

// Object is one symbol table entry. Programs, functions and procedures own
// the Scope of their block. Predeclared objects have a zero Pos
type Object struct {
	Name  string
	Kind  ObjectKind
	Scope *Scope
	Block *Scope
	Pos   source.Pos
}

// Scope holds the objects declared directly in one block, in declaration
// order. Every scope except the program's has an Outer scope
type Scope struct {
	Objects []*Object
	Outer   *Scope
	Owner   *Object
}

func (s *Scope) find(name string) *Object {
	for _, obj := range s.Objects {
		if obj.Name == name {
			return obj
		}
	}

	return nil
}

// SymbolTable tracks the scopes along the current descent path as a stack
// together with the global objects that are visible from every scope
type SymbolTable struct {
	File    *source.File
	Program *Object
	Globals []*Object
	stack   []*Scope
}

// NewSymbolTable returns a table holding only the predeclared routines of the
// language runtime
func NewSymbolTable(file *source.File) *SymbolTable {
	t := &SymbolTable{File: file}

	t.Globals = []*Object{
		{Name: "READC", Kind: FunctionObject},
		{Name: "READI", Kind: FunctionObject},
		{Name: "WRITEI", Kind: ProcedureObject},
		{Name: "WRITEC", Kind: ProcedureObject},
		{Name: "WRITELN", Kind: ProcedureObject},
	}

	return t
}

// Current returns the innermost open scope or nil before the program starts
func (t *SymbolTable) Current() *Scope {
	if len(t.stack) == 0 {
		return nil
	}

	return t.stack[len(t.stack)-1]
}

// Depth returns the number of open scopes
func (t *SymbolTable) Depth() int {
	return len(t.stack)
}

// DeclareProgram records the program object and opens its scope
func (t *SymbolTable) DeclareProgram(name string, pos source.Pos) *Object {
	t.Program = &Object{Name: name, Kind: ProgramObject, Pos: pos}
	t.Enter(t.Program)
	return t.Program
}

// Declare adds a new object to the current scope. Uniqueness is the caller's
// concern, see CheckFreshIdent
func (t *SymbolTable) Declare(name string, kind ObjectKind, pos source.Pos) *Object {
	obj := &Object{Name: name, Kind: kind, Scope: t.Current(), Pos: pos}

	if obj.Scope != nil {
		obj.Scope.Objects = append(obj.Scope.Objects, obj)
	}

	return obj
}

// Enter opens the block scope owned by "owner" and makes it current
func (t *SymbolTable) Enter(owner *Object) *Scope {
	scope := &Scope{Outer: t.Current(), Owner: owner}
	owner.Block = scope
	t.stack = append(t.stack, scope)
	return scope
}

// Exit closes the current scope
func (t *SymbolTable) Exit() {
	if len(t.stack) > 0 {
		t.stack = t.stack[:len(t.stack)-1]
	}
}

// LookupObject searches the open scopes from the innermost outwards and then
// the global objects. Inner declarations shadow outer ones
func (t *SymbolTable) LookupObject(name string) *Object {
	for i := len(t.stack) - 1; i >= 0; i-- {
		if obj := t.stack[i].find(name); obj != nil {
			return obj
		}
	}

	for _, obj := range t.Globals {
		if obj.Name == name {
			return obj
		}
	}

	return nil
}
