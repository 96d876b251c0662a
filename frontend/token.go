package frontend

import (
	"strings"

	"github.com/isaacev/kplc/source"
)

// TokenSymbol is the classification system for tokens. Each symbol's value is
// the name printed by the token dump
type TokenSymbol string

// Token values represent a lexical atom and are tagged with a token symbol
// classification and source code line/column data. Value is only meaningful
// for NumberSymbol tokens
type Token struct {
	Symbol TokenSymbol
	Lexeme string
	Span   source.Span
	Value  int
}

// Pos returns the line/column the token starts at
func (t Token) Pos() source.Pos {
	return t.Span.Start
}

// Identifier and literal token symbols
const (
	NoneSymbol   TokenSymbol = "TK_NONE"
	IdentSymbol  TokenSymbol = "TK_IDENT"
	NumberSymbol TokenSymbol = "TK_NUMBER"
	CharSymbol   TokenSymbol = "TK_CHAR"
	EOFSymbol    TokenSymbol = "TK_EOF"
)

// Keyword token symbols
const (
	ProgramKeyword   TokenSymbol = "KW_PROGRAM"
	ConstKeyword     TokenSymbol = "KW_CONST"
	TypeKeyword      TokenSymbol = "KW_TYPE"
	VarKeyword       TokenSymbol = "KW_VAR"
	IntegerKeyword   TokenSymbol = "KW_INTEGER"
	CharKeyword      TokenSymbol = "KW_CHAR"
	ArrayKeyword     TokenSymbol = "KW_ARRAY"
	OfKeyword        TokenSymbol = "KW_OF"
	FunctionKeyword  TokenSymbol = "KW_FUNCTION"
	ProcedureKeyword TokenSymbol = "KW_PROCEDURE"
	BeginKeyword     TokenSymbol = "KW_BEGIN"
	EndKeyword       TokenSymbol = "KW_END"
	CallKeyword      TokenSymbol = "KW_CALL"
	IfKeyword        TokenSymbol = "KW_IF"
	ThenKeyword      TokenSymbol = "KW_THEN"
	ElseKeyword      TokenSymbol = "KW_ELSE"
	WhileKeyword     TokenSymbol = "KW_WHILE"
	DoKeyword        TokenSymbol = "KW_DO"
	ForKeyword       TokenSymbol = "KW_FOR"
	ToKeyword        TokenSymbol = "KW_TO"
)

// Operator and punctuation token symbols
const (
	SemicolonSymbol TokenSymbol = "SB_SEMICOLON"
	ColonSymbol     TokenSymbol = "SB_COLON"
	PeriodSymbol    TokenSymbol = "SB_PERIOD"
	CommaSymbol     TokenSymbol = "SB_COMMA"
	AssignSymbol    TokenSymbol = "SB_ASSIGN"
	EqSymbol        TokenSymbol = "SB_EQ"
	NeqSymbol       TokenSymbol = "SB_NEQ"
	LtSymbol        TokenSymbol = "SB_LT"
	LeSymbol        TokenSymbol = "SB_LE"
	GtSymbol        TokenSymbol = "SB_GT"
	GeSymbol        TokenSymbol = "SB_GE"
	PlusSymbol      TokenSymbol = "SB_PLUS"
	MinusSymbol     TokenSymbol = "SB_MINUS"
	TimesSymbol     TokenSymbol = "SB_TIMES"
	SlashSymbol     TokenSymbol = "SB_SLASH"
	LParenSymbol    TokenSymbol = "SB_LPAR"
	RParenSymbol    TokenSymbol = "SB_RPAR"
	LSelSymbol      TokenSymbol = "SB_LSEL"
	RSelSymbol      TokenSymbol = "SB_RSEL"
)

// keywords maps the upper-case spelling of every keyword to its symbol
var keywords = map[string]TokenSymbol{
	"PROGRAM":   ProgramKeyword,
	"CONST":     ConstKeyword,
	"TYPE":      TypeKeyword,
	"VAR":       VarKeyword,
	"INTEGER":   IntegerKeyword,
	"CHAR":      CharKeyword,
	"ARRAY":     ArrayKeyword,
	"OF":        OfKeyword,
	"FUNCTION":  FunctionKeyword,
	"PROCEDURE": ProcedureKeyword,
	"BEGIN":     BeginKeyword,
	"END":       EndKeyword,
	"CALL":      CallKeyword,
	"IF":        IfKeyword,
	"THEN":      ThenKeyword,
	"ELSE":      ElseKeyword,
	"WHILE":     WhileKeyword,
	"DO":        DoKeyword,
	"FOR":       ForKeyword,
	"TO":        ToKeyword,
}

// punctuation holds the source spelling of each operator symbol
var punctuation = map[TokenSymbol]string{
	SemicolonSymbol: ";",
	ColonSymbol:     ":",
	PeriodSymbol:    ".",
	CommaSymbol:     ",",
	AssignSymbol:    ":=",
	EqSymbol:        "=",
	NeqSymbol:       "!=",
	LtSymbol:        "<",
	LeSymbol:        "<=",
	GtSymbol:        ">",
	GeSymbol:        ">=",
	PlusSymbol:      "+",
	MinusSymbol:     "-",
	TimesSymbol:     "*",
	SlashSymbol:     "/",
	LParenSymbol:    "(",
	RParenSymbol:    ")",
	LSelSymbol:      "(.",
	RSelSymbol:      ".)",
}

// lookupKeyword classifies a word against the keyword table. Keywords are
// matched without regard to case; NoneSymbol means the word is an identifier
func lookupKeyword(word string) TokenSymbol {
	if sym, ok := keywords[strings.ToUpper(word)]; ok {
		return sym
	}

	return NoneSymbol
}

// IsKeyword returns true if the symbol is one of the reserved words
func (sym TokenSymbol) IsKeyword() bool {
	return strings.HasPrefix(string(sym), "KW_")
}

// Describe returns the phrase used for the symbol in "Missing ..." errors
func (sym TokenSymbol) Describe() string {
	switch sym {
	case NoneSymbol:
		return "an invalid token"
	case IdentSymbol:
		return "an identifier"
	case NumberSymbol:
		return "a number"
	case CharSymbol:
		return "a constant char"
	case EOFSymbol:
		return "end of file"
	}

	if sym.IsKeyword() {
		return "keyword " + strings.TrimPrefix(string(sym), "KW_")
	}

	if text, ok := punctuation[sym]; ok {
		return "'" + text + "'"
	}

	return string(sym)
}

// startsStatement returns true for the symbols that can begin a non-empty
// statement
func (sym TokenSymbol) startsStatement() bool {
	switch sym {
	case IdentSymbol, CallKeyword, BeginKeyword, IfKeyword, WhileKeyword, ForKeyword:
		return true
	}

	return false
}

// isComparator returns true for the relational operators allowed in a
// condition
func (sym TokenSymbol) isComparator() bool {
	switch sym {
	case EqSymbol, NeqSymbol, LtSymbol, LeSymbol, GtSymbol, GeSymbol:
		return true
	}

	return false
}
