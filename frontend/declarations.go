package frontend

import (
	"github.com/isaacev/kplc/feedback"
)

// Program
//   - "program" ident ";" Block "."
func (p *Parser) parseProgram() (msg feedback.Message) {
	defer p.trace("program")()

	if _, msg = p.expect(ProgramKeyword); msg != nil {
		return msg
	}

	ident, msg := p.expect(IdentSymbol)
	if msg != nil {
		return msg
	}

	if p.Table != nil {
		p.Table.DeclareProgram(ident.Lexeme, ident.Pos())
		defer p.exit()
	}

	if _, msg = p.expect(SemicolonSymbol); msg != nil {
		return msg
	}

	if msg = p.parseBlock(); msg != nil {
		return msg
	}

	_, msg = p.expect(PeriodSymbol)
	return msg
}

// Block
//   - ["const" ConstDecl+] ["type" TypeDecl+] ["var" VarDecl+] SubDecl*
//     "begin" Statements "end"
func (p *Parser) parseBlock() (msg feedback.Message) {
	defer p.trace("block")()

	sections := []struct {
		keyword TokenSymbol
		invalid feedback.Code
		decl    func() feedback.Message
	}{
		{ConstKeyword, feedback.ErrInvalidConstDecl, p.parseConstDecl},
		{TypeKeyword, feedback.ErrInvalidTypeDecl, p.parseTypeDecl},
		{VarKeyword, feedback.ErrInvalidVarDecl, p.parseVarDecl},
	}

	for _, section := range sections {
		if !p.peekIs(section.keyword) {
			continue
		}

		if _, msg = p.accept(); msg != nil {
			return msg
		}

		// Each section holds at least one declaration
		if !p.peekIs(IdentSymbol) {
			return p.fail(section.invalid)
		}

		for p.peekIs(IdentSymbol) {
			if msg = section.decl(); msg != nil {
				return msg
			}
		}
	}

	if msg = p.parseSubDecls(); msg != nil {
		return msg
	}

	if _, msg = p.expect(BeginKeyword); msg != nil {
		return msg
	}

	if msg = p.parseStatements(); msg != nil {
		return msg
	}

	_, msg = p.expect(EndKeyword)
	return msg
}

// Constant declaration
//   - ident "=" Constant ";"
func (p *Parser) parseConstDecl() (msg feedback.Message) {
	ident, msg := p.expect(IdentSymbol)
	if msg != nil {
		return msg
	}

	if msg = p.checkFresh(ident); msg != nil {
		return msg
	}

	if _, msg = p.expect(EqSymbol); msg != nil {
		return msg
	}

	if msg = p.parseConstant(); msg != nil {
		return msg
	}

	if _, msg = p.expect(SemicolonSymbol); msg != nil {
		return msg
	}

	// Declared once complete, a constant cannot be defined in terms of itself
	p.declare(ident, ConstantObject)
	return nil
}

// Type declaration
//   - ident "=" Type ";"
func (p *Parser) parseTypeDecl() (msg feedback.Message) {
	ident, msg := p.expect(IdentSymbol)
	if msg != nil {
		return msg
	}

	if msg = p.checkFresh(ident); msg != nil {
		return msg
	}

	if _, msg = p.expect(EqSymbol); msg != nil {
		return msg
	}

	if msg = p.parseType(); msg != nil {
		return msg
	}

	if _, msg = p.expect(SemicolonSymbol); msg != nil {
		return msg
	}

	p.declare(ident, TypeObject)
	return nil
}

// Variable declaration
//   - ident ":" Type ";"
func (p *Parser) parseVarDecl() (msg feedback.Message) {
	ident, msg := p.expect(IdentSymbol)
	if msg != nil {
		return msg
	}

	if msg = p.checkFresh(ident); msg != nil {
		return msg
	}

	if _, msg = p.expect(ColonSymbol); msg != nil {
		return msg
	}

	if msg = p.parseType(); msg != nil {
		return msg
	}

	if _, msg = p.expect(SemicolonSymbol); msg != nil {
		return msg
	}

	p.declare(ident, VariableObject)
	return nil
}

// Constant
//   - ["+"|"-"] (number | ident)
//   - char
func (p *Parser) parseConstant() (msg feedback.Message) {
	switch p.lookahead.Symbol {
	case PlusSymbol, MinusSymbol:
		if _, msg = p.accept(); msg != nil {
			return msg
		}
	case CharSymbol:
		_, msg = p.accept()
		return msg
	}

	switch p.lookahead.Symbol {
	case NumberSymbol:
		_, msg = p.accept()
		return msg
	case IdentSymbol:
		ident, msg := p.accept()
		if msg != nil {
			return msg
		}

		_, msg = p.resolve(ident, (*SymbolTable).CheckDeclaredConstant)
		return msg
	}

	return p.fail(feedback.ErrInvalidConstant)
}

// Type
//   - BasicType
//   - "array" "(." number ".)" "of" Type
//   - ident
func (p *Parser) parseType() (msg feedback.Message) {
	switch p.lookahead.Symbol {
	case IntegerKeyword, CharKeyword:
		return p.parseBasicType()
	case ArrayKeyword:
		for _, sym := range []TokenSymbol{ArrayKeyword, LSelSymbol, NumberSymbol, RSelSymbol, OfKeyword} {
			if _, msg = p.expect(sym); msg != nil {
				return msg
			}
		}

		return p.parseType()
	case IdentSymbol:
		ident, msg := p.accept()
		if msg != nil {
			return msg
		}

		_, msg = p.resolve(ident, (*SymbolTable).CheckDeclaredType)
		return msg
	}

	return p.fail(feedback.ErrInvalidType)
}

// Basic type
//   - "integer" | "char"
func (p *Parser) parseBasicType() (msg feedback.Message) {
	if p.peekIs(IntegerKeyword) || p.peekIs(CharKeyword) {
		_, msg = p.accept()
		return msg
	}

	return p.fail(feedback.ErrInvalidBasicType)
}

// Subroutine declarations
//   - ("function" ... | "procedure" ...)*
//   - an identifier here is a declaration out of place
func (p *Parser) parseSubDecls() (msg feedback.Message) {
	defer p.trace("subroutines")()

	for {
		switch p.lookahead.Symbol {
		case FunctionKeyword:
			msg = p.parseSubDecl(FunctionObject)
		case ProcedureKeyword:
			msg = p.parseSubDecl(ProcedureObject)
		case IdentSymbol:
			return p.fail(feedback.ErrInvalidSubDecl)
		default:
			return nil
		}

		if msg != nil {
			return msg
		}
	}
}

// Function and procedure declarations
//   - "function" ident [Params] ":" BasicType ";" Block ";"
//   - "procedure" ident [Params] ";" Block ";"
func (p *Parser) parseSubDecl(kind ObjectKind) (msg feedback.Message) {
	defer p.trace(string(kind))()

	if _, msg = p.accept(); msg != nil {
		return msg
	}

	ident, msg := p.expect(IdentSymbol)
	if msg != nil {
		return msg
	}

	if msg = p.checkFresh(ident); msg != nil {
		return msg
	}

	// The routine's name belongs to the enclosing scope, its parameters and
	// locals to the scope of its own block
	if obj := p.declare(ident, kind); obj != nil {
		p.enter(obj)
		defer p.exit()
	}

	if msg = p.parseParams(); msg != nil {
		return msg
	}

	if kind == FunctionObject {
		if _, msg = p.expect(ColonSymbol); msg != nil {
			return msg
		}

		if msg = p.parseBasicType(); msg != nil {
			return msg
		}
	}

	if _, msg = p.expect(SemicolonSymbol); msg != nil {
		return msg
	}

	if msg = p.parseBlock(); msg != nil {
		return msg
	}

	_, msg = p.expect(SemicolonSymbol)
	return msg
}

// Parameters
//   - "(" Param (";" Param)* ")", or nothing at all
func (p *Parser) parseParams() (msg feedback.Message) {
	if !p.peekIs(LParenSymbol) {
		return nil
	}

	if _, msg = p.accept(); msg != nil {
		return msg
	}

	if msg = p.parseParam(); msg != nil {
		return msg
	}

	for p.peekIs(SemicolonSymbol) {
		if _, msg = p.accept(); msg != nil {
			return msg
		}

		if msg = p.parseParam(); msg != nil {
			return msg
		}
	}

	_, msg = p.expect(RParenSymbol)
	return msg
}

// Parameter
//   - ident ":" BasicType
func (p *Parser) parseParam() (msg feedback.Message) {
	if !p.peekIs(IdentSymbol) {
		return p.fail(feedback.ErrInvalidParam)
	}

	ident, msg := p.accept()
	if msg != nil {
		return msg
	}

	if msg = p.checkFresh(ident); msg != nil {
		return msg
	}

	if _, msg = p.expect(ColonSymbol); msg != nil {
		return msg
	}

	if msg = p.parseBasicType(); msg != nil {
		return msg
	}

	p.declare(ident, ParameterObject)
	return nil
}
