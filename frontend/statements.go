package frontend

import (
	"github.com/isaacev/kplc/feedback"
)

// Statements
//   - Statement (";" Statement)*
//   - a statement starting right after another one without a ";" between
//     them is reported as a missing ";"
func (p *Parser) parseStatements() (msg feedback.Message) {
	if msg = p.parseStatement(); msg != nil {
		return msg
	}

	for p.peekIs(SemicolonSymbol) {
		if _, msg = p.accept(); msg != nil {
			return msg
		}

		if msg = p.parseStatement(); msg != nil {
			return msg
		}
	}

	if p.lookahead.Symbol.startsStatement() {
		_, msg = p.expect(SemicolonSymbol)
		return msg
	}

	return nil
}

// parseStatement dispatches on the lookahead. The empty statement is allowed
// wherever ";", "end" or "else" follows
func (p *Parser) parseStatement() feedback.Message {
	switch p.lookahead.Symbol {
	case IdentSymbol:
		return p.parseAssignSt()
	case CallKeyword:
		return p.parseCallSt()
	case BeginKeyword:
		return p.parseGroupSt()
	case IfKeyword:
		return p.parseIfSt()
	case WhileKeyword:
		return p.parseWhileSt()
	case ForKeyword:
		return p.parseForSt()
	case SemicolonSymbol, EndKeyword, ElseKeyword:
		return nil
	}

	return p.fail(feedback.ErrInvalidStatement)
}

// Assignment
//   - ident Indexes ":=" Expression
func (p *Parser) parseAssignSt() (msg feedback.Message) {
	defer p.trace("assign statement")()

	ident, msg := p.accept()
	if msg != nil {
		return msg
	}

	if _, msg = p.resolve(ident, (*SymbolTable).CheckDeclaredLValueIdent); msg != nil {
		return msg
	}

	if msg = p.parseIndexes(); msg != nil {
		return msg
	}

	if _, msg = p.expect(AssignSymbol); msg != nil {
		return msg
	}

	return p.parseExpression()
}

// Procedure call
//   - "call" ident Arguments
func (p *Parser) parseCallSt() (msg feedback.Message) {
	defer p.trace("call statement")()

	if _, msg = p.accept(); msg != nil {
		return msg
	}

	ident, msg := p.expect(IdentSymbol)
	if msg != nil {
		return msg
	}

	if _, msg = p.resolve(ident, (*SymbolTable).CheckDeclaredProcedure); msg != nil {
		return msg
	}

	return p.parseArguments()
}

// Group
//   - "begin" Statements "end"
func (p *Parser) parseGroupSt() (msg feedback.Message) {
	defer p.trace("group statement")()

	if _, msg = p.accept(); msg != nil {
		return msg
	}

	if msg = p.parseStatements(); msg != nil {
		return msg
	}

	_, msg = p.expect(EndKeyword)
	return msg
}

// Conditional
//   - "if" Condition "then" Statement ["else" Statement]
func (p *Parser) parseIfSt() (msg feedback.Message) {
	defer p.trace("if statement")()

	if _, msg = p.accept(); msg != nil {
		return msg
	}

	if msg = p.parseCondition(); msg != nil {
		return msg
	}

	if _, msg = p.expect(ThenKeyword); msg != nil {
		return msg
	}

	if msg = p.parseStatement(); msg != nil {
		return msg
	}

	if !p.peekIs(ElseKeyword) {
		return nil
	}

	if _, msg = p.accept(); msg != nil {
		return msg
	}

	return p.parseStatement()
}

// While loop
//   - "while" Condition "do" Statement
func (p *Parser) parseWhileSt() (msg feedback.Message) {
	defer p.trace("while statement")()

	if _, msg = p.accept(); msg != nil {
		return msg
	}

	if msg = p.parseCondition(); msg != nil {
		return msg
	}

	if _, msg = p.expect(DoKeyword); msg != nil {
		return msg
	}

	return p.parseStatement()
}

// For loop
//   - "for" ident ":=" Expression "to" Expression "do" Statement
func (p *Parser) parseForSt() (msg feedback.Message) {
	defer p.trace("for statement")()

	if _, msg = p.accept(); msg != nil {
		return msg
	}

	ident, msg := p.expect(IdentSymbol)
	if msg != nil {
		return msg
	}

	if _, msg = p.resolve(ident, (*SymbolTable).CheckDeclaredVariable); msg != nil {
		return msg
	}

	if _, msg = p.expect(AssignSymbol); msg != nil {
		return msg
	}

	if msg = p.parseExpression(); msg != nil {
		return msg
	}

	if _, msg = p.expect(ToKeyword); msg != nil {
		return msg
	}

	if msg = p.parseExpression(); msg != nil {
		return msg
	}

	if _, msg = p.expect(DoKeyword); msg != nil {
		return msg
	}

	return p.parseStatement()
}
