package frontend

import (
	"github.com/isaacev/kplc/feedback"
)

// Condition
//   - Expression ("=" | "!=" | "<" | "<=" | ">" | ">=") Expression
func (p *Parser) parseCondition() (msg feedback.Message) {
	if msg = p.parseExpression(); msg != nil {
		return msg
	}

	if !p.lookahead.Symbol.isComparator() {
		return p.fail(feedback.ErrInvalidComparator)
	}

	if _, msg = p.accept(); msg != nil {
		return msg
	}

	return p.parseExpression()
}

// Expression
//   - ["+"|"-"] Term (("+"|"-") Term)*
func (p *Parser) parseExpression() (msg feedback.Message) {
	if p.peekIs(PlusSymbol) || p.peekIs(MinusSymbol) {
		if _, msg = p.accept(); msg != nil {
			return msg
		}
	}

	if msg = p.parseTerm(); msg != nil {
		return msg
	}

	for p.peekIs(PlusSymbol) || p.peekIs(MinusSymbol) {
		if _, msg = p.accept(); msg != nil {
			return msg
		}

		if msg = p.parseTerm(); msg != nil {
			return msg
		}
	}

	return nil
}

// Term
//   - Factor (("*"|"/") Factor)*
func (p *Parser) parseTerm() (msg feedback.Message) {
	if msg = p.parseFactor(); msg != nil {
		return msg
	}

	for p.peekIs(TimesSymbol) || p.peekIs(SlashSymbol) {
		if _, msg = p.accept(); msg != nil {
			return msg
		}

		if msg = p.parseFactor(); msg != nil {
			return msg
		}
	}

	return nil
}

// Factor
//   - number | char
//   - ident [Indexes | Arguments]
//   - "(" Expression ")"
func (p *Parser) parseFactor() (msg feedback.Message) {
	switch p.lookahead.Symbol {
	case NumberSymbol, CharSymbol:
		_, msg = p.accept()
		return msg
	case IdentSymbol:
		return p.parseIdentFactor()
	case LParenSymbol:
		if _, msg = p.accept(); msg != nil {
			return msg
		}

		if msg = p.parseExpression(); msg != nil {
			return msg
		}

		_, msg = p.expect(RParenSymbol)
		return msg
	}

	return p.fail(feedback.ErrInvalidFactor)
}

// parseIdentFactor handles a factor that starts with a name. With semantics
// enabled the token after the name picks the check: only variables are
// indexed, only functions take arguments, and a bare name must carry a value
func (p *Parser) parseIdentFactor() (msg feedback.Message) {
	ident, msg := p.accept()
	if msg != nil {
		return msg
	}

	switch p.lookahead.Symbol {
	case LSelSymbol:
		if _, msg = p.resolve(ident, (*SymbolTable).CheckDeclaredVariable); msg != nil {
			return msg
		}

		return p.parseIndexes()
	case LParenSymbol:
		if _, msg = p.resolve(ident, (*SymbolTable).CheckDeclaredFunction); msg != nil {
			return msg
		}

		return p.parseArguments()
	}

	obj, msg := p.resolve(ident, (*SymbolTable).CheckDeclaredIdent)
	if msg != nil {
		return msg
	}

	if obj != nil && (obj.Kind == TypeObject || obj.Kind == ProcedureObject) {
		return feedback.NewError(feedback.ErrInvalidFactor, p.Scanner.Reader.File(), ident.Span)
	}

	return nil
}

// Indexes
//   - ("(." Expression ".)")*
func (p *Parser) parseIndexes() (msg feedback.Message) {
	for p.peekIs(LSelSymbol) {
		if _, msg = p.accept(); msg != nil {
			return msg
		}

		if msg = p.parseExpression(); msg != nil {
			return msg
		}

		if _, msg = p.expect(RSelSymbol); msg != nil {
			return msg
		}
	}

	return nil
}

// Arguments
//   - "(" Expression ("," Expression)* ")", or nothing at all
func (p *Parser) parseArguments() (msg feedback.Message) {
	if !p.peekIs(LParenSymbol) {
		return nil
	}

	if _, msg = p.accept(); msg != nil {
		return msg
	}

	if msg = p.parseExpression(); msg != nil {
		return msg
	}

	for p.peekIs(CommaSymbol) {
		if _, msg = p.accept(); msg != nil {
			return msg
		}

		if msg = p.parseExpression(); msg != nil {
			return msg
		}
	}

	_, msg = p.expect(RParenSymbol)
	return msg
}
