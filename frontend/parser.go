package frontend

import (
	"io"
	"log/slog"

	"github.com/isaacev/kplc/feedback"
)

// Options configure a parse run
type Options struct {
	// MaxIdentLen overrides DefaultMaxIdentLen when positive
	MaxIdentLen int

	// Semantics enables name resolution against a symbol table. Without it
	// the parser only validates syntax
	Semantics bool

	// Echo, if set, is called with every token the parser accepts
	Echo func(Token)

	// Logger receives the production trace at debug level
	Logger *slog.Logger
}

// Parse reads one compilation unit from the reader. Non-fatal diagnostics are
// reported to the sink as they are found; the fatal one, if any, is reported
// and also returned. With semantics enabled the returned program object
// holds the complete scope tree
func Parse(reader *Reader, sink feedback.Sink, opts Options) (*Object, feedback.Message) {
	scanner := NewScanner(reader)
	if opts.MaxIdentLen > 0 {
		scanner.MaxIdentLen = opts.MaxIdentLen
	}

	parser := NewParser(scanner, sink)
	parser.Echo = opts.Echo

	if opts.Logger != nil {
		parser.Logger = opts.Logger
	}

	if opts.Semantics {
		parser.Table = NewSymbolTable(reader.File())
	}

	msg := parser.Parse()

	if parser.Table != nil {
		return parser.Table.Program, msg
	}

	return nil, msg
}

// Parser instances hold exactly two tokens: the token most recently accepted
// and the lookahead token every grammar decision is made on
type Parser struct {
	Scanner *Scanner
	Table   *SymbolTable
	Sink    feedback.Sink
	Echo    func(Token)
	Logger  *slog.Logger

	current   Token
	lookahead Token
}

// NewParser is a Parser factory function. Semantic checks stay disabled until
// a SymbolTable is assigned to the Table field
func NewParser(scanner *Scanner, sink feedback.Sink) *Parser {
	if sink == nil {
		sink = &feedback.Collector{}
	}

	return &Parser{
		Scanner: scanner,
		Sink:    sink,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Parse validates a whole program. The first fatal diagnostic stops the
// parse; it is reported to the sink and returned
func (p *Parser) Parse() (msg feedback.Message) {
	if msg = p.advance(); msg == nil {
		msg = p.parseProgram()
	}

	if msg != nil {
		p.Sink.Report(msg)
	}

	return msg
}

// advance promotes the lookahead to the current token and reads a new
// lookahead. TK_NONE tokens are dropped here so the grammar never sees them;
// their diagnostics go straight to the sink
func (p *Parser) advance() feedback.Message {
	p.current = p.lookahead

	for {
		tok, msg := p.Scanner.NextToken()

		if msg != nil {
			if msg.Fatal() {
				p.lookahead = tok
				return msg
			}

			p.Sink.Report(msg)
		}

		if tok.Symbol != NoneSymbol {
			p.lookahead = tok
			return nil
		}
	}
}

// accept takes the lookahead token unconditionally
func (p *Parser) accept() (tok Token, msg feedback.Message) {
	tok = p.lookahead

	if p.Echo != nil {
		p.Echo(tok)
	}

	return tok, p.advance()
}

// expect accepts the lookahead token if it matches the given symbol. A
// mismatch is fatal, the parser does not try to resynchronize
func (p *Parser) expect(sym TokenSymbol) (tok Token, msg feedback.Message) {
	if p.lookahead.Symbol != sym {
		return p.lookahead, feedback.NewError(feedback.ErrMissingToken, p.Scanner.Reader.File(), p.lookahead.Span, sym.Describe())
	}

	return p.accept()
}

// peekIs returns true if the lookahead matches the given symbol
func (p *Parser) peekIs(sym TokenSymbol) bool {
	return p.lookahead.Symbol == sym
}

// fail builds a grammar error located at the lookahead token
func (p *Parser) fail(code feedback.Code) feedback.Message {
	return feedback.NewError(code, p.Scanner.Reader.File(), p.lookahead.Span)
}

// trace logs entry into a production and returns the matching exit logger
func (p *Parser) trace(production string) func() {
	p.Logger.Debug("parsing "+production, "pos", p.lookahead.Pos().String())

	return func() {
		p.Logger.Debug(production+" parsed", "pos", p.current.Pos().String())
	}
}

// checkFresh rejects a name already declared in the current scope
func (p *Parser) checkFresh(ident Token) feedback.Message {
	if p.Table == nil {
		return nil
	}

	return p.Table.CheckFreshIdent(ident)
}

// declare records an identifier in the current scope
func (p *Parser) declare(ident Token, kind ObjectKind) *Object {
	if p.Table == nil {
		return nil
	}

	return p.Table.Declare(ident.Lexeme, kind, ident.Pos())
}

// resolve runs one of the SymbolTable.CheckDeclared* checks
func (p *Parser) resolve(ident Token, check func(*SymbolTable, Token) (*Object, feedback.Message)) (*Object, feedback.Message) {
	if p.Table == nil {
		return nil, nil
	}

	return check(p.Table, ident)
}

// enter opens the block scope of a routine, exit closes it again
func (p *Parser) enter(owner *Object) {
	if p.Table != nil && owner != nil {
		p.Table.Enter(owner)
	}
}

func (p *Parser) exit() {
	if p.Table != nil {
		p.Table.Exit()
	}
}
