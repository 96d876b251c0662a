package frontend

import (
	"strconv"
	"strings"

	"github.com/isaacev/kplc/feedback"
	"github.com/isaacev/kplc/source"
)

// DefaultMaxIdentLen is the longest identifier or number lexeme the scanner
// keeps
const DefaultMaxIdentLen = 15

// maxNumberDigits bounds a number lexeme whatever MaxIdentLen says, so that
// every kept lexeme fits an int64
const maxNumberDigits = 18

// Scanner structs maintain state during the lexical analysis of a character
// stream, generating one Token per call to NextToken. The only state carried
// between calls is the Reader's position
type Scanner struct {
	Reader      *Reader
	MaxIdentLen int
}

// NewScanner is a constructor function that takes a Reader and returns a
// reference to a newly minted Scanner using the default lexeme limit
func NewScanner(reader *Reader) *Scanner {
	return &Scanner{
		Reader:      reader,
		MaxIdentLen: DefaultMaxIdentLen,
	}
}

// NextToken digests characters from the Reader and produces the next Token.
// The message is non-nil when a lexical error was found while producing the
// token. Only an unterminated comment yields a fatal message; every other
// lexical error comes with a best-effort token and scanning may continue.
// Once the stream is exhausted every call returns an EOF token
func (s *Scanner) NextToken() (tok Token, msg feedback.Message) {
	for {
		r, pos, eof := s.Reader.Peek()

		if eof {
			return Token{Symbol: EOFSymbol, Span: source.Point(pos)}, nil
		}

		switch classify(r) {
		case CharSpace:
			s.skipBlank()
			continue
		case CharLetter:
			return s.readIdentKeyword()
		case CharDigit:
			return s.readNumber(), nil
		case CharSingleQuote:
			return s.readConstChar()
		case CharPlus:
			return s.single(PlusSymbol), nil
		case CharMinus:
			return s.single(MinusSymbol), nil
		case CharTimes:
			return s.single(TimesSymbol), nil
		case CharEq:
			return s.single(EqSymbol), nil
		case CharComma:
			return s.single(CommaSymbol), nil
		case CharSemicolon:
			return s.single(SemicolonSymbol), nil
		case CharRParen:
			return s.single(RParenSymbol), nil
		case CharSlash:
			s.Reader.Next()

			if s.peekClass() == CharSlash {
				s.skipLineComment()
				continue
			}

			return makeToken(SlashSymbol, pos, pos), nil
		case CharLParen:
			s.Reader.Next()

			switch s.peekClass() {
			case CharTimes:
				s.Reader.Next()

				if msg = s.skipComment(pos); msg != nil {
					end := s.Reader.Pos()
					return makeToken(EOFSymbol, end, end), msg
				}

				continue
			case CharPeriod:
				_, end, _ := s.Reader.Next()
				return makeToken(LSelSymbol, pos, end), nil
			}

			return makeToken(LParenSymbol, pos, pos), nil
		case CharPeriod:
			s.Reader.Next()

			if s.peekClass() == CharRParen {
				_, end, _ := s.Reader.Next()
				return makeToken(RSelSymbol, pos, end), nil
			}

			return makeToken(PeriodSymbol, pos, pos), nil
		case CharColon:
			return s.pair(ColonSymbol, map[CharClass]TokenSymbol{CharEq: AssignSymbol}), nil
		case CharLt:
			return s.pair(LtSymbol, map[CharClass]TokenSymbol{CharEq: LeSymbol, CharGt: NeqSymbol}), nil
		case CharGt:
			return s.pair(GtSymbol, map[CharClass]TokenSymbol{CharEq: GeSymbol}), nil
		case CharExclamation:
			s.Reader.Next()

			if s.peekClass() != CharEq {
				tok = makeToken(NoneSymbol, pos, pos)
				tok.Lexeme = "!"
				return tok, s.errorAt(feedback.ErrInvalidSymbol, tok.Span)
			}

			_, end, _ := s.Reader.Next()
			return makeToken(NeqSymbol, pos, end), nil
		}

		// Unrecognized characters are skipped
		s.Reader.Next()
		tok = makeToken(NoneSymbol, pos, pos)
		tok.Lexeme = string(r)
		return tok, s.errorAt(feedback.ErrInvalidSymbol, tok.Span)
	}
}

func makeToken(sym TokenSymbol, start, end source.Pos) Token {
	return Token{Symbol: sym, Span: source.Span{Start: start, End: end}}
}

func (s *Scanner) errorAt(code feedback.Code, span source.Span) feedback.Message {
	return feedback.NewError(code, s.Reader.File(), span)
}

// peekClass classifies the current rune, EOF is reported as CharUnknown
func (s *Scanner) peekClass() CharClass {
	r, _, eof := s.Reader.Peek()
	if eof {
		return CharUnknown
	}

	return classify(r)
}

// single consumes a one-rune token
func (s *Scanner) single(sym TokenSymbol) Token {
	_, pos, _ := s.Reader.Next()
	return makeToken(sym, pos, pos)
}

// pair consumes a token that is either one rune long or, when the following
// rune's class is listed in "second", two runes long
func (s *Scanner) pair(first TokenSymbol, second map[CharClass]TokenSymbol) Token {
	_, pos, _ := s.Reader.Next()

	if sym, ok := second[s.peekClass()]; ok {
		_, end, _ := s.Reader.Next()
		return makeToken(sym, pos, end)
	}

	return makeToken(first, pos, pos)
}

// Whitespace
//   - consumes every consecutive space, tab or line break
func (s *Scanner) skipBlank() {
	for s.peekClass() == CharSpace {
		s.Reader.Next()
	}
}

// Block comments
//   - the opening "(*" has already been consumed
//   - "*)" closes the comment, any run of '*' may precede the ')'
//   - reaching EOF first is fatal
func (s *Scanner) skipComment(start source.Pos) feedback.Message {
	sawStar := false

	for {
		r, pos, eof := s.Reader.Next()

		if eof {
			err := feedback.NewError(feedback.ErrEndOfComment, s.Reader.File(), source.Point(pos))
			err.Why = []feedback.Selection{{
				Description: "comment starts here",
				Span:        source.Span{Start: start, End: source.Pos{Line: start.Line, Col: start.Col + 1}},
			}}

			return err
		}

		switch class := classify(r); {
		case sawStar && class == CharRParen:
			return nil
		case class == CharTimes:
			sawStar = true
		default:
			sawStar = false
		}
	}
}

// Line comments
//   - "//" up to and including the end of the line, EOF also ends the comment
func (s *Scanner) skipLineComment() {
	for {
		r, _, eof := s.Reader.Next()

		if eof || r == '\n' {
			return
		}
	}
}

// Identifiers and Keywords
//   - match [A-Za-z][A-Za-z0-9]*
//   - lexemes longer than MaxIdentLen are reported once and truncated, the
//     rest of the word is still consumed
func (s *Scanner) readIdentKeyword() (tok Token, msg feedback.Message) {
	var lexeme strings.Builder

	tok.Span.Start = s.Reader.Pos()
	tok.Span.End = tok.Span.Start

	for {
		r, pos, eof := s.Reader.Peek()

		if eof || !isWordRune(r) {
			break
		}

		s.Reader.Next()
		tok.Span.End = pos

		if lexeme.Len() >= s.MaxIdentLen {
			if msg == nil {
				msg = s.errorAt(feedback.ErrIdentTooLong, source.Point(pos))
			}

			continue
		}

		lexeme.WriteRune(r)
	}

	tok.Lexeme = lexeme.String()

	if tok.Symbol = lookupKeyword(tok.Lexeme); tok.Symbol == NoneSymbol {
		tok.Symbol = IdentSymbol
	}

	return tok, msg
}

// Numbers
//   - match [0-9]+
//   - unlike identifiers, over-long numbers are truncated without a diagnostic
//   - at most maxNumberDigits digits are kept, even with a larger MaxIdentLen
func (s *Scanner) readNumber() (tok Token) {
	var lexeme strings.Builder

	tok.Symbol = NumberSymbol
	tok.Span.Start = s.Reader.Pos()
	tok.Span.End = tok.Span.Start

	limit := min(s.MaxIdentLen, maxNumberDigits)

	for s.peekClass() == CharDigit {
		r, pos, _ := s.Reader.Next()
		tok.Span.End = pos

		if lexeme.Len() < limit {
			lexeme.WriteRune(r)
		}
	}

	tok.Lexeme = lexeme.String()

	// Cannot fail, the lexeme is a short run of digits
	value, _ := strconv.ParseInt(tok.Lexeme, 10, 64)
	tok.Value = int(value)

	return tok
}

// Character constants
//   - match '.' with exactly one interior character
//   - an empty constant consumes its closing quote
//   - a constant with extra characters is reported once; the letters and
//     digits directly after the first character are dropped, along with a
//     quote that closes them. Anything else is left for the next token
func (s *Scanner) readConstChar() (tok Token, msg feedback.Message) {
	_, start, _ := s.Reader.Next()

	tok.Symbol = CharSymbol
	tok.Span = source.Point(start)

	r, pos, eof := s.Reader.Peek()

	if eof || classify(r) == CharSingleQuote {
		if !eof {
			s.Reader.Next()
			tok.Span.End = pos
		}

		return tok, s.errorAt(feedback.ErrInvalidCharConstant, tok.Span)
	}

	s.Reader.Next()
	tok.Lexeme = string(r)
	tok.Span.End = pos

	if s.peekClass() == CharSingleQuote {
		_, tok.Span.End, _ = s.Reader.Next()
		return tok, nil
	}

	msg = s.errorAt(feedback.ErrInvalidCharConstant, tok.Span)

	for {
		r, _, eof = s.Reader.Peek()
		if eof || !isWordRune(r) {
			break
		}

		s.Reader.Next()
	}

	if s.peekClass() == CharSingleQuote {
		s.Reader.Next()
	}

	return tok, msg
}
