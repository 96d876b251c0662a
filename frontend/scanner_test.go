package frontend

import (
	"fmt"
	"strings"
	"testing"

	"github.com/isaacev/kplc/feedback"
)

// scanAll collects every token before EOF along with the diagnostics
func scanAll(src string) (toks []Token, sink *feedback.Collector) {
	sink = &feedback.Collector{}
	s := NewScanner(NewReader("test.kpl", strings.NewReader(src)))

	for {
		tok, msg := s.NextToken()

		if msg != nil {
			sink.Report(msg)
		}

		if tok.Symbol == EOFSymbol || (msg != nil && msg.Fatal()) {
			return toks, sink
		}

		toks = append(toks, tok)
	}
}

func symbolsOf(toks []Token) (syms []TokenSymbol) {
	for _, tok := range toks {
		syms = append(syms, tok.Symbol)
	}

	return syms
}

func expectSymbols(t *testing.T, src string, expected ...TokenSymbol) {
	t.Helper()

	toks, _ := scanAll(src)
	got := symbolsOf(toks)

	if fmt.Sprint(got) != fmt.Sprint(expected) {
		t.Errorf("%q: expected %v, got %v", src, expected, got)
	}
}

func expectCodes(t *testing.T, sink *feedback.Collector, expected ...feedback.Code) {
	t.Helper()

	if got := sink.Codes(); fmt.Sprint(got) != fmt.Sprint(expected) {
		t.Errorf("expected diagnostics %v, got %v", expected, got)
	}
}

func TestScanNumbers(t *testing.T) {
	for _, src := range []string{"0", "7", "42", "007", "123456789012345"} {
		toks, sink := scanAll(src)

		if len(toks) != 1 || toks[0].Symbol != NumberSymbol {
			t.Fatalf("%q: expected a single number, got %v", src, toks)
		}

		var expected int
		fmt.Sscanf(src, "%d", &expected)

		if toks[0].Value != expected {
			t.Errorf("%q: expected value %d, got %d", src, expected, toks[0].Value)
		}

		if toks[0].Lexeme != src {
			t.Errorf("%q: expected lexeme %q, got %q", src, src, toks[0].Lexeme)
		}

		expectCodes(t, sink)
	}
}

func TestScanLongNumberTruncatedSilently(t *testing.T) {
	toks, sink := scanAll("12345678901234567890 x")

	if len(toks) != 2 || toks[0].Symbol != NumberSymbol || toks[1].Symbol != IdentSymbol {
		t.Fatalf("expected a number followed by an identifier, got %v", toks)
	}

	if toks[0].Lexeme != "123456789012345" || toks[0].Value != 123456789012345 {
		t.Errorf("expected the lexeme to be cut to 15 digits, got %q (%d)", toks[0].Lexeme, toks[0].Value)
	}

	expectCodes(t, sink)
}

func TestScanNumberDigitsCappedAboveMaxIdentLen(t *testing.T) {
	tests := []struct {
		maxLen int
		src    string
		lexeme string
		value  int
	}{
		{30, "99999999999999999999999", "999999999999999999", 999999999999999999},
		{30, "9223372036854775807", "922337203685477580", 922337203685477580},
		{20, "123", "123", 123},
		{4, "123456", "1234", 1234},
	}

	for _, test := range tests {
		s := NewScanner(NewReader("test.kpl", strings.NewReader(test.src)))
		s.MaxIdentLen = test.maxLen

		tok, msg := s.NextToken()
		if msg != nil {
			t.Errorf("%q: unexpected diagnostic %v", test.src, msg)
		}

		if tok.Lexeme != test.lexeme || tok.Value != test.value {
			t.Errorf("%q: expected %q (%d), got %q (%d)", test.src, test.lexeme, test.value, tok.Lexeme, tok.Value)
		}

		if end := s.Reader.Pos().Col; end != len(test.src)+1 {
			t.Errorf("%q: expected every digit to be consumed, reader at column %d", test.src, end)
		}
	}
}

func TestScanIdentifiers(t *testing.T) {
	for _, src := range []string{"x", "abc", "A1b2", "program1", "beginning"} {
		toks, sink := scanAll(src)

		if len(toks) != 1 || toks[0].Symbol != IdentSymbol || toks[0].Lexeme != src {
			t.Errorf("%q: expected a single identifier, got %v", src, toks)
		}

		expectCodes(t, sink)
	}
}

func TestScanIdentifierTooLong(t *testing.T) {
	toks, sink := scanAll("abcdefghijklmnopqrstuvwxyz;")

	expectCodes(t, sink, feedback.ErrIdentTooLong)

	if len(toks) != 2 || toks[0].Symbol != IdentSymbol || toks[1].Symbol != SemicolonSymbol {
		t.Fatalf("expected identifier then ';', got %v", toks)
	}

	if toks[0].Lexeme != "abcdefghijklmno" {
		t.Errorf("expected truncated lexeme, got %q", toks[0].Lexeme)
	}

	if toks[1].Pos().Col != 27 {
		t.Errorf("expected ';' at column 27, got %d", toks[1].Pos().Col)
	}
}

func TestScanMaxIdentLenOverride(t *testing.T) {
	s := NewScanner(NewReader("test.kpl", strings.NewReader("abcdef")))
	s.MaxIdentLen = 3

	tok, msg := s.NextToken()
	if tok.Lexeme != "abc" || msg == nil {
		t.Errorf("expected truncation to 3 runes with a diagnostic, got %q (%v)", tok.Lexeme, msg)
	}
}

func TestScanKeywords(t *testing.T) {
	expectSymbols(t, "program Begin END const type var integer char array of",
		ProgramKeyword, BeginKeyword, EndKeyword, ConstKeyword, TypeKeyword, VarKeyword,
		IntegerKeyword, CharKeyword, ArrayKeyword, OfKeyword)

	expectSymbols(t, "function procedure call if then else while do for to",
		FunctionKeyword, ProcedureKeyword, CallKeyword, IfKeyword, ThenKeyword, ElseKeyword,
		WhileKeyword, DoKeyword, ForKeyword, ToKeyword)
}

func TestScanOperators(t *testing.T) {
	tests := map[string]TokenSymbol{
		":":  ColonSymbol,
		":=": AssignSymbol,
		"<":  LtSymbol,
		"<=": LeSymbol,
		"<>": NeqSymbol,
		"!=": NeqSymbol,
		">":  GtSymbol,
		">=": GeSymbol,
		"=":  EqSymbol,
		"+":  PlusSymbol,
		"-":  MinusSymbol,
		"*":  TimesSymbol,
		"/":  SlashSymbol,
		"(":  LParenSymbol,
		")":  RParenSymbol,
		"(.": LSelSymbol,
		".)": RSelSymbol,
		".":  PeriodSymbol,
		",":  CommaSymbol,
		";":  SemicolonSymbol,
	}

	for src, sym := range tests {
		toks, sink := scanAll(src)

		if len(toks) != 1 || toks[0].Symbol != sym {
			t.Errorf("%q: expected %s, got %v", src, sym, symbolsOf(toks))
		}

		expectCodes(t, sink)
	}
}

func TestScanOperatorSequences(t *testing.T) {
	expectSymbols(t, "a(.1.):=b",
		IdentSymbol, LSelSymbol, NumberSymbol, RSelSymbol, AssignSymbol, IdentSymbol)

	expectSymbols(t, "x<>y>=z",
		IdentSymbol, NeqSymbol, IdentSymbol, GeSymbol, IdentSymbol)

	expectSymbols(t, "end.",
		EndKeyword, PeriodSymbol)
}

func TestScanBlockComments(t *testing.T) {
	for _, src := range []string{
		"(* a * b *)",
		"(**)",
		"(* stars **)",
		"(* multi\nline *)",
		"(* ) *( *)",
	} {
		toks, sink := scanAll(src)

		if len(toks) != 0 {
			t.Errorf("%q: expected no tokens, got %v", src, toks)
		}

		expectCodes(t, sink)
	}

	expectSymbols(t, "x (* skip *) y", IdentSymbol, IdentSymbol)
}

func TestScanUnterminatedComment(t *testing.T) {
	for _, src := range []string{"(* unterminated", "(* almost *", "(*)"} {
		_, sink := scanAll(src)

		expectCodes(t, sink, feedback.ErrEndOfComment)

		if !sink.HasFatal() {
			t.Errorf("%q: expected the error to be fatal", src)
		}
	}
}

func TestScanUnterminatedCommentKeepsReturningEOF(t *testing.T) {
	s := NewScanner(NewReader("test.kpl", strings.NewReader("(* open")))

	if tok, msg := s.NextToken(); tok.Symbol != EOFSymbol || msg == nil || !msg.Fatal() {
		t.Fatalf("expected EOF with a fatal diagnostic, got %v (%v)", tok, msg)
	}

	if tok, msg := s.NextToken(); tok.Symbol != EOFSymbol || msg != nil {
		t.Errorf("expected plain EOF afterwards, got %v (%v)", tok, msg)
	}
}

func TestScanLineComments(t *testing.T) {
	expectSymbols(t, "x // the rest\ny", IdentSymbol, IdentSymbol)
	expectSymbols(t, "x // ends at EOF", IdentSymbol)
	expectSymbols(t, "x / y", IdentSymbol, SlashSymbol, IdentSymbol)

	toks, _ := scanAll("// comment\nz")
	if len(toks) != 1 || toks[0].Pos().Line != 2 || toks[0].Pos().Col != 1 {
		t.Errorf("expected z at 2-1, got %v", toks)
	}
}

func TestScanCharConstants(t *testing.T) {
	toks, sink := scanAll("'a'")

	if len(toks) != 1 || toks[0].Symbol != CharSymbol || toks[0].Lexeme != "a" {
		t.Errorf("expected a char token 'a', got %v", toks)
	}

	expectCodes(t, sink)
}

func TestScanInvalidCharConstants(t *testing.T) {
	tests := []struct {
		src      string
		expected []TokenSymbol
	}{
		{"''", []TokenSymbol{CharSymbol}},
		{"'ab'", []TokenSymbol{CharSymbol}},
		{"'a", []TokenSymbol{CharSymbol}},
		{"'", []TokenSymbol{CharSymbol}},
		{"'ab' x", []TokenSymbol{CharSymbol, IdentSymbol}},
		{"'ab\nx", []TokenSymbol{CharSymbol, IdentSymbol}},
		{"'abc'x", []TokenSymbol{CharSymbol, IdentSymbol}},
		{"'ab; x := 2", []TokenSymbol{CharSymbol, SemicolonSymbol, IdentSymbol, AssignSymbol, NumberSymbol}},
	}

	for _, test := range tests {
		toks, sink := scanAll(test.src)

		if len(sink.Codes()) != 1 || sink.Codes()[0] != feedback.ErrInvalidCharConstant {
			t.Errorf("%q: expected exactly one invalid char diagnostic, got %v", test.src, sink.Codes())
		}

		if sink.HasFatal() {
			t.Errorf("%q: invalid char constants must not be fatal", test.src)
		}

		if fmt.Sprint(symbolsOf(toks)) != fmt.Sprint(test.expected) {
			t.Errorf("%q: expected %v, got %v", test.src, test.expected, symbolsOf(toks))
		}

		if toks[0].Pos().Line != 1 || toks[0].Pos().Col != 1 {
			t.Errorf("%q: expected the token at the opening quote, got %v", test.src, toks[0].Pos())
		}
	}
}

func TestScanInvalidCharConstantKeepsRestOfLine(t *testing.T) {
	toks, sink := scanAll("c := 'ab; x := 2; x := 3\n")

	var got []string
	for _, tok := range toks {
		got = append(got, FormatToken(tok))
	}

	expected := []string{
		"1-1:TK_IDENT(c)",
		"1-3:SB_ASSIGN",
		"1-6:TK_CHAR('a')",
		"1-9:SB_SEMICOLON",
		"1-11:TK_IDENT(x)",
		"1-13:SB_ASSIGN",
		"1-16:TK_NUMBER(2)",
		"1-17:SB_SEMICOLON",
		"1-19:TK_IDENT(x)",
		"1-21:SB_ASSIGN",
		"1-24:TK_NUMBER(3)",
	}

	if strings.Join(got, " ") != strings.Join(expected, " ") {
		t.Errorf("expected %v, got %v", expected, got)
	}

	expectCodes(t, sink, feedback.ErrInvalidCharConstant)
}

func TestScanInvalidSymbols(t *testing.T) {
	toks, sink := scanAll("a ? b")

	expectCodes(t, sink, feedback.ErrInvalidSymbol)

	if fmt.Sprint(symbolsOf(toks)) != fmt.Sprint([]TokenSymbol{IdentSymbol, NoneSymbol, IdentSymbol}) {
		t.Errorf("expected the unknown rune to become TK_NONE, got %v", symbolsOf(toks))
	}

	toks, sink = scanAll("!x")
	expectCodes(t, sink, feedback.ErrInvalidSymbol)

	if len(toks) != 2 || toks[0].Symbol != NoneSymbol || toks[1].Symbol != IdentSymbol || toks[1].Lexeme != "x" {
		t.Errorf("expected a placeholder then x, got %v", toks)
	}
}

func TestScanPositions(t *testing.T) {
	toks, _ := scanAll("program P;\n  begin end.")

	expected := []string{"1-1", "1-9", "1-10", "2-3", "2-9", "2-12"}

	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %v", len(expected), toks)
	}

	for i, pos := range expected {
		if got := toks[i].Pos().String(); got != pos {
			t.Errorf("token %d: expected %s, got %s", i, pos, got)
		}
	}
}

func TestScanEOFIsIdempotent(t *testing.T) {
	s := NewScanner(NewReader("test.kpl", strings.NewReader("x")))
	s.NextToken()

	for i := 0; i < 3; i++ {
		if tok, msg := s.NextToken(); tok.Symbol != EOFSymbol || msg != nil {
			t.Fatalf("call %d: expected EOF, got %v (%v)", i, tok, msg)
		}
	}
}

func TestScanLongWhitespaceRun(t *testing.T) {
	src := strings.Repeat(" \n\t", 100000) + "x"
	expectSymbols(t, src, IdentSymbol)
}
