package frontend

import (
	"fmt"
	"io"
	"strings"

	"github.com/isaacev/kplc/feedback"
)

// FormatToken renders a token in the dump format "<line>-<col>:<KIND>". The
// lexeme of identifiers and numbers follows in parentheses, character
// constants are shown quoted
func FormatToken(tok Token) string {
	switch tok.Symbol {
	case IdentSymbol, NumberSymbol:
		return fmt.Sprintf("%s:%s(%s)", tok.Pos(), tok.Symbol, tok.Lexeme)
	case CharSymbol:
		return fmt.Sprintf("%s:%s('%s')", tok.Pos(), tok.Symbol, tok.Lexeme)
	default:
		return fmt.Sprintf("%s:%s", tok.Pos(), tok.Symbol)
	}
}

// DumpTokens scans the whole stream and writes one line per token, stopping
// before the EOF token. Lexical errors are handed to the sink as they occur;
// a fatal one stops the dump and is returned. A nil sink discards them
func DumpTokens(s *Scanner, w io.Writer, sink feedback.Sink) (feedback.Message, error) {
	if sink == nil {
		sink = &feedback.Collector{}
	}

	for {
		tok, msg := s.NextToken()

		if msg != nil {
			sink.Report(msg)

			if msg.Fatal() {
				return msg, nil
			}
		}

		if tok.Symbol == EOFSymbol {
			return nil, nil
		}

		if _, err := fmt.Fprintln(w, FormatToken(tok)); err != nil {
			return nil, err
		}
	}
}

// StringifyScopes renders the scope tree below a program object as an
// indented S-expression
func StringifyScopes(prog *Object) string {
	if prog == nil {
		return "(program)"
	}

	return stringifyObject(prog)
}

func stringifyObject(obj *Object) string {
	const newline = "\n"

	if obj.Block == nil {
		return fmt.Sprintf("(%s %s)", obj.Kind, obj.Name)
	}

	var entries []string

	for _, child := range obj.Block.Objects {
		entries = append(entries, stringifyObject(child))
	}

	if len(entries) == 0 {
		return fmt.Sprintf("(%s %s)", obj.Kind, obj.Name)
	}

	return fmt.Sprintf("(%s %s (\n%s\n))",
		obj.Kind,
		obj.Name,
		indentString(strings.Join(entries, newline)))
}

func indentString(s string) string {
	lines := strings.Split(s, "\n")

	for i, l := range lines {
		lines[i] = "   " + l
	}

	return strings.Join(lines, "\n")
}
