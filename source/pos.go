package source

import "fmt"

// Pos holds the 1-based line/column of a single rune. The zero Pos marks
// objects that have no place in any document
type Pos struct {
	Line int
	Col  int
}

// String renders a position the way the diagnostics and token dumps print it
func (p Pos) String() string {
	return fmt.Sprintf("%d-%d", p.Line, p.Col)
}

// IsValid reports whether the position points into a document
func (p Pos) IsValid() bool {
	return p.Line > 0 && p.Col > 0
}

// Span holds an inclusive Start and End position in a source code document
type Span struct {
	Start Pos
	End   Pos
}

// Point returns the span covering the single rune at "p"
func Point(p Pos) Span {
	return Span{Start: p, End: p}
}

// Width returns the number of runes a single-line span covers, a span over
// several lines counts as 1
func (s Span) Width() int {
	if s.End.Line != s.Start.Line || s.End.Col < s.Start.Col {
		return 1
	}

	return s.End.Col - s.Start.Col + 1
}
