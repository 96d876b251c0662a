package feedback

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/isaacev/kplc/source"
)

const (
	errorColors = iota
	noticeColors
	helperColors
)

// Message is the interface for all diagnostics that can be emitted by the
// stages of the pipeline
type Message interface {
	Make(withColor bool) string
	Fatal() bool
}

// Selection represents a region of the source code file along with a
// corresponding description that supplies information as to why an error
// occured
type Selection struct {
	Description string
	Span        source.Span
}

// Error messages are emitted by the scanner, the parser and the semantic
// checker. Whether an Error stops the pipeline is decided by its Code
type Error struct {
	Classification string
	Code           Code
	File           *source.File
	What           Selection
	Why            []Selection
}

// NewError builds an Error for a code whose fixed message becomes the
// description of the offending selection
func NewError(code Code, file *source.File, span source.Span, args ...interface{}) Error {
	return Error{
		Classification: code.Classification(),
		Code:           code,
		File:           file,
		What: Selection{
			Description: code.Message(args...),
			Span:        span,
		},
	}
}

// Fatal reports whether the error halts the compilation run
func (e Error) Fatal() bool {
	return e.Code.Fatal()
}

// Pos returns the position the error is reported at
func (e Error) Pos() source.Pos {
	return e.What.Span.Start
}

// Error renders the error in the short "<line>-<col>:<message>" form
func (e Error) Error() string {
	return fmt.Sprintf("%s:%s", e.What.Span.Start, e.What.Description)
}

// Make takes an Error and produces a fully rendered message with the option of
// using colors to make elements of the message more clear. Non-fatal errors
// use the notice color scheme since scanning continued past them
func (e Error) Make(withColor bool) string {
	color.NoColor = !withColor

	scheme := errorColors
	if !e.Fatal() {
		scheme = noticeColors
	}

	return makeMessage(e.Classification, e.File, e.What, e.Why, scheme)
}

// makeMessage renders a diagnostic in the form:
//
//	error: <error classification>
//	  --> <filename>:<line number>:<column number>
//	   |
//	 1 | <offending line of source code>
//	   |  ^^^^^^^^^ <message detailing error>
//
// Selections whose line has not been read are left out
func makeMessage(classification string, file *source.File, what Selection, why []Selection, colorScheme int) string {
	r := newRenderer(file, append([]Selection{what}, why...))

	if colorScheme == noticeColors {
		r.emit(color.New(color.FgYellow, color.Bold).Sprintf("error: %s (recovered)", classification))
	} else {
		r.emit(color.New(color.FgRed, color.Bold).Sprintf("error: %s", classification))
	}

	filename := "<input>"
	if file != nil && file.Filename != "" {
		filename = file.Filename
	}

	r.emit(fmt.Sprintf(" %s%s %s:%d:%d", r.blank(), r.blue("-->"), filename, what.Span.Start.Line, what.Span.Start.Col))

	if !r.has(what.Span.Start.Line) {
		r.emit(fmt.Sprintf(" %s %s %s", r.blank(), r.blue("="), what.Description))
		return r.String()
	}

	r.emit(r.blue(fmt.Sprintf(" %s |", r.blank())))

	prev := 0
	for _, sel := range why {
		if !r.has(sel.Span.Start.Line) {
			continue
		}

		if prev > 0 && prev+1 < sel.Span.Start.Line {
			r.emit(r.blue("..."))
		}

		r.quote(sel, helperColors)
		prev = sel.Span.Start.Line
	}

	if prev > 0 && prev+1 < what.Span.Start.Line {
		r.emit(fmt.Sprintf(" %s%s", r.blank(), r.blue("...")))
	}

	r.quote(what, colorScheme)
	return r.String()
}

// renderer accumulates the output lines of one message. Every line number in
// the left margin is padded to the width of the largest one
type renderer struct {
	file   *source.File
	gutter int
	out    []string
	blue   func(a ...interface{}) string
}

func newRenderer(file *source.File, sels []Selection) *renderer {
	last := 1
	for _, sel := range sels {
		last = max(last, sel.Span.Start.Line, sel.Span.End.Line)
	}

	return &renderer{
		file:   file,
		gutter: len(strconv.Itoa(last)),
		blue:   color.New(color.FgBlue).SprintFunc(),
	}
}

func (r *renderer) emit(line string) {
	r.out = append(r.out, line)
}

func (r *renderer) String() string {
	return strings.Join(r.out, "\n")
}

// blank is an empty margin
func (r *renderer) blank() string {
	return strings.Repeat(" ", r.gutter)
}

// has reports whether line "n" can be quoted
func (r *renderer) has(n int) bool {
	return r.file != nil && r.file.Line(n) != ""
}

// quote prints the line a selection starts on, colors the selected columns and
// underlines them with the selection's description
func (r *renderer) quote(sel Selection, colorScheme int) {
	paint := r.blue
	mark := "-"

	switch colorScheme {
	case errorColors:
		paint = color.New(color.FgRed).SprintFunc()
		mark = "^"
	case noticeColors:
		paint = color.New(color.FgYellow).SprintFunc()
		mark = "^"
	}

	text := []rune(strings.TrimRight(r.file.Line(sel.Span.Start.Line), "\r\n"))
	from := clamp(sel.Span.Start.Col-1, 0, len(text))
	to := clamp(from+sel.Span.Width(), from, len(text))

	r.emit(fmt.Sprintf(" %s %s %s%s%s",
		r.blue(fmt.Sprintf("%*d", r.gutter, sel.Span.Start.Line)),
		r.blue("|"),
		string(text[:from]),
		paint(string(text[from:to])),
		string(text[to:])))

	if sel.Description == "" {
		return
	}

	r.emit(fmt.Sprintf(" %s %s %s%s %s",
		r.blank(),
		r.blue("|"),
		strings.Repeat(" ", max(sel.Span.Start.Col-1, 0)),
		paint(strings.Repeat(mark, sel.Span.Width())),
		paint(sel.Description)))
}

func clamp(n, lo, hi int) int {
	return min(max(n, lo), hi)
}
