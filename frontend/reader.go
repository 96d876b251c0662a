package frontend

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/isaacev/kplc/source"
)

/**
 * # Handling of Line & File terminations
 *
 * The first character in each line is considered to be in column 1. A newline
 * at the end of a line with `N` characters is considered to be in column
 * `N + 1`.
 *
 * The end of the stream is not a rune. Once the underlying reader is
 * exhausted `Peek()` and `Next()` keep reporting EOF at the position one past
 * the last rune, so callers can ask for more input without special casing.
 */

// Reader holds the state of a buffered character stream which the scanner
// consumes one rune at a time. The reader always holds the current rune (the
// one `Peek()` returns) and records every rune it reads into a source.File so
// that diagnostics can quote lines the scanner has already passed
type Reader struct {
	// OnLine, when set, is called with a line number as soon as that line
	// has been read up to and including its newline
	OnLine func(line int)

	file   *source.File
	input  *bufio.Reader
	closer io.Closer
	err    error

	current rune
	pos     source.Pos
	eof     bool

	nextLine int
	nextCol  int
}

// NewReader wraps an io.Reader. The name is only used in diagnostics
func NewReader(name string, input io.Reader) *Reader {
	r := &Reader{
		file:     &source.File{Filename: name},
		input:    bufio.NewReader(input),
		nextLine: 1,
		nextCol:  1,
	}

	r.advance()
	return r
}

// OpenReader opens a file on disk for reading. The caller owns the returned
// Reader and must Close it once scanning is done
func OpenReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}

	r := NewReader(path, f)
	r.closer = f
	return r, nil
}

// advance reads the next rune from the stream into `current`
func (r *Reader) advance() {
	if r.eof {
		return
	}

	r.pos = source.Pos{Line: r.nextLine, Col: r.nextCol}

	ch, _, err := r.input.ReadRune()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			r.err = err
		}

		r.current = 0
		r.eof = true
		return
	}

	r.current = ch
	r.file.Append(string(ch))

	if ch == '\n' {
		if r.OnLine != nil {
			r.OnLine(r.nextLine)
		}

		r.nextLine++
		r.nextCol = 1
	} else {
		r.nextCol++
	}
}

// Peek returns the current rune, its position and an end-of-file flag without
// advancing the Reader
func (r *Reader) Peek() (ch rune, pos source.Pos, eof bool) {
	return r.current, r.pos, r.eof
}

// Next returns the current rune, its position and an end-of-file flag, then
// advances the Reader to the following rune
func (r *Reader) Next() (ch rune, pos source.Pos, eof bool) {
	ch, pos, eof = r.current, r.pos, r.eof
	r.advance()
	return ch, pos, eof
}

// FinishLine reads ahead to the end of the current line so that the whole
// line can be quoted. Scanning must not resume afterwards
func (r *Reader) FinishLine() {
	for !r.eof && r.current != '\n' {
		r.advance()
	}
}

// Pos returns the position of the current rune
func (r *Reader) Pos() source.Pos {
	return r.pos
}

// File returns the part of the document read so far
func (r *Reader) File() *source.File {
	return r.file
}

// Err returns the first read error other than io.EOF
func (r *Reader) Err() error {
	return r.err
}

// Close releases the underlying file, if the Reader opened one. Calling
// Close more than once is safe
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}

	c := r.closer
	r.closer = nil

	if err := c.Close(); err != nil {
		return fmt.Errorf("close source: %w", err)
	}

	return nil
}
