package frontend

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/isaacev/kplc/source"
)

func TestReaderPositions(t *testing.T) {
	r := NewReader("test.kpl", strings.NewReader("ab\nc"))

	expected := []struct {
		r   rune
		pos source.Pos
	}{
		{'a', source.Pos{Line: 1, Col: 1}},
		{'b', source.Pos{Line: 1, Col: 2}},
		{'\n', source.Pos{Line: 1, Col: 3}},
		{'c', source.Pos{Line: 2, Col: 1}},
	}

	for _, exp := range expected {
		if peek, pos, eof := r.Peek(); eof || peek != exp.r || pos != exp.pos {
			t.Fatalf("peek: expected %q at %v, got %q at %v (eof=%v)", exp.r, exp.pos, peek, pos, eof)
		}

		if got, pos, eof := r.Next(); eof || got != exp.r || pos != exp.pos {
			t.Fatalf("next: expected %q at %v, got %q at %v (eof=%v)", exp.r, exp.pos, got, pos, eof)
		}
	}

	for i := 0; i < 3; i++ {
		_, pos, eof := r.Next()

		if !eof {
			t.Fatal("expected EOF to repeat")
		}

		if pos != (source.Pos{Line: 2, Col: 2}) {
			t.Errorf("expected EOF at 2-2, got %v", pos)
		}
	}

	if r.File().Contents() != "ab\nc" {
		t.Errorf("expected the file to record the text read, got %q", r.File().Contents())
	}
}

func TestReaderEmptyInput(t *testing.T) {
	r := NewReader("empty.kpl", strings.NewReader(""))

	if _, pos, eof := r.Peek(); !eof || pos != (source.Pos{Line: 1, Col: 1}) {
		t.Errorf("expected immediate EOF at 1-1, got eof=%v at %v", eof, pos)
	}
}

func TestOpenReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.kpl")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}

	if ch, _, _ := r.Next(); ch != 'x' {
		t.Errorf("expected 'x', got %q", ch)
	}

	if err := r.Close(); err != nil {
		t.Errorf("unexpected close error: %v", err)
	}

	if err := r.Close(); err != nil {
		t.Errorf("second close should be a no-op, got %v", err)
	}

	if r.File().Filename != path {
		t.Errorf("expected filename %q, got %q", path, r.File().Filename)
	}
}

func TestOpenReaderMissingFile(t *testing.T) {
	if _, err := OpenReader(filepath.Join(t.TempDir(), "missing.kpl")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestReaderOnLine(t *testing.T) {
	r := NewReader("test.kpl", strings.NewReader("ab\ncd\n\ne"))

	var lines []int
	r.OnLine = func(line int) { lines = append(lines, line) }

	for {
		if _, _, eof := r.Next(); eof {
			break
		}
	}

	if len(lines) != 3 || lines[0] != 1 || lines[1] != 2 || lines[2] != 3 {
		t.Errorf("expected lines [1 2 3] to complete, got %v", lines)
	}
}

func TestReaderFinishLine(t *testing.T) {
	tests := []struct {
		src      string
		skip     int
		expected string
	}{
		{"abc def\nnext", 2, "abc def\n"},
		{"abc def", 1, "abc def"},
		{"ab\n", 3, "ab\n"},
		{"", 0, ""},
	}

	for _, test := range tests {
		r := NewReader("test.kpl", strings.NewReader(test.src))

		for i := 0; i < test.skip; i++ {
			r.Next()
		}

		r.FinishLine()

		if got := r.File().Contents(); got != test.expected {
			t.Errorf("%q: expected %q to be read, got %q", test.src, test.expected, got)
		}
	}
}
