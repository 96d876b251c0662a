package source

// File represents a chunk of source code to be processed by the front-end.
// The text read so far is kept in a single buffer along with the offset each
// line starts at, so that error messages aren't required to repeatedly split
// the contents.
type File struct {
	Filename string

	text   []byte
	starts []int
}

// NewFile builds a File from a complete document
func NewFile(filename, contents string) *File {
	f := &File{Filename: filename}
	f.Append(contents)
	return f
}

// Append adds text to the end of the file and keeps the line index current.
// Readers that stream a document call Append as runes are consumed so that
// diagnostics can quote any line the scanner has already visited
func (f *File) Append(text string) {
	for i := 0; i < len(text); i++ {
		if n := len(f.text); n == 0 || f.text[n-1] == '\n' {
			f.starts = append(f.starts, n)
		}

		f.text = append(f.text, text[i])
	}
}

// Contents returns the text read so far
func (f *File) Contents() string {
	return string(f.text)
}

// NumLines returns how many lines have been started so far
func (f *File) NumLines() int {
	return len(f.starts)
}

// Line returns the text of the 1-based line "n", including its newline, or
// an empty string if that line has not been read
func (f *File) Line(n int) string {
	if n < 1 || n > len(f.starts) {
		return ""
	}

	return string(f.text[f.starts[n-1]:f.lineEnd(n)])
}

func (f *File) lineEnd(n int) int {
	if n < len(f.starts) {
		return f.starts[n]
	}

	return len(f.text)
}
