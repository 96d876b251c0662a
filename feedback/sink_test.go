package feedback

import (
	"fmt"
	"testing"

	"github.com/isaacev/kplc/source"
)

func errorOnLine(code Code, line int) Error {
	return NewError(code, nil, source.Point(source.Pos{Line: line, Col: 1}))
}

func TestDeferredHoldsUntilLineIsComplete(t *testing.T) {
	out := &Collector{}
	d := &Deferred{Next: out}

	steps := []struct {
		report   Message
		release  int
		expected []Code
	}{
		{report: errorOnLine(ErrIdentTooLong, 1), expected: nil},
		{report: errorOnLine(ErrInvalidSymbol, 2), expected: nil},
		{release: 1, expected: []Code{ErrIdentTooLong}},
		{report: errorOnLine(ErrInvalidCharConstant, 1), expected: []Code{ErrIdentTooLong}},
		{release: 2, expected: []Code{ErrIdentTooLong, ErrInvalidSymbol, ErrInvalidCharConstant}},
		{report: errorOnLine(ErrMissingToken, 2), expected: []Code{ErrIdentTooLong, ErrInvalidSymbol, ErrInvalidCharConstant, ErrMissingToken}},
	}

	for i, step := range steps {
		if step.report != nil {
			d.Report(step.report)
		} else {
			d.Release(step.release)
		}

		if got := out.Codes(); fmt.Sprint(got) != fmt.Sprint(step.expected) {
			t.Errorf("step %d: expected %v, got %v", i, step.expected, got)
		}
	}
}

func TestDeferredFlush(t *testing.T) {
	out := &Collector{}
	d := &Deferred{Next: out}

	d.Report(errorOnLine(ErrIdentTooLong, 3))
	d.Report(errorOnLine(ErrEndOfComment, 5))
	d.Release(2)

	if len(out.Messages) != 0 {
		t.Fatalf("expected nothing to pass before the flush, got %v", out.Codes())
	}

	d.Flush()
	d.Flush()

	if got := fmt.Sprint(out.Codes()); got != fmt.Sprint([]Code{ErrIdentTooLong, ErrEndOfComment}) {
		t.Errorf("expected both messages once, got %s", got)
	}
}
