package feedback

import (
	"github.com/isaacev/kplc/source"
)

// Sink receives diagnostics at the point they are detected
type Sink interface {
	Report(msg Message)
}

// SinkFunc adapts an ordinary function to the Sink interface
type SinkFunc func(msg Message)

// Report calls f(msg)
func (f SinkFunc) Report(msg Message) {
	f(msg)
}

// Collector is a Sink that records every message it receives in order
type Collector struct {
	Messages []Message
}

// Report appends the message to the collected list
func (c *Collector) Report(msg Message) {
	c.Messages = append(c.Messages, msg)
}

// HasFatal reports whether any collected message ended the run
func (c *Collector) HasFatal() bool {
	for _, msg := range c.Messages {
		if msg.Fatal() {
			return true
		}
	}

	return false
}

// Codes lists the codes of all collected errors, mostly useful in tests
func (c *Collector) Codes() (codes []Code) {
	for _, msg := range c.Messages {
		if err, ok := msg.(Error); ok {
			codes = append(codes, err.Code)
		}
	}

	return codes
}

// Deferred holds messages back until the source line they point at has been
// read in full, so that the rendered message can quote all of it. Messages
// are passed on to Next in the order they were reported
type Deferred struct {
	Next Sink

	pending []Message
	done    int
}

// Report queues the message, passing it on at once if its line is complete
func (d *Deferred) Report(msg Message) {
	d.pending = append(d.pending, msg)
	d.release()
}

// Release marks every line up to and including "line" as complete
func (d *Deferred) Release(line int) {
	d.done = max(d.done, line)
	d.release()
}

// Flush passes on every held message
func (d *Deferred) Flush() {
	for _, msg := range d.pending {
		d.Next.Report(msg)
	}

	d.pending = nil
}

func (d *Deferred) release() {
	n := 0
	for n < len(d.pending) && lineOf(d.pending[n]) <= d.done {
		d.Next.Report(d.pending[n])
		n++
	}

	d.pending = d.pending[n:]
}

// lineOf is the line a message points at, 0 if it has no position
func lineOf(msg Message) int {
	if at, ok := msg.(interface{ Pos() source.Pos }); ok {
		return at.Pos().Line
	}

	return 0
}
