// Package iostreams abstracts standard I/O so countdown sessions can be driven
// from a terminal, a pipe, or an in-memory buffer in tests.
package iostreams

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/term"
)

// IOStreams bundles the streams a session reads commands from and writes ticks to.
//
// Terminal detection looks at whatever In and Out currently hold, so
// replacing them with a buffer turns interactive behaviour off. It goes
// through isTerminalFunc so tests can pretend to be attached to a TTY.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	isTerminalFunc func(stream any) bool
}

// fileDescriptor is implemented by *os.File.
type fileDescriptor interface {
	Fd() uintptr
}

func isTerminal(stream any) bool {
	f, ok := stream.(fileDescriptor)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// NewIOStreams creates IOStreams connected to os.Stdin/Stdout/Stderr.
func NewIOStreams() *IOStreams {
	return &IOStreams{
		In:             os.Stdin,
		Out:            os.Stdout,
		ErrOut:         os.Stderr,
		isTerminalFunc: isTerminal,
	}
}

// IsInteractive returns true if In is a TTY.
func (s *IOStreams) IsInteractive() bool {
	if s.isTerminalFunc == nil {
		return false
	}
	return s.isTerminalFunc(s.In)
}

// CanRedraw returns true if Out is a TTY, so a line can be rewritten in
// place with a carriage return.
func (s *IOStreams) CanRedraw() bool {
	if s.isTerminalFunc == nil {
		return false
	}
	return s.isTerminalFunc(s.Out)
}

// TestIOStreams creates IOStreams backed by in-memory buffers that report
// being a terminal. Out and ErrOut share the output buffer.
func TestIOStreams() (*IOStreams, *bytes.Buffer, *bytes.Buffer) {
	in := &bytes.Buffer{}
	out := &bytes.Buffer{}
	return &IOStreams{
		In:             in,
		Out:            out,
		ErrOut:         out,
		isTerminalFunc: func(any) bool { return true },
	}, in, out
}

// TestIOStreamsNonInteractive is TestIOStreams for a pipe.
func TestIOStreamsNonInteractive() (*IOStreams, *bytes.Buffer, *bytes.Buffer) {
	in := &bytes.Buffer{}
	out := &bytes.Buffer{}
	return &IOStreams{
		In:             in,
		Out:            out,
		ErrOut:         out,
		isTerminalFunc: func(any) bool { return false },
	}, in, out
}
