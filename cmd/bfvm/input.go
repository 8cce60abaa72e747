package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

var errInterrupted = errors.New("interrupted")

// lineReader yields REPL lines without their terminators. io.EOF ends the
// session.
type lineReader interface {
	ReadLine() (string, error)
}

// plainLines reads lines from a non-interactive stream. Programs share the
// same buffered reader for their input, so bytes a program leaves unread
// are seen by the next prompt.
type plainLines struct {
	r      *bufio.Reader
	w      io.Writer
	prompt string
}

func (p *plainLines) ReadLine() (string, error) {
	fmt.Fprint(p.w, p.prompt)
	line, err := p.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readlineLines reads lines from a terminal with editing and history.
type readlineLines struct {
	rl     *readline.Instance
	prompt string
}

func (l *readlineLines) ReadLine() (string, error) {
	line, err := l.rl.Readline()
	if err == readline.ErrInterrupt {
		return "", errInterrupted
	}
	return line, err
}

// readInput reads a line typed in response to a program's input
// instruction. It is shown without the REPL prompt.
func (l *readlineLines) readInput() (string, error) {
	l.rl.SetPrompt("")
	defer l.rl.SetPrompt(l.prompt)
	return l.rl.Readline()
}

// lineInput adapts a line source to the byte stream a program reads from.
// Each line is delivered followed by '\n'. Any error from the source,
// including an interrupt, is end of input for the running program.
type lineInput struct {
	next func() (string, error)
	buf  []byte
	done bool
}

func (in *lineInput) ReadByte() (byte, error) {
	for len(in.buf) == 0 {
		if in.done {
			return 0, io.EOF
		}
		line, err := in.next()
		if err != nil {
			in.done = true
			return 0, io.EOF
		}
		in.buf = append(in.buf[:0], line...)
		in.buf = append(in.buf, '\n')
	}
	b := in.buf[0]
	in.buf = in.buf[1:]
	return b, nil
}

func (in *lineInput) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	b, err := in.ReadByte()
	if err != nil {
		return 0, err
	}
	p[0] = b
	return 1, nil
}

// outputTracker remembers the last byte written so the REPL can end a
// program's output with a newline before the next prompt.
type outputTracker struct {
	w       io.Writer
	last    byte
	written bool
}

func (o *outputTracker) Write(p []byte) (int, error) {
	n, err := o.w.Write(p)
	if n > 0 {
		o.last = p[n-1]
		o.written = true
	}
	return n, err
}

func (o *outputTracker) reset() {
	o.last = 0
	o.written = false
}

func (o *outputTracker) needsNewline() bool {
	return o.written && o.last != '\n'
}
