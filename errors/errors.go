// Package errors defines the error taxonomy reported by the compiler and
// virtual machine.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sentinel errors for use with errors.Is. Every concrete error type in this
// package matches exactly one of them.
var (
	ErrUnbalancedBrackets  = stderrors.New("unbalanced brackets")
	ErrUnexpectedCharacter = stderrors.New("unexpected character")
	ErrPointerUnderflow    = stderrors.New("pointer underflow")
	ErrHalted              = stderrors.New("execution halted")
	ErrIO                  = stderrors.New("i/o failure")
)

// SourceLocation identifies an instruction within a program.
type SourceLocation struct {
	Offset int    // 0-based index into the program
	Source string // The program text, when known
}

// Column returns the 1-based column of the location.
func (s SourceLocation) Column() int {
	return s.Offset + 1
}

// String returns a formatted string representation of the source location.
func (s SourceLocation) String() string {
	return fmt.Sprintf("column %d", s.Column())
}

// Error is implemented by every error this package defines.
type Error interface {
	error
	Code() ErrorCode
	Location() SourceLocation
	FriendlyErrorMessage() string
	ToFormatted() *FormattedError
}

// BracketReason describes why a bracket could not be matched.
type BracketReason uint8

const (
	// UnmatchedClose is a loop-close with no pending loop-open.
	UnmatchedClose BracketReason = iota
	// UnclosedOpen is a loop-open still pending at the end of the program.
	UnclosedOpen
)

func (r BracketReason) String() string {
	if r == UnclosedOpen {
		return "unclosed '['"
	}
	return "unmatched ']'"
}

// UnbalancedBracketsError is raised before execution when loop brackets do
// not pair up.
type UnbalancedBracketsError struct {
	Loc    SourceLocation
	Reason BracketReason
}

func NewUnbalancedBracketsError(loc SourceLocation, reason BracketReason) *UnbalancedBracketsError {
	return &UnbalancedBracketsError{Loc: loc, Reason: reason}
}

func (e *UnbalancedBracketsError) Error() string {
	return fmt.Sprintf("unbalanced brackets: %s at %s", e.Reason, e.Loc)
}

func (e *UnbalancedBracketsError) Is(target error) bool { return target == ErrUnbalancedBrackets }

func (e *UnbalancedBracketsError) Code() ErrorCode { return E1001 }

func (e *UnbalancedBracketsError) Location() SourceLocation { return e.Loc }

func (e *UnbalancedBracketsError) FriendlyErrorMessage() string {
	return friendlyMessage(e.Error(), e.Loc)
}

func (e *UnbalancedBracketsError) ToFormatted() *FormattedError {
	hint := "add a matching '[' before this ']'"
	if e.Reason == UnclosedOpen {
		hint = "add a matching ']' after this '['"
	}
	return &FormattedError{
		Code:    e.Code(),
		Kind:    "compile error",
		Message: "unbalanced brackets: " + e.Reason.String(),
		Column:  e.Loc.Column(),
		Source:  e.Loc.Source,
		Hint:    hint,
	}
}

// UnexpectedCharacterError is raised when decoding a byte outside the
// instruction set.
type UnexpectedCharacterError struct {
	Char byte
	Loc  SourceLocation
}

func NewUnexpectedCharacterError(char byte, loc SourceLocation) *UnexpectedCharacterError {
	return &UnexpectedCharacterError{Char: char, Loc: loc}
}

func (e *UnexpectedCharacterError) Error() string {
	return fmt.Sprintf("unexpected character %s at %s", quoteByte(e.Char), e.Loc)
}

func (e *UnexpectedCharacterError) Is(target error) bool { return target == ErrUnexpectedCharacter }

func (e *UnexpectedCharacterError) Code() ErrorCode { return E2001 }

func (e *UnexpectedCharacterError) Location() SourceLocation { return e.Loc }

func (e *UnexpectedCharacterError) FriendlyErrorMessage() string {
	return friendlyMessage(e.Error(), e.Loc)
}

func (e *UnexpectedCharacterError) ToFormatted() *FormattedError {
	hint := "valid instructions are > < + - . , [ ]"
	if e.Char < utf8.RuneSelf && unicode.IsSpace(rune(e.Char)) {
		hint = "whitespace inside a program is not ignored"
	}
	return &FormattedError{
		Code:    e.Code(),
		Kind:    "runtime error",
		Message: fmt.Sprintf("unexpected character %s", quoteByte(e.Char)),
		Column:  e.Loc.Column(),
		Source:  e.Loc.Source,
		Hint:    hint,
	}
}

// PointerUnderflowError is raised when a move-left would take the cursor
// below cell 0.
type PointerUnderflowError struct {
	Loc SourceLocation
}

func NewPointerUnderflowError(loc SourceLocation) *PointerUnderflowError {
	return &PointerUnderflowError{Loc: loc}
}

func (e *PointerUnderflowError) Error() string {
	return fmt.Sprintf("pointer underflow at %s", e.Loc)
}

func (e *PointerUnderflowError) Is(target error) bool { return target == ErrPointerUnderflow }

func (e *PointerUnderflowError) Code() ErrorCode { return E2002 }

func (e *PointerUnderflowError) Location() SourceLocation { return e.Loc }

func (e *PointerUnderflowError) FriendlyErrorMessage() string {
	return friendlyMessage(e.Error(), e.Loc)
}

func (e *PointerUnderflowError) ToFormatted() *FormattedError {
	return &FormattedError{
		Code:    e.Code(),
		Kind:    "runtime error",
		Message: "pointer underflow",
		Column:  e.Loc.Column(),
		Source:  e.Loc.Source,
		Note:    "the tape does not extend left of cell 0",
	}
}

// HaltedError is raised when an observer stops execution, typically because
// a step limit was reached.
type HaltedError struct {
	Loc   SourceLocation
	Steps int64
}

func NewHaltedError(loc SourceLocation, steps int64) *HaltedError {
	return &HaltedError{Loc: loc, Steps: steps}
}

func (e *HaltedError) Error() string {
	return fmt.Sprintf("execution halted after %d steps at %s", e.Steps, e.Loc)
}

func (e *HaltedError) Is(target error) bool { return target == ErrHalted }

func (e *HaltedError) Code() ErrorCode { return E2003 }

func (e *HaltedError) Location() SourceLocation { return e.Loc }

func (e *HaltedError) FriendlyErrorMessage() string {
	return friendlyMessage(e.Error(), e.Loc)
}

func (e *HaltedError) ToFormatted() *FormattedError {
	return &FormattedError{
		Code:    e.Code(),
		Kind:    "runtime error",
		Message: fmt.Sprintf("execution halted after %d steps", e.Steps),
		Column:  e.Loc.Column(),
		Source:  e.Loc.Source,
	}
}

// IOError wraps a failure of the input or output side channel.
type IOError struct {
	Op  string // "read" or "write"
	Loc SourceLocation
	Err error
}

func NewIOError(op string, loc SourceLocation, err error) *IOError {
	return &IOError{Op: op, Loc: loc, Err: err}
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s error at %s: %v", e.Op, e.Loc, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }

func (e *IOError) Code() ErrorCode { return E2004 }

func (e *IOError) Location() SourceLocation { return e.Loc }

func (e *IOError) FriendlyErrorMessage() string {
	return friendlyMessage(e.Error(), e.Loc)
}

func (e *IOError) ToFormatted() *FormattedError {
	return &FormattedError{
		Code:    e.Code(),
		Kind:    "runtime error",
		Message: fmt.Sprintf("%s error: %v", e.Op, e.Err),
		Column:  e.Loc.Column(),
		Source:  e.Loc.Source,
	}
}

// friendlyMessage renders the message followed by the program text with a
// caret under the offending instruction.
func friendlyMessage(message string, loc SourceLocation) string {
	var msg strings.Builder
	msg.WriteString(message)
	msg.WriteString("\n")
	if loc.Source != "" && loc.Offset >= 0 && loc.Offset <= len(loc.Source) {
		msg.WriteString(" | ")
		msg.WriteString(loc.Source)
		msg.WriteString("\n | ")
		msg.WriteString(strings.Repeat(" ", caretIndent(loc.Source, loc.Offset)))
		msg.WriteString("^\n")
	}
	return msg.String()
}

// quoteByte quotes an ASCII byte as a character literal and any other byte
// as a hex escape.
func quoteByte(b byte) string {
	if b < utf8.RuneSelf {
		return fmt.Sprintf("%q", rune(b))
	}
	return fmt.Sprintf(`'\x%02x'`, b)
}

// caretIndent is the display column, counted in runes, of the byte at
// offset within source.
func caretIndent(source string, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}
	if offset < 0 {
		return 0
	}
	return utf8.RuneCountInString(source[:offset])
}
