package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSourceLocation_String(t *testing.T) {
	require.Equal(t, "column 1", SourceLocation{}.String())
	require.Equal(t, "column 4", SourceLocation{Offset: 3, Source: "+++q"}.String())
}

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      Error
		code     ErrorCode
		category string
		sentinel error
	}{
		{"unbalanced", NewUnbalancedBracketsError(SourceLocation{}, UnmatchedClose), E1001, "compile", ErrUnbalancedBrackets},
		{"unexpected", NewUnexpectedCharacterError('q', SourceLocation{}), E2001, "runtime", ErrUnexpectedCharacter},
		{"underflow", NewPointerUnderflowError(SourceLocation{}), E2002, "runtime", ErrPointerUnderflow},
		{"halted", NewHaltedError(SourceLocation{}, 10), E2003, "runtime", ErrHalted},
		{"io", NewIOError("write", SourceLocation{}, io.ErrShortWrite), E2004, "runtime", ErrIO},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.code, tt.err.Code())
			require.Equal(t, tt.category, tt.err.Code().Category())
			require.NotEqual(t, "unknown error", tt.err.Code().Description())
			require.True(t, stderrors.Is(tt.err, tt.sentinel))
			wrapped := fmt.Errorf("run: %w", tt.err)
			require.True(t, Is(wrapped, tt.sentinel))
		})
	}
}

func TestErrorCodeUnknown(t *testing.T) {
	require.Equal(t, "unknown error", ErrorCode("E9999").Description())
	require.Equal(t, "unknown", ErrorCode("E9999").Category())
	require.Equal(t, "unknown", ErrorCode("").Category())
}

func TestSentinelsAreDistinct(t *testing.T) {
	err := NewPointerUnderflowError(SourceLocation{})
	require.False(t, stderrors.Is(err, ErrUnbalancedBrackets))
	require.False(t, stderrors.Is(err, ErrUnexpectedCharacter))
}

func TestErrorMessages(t *testing.T) {
	loc := SourceLocation{Offset: 1, Source: "+q"}
	require.Equal(t, "unexpected character 'q' at column 2",
		NewUnexpectedCharacterError('q', loc).Error())
	require.Equal(t, "unbalanced brackets: unmatched ']' at column 1",
		NewUnbalancedBracketsError(SourceLocation{Source: "]"}, UnmatchedClose).Error())
	require.Equal(t, "unbalanced brackets: unclosed '[' at column 1",
		NewUnbalancedBracketsError(SourceLocation{Source: "["}, UnclosedOpen).Error())
	require.Equal(t, "pointer underflow at column 1",
		NewPointerUnderflowError(SourceLocation{Source: "<"}).Error())
	require.Equal(t, "execution halted after 5 steps at column 2",
		NewHaltedError(loc, 5).Error())
}

func TestIOErrorUnwrap(t *testing.T) {
	err := NewIOError("read", SourceLocation{}, io.ErrUnexpectedEOF)
	require.True(t, stderrors.Is(err, io.ErrUnexpectedEOF))
	require.Equal(t, "read error at column 1: unexpected EOF", err.Error())
}

func TestFriendlyErrorMessage(t *testing.T) {
	err := NewUnexpectedCharacterError('q', SourceLocation{Offset: 3, Source: "+++q"})
	expected := "unexpected character 'q' at column 4\n" +
		" | +++q\n" +
		" |    ^\n"
	require.Equal(t, expected, err.FriendlyErrorMessage())
}

func TestFriendlyErrorMessageWithoutSource(t *testing.T) {
	err := NewPointerUnderflowError(SourceLocation{})
	require.Equal(t, "pointer underflow at column 1\n", err.FriendlyErrorMessage())
}

func TestUnexpectedNonASCIIByte(t *testing.T) {
	// "+é" is '+' followed by the two bytes 0xc3 0xa9.
	err := NewUnexpectedCharacterError(0xc3, SourceLocation{Offset: 1, Source: "+é"})
	require.Equal(t, `unexpected character '\xc3' at column 2`, err.Error())
	expected := "unexpected character '\\xc3' at column 2\n" +
		" | +é\n" +
		" |  ^\n"
	require.Equal(t, expected, err.FriendlyErrorMessage())
}

func TestFriendlyErrorMessageMultiByteSource(t *testing.T) {
	err := NewUnexpectedCharacterError('q', SourceLocation{Offset: 5, Source: "éé+q"})
	expected := "unexpected character 'q' at column 6\n" +
		" | éé+q\n" +
		" |    ^\n"
	require.Equal(t, expected, err.FriendlyErrorMessage())
}
