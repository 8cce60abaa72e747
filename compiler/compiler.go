// Package compiler turns bfvm program text into bytecode.
//
// # Bracket Matching
//
// Loops are the only place where control flow is non-linear, so the compiler
// resolves every loop bracket ahead of time. A single left-to-right pass keeps
// a stack of pending loop-open positions:
//
//   - On '[' the position is pushed.
//   - On ']' the stack is popped. An empty stack means the close has no
//     matching open and compilation fails immediately.
//   - At the end of the program the stack must be empty; any pending open is
//     unclosed and compilation fails.
//
// Each matched pair (open j, close i) becomes a jump table entry j -> i+1 and
// i -> j+1, so the virtual machine resolves a taken branch in O(1).
//
// Bytes outside the instruction set are carried into the bytecode as
// op.Invalid. They are rejected by the virtual machine when execution reaches
// them, not here.
package compiler

import (
	"github.com/deepnoodle-ai/bfvm/bytecode"
	"github.com/deepnoodle-ai/bfvm/errors"
	"github.com/deepnoodle-ai/bfvm/op"
	"github.com/hashicorp/go-multierror"
)

// Compile validates the brackets of the given program and returns immutable
// bytecode. The error, if any, is an *errors.UnbalancedBracketsError.
func Compile(source string) (*bytecode.Code, error) {
	instructions := make([]op.Code, len(source))
	var pending []int
	var pairs []bytecode.Pair
	for i := 0; i < len(source); i++ {
		instr := op.Decode(source[i])
		instructions[i] = instr
		switch instr {
		case op.LoopOpen:
			pending = append(pending, i)
		case op.LoopClose:
			if len(pending) == 0 {
				return nil, errors.NewUnbalancedBracketsError(location(source, i), errors.UnmatchedClose)
			}
			j := pending[len(pending)-1]
			pending = pending[:len(pending)-1]
			pairs = append(pairs, bytecode.Pair{Open: j, Close: i})
		}
	}
	if len(pending) > 0 {
		// Report the innermost unclosed open.
		return nil, errors.NewUnbalancedBracketsError(location(source, pending[len(pending)-1]), errors.UnclosedOpen)
	}
	return bytecode.NewCode(bytecode.CodeParams{
		Source:       source,
		Instructions: instructions,
		Jumps:        bytecode.NewJumpTable(len(source), pairs...),
	}), nil
}

// Check reports every problem in the program instead of stopping at the
// first. Unmatched ']' and bytes outside the instruction set are reported in
// program order, followed by every '[' left unclosed. The returned error is a
// *multierror.Error, or nil when the program is clean.
func Check(source string) error {
	var result *multierror.Error
	var pending []int
	var unclosed []error
	for i := 0; i < len(source); i++ {
		switch op.Decode(source[i]) {
		case op.LoopOpen:
			pending = append(pending, i)
		case op.LoopClose:
			if len(pending) == 0 {
				result = multierror.Append(result,
					errors.NewUnbalancedBracketsError(location(source, i), errors.UnmatchedClose))
				continue
			}
			pending = pending[:len(pending)-1]
		case op.Invalid:
			result = multierror.Append(result,
				errors.NewUnexpectedCharacterError(source[i], location(source, i)))
		}
	}
	for _, pos := range pending {
		unclosed = append(unclosed, errors.NewUnbalancedBracketsError(location(source, pos), errors.UnclosedOpen))
	}
	result = multierror.Append(result, unclosed...)
	return result.ErrorOrNil()
}

// Problems returns the individual errors reported by Check.
func Problems(source string) []errors.Error {
	err := Check(source)
	if err == nil {
		return nil
	}
	merr := err.(*multierror.Error)
	problems := make([]errors.Error, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		problems = append(problems, e.(errors.Error))
	}
	return problems
}

func location(source string, offset int) errors.SourceLocation {
	return errors.SourceLocation{Offset: offset, Source: source}
}
