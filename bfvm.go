// Package bfvm compiles and runs programs for an eight-instruction tape
// machine:
//
//	>  move the cursor right       <  move the cursor left
//	+  increment the current cell  -  decrement the current cell
//	.  write the current cell      ,  read one byte into the current cell
//	[  skip past the matching ] if the current cell is zero
//	]  jump back past the matching [ if the current cell is nonzero
//
// Every call starts from a fresh machine; nothing is shared between runs.
package bfvm

import (
	"github.com/deepnoodle-ai/bfvm/bytecode"
	"github.com/deepnoodle-ai/bfvm/compiler"
	"github.com/deepnoodle-ai/bfvm/errors"
	"github.com/deepnoodle-ai/bfvm/vm"
)

// Compile validates the program's brackets and builds its jump table.
// The returned Code is immutable and safe for concurrent use.
func Compile(source string, opts ...Option) (*bytecode.Code, error) {
	o := collectOptions(opts...)
	code, err := compiler.Compile(source)
	if err != nil {
		logFailure(o, err)
		return nil, err
	}
	stats := code.Stats()
	o.logger.Debug().
		Int("instructions", stats.InstructionCount).
		Int("bracket_pairs", stats.BracketPairs).
		Int("max_depth", stats.MaxDepth).
		Msg("program compiled")
	return code, nil
}

// Run executes compiled code. Each call creates fresh runtime state, allowing
// concurrent execution of the same Code.
func Run(code *bytecode.Code, opts ...Option) error {
	o := collectOptions(opts...)
	machine := vm.New(code, o.vmOpts()...)
	err := machine.Run()
	o.logger.Debug().
		Int64("steps", machine.Steps()).
		Int("cursor", machine.Tape().Cursor()).
		Int("tape_len", machine.Tape().Len()).
		Msg("program finished")
	if err != nil {
		logFailure(o, err)
	}
	return err
}

// Eval is a convenience function that compiles and runs a program.
// It is equivalent to Compile() followed by Run().
func Eval(source string, opts ...Option) error {
	code, err := Compile(source, opts...)
	if err != nil {
		return err
	}
	return Run(code, opts...)
}

func logFailure(o *options, err error) {
	event := o.logger.Warn().Err(err)
	var e errors.Error
	if errors.As(err, &e) {
		event = event.Str("code", e.Code().String()).Int("offset", e.Location().Offset)
	}
	event.Msg("program failed")
}
