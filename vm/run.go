package vm

import (
	"github.com/deepnoodle-ai/bfvm/bytecode"
	"github.com/deepnoodle-ai/bfvm/compiler"
)

// Run the given code in a new Virtual Machine.
func Run(code *bytecode.Code, options ...Option) error {
	return New(code, options...).Run()
}

// RunSource compiles the given program and runs it in a new Virtual Machine.
// Unbalanced brackets are reported before any instruction executes. The VM
// is returned whenever compilation succeeded so callers can inspect the tape.
func RunSource(source string, options ...Option) (*VirtualMachine, error) {
	code, err := compiler.Compile(source)
	if err != nil {
		return nil, err
	}
	machine := New(code, options...)
	return machine, machine.Run()
}
