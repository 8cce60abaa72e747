// Package bytecode defines the compiled form of a bfvm program: the decoded
// instruction stream together with its precomputed jump table.
package bytecode

import "github.com/deepnoodle-ai/bfvm/op"

// Code represents a compiled program.
// It is immutable after creation and safe for concurrent use.
type Code struct {
	source       string
	instructions []op.Code
	jumps        *JumpTable
}

// CodeParams contains parameters for creating a new Code.
type CodeParams struct {
	Source       string
	Instructions []op.Code
	Jumps        *JumpTable
}

// NewCode creates a new immutable Code from the given parameters.
// The instruction slice is copied.
func NewCode(params CodeParams) *Code {
	jumps := params.Jumps
	if jumps == nil {
		jumps = NewJumpTable(len(params.Instructions))
	}
	return &Code{
		source:       params.Source,
		instructions: copyInstructions(params.Instructions),
		jumps:        jumps,
	}
}

// Source returns the program text the code was compiled from.
func (c *Code) Source() string {
	return c.source
}

// InstructionCount returns the number of instructions.
func (c *Code) InstructionCount() int {
	return len(c.instructions)
}

// InstructionAt returns the instruction at the given index.
func (c *Code) InstructionAt(index int) op.Code {
	return c.instructions[index]
}

// ByteAt returns the raw program byte at the given index.
func (c *Code) ByteAt(index int) byte {
	return c.source[index]
}

// Jumps returns the jump table.
func (c *Code) Jumps() *JumpTable {
	return c.jumps
}

// copyInstructions returns a copy of the given instruction slice.
func copyInstructions(src []op.Code) []op.Code {
	if src == nil {
		return nil
	}
	dst := make([]op.Code, len(src))
	copy(dst, src)
	return dst
}
