// Package op defines the instruction opcodes executed by the bfvm virtual machine.
package op

// Code is an integer opcode that indicates an operation to execute.
type Code uint8

const (
	Invalid Code = 0

	// Pointer
	MoveRight Code = 1
	MoveLeft  Code = 2

	// Cell
	Increment Code = 10
	Decrement Code = 11

	// I/O
	Output Code = 20
	Input  Code = 21

	// Loops
	LoopOpen  Code = 30
	LoopClose Code = 31
)

// Info contains information about an opcode.
type Info struct {
	Code   Code
	Name   string
	Symbol byte
}

var (
	infos   = make([]Info, 256)
	decoder = make([]Code, 256)
)

func init() {
	ops := []Info{
		{MoveRight, "MOVE_RIGHT", '>'},
		{MoveLeft, "MOVE_LEFT", '<'},
		{Increment, "INCREMENT", '+'},
		{Decrement, "DECREMENT", '-'},
		{Output, "OUTPUT", '.'},
		{Input, "INPUT", ','},
		{LoopOpen, "LOOP_OPEN", '['},
		{LoopClose, "LOOP_CLOSE", ']'},
	}
	infos[Invalid] = Info{Code: Invalid, Name: "INVALID"}
	for _, o := range ops {
		infos[o.Code] = o
		decoder[o.Symbol] = o.Code
	}
}

// GetInfo returns information about the given opcode.
func GetInfo(op Code) Info {
	return infos[op]
}

// Decode maps an instruction byte to its opcode. Bytes outside the
// instruction set decode to Invalid.
func Decode(b byte) Code {
	return decoder[b]
}

// IsBracket reports whether the opcode opens or closes a loop.
func (c Code) IsBracket() bool {
	return c == LoopOpen || c == LoopClose
}

// String returns the opcode name, e.g. "LOOP_OPEN".
func (c Code) String() string {
	return infos[c].Name
}
