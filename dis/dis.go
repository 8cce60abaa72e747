// Package dis supports analysis of bfvm bytecode by disassembling it.
package dis

import (
	"fmt"
	"io"
	"strconv"

	"github.com/deepnoodle-ai/bfvm/bytecode"
	"github.com/deepnoodle-ai/bfvm/internal/table"
	"github.com/deepnoodle-ai/bfvm/op"
	"github.com/fatih/color"
)

// Instruction represents a single instruction and, for brackets, its jump
// target.
type Instruction struct {
	Offset int
	Symbol byte
	Name   string
	Opcode op.Code
	Target int // bytecode.NoTarget unless the instruction is a bracket
}

// Disassemble returns a parsed representation of the given bytecode.
func Disassemble(code *bytecode.Code) []Instruction {
	instructions := make([]Instruction, 0, code.InstructionCount())
	for i := 0; i < code.InstructionCount(); i++ {
		opcode := code.InstructionAt(i)
		target, _ := code.Jumps().Target(i)
		instructions = append(instructions, Instruction{
			Offset: i,
			Symbol: code.ByteAt(i),
			Name:   opcode.String(),
			Opcode: opcode,
			Target: target,
		})
	}
	return instructions
}

var (
	bold    = color.New(color.Bold).SprintFunc()
	cyan    = color.New(color.FgHiCyan).SprintFunc()
	red     = color.New(color.FgRed).SprintFunc()
	yellow  = color.New(color.FgYellow).SprintFunc()
	symbols = map[op.Code]func(a ...interface{}) string{
		op.LoopOpen:  yellow,
		op.LoopClose: yellow,
		op.Invalid:   red,
	}
)

// Print a string representation of the given instructions to the given writer.
func Print(instructions []Instruction, writer io.Writer) {
	var lines [][]string
	for _, instr := range instructions {
		symbol := fmt.Sprintf("%q", rune(instr.Symbol))
		if paint, ok := symbols[instr.Opcode]; ok {
			symbol = paint(symbol)
		}
		target := ""
		if instr.Target != bytecode.NoTarget {
			target = cyan(strconv.Itoa(instr.Target))
		}
		lines = append(lines, []string{
			strconv.Itoa(instr.Offset),
			symbol,
			bold(instr.Name),
			target,
		})
	}

	table.NewTable(writer).
		WithHeader([]string{"OFFSET", "OP", "NAME", "TARGET"}).
		WithColumnAlignment([]table.Alignment{
			table.AlignRight,
			table.AlignLeft,
			table.AlignLeft,
			table.AlignRight,
		}).
		WithHeaderAlignment([]table.Alignment{
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
		}).
		WithRows(lines).
		Render()
}
