package bytecode

import "github.com/deepnoodle-ai/bfvm/op"

// Stats contains statistics about compiled code.
// This is useful for auditing programs before execution.
type Stats struct {
	// InstructionCount is the total number of instructions.
	InstructionCount int `json:"instruction_count"`

	// BracketPairs is the number of matched loop pairs.
	BracketPairs int `json:"bracket_pairs"`

	// MaxDepth is the deepest loop nesting level.
	MaxDepth int `json:"max_depth"`

	// SourceBytes is the size of the program text in bytes.
	SourceBytes int `json:"source_bytes"`

	// OpCounts counts instructions by opcode name.
	OpCounts map[string]int `json:"op_counts"`
}

// Stats computes statistics for the code.
func (c *Code) Stats() Stats {
	stats := Stats{
		InstructionCount: len(c.instructions),
		BracketPairs:     c.jumps.PairCount(),
		SourceBytes:      len(c.source),
		OpCounts:         map[string]int{},
	}
	depth := 0
	for _, instr := range c.instructions {
		stats.OpCounts[instr.String()]++
		switch instr {
		case op.LoopOpen:
			depth++
			if depth > stats.MaxDepth {
				stats.MaxDepth = depth
			}
		case op.LoopClose:
			depth--
		}
	}
	return stats
}
