package bytecode

// NoTarget is returned by JumpTable.Target for positions that are not
// brackets.
const NoTarget = -1

// Pair is a matched loop-open/loop-close pair of instruction positions.
type Pair struct {
	Open  int
	Close int
}

// JumpTable maps every bracket position to the position execution continues
// at when that bracket's branch is taken:
//
//	open  j -> i+1 (just past the matching close)
//	close i -> j+1 (just past the matching open)
//
// It is built once per program and is immutable thereafter.
type JumpTable struct {
	targets []int
	pairs   []Pair
}

// NewJumpTable builds a jump table for a program of the given size from its
// matched bracket pairs. Positions not named by a pair have no target.
func NewJumpTable(size int, pairs ...Pair) *JumpTable {
	targets := make([]int, size)
	for i := range targets {
		targets[i] = NoTarget
	}
	for _, p := range pairs {
		targets[p.Open] = p.Close + 1
		targets[p.Close] = p.Open + 1
	}
	copied := make([]Pair, len(pairs))
	copy(copied, pairs)
	return &JumpTable{targets: targets, pairs: copied}
}

// Target returns the branch target for the bracket at pos. The boolean is
// false when pos is out of range or not a bracket.
func (t *JumpTable) Target(pos int) (int, bool) {
	if pos < 0 || pos >= len(t.targets) {
		return NoTarget, false
	}
	target := t.targets[pos]
	return target, target != NoTarget
}

// Len returns the size of the program the table was built for.
func (t *JumpTable) Len() int {
	return len(t.targets)
}

// PairCount returns the number of matched bracket pairs.
func (t *JumpTable) PairCount() int {
	return len(t.pairs)
}

// PairAt returns the bracket pair at the given index. Pairs are ordered by
// the position of their loop-close.
func (t *JumpTable) PairAt(index int) Pair {
	return t.pairs[index]
}
