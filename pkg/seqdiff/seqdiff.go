package seqdiff

// Script is the edit script transforming an old sequence into a new one.
//
// Offsets address positions in the respective sequence at the time of the
// operation: removals are applied to the old sequence from the highest offset
// down, insertions to the result from the lowest offset up.
type Script struct {
	// Insertions are offsets into the new sequence, ascending.
	Insertions []int

	// Removals are offsets into the old sequence, ascending.
	Removals []int
}

// Empty returns true if the script contains no edits.
func (s Script) Empty() bool {
	return len(s.Insertions) == 0 && len(s.Removals) == 0
}

// Len returns the total number of edit operations in the script.
func (s Script) Len() int {
	return len(s.Insertions) + len(s.Removals)
}

// opKind discriminates operations in the raw Myers edit stream.
type opKind uint8

const (
	opEqual opKind = iota
	opInsert
	opDelete
)

// editOp is a single operation in the raw edit stream.
type editOp struct {
	kind     opKind
	oldIndex int
	newIndex int
}

// Diff computes the minimal edit script from old to new.
//
// The script is minimal in the Myers sense: it contains the fewest possible
// single-element insertions and removals. Ties between equally short scripts
// are broken deterministically, so repeated calls with the same input return
// the same script.
func Diff[T comparable](old, new []T) Script {
	ops := myers(old, new)

	var script Script
	for _, op := range ops {
		switch op.kind {
		case opInsert:
			script.Insertions = append(script.Insertions, op.newIndex)
		case opDelete:
			script.Removals = append(script.Removals, op.oldIndex)
		}
	}
	return script
}

// myers runs the Myers shortest-edit-script algorithm and returns the
// operation stream in ascending order.
func myers[T comparable](old, new []T) []editOp {
	n := len(old)
	m := len(new)

	// Trivial cases avoid the trace allocation entirely.
	if n == 0 && m == 0 {
		return nil
	}
	if n == 0 {
		ops := make([]editOp, m)
		for j := 0; j < m; j++ {
			ops[j] = editOp{kind: opInsert, newIndex: j}
		}
		return ops
	}
	if m == 0 {
		ops := make([]editOp, n)
		for i := 0; i < n; i++ {
			ops[i] = editOp{kind: opDelete, oldIndex: i}
		}
		return ops
	}

	// Forward pass. V maps diagonal k to the furthest x reached; the slice
	// is offset so V[-maxD..maxD] lives at v[0..2*maxD].
	maxD := n + m
	offset := maxD
	v := make([]int, 2*maxD+1)
	v[offset+1] = 0

	var trace [][]int

outer:
	for d := 0; d <= maxD; d++ {
		vCopy := make([]int, len(v))
		copy(vCopy, v)
		trace = append(trace, vCopy)

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k

			// Follow the diagonal through equal elements.
			for x < n && y < m && old[x] == new[y] {
				x++
				y++
			}

			v[offset+k] = x

			if x >= n && y >= m {
				break outer
			}
		}
	}

	return backtrack(trace, n, m, offset)
}

// backtrack reconstructs the edit stream from the forward-pass trace.
func backtrack(trace [][]int, n, m, offset int) []editOp {
	x, y := n, m
	var ops []editOp

	for d := len(trace) - 1; d >= 0 && (x > 0 || y > 0); d-- {
		v := trace[d]
		k := x - y

		var prevK int
		if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := v[offset+prevK]
		prevY := prevX - prevK

		// Walk back through the diagonal of equal elements.
		for x > prevX && y > prevY {
			x--
			y--
			ops = append(ops, editOp{kind: opEqual, oldIndex: x, newIndex: y})
		}

		if d > 0 {
			if x > prevX {
				x--
				ops = append(ops, editOp{kind: opDelete, oldIndex: x})
			} else if y > prevY {
				y--
				ops = append(ops, editOp{kind: opInsert, newIndex: y})
			}
		}
	}

	// The stream was built back to front.
	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
	return ops
}
