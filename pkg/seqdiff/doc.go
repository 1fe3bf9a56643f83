// Package seqdiff computes minimal edit scripts between ordered sequences.
//
// Given an old and a new sequence of comparable elements, Diff returns the
// smallest set of single-element insertions and removals that transforms the
// old sequence into the new one, using the Myers longest-common-subsequence
// algorithm.
//
// The result is expressed purely as integer offsets: removal offsets address
// positions in the old sequence, insertion offsets address positions in the
// new sequence. No move or update operations are produced; an element that
// changed position appears as an independent removal plus insertion.
//
// Diff is a pure function. It has no side effects, holds no state between
// calls, and produces identical output for identical input.
//
//	script := seqdiff.Diff([]string{"A", "B", "C"}, []string{"A", "C", "D"})
//	// script.Removals   == []int{1}  ("B" at old offset 1)
//	// script.Insertions == []int{2}  ("D" at new offset 2)
package seqdiff
