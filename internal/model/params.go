// Package model describes the parameter inventory of a scored model so run
// metadata can report its size
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Param is one named parameter tensor. Frozen parameters are excluded from
// the trainable count.
type Param struct {
	Name   string
	Value  *mat.Dense
	Frozen bool
}

// Numel returns the number of elements held by a matrix.
func Numel(m mat.Matrix) int {
	rows, cols := m.Dims()
	return rows * cols
}

// CountTrainable sums the element counts of all parameters that still
// receive gradient updates.
func CountTrainable(params []Param) int {
	total := 0
	for _, p := range params {
		if p.Frozen || p.Value == nil {
			continue
		}
		total += Numel(p.Value)
	}
	return total
}

// CountAll sums the element counts of every parameter.
func CountAll(params []Param) int {
	total := 0
	for _, p := range params {
		if p.Value == nil {
			continue
		}
		total += Numel(p.Value)
	}
	return total
}
