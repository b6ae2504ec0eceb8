// Package batching assembles ragged candidate lists into dense matrices so
// they can be scored in a single pass
package batching

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// PadAndStack stacks the rows of every block into one dense matrix, right
// padding narrower rows with padValue up to the widest block. A mat.Vector
// block counts as a single row regardless of its orientation. Blocks may
// disagree on both row and column counts; only the width is reconciled.
func PadAndStack(blocks []mat.Matrix, padValue float64) (*mat.Dense, error) {
	if len(blocks) == 0 {
		return nil, fmt.Errorf("batching: nothing to stack")
	}

	totalRows := 0
	maxCols := 0
	for _, block := range blocks {
		rows, cols := blockDims(block)
		totalRows += rows
		if cols > maxCols {
			maxCols = cols
		}
	}
	if totalRows == 0 || maxCols == 0 {
		return nil, fmt.Errorf("batching: all blocks are empty")
	}

	stacked := mat.NewDense(totalRows, maxCols, nil)
	row := 0
	for _, block := range blocks {
		rows, cols := blockDims(block)
		for i := 0; i < rows; i++ {
			for j := 0; j < maxCols; j++ {
				if j < cols {
					stacked.Set(row, j, blockAt(block, i, j))
				} else {
					stacked.Set(row, j, padValue)
				}
			}
			row++
		}
	}
	return stacked, nil
}

// PadRows stacks ragged slices as the rows of a dense matrix, right padding
// shorter slices with padValue.
func PadRows(rows [][]float64, padValue float64) (*mat.Dense, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("batching: nothing to stack")
	}

	maxCols := 0
	for _, r := range rows {
		if len(r) > maxCols {
			maxCols = len(r)
		}
	}
	if maxCols == 0 {
		return nil, fmt.Errorf("batching: all rows are empty")
	}

	stacked := mat.NewDense(len(rows), maxCols, nil)
	for i, r := range rows {
		for j := 0; j < maxCols; j++ {
			if j < len(r) {
				stacked.Set(i, j, r[j])
			} else {
				stacked.Set(i, j, padValue)
			}
		}
	}
	return stacked, nil
}

func blockDims(block mat.Matrix) (rows, cols int) {
	if vec, ok := block.(mat.Vector); ok {
		return 1, vec.Len()
	}
	return block.Dims()
}

func blockAt(block mat.Matrix, i, j int) float64 {
	if vec, ok := block.(mat.Vector); ok {
		return vec.AtVec(j)
	}
	return block.At(i, j)
}
