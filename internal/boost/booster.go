// Package boost implements a gradient boosted tree ensemble for multi-class
// classification with a softmax objective.
package boost

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// minHessian keeps leaf weights finite once probabilities saturate.
const minHessian = 1e-16

var ErrRowLength = errors.New("row length does not match the number of features")

// Booster is a fitted ensemble. It is immutable and safe for concurrent use.
type Booster struct {
	numClass    int
	numFeatures int
	// rounds[i][k] is the tree fitted for class k in boosting round i.
	rounds [][]tree
}

// Fit trains a booster on rows x with class labels y in [0, numClass).
func Fit(x [][]float64, y []int, numClass int, p Params) (*Booster, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(x) == 0 {
		return nil, errors.New("no training rows")
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%d rows but %d labels", len(x), len(y))
	}
	if numClass < 2 {
		return nil, fmt.Errorf("need at least 2 classes, got %d", numClass)
	}
	numFeatures := len(x[0])
	if numFeatures == 0 {
		return nil, errors.New("rows have no features")
	}
	for i, row := range x {
		if len(row) != numFeatures {
			return nil, fmt.Errorf("row %d: %w", i, ErrRowLength)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("row %d feature %d: non-finite value %v", i, j, v)
			}
		}
		if y[i] < 0 || y[i] >= numClass {
			return nil, fmt.Errorf("row %d: label %d out of range [0, %d)", i, y[i], numClass)
		}
	}

	rng := rand.New(rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15))
	n := len(x)
	margins := make([][]float64, n)
	probs := make([][]float64, n)
	for i := range margins {
		margins[i] = make([]float64, numClass)
		probs[i] = make([]float64, numClass)
	}
	grad := make([]float64, n)
	hess := make([]float64, n)

	b := &Booster{numClass: numClass, numFeatures: numFeatures}
	for round := 0; round < p.Rounds; round++ {
		for i := range margins {
			softmax(margins[i], probs[i])
		}
		rows := sampleRows(rng, n, p.Subsample)

		trees := make([]tree, numClass)
		for k := 0; k < numClass; k++ {
			for i := 0; i < n; i++ {
				pk := probs[i][k]
				target := 0.0
				if y[i] == k {
					target = 1
				}
				grad[i] = pk - target
				hess[i] = math.Max(2*pk*(1-pk), minHessian)
			}
			bld := builder{
				x:    x,
				grad: grad,
				hess: hess,
				cols: sampleCols(rng, numFeatures, p.ColsampleByTree),
				p:    p,
			}
			trees[k] = bld.grow(rows)
		}

		for i, row := range x {
			for k := range trees {
				margins[i][k] += trees[k].score(row)
			}
		}
		b.rounds = append(b.rounds, trees)
	}
	return b, nil
}

// Margins returns the raw per-class scores for row.
func (b *Booster) Margins(row []float64) ([]float64, error) {
	if len(row) != b.numFeatures {
		return nil, ErrRowLength
	}
	out := make([]float64, b.numClass)
	for _, trees := range b.rounds {
		for k := range trees {
			out[k] += trees[k].score(row)
		}
	}
	return out, nil
}

// Predict returns the class with the highest margin.
func (b *Booster) Predict(row []float64) (int, error) {
	m, err := b.Margins(row)
	if err != nil {
		return 0, err
	}
	return floats.MaxIdx(m), nil
}

// Probabilities returns the softmax of the margins for row.
func (b *Booster) Probabilities(row []float64) ([]float64, error) {
	m, err := b.Margins(row)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(m))
	softmax(m, out)
	return out, nil
}

func (b *Booster) NumClass() int    { return b.numClass }
func (b *Booster) NumFeatures() int { return b.numFeatures }

// NumTrees returns the total number of trees in the ensemble.
func (b *Booster) NumTrees() int {
	return len(b.rounds) * b.numClass
}

// NumLeaves returns the total number of leaves across all trees.
func (b *Booster) NumLeaves() int {
	count := 0
	for _, trees := range b.rounds {
		for k := range trees {
			count += trees[k].leaves()
		}
	}
	return count
}

func softmax(margins, dst []float64) {
	lse := floats.LogSumExp(margins)
	for k, m := range margins {
		dst[k] = math.Exp(m - lse)
	}
}

// sampleRows draws each row independently with probability ratio. An empty
// draw falls back to every row.
func sampleRows(rng *rand.Rand, n int, ratio float64) []int {
	rows := make([]int, 0, n)
	if ratio >= 1 {
		for i := 0; i < n; i++ {
			rows = append(rows, i)
		}
		return rows
	}
	for i := 0; i < n; i++ {
		if rng.Float64() < ratio {
			rows = append(rows, i)
		}
	}
	if len(rows) == 0 {
		return sampleRows(rng, n, 1)
	}
	return rows
}

func sampleCols(rng *rand.Rand, n int, ratio float64) []int {
	k := int(ratio * float64(n))
	if k < 1 {
		k = 1
	}
	if k >= n {
		cols := make([]int, n)
		for i := range cols {
			cols[i] = i
		}
		return cols
	}
	cols := rng.Perm(n)[:k]
	sort.Ints(cols)
	return cols
}
