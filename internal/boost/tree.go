package boost

import "sort"

// minSplitGain is the smallest loss reduction accepted for a split.
// Gains below it are float noise from splitting pure nodes.
const minSplitGain = 1e-6

// node is a tree node. Leaves have Left == -1.
type node struct {
	Feature   int
	Threshold float64
	Left      int
	Right     int
	Weight    float64
}

type tree struct {
	nodes []node
}

func (t *tree) score(row []float64) float64 {
	i := 0
	for {
		n := &t.nodes[i]
		if n.Left < 0 {
			return n.Weight
		}
		if row[n.Feature] < n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

func (t *tree) leaves() int {
	count := 0
	for _, n := range t.nodes {
		if n.Left < 0 {
			count++
		}
	}
	return count
}

// builder grows a single regression tree on second order gradient
// statistics using exact greedy split search.
type builder struct {
	x    [][]float64
	grad []float64
	hess []float64
	cols []int
	p    Params
}

type split struct {
	feature   int
	threshold float64
	gain      float64
}

func (b *builder) grow(rows []int) tree {
	var t tree
	b.expand(&t, rows, 0)
	return t
}

func (b *builder) expand(t *tree, rows []int, depth int) int {
	g, h := b.sums(rows)
	idx := len(t.nodes)
	t.nodes = append(t.nodes, node{
		Left:   -1,
		Right:  -1,
		Weight: -b.p.Eta * g / (h + b.p.Lambda),
	})

	if depth >= b.p.MaxDepth || len(rows) < 2 {
		return idx
	}
	best, ok := b.bestSplit(rows, g, h)
	if !ok {
		return idx
	}

	left := make([]int, 0, len(rows))
	right := make([]int, 0, len(rows))
	for _, r := range rows {
		if b.x[r][best.feature] < best.threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}

	l := b.expand(t, left, depth+1)
	r := b.expand(t, right, depth+1)
	t.nodes[idx].Feature = best.feature
	t.nodes[idx].Threshold = best.threshold
	t.nodes[idx].Left = l
	t.nodes[idx].Right = r
	return idx
}

func (b *builder) sums(rows []int) (g, h float64) {
	for _, r := range rows {
		g += b.grad[r]
		h += b.hess[r]
	}
	return g, h
}

func (b *builder) bestSplit(rows []int, g, h float64) (split, bool) {
	lambda := b.p.Lambda
	parent := g * g / (h + lambda)
	best := split{gain: minSplitGain}
	found := false

	sorted := make([]int, len(rows))
	for _, f := range b.cols {
		copy(sorted, rows)
		sort.SliceStable(sorted, func(i, j int) bool {
			return b.x[sorted[i]][f] < b.x[sorted[j]][f]
		})

		var gl, hl float64
		for i := 0; i < len(sorted)-1; i++ {
			r := sorted[i]
			gl += b.grad[r]
			hl += b.hess[r]

			v, next := b.x[r][f], b.x[sorted[i+1]][f]
			if v == next {
				continue
			}
			gr, hr := g-gl, h-hl
			if hl < b.p.MinChildWeight || hr < b.p.MinChildWeight {
				continue
			}

			gain := 0.5*(gl*gl/(hl+lambda)+gr*gr/(hr+lambda)-parent) - b.p.Gamma
			if gain > best.gain {
				threshold := v + (next-v)/2
				if threshold <= v {
					threshold = next
				}
				best = split{feature: f, threshold: threshold, gain: gain}
				found = true
			}
		}
	}
	return best, found
}
