package crop

import (
	"fmt"
	"sort"
)

// LabelEncoder maps crop labels to class indices 0..C-1. Classes are sorted
// lexicographically so the encoding only depends on the set of labels.
type LabelEncoder struct {
	classes []Label
	index   map[Label]int
}

// NewLabelEncoder builds the encoding from the labels present in the corpus.
func NewLabelEncoder(corpus Corpus) *LabelEncoder {
	classes := corpus.Labels()
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })

	index := make(map[Label]int, len(classes))
	for i, l := range classes {
		index[l] = i
	}
	return &LabelEncoder{classes: classes, index: index}
}

// Encode returns the class index of l.
func (e *LabelEncoder) Encode(l Label) (int, error) {
	i, ok := e.index[l]
	if !ok {
		return 0, fmt.Errorf("unknown label %q", l)
	}
	return i, nil
}

// Decode returns the label of class index i.
func (e *LabelEncoder) Decode(i int) (Label, error) {
	if i < 0 || i >= len(e.classes) {
		return "", fmt.Errorf("class index %d out of range [0, %d)", i, len(e.classes))
	}
	return e.classes[i], nil
}

// Classes returns a copy of the labels in index order.
func (e *LabelEncoder) Classes() []Label {
	out := make([]Label, len(e.classes))
	copy(out, e.classes)
	return out
}

func (e *LabelEncoder) Len() int {
	return len(e.classes)
}
