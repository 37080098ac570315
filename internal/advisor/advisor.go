// Package advisor compares measurements with a crop's optimal bands and
// says how to correct the ones that fall outside.
package advisor

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"cropupgrad-backend/internal/crop"
)

// ErrMissingRangeData means a crop has no optimal range entry. It points at
// a dataset label that the range table was never updated for.
var ErrMissingRangeData = errors.New("missing optimal range data")

// Advisor is immutable after New and safe for concurrent use.
type Advisor struct {
	ranges  RangeTable
	actions ActionTable
}

// New checks that every crop in ranges has a band for all features and that
// every feature has actions.
func New(ranges RangeTable, actions ActionTable) (*Advisor, error) {
	for _, f := range crop.Features() {
		a, ok := actions[f]
		if !ok || a.Increase == "" || a.Decrease == "" {
			return nil, fmt.Errorf("no improvement actions for %s", f)
		}
	}
	for label, byFeature := range ranges {
		for _, f := range crop.Features() {
			r, ok := byFeature[f]
			if !ok {
				return nil, fmt.Errorf("crop %q: no range for %s", label, f)
			}
			if r.Min > r.Max {
				return nil, fmt.Errorf("crop %q: %s range min %v exceeds max %v", label, f, r.Min, r.Max)
			}
		}
	}
	return &Advisor{ranges: ranges, actions: actions}, nil
}

// Default returns an advisor over the built-in tables.
func Default() *Advisor {
	a, err := New(OptimalRanges(), DefaultActions())
	if err != nil {
		panic(err)
	}
	return a
}

// Suggest lists one action per out-of-band measurement, in feature order.
// The result is empty, never nil, when every measurement is in band.
func (a *Advisor) Suggest(v crop.FeatureVector, label crop.Label) ([]string, error) {
	optimal, ok := a.ranges[label]
	if !ok {
		return nil, fmt.Errorf("%w: crop %q", ErrMissingRangeData, label)
	}

	suggestions := make([]string, 0)
	for _, f := range crop.Features() {
		value, _ := v.Value(f)
		r := optimal[f]
		switch {
		case value < r.Min:
			suggestions = append(suggestions, fmt.Sprintf("Increase %s: %s", f, a.actions[f].Increase))
		case value > r.Max:
			suggestions = append(suggestions, fmt.Sprintf("Decrease %s: %s", f, a.actions[f].Decrease))
		}
	}
	return suggestions, nil
}

// Range returns the optimal band of f for label.
func (a *Advisor) Range(label crop.Label, f crop.Feature) (Range, bool) {
	r, ok := a.ranges[label][f]
	return r, ok
}

// Crops returns the crops that have range data, sorted.
func (a *Advisor) Crops() []crop.Label {
	labels := make([]crop.Label, 0, len(a.ranges))
	for l := range a.ranges {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	return labels
}

// CheckCoverage fails when any of labels has no range entry, naming all of them.
func (a *Advisor) CheckCoverage(labels []crop.Label) error {
	var missing []string
	for _, l := range labels {
		if _, ok := a.ranges[l]; !ok {
			missing = append(missing, fmt.Sprintf("%q", l))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingRangeData, strings.Join(missing, ", "))
	}
	return nil
}
