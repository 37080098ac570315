package boost

import "fmt"

// Params are the training hyperparameters of a Booster. Names follow the
// usual gradient boosting vocabulary (eta is the learning rate).
type Params struct {
	MaxDepth        int
	Eta             float64
	Subsample       float64
	ColsampleByTree float64
	Rounds          int
	Lambda          float64
	MinChildWeight  float64
	Gamma           float64
	Seed            uint64
}

// DefaultParams returns the hyperparameters the crop model is trained with.
func DefaultParams() Params {
	return Params{
		MaxDepth:        6,
		Eta:             0.3,
		Subsample:       0.8,
		ColsampleByTree: 0.8,
		Rounds:          100,
		Lambda:          1,
		MinChildWeight:  1,
		Gamma:           0,
		Seed:            42,
	}
}

func (p Params) Validate() error {
	switch {
	case p.MaxDepth < 1:
		return fmt.Errorf("max_depth must be >= 1, got %d", p.MaxDepth)
	case p.Eta <= 0 || p.Eta > 1:
		return fmt.Errorf("eta must be in (0, 1], got %v", p.Eta)
	case p.Subsample <= 0 || p.Subsample > 1:
		return fmt.Errorf("subsample must be in (0, 1], got %v", p.Subsample)
	case p.ColsampleByTree <= 0 || p.ColsampleByTree > 1:
		return fmt.Errorf("colsample_bytree must be in (0, 1], got %v", p.ColsampleByTree)
	case p.Rounds < 1:
		return fmt.Errorf("rounds must be >= 1, got %d", p.Rounds)
	case p.Lambda < 0:
		return fmt.Errorf("lambda must be >= 0, got %v", p.Lambda)
	case p.MinChildWeight < 0:
		return fmt.Errorf("min_child_weight must be >= 0, got %v", p.MinChildWeight)
	case p.Gamma < 0:
		return fmt.Errorf("gamma must be >= 0, got %v", p.Gamma)
	}
	return nil
}
