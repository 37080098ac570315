package classifier

import (
	"fmt"
	"math"
	"math/rand/v2"

	"cropupgrad-backend/internal/crop"
)

// probFloor clips probabilities before taking logs in the log-loss.
const probFloor = 1e-15

// Evaluation scores a model against labelled examples.
type Evaluation struct {
	Count    int     `json:"count"`
	Accuracy float64 `json:"accuracy"`
	LogLoss  float64 `json:"logloss"`
}

// Split shuffles corpus with seed and holds out ceil(testSize*n) examples.
func Split(corpus crop.Corpus, testSize float64, seed uint64) (train, test crop.Corpus, err error) {
	if testSize < 0 || testSize >= 1 {
		return nil, nil, fmt.Errorf("test size must be in [0, 1), got %v", testSize)
	}
	n := len(corpus)
	nTest := int(math.Ceil(testSize * float64(n)))
	if nTest >= n {
		return nil, nil, fmt.Errorf("test split of %d leaves no training examples out of %d", nTest, n)
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	perm := rng.Perm(n)

	test = make(crop.Corpus, 0, nTest)
	for _, i := range perm[:nTest] {
		test = append(test, corpus[i])
	}
	train = make(crop.Corpus, 0, n-nTest)
	for _, i := range perm[nTest:] {
		train = append(train, corpus[i])
	}
	return train, test, nil
}

// Evaluate returns accuracy and multi-class log-loss over examples. Labels
// unseen at training time count as misses with probability probFloor.
func (m *Model) Evaluate(examples crop.Corpus) (Evaluation, error) {
	if m == nil || m.booster == nil {
		return Evaluation{}, ErrNotReady
	}
	if len(examples) == 0 {
		return Evaluation{}, nil
	}

	var correct int
	var loss float64
	for _, ex := range examples {
		row, err := m.row(ex.Features)
		if err != nil {
			return Evaluation{}, err
		}
		probs, err := m.booster.Probabilities(row)
		if err != nil {
			return Evaluation{}, fmt.Errorf("%w: %v", ErrInference, err)
		}

		best := 0
		for k, p := range probs {
			if p > probs[best] {
				best = k
			}
		}

		p := probFloor
		if want, err := m.encoder.Encode(ex.Label); err == nil {
			p = math.Max(probs[want], probFloor)
			if best == want {
				correct++
			}
		}
		loss -= math.Log(p)
	}

	n := float64(len(examples))
	return Evaluation{
		Count:    len(examples),
		Accuracy: float64(correct) / n,
		LogLoss:  loss / n,
	}, nil
}
