// Package classifier trains the crop model once at startup and answers
// predictions against it.
package classifier

import (
	"errors"
	"fmt"
	"math"
	"time"

	"cropupgrad-backend/internal/boost"
	"cropupgrad-backend/internal/crop"

	"github.com/rs/zerolog/log"
)

var (
	// ErrNotReady is returned when no trained model is available.
	ErrNotReady = errors.New("model not ready")
	// ErrInference wraps numerical failures while scoring a vector.
	ErrInference = errors.New("inference failed")
)

type Config struct {
	TestSize float64
	Seed     uint64
	Boost    boost.Params
}

func DefaultConfig() Config {
	return Config{
		TestSize: 0.2,
		Seed:     42,
		Boost:    boost.DefaultParams(),
	}
}

// Report describes a training run.
type Report struct {
	Classes         []crop.Label   `json:"classes"`
	Features        []crop.Feature `json:"features"`
	TrainSize       int            `json:"train_size"`
	TestSize        int            `json:"test_size"`
	TestAccuracy    float64        `json:"test_accuracy"`
	TestLogLoss     float64        `json:"test_logloss"`
	Trees           int            `json:"trees"`
	TrainingSeconds float64        `json:"training_seconds"`
	TrainedAt       time.Time      `json:"trained_at"`
}

// Model is a fitted classifier together with its label encoding. It is
// never modified after Train returns.
type Model struct {
	booster  *boost.Booster
	encoder  *crop.LabelEncoder
	features []crop.Feature
	report   Report
}

// Train fits a model on an 80/20 split of corpus and scores the held-out part.
func Train(corpus crop.Corpus, cfg Config) (*Model, error) {
	if len(corpus) == 0 {
		return nil, errors.New("training corpus is empty")
	}
	encoder := crop.NewLabelEncoder(corpus)
	if encoder.Len() < 2 {
		return nil, fmt.Errorf("need at least 2 distinct crops, got %d", encoder.Len())
	}

	start := time.Now()
	train, test, err := Split(corpus, cfg.TestSize, cfg.Seed)
	if err != nil {
		return nil, err
	}

	features := crop.Features()
	x := make([][]float64, len(train))
	y := make([]int, len(train))
	for i, ex := range train {
		x[i] = ex.Features.Values()
		if y[i], err = encoder.Encode(ex.Label); err != nil {
			return nil, err
		}
	}

	booster, err := boost.Fit(x, y, encoder.Len(), cfg.Boost)
	if err != nil {
		return nil, fmt.Errorf("fit booster: %w", err)
	}

	m := &Model{
		booster:  booster,
		encoder:  encoder,
		features: features,
	}

	eval, err := m.Evaluate(test)
	if err != nil {
		return nil, fmt.Errorf("evaluate test split: %w", err)
	}

	m.report = Report{
		Classes:         encoder.Classes(),
		Features:        features,
		TrainSize:       len(train),
		TestSize:        len(test),
		TestAccuracy:    eval.Accuracy,
		TestLogLoss:     eval.LogLoss,
		Trees:           booster.NumTrees(),
		TrainingSeconds: time.Since(start).Seconds(),
		TrainedAt:       time.Now(),
	}

	log.Info().
		Int("classes", encoder.Len()).
		Int("train", len(train)).
		Int("test", len(test)).
		Float64("accuracy", eval.Accuracy).
		Float64("logloss", eval.LogLoss).
		Float64("seconds", m.report.TrainingSeconds).
		Msg("crop model trained")
	return m, nil
}

// Predict returns the crop the model considers best suited to v.
func (m *Model) Predict(v crop.FeatureVector) (crop.Label, error) {
	if m == nil || m.booster == nil {
		return "", ErrNotReady
	}
	row, err := m.row(v)
	if err != nil {
		return "", err
	}

	margins, err := m.booster.Margins(row)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInference, err)
	}
	best := 0
	for k, s := range margins {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return "", fmt.Errorf("%w: non-finite margin for class %d", ErrInference, k)
		}
		if s > margins[best] {
			best = k
		}
	}

	label, err := m.encoder.Decode(best)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInference, err)
	}
	return label, nil
}

// row binds v to the feature order used at training time.
func (m *Model) row(v crop.FeatureVector) ([]float64, error) {
	row := make([]float64, len(m.features))
	for i, f := range m.features {
		value, ok := v.Value(f)
		if !ok {
			return nil, fmt.Errorf("%w: unknown feature %s", ErrInference, f)
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, fmt.Errorf("%w: %s is %v", ErrInference, f, value)
		}
		row[i] = value
	}
	return row, nil
}

// Classes returns every label the model can predict.
func (m *Model) Classes() []crop.Label {
	if m == nil {
		return nil
	}
	return m.encoder.Classes()
}

func (m *Model) Report() Report {
	if m == nil {
		return Report{}
	}
	return m.report
}
