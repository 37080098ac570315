package classifier

import (
	"math"
	"math/rand/v2"
	"testing"

	"cropupgrad-backend/internal/crop"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type band struct{ lo, hi float64 }

// Rice and Maize bands in feature order. Maize potassium and humidity stop
// short of the Rice bands so the crops never touch.
var syntheticBands = map[crop.Label][7]band{
	"Rice":  {{70, 90}, {40, 60}, {40, 60}, {20, 27}, {80, 85}, {6, 7}, {150, 300}},
	"Maize": {{60, 80}, {35, 60}, {30, 38}, {18, 27}, {60, 78}, {5.5, 7.5}, {50, 100}},
}

func syntheticCorpus(perCrop int, seed uint64) crop.Corpus {
	rng := rand.New(rand.NewPCG(seed, seed))
	var corpus crop.Corpus
	for _, label := range []crop.Label{"Rice", "Maize"} {
		bands := syntheticBands[label]
		for i := 0; i < perCrop; i++ {
			var v crop.FeatureVector
			for j, f := range crop.Features() {
				b := bands[j]
				v.Set(f, b.lo+rng.Float64()*(b.hi-b.lo))
			}
			corpus = append(corpus, crop.Example{Features: v, Label: label})
		}
	}
	return corpus
}

func riceLike() crop.FeatureVector {
	return crop.FeatureVector{
		Nitrogen: 80, Phosphorus: 50, Potassium: 50, Temperature: 24,
		Humidity: 82, PH: 6.5, Rainfall: 200,
	}
}

func TestTrain_RiceScenario(t *testing.T) {
	model, err := Train(syntheticCorpus(100, 11), DefaultConfig())
	require.NoError(t, err)

	got, err := model.Predict(riceLike())
	require.NoError(t, err)
	assert.Equal(t, crop.Label("Rice"), got)

	lowNitrogen := riceLike()
	lowNitrogen.Nitrogen = 10
	got, err = model.Predict(lowNitrogen)
	require.NoError(t, err)
	assert.Equal(t, crop.Label("Rice"), got)

	maizeLike := crop.FeatureVector{
		Nitrogen: 70, Phosphorus: 45, Potassium: 35, Temperature: 22,
		Humidity: 70, PH: 6.5, Rainfall: 75,
	}
	got, err = model.Predict(maizeLike)
	require.NoError(t, err)
	assert.Equal(t, crop.Label("Maize"), got)
}

func TestTrain_Report(t *testing.T) {
	model, err := Train(syntheticCorpus(50, 3), DefaultConfig())
	require.NoError(t, err)

	r := model.Report()
	assert.Equal(t, []crop.Label{"Maize", "Rice"}, r.Classes)
	assert.Equal(t, crop.Features(), r.Features)
	assert.Equal(t, 80, r.TrainSize)
	assert.Equal(t, 20, r.TestSize)
	assert.Equal(t, 200, r.Trees)
	assert.Equal(t, 1.0, r.TestAccuracy)
	assert.GreaterOrEqual(t, r.TestLogLoss, 0.0)
	assert.False(t, r.TrainedAt.IsZero())
	assert.Equal(t, []crop.Label{"Maize", "Rice"}, model.Classes())
}

func TestPredict_Deterministic(t *testing.T) {
	corpus := syntheticCorpus(60, 5)
	first, err := Train(corpus, DefaultConfig())
	require.NoError(t, err)
	second, err := Train(corpus, DefaultConfig())
	require.NoError(t, err)

	_, test, err := Split(corpus, 0.2, 42)
	require.NoError(t, err)
	for _, ex := range test {
		a, err := first.Predict(ex.Features)
		require.NoError(t, err)
		again, err := first.Predict(ex.Features)
		require.NoError(t, err)
		b, err := second.Predict(ex.Features)
		require.NoError(t, err)

		assert.Equal(t, a, again)
		assert.Equal(t, a, b)
	}
}

func TestPredict_OnlyTrainingLabels(t *testing.T) {
	model, err := Train(syntheticCorpus(30, 9), DefaultConfig())
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(1, 2))
	classes := map[crop.Label]bool{"Rice": true, "Maize": true}
	for i := 0; i < 50; i++ {
		v := crop.FeatureVector{
			Nitrogen:    rng.Float64() * 300,
			Phosphorus:  rng.Float64() * 150,
			Potassium:   rng.Float64() * 400,
			Temperature: rng.Float64()*60 - 10,
			Humidity:    rng.Float64() * 100,
			PH:          rng.Float64() * 14,
			Rainfall:    rng.Float64()*3000 - 100,
		}
		got, err := model.Predict(v)
		require.NoError(t, err)
		assert.True(t, classes[got], "unexpected label %q", got)
	}
}

func TestPredict_NotReady(t *testing.T) {
	var model *Model
	_, err := model.Predict(riceLike())
	assert.ErrorIs(t, err, ErrNotReady)

	_, err = (&Model{}).Predict(riceLike())
	assert.ErrorIs(t, err, ErrNotReady)

	_, err = model.Evaluate(nil)
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Nil(t, model.Classes())
	assert.Equal(t, Report{}, model.Report())
}

func TestPredict_NonFinite(t *testing.T) {
	model, err := Train(syntheticCorpus(20, 4), DefaultConfig())
	require.NoError(t, err)

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		v := riceLike()
		v.Rainfall = bad
		_, err := model.Predict(v)
		assert.ErrorIs(t, err, ErrInference)
	}
}

func TestTrain_InvalidCorpus(t *testing.T) {
	_, err := Train(nil, DefaultConfig())
	assert.Error(t, err)

	single := crop.Corpus{
		{Features: riceLike(), Label: "Rice"},
		{Features: riceLike(), Label: "Rice"},
	}
	_, err = Train(single, DefaultConfig())
	assert.Error(t, err)

	cfg := DefaultConfig()
	cfg.Boost.MaxDepth = 0
	_, err = Train(syntheticCorpus(10, 1), cfg)
	assert.Error(t, err)
}

func TestSplit(t *testing.T) {
	corpus := syntheticCorpus(50, 8)

	train, test, err := Split(corpus, 0.2, 42)
	require.NoError(t, err)
	assert.Len(t, train, 80)
	assert.Len(t, test, 20)

	seen := make(map[crop.FeatureVector]int)
	for _, ex := range append(append(crop.Corpus{}, train...), test...) {
		seen[ex.Features]++
	}
	assert.Len(t, seen, len(corpus))

	again, _, err := Split(corpus, 0.2, 42)
	require.NoError(t, err)
	assert.Equal(t, train, again)

	_, _, err = Split(corpus, 1, 42)
	assert.Error(t, err)
	_, _, err = Split(corpus, -0.1, 42)
	assert.Error(t, err)
	_, _, err = Split(corpus[:1], 0.5, 42)
	assert.Error(t, err)
}

func TestEvaluate(t *testing.T) {
	corpus := syntheticCorpus(40, 6)
	model, err := Train(corpus, DefaultConfig())
	require.NoError(t, err)

	eval, err := model.Evaluate(corpus)
	require.NoError(t, err)
	assert.Equal(t, len(corpus), eval.Count)
	assert.Equal(t, 1.0, eval.Accuracy)
	assert.Less(t, eval.LogLoss, 0.1)

	unseen := crop.Corpus{{Features: riceLike(), Label: "Wheat"}}
	eval, err = model.Evaluate(unseen)
	require.NoError(t, err)
	assert.Equal(t, 0.0, eval.Accuracy)
	assert.InDelta(t, -math.Log(probFloor), eval.LogLoss, 1e-9)

	empty, err := model.Evaluate(nil)
	require.NoError(t, err)
	assert.Equal(t, Evaluation{}, empty)
}
