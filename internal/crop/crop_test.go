package crop

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureVector_ValueAndSet(t *testing.T) {
	var v FeatureVector
	for i, f := range Features() {
		require.True(t, v.Set(f, float64(i+1)), "set %s", f)
	}
	for i, f := range Features() {
		got, ok := v.Value(f)
		require.True(t, ok)
		assert.Equal(t, float64(i+1), got, f)
	}
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7}, v.Values())

	_, ok := v.Value("Sunlight")
	assert.False(t, ok)
	assert.False(t, v.Set("Sunlight", 1))
}

func TestLoadCSV(t *testing.T) {
	// columns deliberately out of order, with an unrelated column
	data := "Crop,Rainfall,pH_Value,Humidity,Temperature,Potassium,Phosphorus,Nitrogen,Yield\n" +
		"Rice,200,6.5,82,24,50,50,80,3.1\n" +
		" Maize , 75, 6.8, 70, 22, 35, 45, 70, 2.4\n"

	corpus, err := LoadCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, corpus, 2)

	assert.Equal(t, Label("Rice"), corpus[0].Label)
	assert.Equal(t, FeatureVector{
		Nitrogen: 80, Phosphorus: 50, Potassium: 50, Temperature: 24,
		Humidity: 82, PH: 6.5, Rainfall: 200,
	}, corpus[0].Features)
	assert.Equal(t, Label("Maize"), corpus[1].Label)
	assert.Equal(t, 75.0, corpus[1].Features.Rainfall)
}

func TestLoadCSV_Errors(t *testing.T) {
	header := "Nitrogen,Phosphorus,Potassium,Temperature,Humidity,pH_Value,Rainfall,Crop\n"

	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{name: "empty input", data: "", wantErr: "dataset is empty"},
		{name: "header only", data: header, wantErr: "dataset is empty"},
		{
			name:    "missing feature column",
			data:    "Nitrogen,Phosphorus,Potassium,Temperature,Humidity,Rainfall,Crop\n1,2,3,4,5,6,Rice\n",
			wantErr: `missing column "pH_Value"`,
		},
		{
			name:    "missing label column",
			data:    "Nitrogen,Phosphorus,Potassium,Temperature,Humidity,pH_Value,Rainfall\n1,2,3,4,5,6,7\n",
			wantErr: `missing column "Crop"`,
		},
		{
			name:    "non numeric cell",
			data:    header + "1,2,3,4,5,6,7,Rice\n1,2,abc,4,5,6,7,Rice\n",
			wantErr: "line 3: column Potassium",
		},
		{
			name:    "empty label",
			data:    header + "1,2,3,4,5,6,7, \n",
			wantErr: "line 2: empty Crop",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCSV(strings.NewReader(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	corpus, err := LoadFile("../../testdata/crops_sample.csv")
	require.NoError(t, err)
	assert.Len(t, corpus, 66)
	assert.Len(t, corpus.Labels(), 22)

	_, err = LoadFile("../../testdata/does_not_exist.csv")
	assert.Error(t, err)
}

func TestLabelEncoder(t *testing.T) {
	corpus := Corpus{
		{Label: "Rice"}, {Label: "Maize"}, {Label: "Rice"}, {Label: "Coffee"}, {Label: "Maize"},
	}
	enc := NewLabelEncoder(corpus)

	assert.Equal(t, 3, enc.Len())
	assert.Equal(t, []Label{"Coffee", "Maize", "Rice"}, enc.Classes())

	for _, l := range corpus.Labels() {
		i, err := enc.Encode(l)
		require.NoError(t, err)
		decoded, err := enc.Decode(i)
		require.NoError(t, err)
		assert.Equal(t, l, decoded)
		again, err := enc.Encode(decoded)
		require.NoError(t, err)
		assert.Equal(t, i, again)
	}

	_, err := enc.Encode("Wheat")
	assert.Error(t, err)
	_, err = enc.Decode(3)
	assert.Error(t, err)
	_, err = enc.Decode(-1)
	assert.Error(t, err)
}

func TestCorpus_LabelsFirstSeenOrder(t *testing.T) {
	corpus := Corpus{{Label: "Maize"}, {Label: "Rice"}, {Label: "Maize"}}
	assert.Equal(t, []Label{"Maize", "Rice"}, corpus.Labels())
}
