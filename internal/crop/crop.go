package crop

// Feature names a soil or climate measurement. The string value is the
// dataset column and request field name.
type Feature string

const (
	Nitrogen    Feature = "Nitrogen"
	Phosphorus  Feature = "Phosphorus"
	Potassium   Feature = "Potassium"
	Temperature Feature = "Temperature"
	Humidity    Feature = "Humidity"
	PH          Feature = "pH_Value"
	Rainfall    Feature = "Rainfall"
)

// LabelColumn is the dataset column holding the crop name.
const LabelColumn = "Crop"

// Features returns the seven features in their fixed order.
func Features() []Feature {
	return []Feature{Nitrogen, Phosphorus, Potassium, Temperature, Humidity, PH, Rainfall}
}

// Label is a crop name as it appears in the training data.
type Label string

// FeatureVector holds one set of measurements: nutrients in kg/ha,
// temperature in °C, humidity in %, unitless pH and rainfall in mm.
type FeatureVector struct {
	Nitrogen    float64 `json:"Nitrogen" db:"nitrogen"`
	Phosphorus  float64 `json:"Phosphorus" db:"phosphorus"`
	Potassium   float64 `json:"Potassium" db:"potassium"`
	Temperature float64 `json:"Temperature" db:"temperature"`
	Humidity    float64 `json:"Humidity" db:"humidity"`
	PH          float64 `json:"pH_Value" db:"ph_value"`
	Rainfall    float64 `json:"Rainfall" db:"rainfall"`
}

// Value returns the measurement for f.
func (v FeatureVector) Value(f Feature) (float64, bool) {
	switch f {
	case Nitrogen:
		return v.Nitrogen, true
	case Phosphorus:
		return v.Phosphorus, true
	case Potassium:
		return v.Potassium, true
	case Temperature:
		return v.Temperature, true
	case Humidity:
		return v.Humidity, true
	case PH:
		return v.PH, true
	case Rainfall:
		return v.Rainfall, true
	}
	return 0, false
}

// Values returns the measurements in Features() order.
func (v FeatureVector) Values() []float64 {
	return []float64{v.Nitrogen, v.Phosphorus, v.Potassium, v.Temperature, v.Humidity, v.PH, v.Rainfall}
}

// Set assigns the measurement for f and reports whether f is known.
func (v *FeatureVector) Set(f Feature, value float64) bool {
	switch f {
	case Nitrogen:
		v.Nitrogen = value
	case Phosphorus:
		v.Phosphorus = value
	case Potassium:
		v.Potassium = value
	case Temperature:
		v.Temperature = value
	case Humidity:
		v.Humidity = value
	case PH:
		v.PH = value
	case Rainfall:
		v.Rainfall = value
	default:
		return false
	}
	return true
}

// Example is one labelled row of the training dataset.
type Example struct {
	Features FeatureVector
	Label    Label
}

// Corpus is the full set of training examples.
type Corpus []Example

// Labels returns the distinct labels of the corpus in first-seen order.
func (c Corpus) Labels() []Label {
	seen := make(map[Label]struct{})
	var labels []Label
	for _, ex := range c {
		if _, ok := seen[ex.Label]; ok {
			continue
		}
		seen[ex.Label] = struct{}{}
		labels = append(labels, ex.Label)
	}
	return labels
}
