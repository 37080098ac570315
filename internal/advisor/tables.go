package advisor

import "cropupgrad-backend/internal/crop"

// Range is an inclusive optimal band for one measurement.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether Min <= v <= Max.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// RangeTable maps a crop to the optimal band of every feature.
type RangeTable map[crop.Label]map[crop.Feature]Range

// Actions holds the advice given when a measurement is below or above its band.
type Actions struct {
	Increase string `json:"increase"`
	Decrease string `json:"decrease"`
}

// ActionTable maps each feature to its corrective actions.
type ActionTable map[crop.Feature]Actions

func bands(n, p, k, temp, hum, ph, rain Range) map[crop.Feature]Range {
	return map[crop.Feature]Range{
		crop.Nitrogen:    n,
		crop.Phosphorus:  p,
		crop.Potassium:   k,
		crop.Temperature: temp,
		crop.Humidity:    hum,
		crop.PH:          ph,
		crop.Rainfall:    rain,
	}
}

// OptimalRanges returns the agronomic optimal bands for the supported crops.
// A fresh table is built on every call.
func OptimalRanges() RangeTable {
	return RangeTable{
		"Rice":         bands(Range{70, 90}, Range{40, 60}, Range{40, 60}, Range{20, 27}, Range{80, 85}, Range{6, 7}, Range{150, 300}),
		"Maize":        bands(Range{60, 80}, Range{35, 60}, Range{30, 40}, Range{18, 27}, Range{60, 80}, Range{5.5, 7.5}, Range{50, 100}),
		"Chickpea":     bands(Range{20, 40}, Range{15, 25}, Range{20, 25}, Range{21, 26}, Range{50, 60}, Range{6, 7}, Range{50, 90}),
		"Kidney Beans": bands(Range{30, 50}, Range{30, 45}, Range{35, 45}, Range{18, 24}, Range{60, 70}, Range{6, 7}, Range{50, 100}),
		"PigeonPeas":   bands(Range{20, 40}, Range{15, 30}, Range{20, 30}, Range{18, 26}, Range{50, 60}, Range{5.5, 7.5}, Range{60, 100}),
		"MothBeans":    bands(Range{10, 30}, Range{15, 20}, Range{15, 25}, Range{25, 35}, Range{50, 60}, Range{7, 8}, Range{25, 60}),
		"Mung Bean":    bands(Range{20, 40}, Range{20, 30}, Range{20, 30}, Range{24, 27}, Range{50, 60}, Range{6, 7.5}, Range{60, 100}),
		"Blackgram":    bands(Range{20, 40}, Range{20, 30}, Range{20, 30}, Range{25, 30}, Range{50, 60}, Range{6, 7}, Range{60, 100}),
		"Lentil":       bands(Range{20, 40}, Range{15, 25}, Range{15, 25}, Range{18, 25}, Range{50, 60}, Range{6, 7}, Range{50, 100}),
		"Pomegranate":  bands(Range{40, 60}, Range{30, 40}, Range{40, 50}, Range{25, 35}, Range{40, 60}, Range{5.5, 7.2}, Range{500, 750}),
		"Banana":       bands(Range{100, 200}, Range{30, 40}, Range{250, 400}, Range{26, 30}, Range{75, 85}, Range{6, 7}, Range{1500, 2000}),
		"Mango":        bands(Range{30, 60}, Range{25, 50}, Range{30, 50}, Range{24, 27}, Range{60, 70}, Range{5.5, 7.5}, Range{750, 2500}),
		"Grapes":       bands(Range{40, 60}, Range{30, 50}, Range{50, 100}, Range{20, 30}, Range{60, 70}, Range{6, 7.5}, Range{500, 700}),
		"Watermelon":   bands(Range{20, 40}, Range{20, 30}, Range{30, 50}, Range{22, 30}, Range{60, 70}, Range{6, 7}, Range{400, 600}),
		"Muskmelon":    bands(Range{20, 40}, Range{20, 30}, Range{30, 50}, Range{25, 30}, Range{60, 70}, Range{6, 7}, Range{400, 600}),
		"Apple":        bands(Range{50, 80}, Range{30, 40}, Range{30, 50}, Range{18, 24}, Range{50, 60}, Range{6, 7}, Range{1000, 1250}),
		"Orange":       bands(Range{50, 70}, Range{30, 50}, Range{60, 80}, Range{15, 30}, Range{50, 70}, Range{5.5, 7.5}, Range{1000, 1500}),
		"Papaya":       bands(Range{100, 200}, Range{30, 40}, Range{250, 400}, Range{22, 26}, Range{70, 85}, Range{6, 7}, Range{1200, 1500}),
		"Coconut":      bands(Range{50, 100}, Range{40, 60}, Range{120, 250}, Range{27, 32}, Range{70, 80}, Range{5.2, 8}, Range{1500, 2500}),
		"Cotton":       bands(Range{30, 70}, Range{20, 30}, Range{40, 50}, Range{21, 27}, Range{60, 70}, Range{5, 6.5}, Range{700, 1000}),
		"Jute":         bands(Range{40, 80}, Range{20, 50}, Range{20, 40}, Range{24, 37}, Range{70, 90}, Range{6.5, 7.5}, Range{1500, 2500}),
		"Coffee":       bands(Range{80, 120}, Range{20, 30}, Range{40, 80}, Range{15, 24}, Range{70, 80}, Range{4.5, 6.5}, Range{1200, 2500}),
	}
}

// DefaultActions returns the corrective advice per feature.
func DefaultActions() ActionTable {
	return ActionTable{
		crop.Nitrogen: {
			Increase: "Apply Urea, Ammonium Nitrate, or Manure",
			Decrease: "Avoid excess nitrogen fertilizers",
		},
		crop.Phosphorus: {
			Increase: "Add Rock Phosphate, Bone Meal, or Superphosphate",
			Decrease: "Reduce phosphorus fertilizer application",
		},
		crop.Potassium: {
			Increase: "Use Potash, Potassium Sulfate, or Compost",
			Decrease: "Reduce potassium-based fertilizers",
		},
		crop.Temperature: {
			Increase: "Consider greenhouses or mulching for warmth",
			Decrease: "Use shade nets or increase irrigation to cool the soil",
		},
		crop.Humidity: {
			Increase: "Increase irrigation or use misting systems",
			Decrease: "Improve drainage or reduce irrigation",
		},
		crop.PH: {
			Increase: "Add Lime or Dolomite to raise pH",
			Decrease: "Use Sulfur, Aluminum Sulfate, or organic materials like compost to lower pH",
		},
		crop.Rainfall: {
			Increase: "Introduce irrigation systems",
			Decrease: "Improve drainage or use rainwater harvesting methods",
		},
	}
}
