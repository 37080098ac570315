package main

import (
	"time"

	"cropupgrad-backend/internal/crop"
)

// ---------- API Request Models ----------

// CropInput is the body of a prediction request. Pointers let binding tell
// a missing field apart from a zero reading.
type CropInput struct {
	Nitrogen    *float64 `json:"Nitrogen" binding:"required"`
	Phosphorus  *float64 `json:"Phosphorus" binding:"required"`
	Potassium   *float64 `json:"Potassium" binding:"required"`
	Temperature *float64 `json:"Temperature" binding:"required"`
	Humidity    *float64 `json:"Humidity" binding:"required"`
	PHValue     *float64 `json:"pH_Value" binding:"required"`
	Rainfall    *float64 `json:"Rainfall" binding:"required"`
}

// FeatureVector converts a bound request into the model's input.
func (in CropInput) FeatureVector() crop.FeatureVector {
	return crop.FeatureVector{
		Nitrogen:    *in.Nitrogen,
		Phosphorus:  *in.Phosphorus,
		Potassium:   *in.Potassium,
		Temperature: *in.Temperature,
		Humidity:    *in.Humidity,
		PH:          *in.PHValue,
		Rainfall:    *in.Rainfall,
	}
}

// ---------- API Response Models ----------

// PredictionResponse is the JSON payload returned to the client app.
type PredictionResponse struct {
	PredictedCrop string   `json:"predicted_crop"`
	Improvements  []string `json:"improvements"`
}

// HealthResponse reports whether the model is loaded.
type HealthResponse struct {
	Status string    `json:"status"` // "ok" or "not_ready"
	Time   time.Time `json:"time"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
