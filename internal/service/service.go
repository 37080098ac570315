// Package service joins the trained model and the advisor into the single
// call the HTTP layer makes per request.
package service

import (
	"fmt"

	"cropupgrad-backend/internal/advisor"
	"cropupgrad-backend/internal/classifier"
	"cropupgrad-backend/internal/crop"

	"github.com/rs/zerolog/log"
)

// Recommendation is the outcome for one feature vector.
type Recommendation struct {
	Crop         crop.Label
	Improvements []string
}

// Service holds read-only state built during startup.
type Service struct {
	model   *classifier.Model
	advisor *advisor.Advisor
}

// New wires a trained model to an advisor. A nil model yields a service
// that answers every request with classifier.ErrNotReady.
func New(model *classifier.Model, adv *advisor.Advisor) *Service {
	return &Service{model: model, advisor: adv}
}

// Recommend predicts a crop for v and explains how to move v into its bands.
func (s *Service) Recommend(v crop.FeatureVector) (Recommendation, error) {
	if !s.Ready() {
		return Recommendation{}, classifier.ErrNotReady
	}
	label, err := s.model.Predict(v)
	if err != nil {
		return Recommendation{}, err
	}
	improvements, err := s.advisor.Suggest(v, label)
	if err != nil {
		return Recommendation{}, fmt.Errorf("suggest for %q: %w", label, err)
	}
	return Recommendation{Crop: label, Improvements: improvements}, nil
}

func (s *Service) Ready() bool {
	return s != nil && s.model != nil && s.advisor != nil
}

// Report returns the training report, or ErrNotReady before training.
func (s *Service) Report() (classifier.Report, error) {
	if !s.Ready() {
		return classifier.Report{}, classifier.ErrNotReady
	}
	return s.model.Report(), nil
}

// Bootstrap trains a model on corpus and checks that the advisor covers every
// label it can predict. With strict set a coverage gap is an error, otherwise
// it is logged and surfaces per request as advisor.ErrMissingRangeData.
func Bootstrap(corpus crop.Corpus, cfg classifier.Config, adv *advisor.Advisor, strict bool) (*Service, error) {
	model, err := classifier.Train(corpus, cfg)
	if err != nil {
		return nil, fmt.Errorf("train: %w", err)
	}
	if err := adv.CheckCoverage(model.Classes()); err != nil {
		if strict {
			return nil, err
		}
		log.Warn().Err(err).Msg("serving crops without optimal range data")
	}
	return New(model, adv), nil
}
