package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"cropupgrad-backend/internal/advisor"
	"cropupgrad-backend/internal/classifier"
	"cropupgrad-backend/internal/journal"
	"cropupgrad-backend/internal/metrics"
	"cropupgrad-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const journalTimeout = 2 * time.Second

// api carries the dependencies of the HTTP handlers. Everything it points
// to is read-only once the router is built.
type api struct {
	svc     *service.Service
	journal journal.Repository
}

// ══════════════════════════════════════════════
//  PREDICTION HANDLER
// ══════════════════════════════════════════════

func (a *api) handlePredictCrop(c *gin.Context) {
	var input CropInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}

	vector := input.FeatureVector()
	rec, err := a.svc.Recommend(vector)
	if err != nil {
		status, kind := classifyError(err)
		metrics.PredictionErrors.WithLabelValues(kind).Inc()
		log.Error().Err(err).Str("kind", kind).Msg("crop prediction failed")
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}

	metrics.Predictions.WithLabelValues(string(rec.Crop)).Inc()
	metrics.Suggestions.Observe(float64(len(rec.Improvements)))
	log.Debug().Str("crop", string(rec.Crop)).Int("improvements", len(rec.Improvements)).Msg("crop predicted")

	if a.journal != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), journalTimeout)
		err := a.journal.Record(ctx, journal.Entry{
			FeatureVector: vector,
			PredictedCrop: string(rec.Crop),
			Improvements:  rec.Improvements,
		})
		cancel()
		if err != nil {
			metrics.JournalErrors.Inc()
			log.Warn().Err(err).Msg("could not journal prediction")
		}
	}

	c.JSON(http.StatusOK, PredictionResponse{
		PredictedCrop: string(rec.Crop),
		Improvements:  rec.Improvements,
	})
}

// classifyError maps a core error to an HTTP status and a metric label.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, classifier.ErrNotReady):
		return http.StatusServiceUnavailable, "not_ready"
	case errors.Is(err, classifier.ErrInference):
		return http.StatusInternalServerError, "inference"
	case errors.Is(err, advisor.ErrMissingRangeData):
		return http.StatusInternalServerError, "missing_range"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// ══════════════════════════════════════════════
//  OPERATIONAL HANDLERS
// ══════════════════════════════════════════════

func (a *api) handleHealth(c *gin.Context) {
	if !a.svc.Ready() {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "not_ready", Time: time.Now()})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Time: time.Now()})
}

func (a *api) handleModel(c *gin.Context) {
	report, err := a.svc.Report()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (a *api) handleRecentPredictions(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be an integer"})
			return
		}
		limit = n
	}

	if a.journal == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: journal.ErrUnavailable.Error()})
		return
	}
	entries, err := a.journal.Recent(c.Request.Context(), limit)
	if errors.Is(err, journal.ErrUnavailable) {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("could not read prediction journal")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not read prediction journal"})
		return
	}
	c.JSON(http.StatusOK, entries)
}
