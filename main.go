package main

import (
	"strconv"

	"cropupgrad-backend/internal/advisor"
	"cropupgrad-backend/internal/config"
	"cropupgrad-backend/internal/crop"
	"cropupgrad-backend/internal/journal"
	"cropupgrad-backend/internal/logger"
	"cropupgrad-backend/internal/metrics"
	"cropupgrad-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ──────────────────────────────────────────────
// main – load config, train, then serve
// ──────────────────────────────────────────────

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Init(cfg.AppName, cfg.AppLogLevel)

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Training runs to completion before the listener starts, so no request
	// ever sees a half-built model.
	corpus, err := crop.LoadFile(cfg.DatasetPath)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load training dataset")
	}
	log.Info().Int("rows", len(corpus)).Int("crops", len(corpus.Labels())).Str("path", cfg.DatasetPath).Msg("dataset loaded")

	svc, err := service.Bootstrap(corpus, cfg.Classifier(), advisor.Default(), cfg.RangeCoverageStrict)
	if err != nil {
		log.Fatal().Err(err).Msg("could not build crop model")
	}
	report, _ := svc.Report()
	metrics.ObserveModel(report)

	a := &api{svc: svc}
	if db := InitDB(cfg); db != nil {
		defer db.Close()
		a.journal = journal.NewPostgresRepository(db)
	}

	r := newRouter(a, cfg.AllowedOrigins())

	addr := "0.0.0.0:" + strconv.Itoa(cfg.AppPort)
	log.Info().Str("addr", addr).Msg("CropUpgrad API listening")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
