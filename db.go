package main

import (
	"os"

	"cropupgrad-backend/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// InitDB connects the prediction journal. It returns nil when no database is
// configured or reachable; predictions are served either way.
func InitDB(cfg config.Configs) *sqlx.DB {
	if cfg.DatabaseURL == "" {
		log.Info().Msg("DATABASE_URL is not set, prediction journal disabled")
		return nil
	}

	conn, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Warn().Err(err).Msg("could not connect to PostgreSQL, prediction journal disabled")
		return nil
	}

	// Apply schema if needed. For production, use migrations.
	schema, err := os.ReadFile(cfg.SchemaPath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.SchemaPath).Msg("could not read schema")
	} else if _, err := conn.Exec(string(schema)); err != nil {
		log.Warn().Err(err).Msg("could not apply schema, prediction journal disabled")
		conn.Close()
		return nil
	} else {
		log.Info().Str("path", cfg.SchemaPath).Msg("applied schema")
	}

	log.Info().Msg("PostgreSQL connected successfully")
	return conn
}
