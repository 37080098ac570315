package config

import (
	"testing"

	"cropupgrad-backend/internal/classifier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "cropupgrad", cfg.AppName)
	assert.Equal(t, 8000, cfg.AppPort)
	assert.Equal(t, "Crop_Yield_Prediction.csv", cfg.DatasetPath)
	assert.True(t, cfg.RangeCoverageStrict)
	assert.Empty(t, cfg.DatabaseURL)
	assert.False(t, cfg.Production())
	assert.Equal(t, []string{"https://cropupgrad-clientside.onrender.com"}, cfg.AllowedOrigins())
	assert.Equal(t, classifier.DefaultConfig(), cfg.Classifier())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DATASET_PATH", "/data/crops.csv")
	t.Setenv("TRAIN_SEED", "7")
	t.Setenv("BOOST_ROUNDS", "20")
	t.Setenv("BOOST_ETA", "0.1")
	t.Setenv("RANGE_COVERAGE_STRICT", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://example.org ,")
	t.Setenv("DATABASE_URL", "postgres://localhost/crops")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Production())
	assert.Equal(t, 9090, cfg.AppPort)
	assert.Equal(t, "/data/crops.csv", cfg.DatasetPath)
	assert.False(t, cfg.RangeCoverageStrict)
	assert.Equal(t, "postgres://localhost/crops", cfg.DatabaseURL)
	assert.Equal(t, []string{"http://localhost:3000", "https://example.org"}, cfg.AllowedOrigins())

	cc := cfg.Classifier()
	assert.Equal(t, uint64(7), cc.Seed)
	assert.Equal(t, uint64(7), cc.Boost.Seed)
	assert.Equal(t, 20, cc.Boost.Rounds)
	assert.Equal(t, 0.1, cc.Boost.Eta)
	assert.Equal(t, 6, cc.Boost.MaxDepth)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("APP_PORT", "70000")
	_, err := Load()
	assert.Error(t, err)
}
