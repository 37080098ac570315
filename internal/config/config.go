package config

import (
	"fmt"
	"strings"

	"cropupgrad-backend/internal/boost"
	"cropupgrad-backend/internal/classifier"

	"github.com/spf13/viper"
)

type Configs struct {
	// App configuration
	AppName     string `mapstructure:"app_name"`
	AppEnv      string `mapstructure:"app_env"`
	AppLogLevel string `mapstructure:"app_log_level"`
	AppPort     int    `mapstructure:"app_port"`

	// Dataset and training
	DatasetPath         string  `mapstructure:"dataset_path"`
	TrainTestSize       float64 `mapstructure:"train_test_size"`
	TrainSeed           uint64  `mapstructure:"train_seed"`
	BoostMaxDepth       int     `mapstructure:"boost_max_depth"`
	BoostEta            float64 `mapstructure:"boost_eta"`
	BoostSubsample      float64 `mapstructure:"boost_subsample"`
	BoostColsample      float64 `mapstructure:"boost_colsample_bytree"`
	BoostRounds         int     `mapstructure:"boost_rounds"`
	RangeCoverageStrict bool    `mapstructure:"range_coverage_strict"`

	// HTTP boundary
	CorsAllowedOrigins string `mapstructure:"cors_allowed_origins"`

	// Optional prediction journal
	DatabaseURL string `mapstructure:"database_url"`
	SchemaPath  string `mapstructure:"schema_path"`
}

func setDefaults(v *viper.Viper) {
	p := boost.DefaultParams()
	v.SetDefault("app_name", "cropupgrad")
	v.SetDefault("app_env", "dev")
	v.SetDefault("app_log_level", "INFO")
	v.SetDefault("app_port", 8000)
	v.SetDefault("dataset_path", "Crop_Yield_Prediction.csv")
	v.SetDefault("train_test_size", 0.2)
	v.SetDefault("train_seed", 42)
	v.SetDefault("boost_max_depth", p.MaxDepth)
	v.SetDefault("boost_eta", p.Eta)
	v.SetDefault("boost_subsample", p.Subsample)
	v.SetDefault("boost_colsample_bytree", p.ColsampleByTree)
	v.SetDefault("boost_rounds", p.Rounds)
	v.SetDefault("range_coverage_strict", true)
	v.SetDefault("cors_allowed_origins", "https://cropupgrad-clientside.onrender.com")
	v.SetDefault("database_url", "")
	v.SetDefault("schema_path", "schema.sql")
}

// Load reads the configuration from environment variables. APP_PORT maps to
// app_port and so on.
func Load() (Configs, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var cfg Configs
	if err := v.Unmarshal(&cfg); err != nil {
		return Configs{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.AppPort <= 0 || cfg.AppPort > 65535 {
		return Configs{}, fmt.Errorf("invalid app_port %d", cfg.AppPort)
	}
	if cfg.DatasetPath == "" {
		return Configs{}, fmt.Errorf("dataset_path is required")
	}
	return cfg, nil
}

// Production reports whether the app runs in a production environment.
func (c Configs) Production() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production"
}

// AllowedOrigins splits the comma separated CORS allow-list.
func (c Configs) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CorsAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Classifier returns the training configuration. The booster shares the
// split seed.
func (c Configs) Classifier() classifier.Config {
	p := boost.DefaultParams()
	p.MaxDepth = c.BoostMaxDepth
	p.Eta = c.BoostEta
	p.Subsample = c.BoostSubsample
	p.ColsampleByTree = c.BoostColsample
	p.Rounds = c.BoostRounds
	p.Seed = c.TrainSeed
	return classifier.Config{
		TestSize: c.TrainTestSize,
		Seed:     c.TrainSeed,
		Boost:    p,
	}
}
