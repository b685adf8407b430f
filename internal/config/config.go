package config

import (
	"encoding/json"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Service *svcConfig
}

type svcConfig struct {
	Address          string    `envconfig:"QPCR_PLANNER_ADDRESS" default:":3443"`
	MetricsAddress   string    `envconfig:"QPCR_PLANNER_METRICS_ADDRESS" default:":8080"`
	LogLevel         string    `envconfig:"QPCR_PLANNER_LOG_LEVEL" default:"info"`
	StrictValidation bool      `envconfig:"QPCR_PLANNER_STRICT_VALIDATION" default:"true"`
	AllowedOrigins   []string  `envconfig:"QPCR_PLANNER_ALLOWED_ORIGINS" default:"*"`
	LatencyBuckets   []float64 `envconfig:"QPCR_PLANNER_LATENCY_BUCKETS" default:""`
	// MaxBodyBytes caps the size of a configuration document posted to the API.
	MaxBodyBytes int64 `envconfig:"QPCR_PLANNER_MAX_BODY_BYTES" default:"1048576"`
}

// New reads the configuration from the environment.
func New() (*Config, error) {
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) String() string {
	contents, err := json.Marshal(c)
	if err != nil {
		return "<error>"
	}
	return string(contents)
}
