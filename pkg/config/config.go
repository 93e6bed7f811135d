package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Host            string        `yaml:"host" default:"0.0.0.0"`
		Port            int           `yaml:"port" default:"8000"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		CORS            bool          `yaml:"cors" default:"true"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/prometheus"`
	} `yaml:"metrics"`
	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"logging"`
	Artifacts struct {
		ModelDir        string `yaml:"model_dir" default:"models"`
		ModelFile       string `yaml:"model_file" default:"logr_model.json"`
		MetricsFile     string `yaml:"metrics_file" default:"metrics.json"`
		FeatureListFile string `yaml:"feature_list_file" default:"feature_list.json"`
	} `yaml:"artifacts"`
	Client struct {
		APIURL  string        `yaml:"api_url" default:"http://127.0.0.1:8000"`
		Timeout time.Duration `yaml:"timeout" default:"10s"`
	} `yaml:"client"`
	Form struct {
		Port int `yaml:"port" default:"8501"`
	} `yaml:"form"`
	LogShipping struct {
		Enabled        bool          `yaml:"enabled"`
		Brokers        []string      `yaml:"brokers"`
		Topic          string        `yaml:"topic" default:"fraudguard.logs"`
		FlushInterval  time.Duration `yaml:"flush_interval" default:"30s"`
		CountThreshold int           `yaml:"count_threshold" default:"100"`
		Compression    string        `yaml:"compression" default:"gzip"`
		RequiredAcks   int           `yaml:"required_acks" default:"1"`
		BatchTimeout   time.Duration `yaml:"batch_timeout" default:"1s"`
		WriteTimeout   time.Duration `yaml:"write_timeout" default:"10s"`
	} `yaml:"log_shipping"`
}

// Load reads and parses a YAML configuration file on top of the defaults.
// A missing file is not an error: the defaults alone describe a local setup.
func Load(path string) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// A .env file in the working directory is read first when present.
func LoadWithEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("FRAUD_ENV"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("FRAUD_MODEL_DIR"); v != "" {
		c.Artifacts.ModelDir = v
	}
	if v := os.Getenv("FRAUD_API_URL"); v != "" {
		c.Client.APIURL = v
	}
	if v := os.Getenv("FRAUD_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("FRAUD_PORT: %w", err)
		}
		c.Server.Port = p
	}
	if v := os.Getenv("FRAUD_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.LogShipping.Brokers = strings.Split(v, ",")
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Artifacts.ModelFile == "" {
		return fmt.Errorf("artifacts.model_file is required")
	}
	if c.Metrics.Enabled && c.Metrics.Path == "/metrics" {
		return fmt.Errorf("metrics.path cannot be /metrics, it is served by the evaluation metrics endpoint")
	}
	if c.Client.Timeout <= 0 {
		return fmt.Errorf("client.timeout must be positive")
	}
	if c.LogShipping.Enabled {
		if len(c.LogShipping.Brokers) == 0 {
			return fmt.Errorf("log_shipping.brokers cannot be empty when log shipping is enabled")
		}
		if c.LogShipping.Topic == "" {
			return fmt.Errorf("log_shipping.topic is required")
		}
	}
	return nil
}
