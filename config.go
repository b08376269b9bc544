package members

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultTableName is the table holding the members collection
const DefaultTableName = "members"

// Config locates and authenticates the storage backend.
// Zero values leave the SDK defaults in place.
type Config struct {
	// TableName of the members collection
	TableName string `env:"MEMBERS_TABLE" envDefault:"members"`

	// Endpoint overrides the service endpoint, e.g. a local DynamoDB
	Endpoint string `env:"AWS_ENDPOINT"`

	// Region overrides the default region resolution
	Region string `env:"AWS_REGION"`

	// Credentials, when set, replace the default credential chain
	Credentials Credentials
}

// Credentials holds static AWS credentials
type Credentials struct {
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	SessionToken    string `env:"AWS_SESSION_TOKEN"`
}

// IsSet reports whether static credentials were provided
func (c Credentials) IsSet() bool {
	return c.AccessKeyID != "" || c.SecretAccessKey != ""
}

// Validate checks the configuration for values the backend would reject
func (c Config) Validate() error {
	if c.TableName == "" {
		return errors.New("table name is required")
	}
	if c.Credentials.IsSet() && (c.Credentials.AccessKeyID == "" || c.Credentials.SecretAccessKey == "") {
		return errors.New("both access key id and secret access key are required")
	}
	return nil
}

// ServerConfig holds process-level settings shared by the commands
type ServerConfig struct {
	Addr            string        `env:"MEMBERS_HTTP_ADDR" envDefault:":3000"`
	LogLevel        string        `env:"MEMBERS_LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"MEMBERS_LOG_FORMAT" envDefault:"console"`
	ShutdownTimeout time.Duration `env:"MEMBERS_SHUTDOWN_TIMEOUT" envDefault:"5s"`

	// Store selects the backend: "dynamodb" or "memory"
	Store string `env:"MEMBERS_STORE" envDefault:"dynamodb"`

	// Operation selects the handler served by the Lambda binary
	Operation string `env:"MEMBERS_OPERATION"`
}

// LoadConfig reads the backend configuration from the environment
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadServerConfig reads the process configuration from the environment
func LoadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
