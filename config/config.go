package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"
)

const (
	CONFIG_PATH = "./res/config.yaml"

	DatabaseTypeMongo    = "mongo"
	DatabaseTypePostgres = "postgres"
)

// ServiceConfig holds the configuration for the service.
type ServiceConfig struct {
	ServiceName string          `yaml:"service_name" validate:"required"`
	LogLevel    string          `yaml:"loglevel" validate:"required"`
	Host        string          `yaml:"host" validate:"required"`
	Port        string          `yaml:"port" validate:"required,numeric"`
	SecretKey   string          `yaml:"secret_key" validate:"required,min=16"`
	Session     SessionConfig   `yaml:"session"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
	Database    Database        `yaml:"database"`
}

type SessionConfig struct {
	TTL          time.Duration `yaml:"ttl" validate:"required"`
	CookieSecure bool          `yaml:"cookie_secure"`
}

// RateLimitConfig bounds POST requests to the login and register forms.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"gt=0"`
	Burst             int     `yaml:"burst" validate:"gt=0"`
}

// Database selects the backing store. Only the section matching Type is validated.
type Database struct {
	Type     string         `yaml:"type" validate:"required,oneof=mongo postgres"`
	MongoDB  MongoDBConfig  `yaml:"mongodb_config" validate:"-"`
	Postgres PostgresConfig `yaml:"postgres_config" validate:"-"`
}

// MongoDBConfig holds the MongoDB connection settings.
type MongoDBConfig struct {
	DSN              string             `yaml:"dsn" validate:"required"`
	DatabaseName     string             `yaml:"database_name" validate:"required"`
	Timeout          time.Duration      `yaml:"timeout"`
	Options          MongoServerOptions `yaml:"mongo_server_options"`
	ValidCollections []string           `yaml:"valid_collections" validate:"required"`
	ValidFields      []string           `yaml:"valid_fields" validate:"required"`
}

type PostgresConfig struct {
	DSN     string                `yaml:"dsn" validate:"required"`
	Options PostgresServerOptions `yaml:"postgres_server_options"`
}

type MongoServerOptions struct {
	APIVersion           string `yaml:"api_version"`
	SetStrict            bool   `yaml:"set_strict"`
	SetDeprecationErrors bool   `yaml:"set_deprecation_errors"`
}

type PostgresServerOptions struct {
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// EnvOverrides are the process environment variables that take precedence
// over the YAML file.
type EnvOverrides struct {
	DatabaseName string `mapstructure:"DATABASE_NAME"`
	DatabaseURI  string `mapstructure:"DATABASE_URI"`
	DatabaseType string `mapstructure:"DATABASE_TYPE"`
	SecretKey    string `mapstructure:"SECRET_KEY"`
	BindAddress  string `mapstructure:"BIND_ADDRESS"`
	Port         string `mapstructure:"PORT"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`
}

// LoadConfig reads the YAML file, overlays the process environment and
// validates the result. Startup must abort on any error returned here.
func LoadConfig(configPath string, validator *structValidator.Validate) (*ServiceConfig, error) {
	cfg, err := ReadLocalConfig(configPath)
	if err != nil {
		return nil, err
	}

	overrides, err := ReadEnvOverrides(os.Environ())
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides(overrides)

	if err := cfg.Validate(validator); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ReadLocalConfig reads the service configuration from a YAML file at the specified path.
// It unmarshals the YAML content into a ServiceConfig struct and returns it.
// If there is an error reading the file or unmarshaling the content, it returns an error.
func ReadLocalConfig(configPath string) (*ServiceConfig, error) {
	config := &ServiceConfig{}

	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(yamlFile, config)
	if err != nil {
		return nil, err
	}

	return config, nil
}

// ReadEnvOverrides decodes KEY=VALUE pairs, as returned by os.Environ, into EnvOverrides.
func ReadEnvOverrides(environ []string) (*EnvOverrides, error) {
	raw := make(map[string]interface{}, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || value == "" {
			continue
		}
		raw[key] = value
	}

	overrides := &EnvOverrides{}
	if err := mapstructure.Decode(raw, overrides); err != nil {
		return nil, fmt.Errorf("failed to decode environment: %w", err)
	}
	return overrides, nil
}

// ApplyEnvOverrides copies every non-empty override onto the configuration.
// DATABASE_URI applies to whichever database type ends up selected.
func (c *ServiceConfig) ApplyEnvOverrides(o *EnvOverrides) {
	if o == nil {
		return
	}
	if o.DatabaseType != "" {
		c.Database.Type = o.DatabaseType
	}
	if o.DatabaseURI != "" {
		switch c.Database.Type {
		case DatabaseTypePostgres:
			c.Database.Postgres.DSN = o.DatabaseURI
		default:
			c.Database.MongoDB.DSN = o.DatabaseURI
		}
	}
	if o.DatabaseName != "" {
		c.Database.MongoDB.DatabaseName = o.DatabaseName
	}
	if o.SecretKey != "" {
		c.SecretKey = o.SecretKey
	}
	if o.BindAddress != "" {
		c.Host = o.BindAddress
	}
	if o.Port != "" {
		c.Port = o.Port
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
}

// Validate checks the top-level settings and the settings of the selected database.
func (c *ServiceConfig) Validate(validator *structValidator.Validate) error {
	if err := validator.Struct(c); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	var dbErr error
	switch c.Database.Type {
	case DatabaseTypeMongo:
		dbErr = validator.Struct(c.Database.MongoDB)
	case DatabaseTypePostgres:
		dbErr = validator.Struct(c.Database.Postgres)
	}
	if dbErr != nil {
		return fmt.Errorf("%s database validation error: %w", c.Database.Type, dbErr)
	}

	return nil
}

func BuildServerAPIOptions(cfg MongoServerOptions) *options.ServerAPIOptions {
	opts := options.ServerAPI(options.ServerAPIVersion(cfg.APIVersion))
	opts.SetStrict(cfg.SetStrict)
	opts.SetDeprecationErrors(cfg.SetDeprecationErrors)

	return opts
}

func ListToMap(list []string) map[string]bool {
	result := make(map[string]bool)
	for _, item := range list {
		result[item] = true
	}
	return result
}
