package config

import (
	"errors"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the server configuration, read from the environment.
type Config struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"` // development, production, testing

	JWTSecret string `env:"JWT_SECRET" env-default:"dev-secret-change-me"`
	UploadDir string `env:"UPLOAD_DIR" env-default:"./data/uploads"`

	Mongo MongoConfig
	S3    S3Config
}

// MongoConfig configures the metadata store connection.
type MongoConfig struct {
	URI      string `env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	Database string `env:"MONGO_DATABASE" env-default:"bookvault"`
}

// S3Config configures the object-storage backend.
type S3Config struct {
	Region          string `env:"S3_REGION" env-default:"us-east-1"`
	Bucket          string `env:"S3_BUCKET"`
	AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	Endpoint        string `env:"S3_ENDPOINT"`
	UsePathStyle    bool   `env:"S3_USE_PATH_STYLE" env-default:"false"`
	PublicBaseURL   string `env:"S3_PUBLIC_BASE_URL"`
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the server configuration.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	if c.S3.Bucket == "" {
		return errors.New("S3_BUCKET is required")
	}
	if c.Environment == "production" && c.JWTSecret == "dev-secret-change-me" {
		return errors.New("JWT_SECRET must be set in production")
	}
	return nil
}
