package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("S3_BUCKET", "elib-assets")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "bookvault", cfg.Mongo.Database)
	assert.Equal(t, "us-east-1", cfg.S3.Region)
	assert.Equal(t, "elib-assets", cfg.S3.Bucket)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("S3_BUCKET", "elib-assets")
	t.Setenv("PORT", "9090")
	t.Setenv("MONGO_DATABASE", "elib")
	t.Setenv("S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("S3_USE_PATH_STYLE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "elib", cfg.Mongo.Database)
	assert.Equal(t, "http://localhost:9000", cfg.S3.Endpoint)
	assert.True(t, cfg.S3.UsePathStyle)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Port: "8080", Environment: "development", JWTSecret: "x"}
	assert.Error(t, cfg.Validate(), "missing bucket must fail validation")

	cfg.S3.Bucket = "elib-assets"
	assert.NoError(t, cfg.Validate())

	cfg.Environment = "production"
	cfg.JWTSecret = "dev-secret-change-me"
	assert.Error(t, cfg.Validate(), "default secret must not pass in production")
}
