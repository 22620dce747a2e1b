package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_ADDRESS", "ENVIRONMENT", "MEMORIES_TABLE", "BUCKET_NAME",
		"EVENT_BUS_NAME", "UPLOAD_URL_TTL_SECONDS", "JWT_ISSUER", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "memories", cfg.MemoriesTable)
	assert.Equal(t, "memories-media", cfg.BucketName)
	assert.Equal(t, "", cfg.EventBusName)
	assert.Equal(t, 15*time.Minute, cfg.UploadURLTTL)
	assert.Equal(t, "memories-backend", cfg.JWTIssuer)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("MEMORIES_TABLE", "memories-prod")
	t.Setenv("BUCKET_NAME", "media-prod")
	t.Setenv("EVENT_BUS_NAME", "memories-bus")
	t.Setenv("MEDIA_BASE_URL", "https://media.example.com")
	t.Setenv("UPLOAD_URL_TTL_SECONDS", "120")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.Equal(t, "memories-prod", cfg.MemoriesTable)
	assert.Equal(t, "media-prod", cfg.BucketName)
	assert.Equal(t, "memories-bus", cfg.EventBusName)
	assert.Equal(t, "https://media.example.com", cfg.MediaBaseURL)
	assert.Equal(t, 2*time.Minute, cfg.UploadURLTTL)
}

func TestLoadConfig_InvalidTTLFallsBack(t *testing.T) {
	t.Setenv("UPLOAD_URL_TTL_SECONDS", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.UploadURLTTL)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Environment:   "development",
			MemoriesTable: "memories",
			BucketName:    "memories-media",
			UploadURLTTL:  time.Minute,
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("missing table", func(t *testing.T) {
		cfg := valid()
		cfg.MemoriesTable = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing bucket", func(t *testing.T) {
		cfg := valid()
		cfg.BucketName = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive ttl", func(t *testing.T) {
		cfg := valid()
		cfg.UploadURLTTL = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("production requires jwt secret outside lambda", func(t *testing.T) {
		cfg := valid()
		cfg.Environment = "production"
		assert.Error(t, cfg.Validate())

		cfg.JWTSecret = "secret"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("production inside lambda needs no secret", func(t *testing.T) {
		t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "memories-api")
		cfg := valid()
		cfg.Environment = "production"
		assert.NoError(t, cfg.Validate())
	})
}

func TestEnvironmentHelpers(t *testing.T) {
	cfg := &Config{Environment: "development"}
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg.Environment = "production"
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.IsProduction())

	assert.False(t, cfg.IsLambda())
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "memories-api")
	assert.True(t, cfg.IsLambda())
}
