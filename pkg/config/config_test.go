package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("SERVER_PORT", "8080")
	os.Setenv("DB_HOST", "localhost")
	os.Setenv("DB_PORT", "5432")
	os.Setenv("DB_USER", "testuser")
	os.Setenv("DB_PASSWORD", "testpass")
	os.Setenv("DB_NAME", "testdb")
	os.Setenv("REDIS_HOST", "localhost")
	os.Setenv("REDIS_PORT", "6379")
	os.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.NotNil(t, cfg)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "testuser", cfg.DBUser)
	assert.Equal(t, "testpass", cfg.DBPassword)
	assert.Equal(t, "testdb", cfg.DBName)
	assert.Equal(t, "localhost", cfg.RedisHost)
	assert.Equal(t, "6379", cfg.RedisPort)
	assert.Equal(t, "test-secret", cfg.JWTSecret)

	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("DB_HOST")
	os.Unsetenv("DB_PORT")
	os.Unsetenv("DB_USER")
	os.Unsetenv("DB_PASSWORD")
	os.Unsetenv("DB_NAME")
	os.Unsetenv("REDIS_HOST")
	os.Unsetenv("REDIS_PORT")
	os.Unsetenv("JWT_SECRET")
}

func TestLoadConfig_Defaults(t *testing.T) {
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("DB_HOST")
	os.Unsetenv("DB_NAME")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "homefind", cfg.DBName)
}

func TestLoadConfig_SearchWeightDefaults(t *testing.T) {
	os.Unsetenv("SEARCH_WEIGHT_TITLE")
	os.Unsetenv("SEARCH_WEIGHT_DESCRIPTION")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 10, cfg.SearchWeightTitle)
	assert.Equal(t, 8, cfg.SearchWeightAddress)
	assert.Equal(t, 7, cfg.SearchWeightCity)
	assert.Equal(t, 6, cfg.SearchWeightState)
	assert.Equal(t, 5, cfg.SearchWeightLandmark)
	assert.Equal(t, 4, cfg.SearchWeightLGA)
	assert.Equal(t, 3, cfg.SearchWeightDescription)
}

func TestLoadConfig_SearchWeightOverride(t *testing.T) {
	os.Setenv("SEARCH_WEIGHT_TITLE", "20")
	defer os.Unsetenv("SEARCH_WEIGHT_TITLE")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 20, cfg.SearchWeightTitle)
}

func TestLoadConfig_SearchWeightInvalidFallsBack(t *testing.T) {
	os.Setenv("SEARCH_WEIGHT_CITY", "not-a-number")
	defer os.Unsetenv("SEARCH_WEIGHT_CITY")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 7, cfg.SearchWeightCity)
}
