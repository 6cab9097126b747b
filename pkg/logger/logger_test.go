package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	logger := New()
	assert.NotNil(t, logger)
	assert.NotNil(t, logger.info)
	assert.NotNil(t, logger.error)
	assert.NotNil(t, logger.warn)
}

func TestLogger_AllLevels(t *testing.T) {
	logger := New()

	// None of these should panic
	logger.Info("listing %s created by %s", "prop-1", "user-1")
	logger.Warn("failed to delete old image %s: %v", "media/x.jpg", "timeout")
	logger.Error("verification update failed: %v", "conflict")
}

func TestLogger_Formatting(t *testing.T) {
	logger := New()

	logger.Info("search returned %d results in %dms", 12, 34)
	logger.Error("status %d for listing %s", 409, "prop-9")
}
