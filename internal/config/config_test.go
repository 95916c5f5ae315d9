package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadReadsTypedSections(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("CACHE_DRIVER", "redis")
	t.Setenv("PROPOSAL_TTL", "90m")
	t.Setenv("REVIEW_MAX_PAGE_SIZE", "25")
	t.Setenv("REVIEW_REQUIRED_FIELDS", " fullName, ,emailPrimary ")

	cfg := Load()

	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, CacheDriverRedis, cfg.Cache.Driver)
	assert.Equal(t, 90*time.Minute, cfg.Cache.ProposalTTL)
	assert.Equal(t, 25, cfg.Review.MaxPageSize)
	assert.Equal(t, 50, cfg.Review.DefaultPageSize)
	assert.Equal(t, []string{"fullName", "emailPrimary"}, cfg.Review.RequiredFields)
}

func TestLoadFallsBackOnMalformedValues(t *testing.T) {
	t.Setenv("NUDGE_SESSION_TTL", "soon")
	t.Setenv("REVIEW_DEFAULT_PAGE_SIZE", "many")

	cfg := Load()

	assert.Equal(t, 2*time.Hour, cfg.Cache.NudgeSessionTTL)
	assert.Equal(t, 50, cfg.Review.DefaultPageSize)
}

func TestLoadTracing(t *testing.T) {
	cfg := Load()
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "localhost:4318", cfg.Tracing.Endpoint)
	assert.Equal(t, "customer-insight-be", cfg.Tracing.ServiceName)

	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")
	t.Setenv("OTEL_SERVICE_NAME", "review-api")

	cfg = Load()
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, "collector:4318", cfg.Tracing.Endpoint)
	assert.Equal(t, "review-api", cfg.Tracing.ServiceName)
}
