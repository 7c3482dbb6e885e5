package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"API_BASE_URL", "PAGE_SIZE", "CACHE_TTL", "KAFKA_BROKERS", "DEFAULT_BOOKIE"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "", cfg.APIBaseURL) // definida mas vazia: respeita o valor
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, "backoffice_audit", cfg.TopicAudit)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://api:8000")
	t.Setenv("PAGE_SIZE", "25")
	t.Setenv("PICKER_WAIT", "250ms")
	t.Setenv("API_TIMEOUT", "nope")
	t.Setenv("CACHE_BACKEND", "redis")

	cfg := Load()

	assert.Equal(t, "http://api:8000", cfg.APIBaseURL)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, 250*time.Millisecond, cfg.PickerWait)
	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, "redis", cfg.CacheBackend)
}
