package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	ctopics "github.com/radieske/betting-backoffice/pkg/contracts/topics"
)

// Config centraliza variáveis de ambiente e parâmetros de execução do console
// Inclui backend, cache, auditoria e portas
type Config struct {
	Env         string // "local", "dev", "prod"
	ServiceName string // ex: "backoffice-console"

	// Backend REST consumido pelas telas
	APIBaseURL string
	APITimeout time.Duration

	// Telas
	PageSize      int
	DefaultBookie string        // usado quando a aposta é criada sem bookie
	PickerWait    time.Duration // quanto a tela espera os pickers antes de renderizar "loading"

	// Cache de leitura
	CacheBackend       string // "memory" | "redis"
	CacheTTL           time.Duration
	CachePruneSchedule string // expressão cron, só para o backend em memória
	RedisAddr          string
	RedisPrefix        string

	// Auditoria das mutações (vazio = desligado)
	KafkaBrokers     string // "a:9092,b:9092"
	TopicAudit       string
	AuditPostgresDSN string

	// Portas do serviço
	HTTPPort    string // console HTML + /api
	MetricsPort string // porta exclusiva para /metrics e /healthz
}

// Load carrega o .env (se existir) e as variáveis de ambiente com defaults
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:         getEnv("ENV", "local"),
		ServiceName: getEnv("SERVICE_NAME", "backoffice-console"),

		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8000"),
		APITimeout: getDuration("API_TIMEOUT", 10*time.Second),

		PageSize:      getInt("PAGE_SIZE", 10),
		DefaultBookie: getEnv("DEFAULT_BOOKIE", "BetMaster"),
		PickerWait:    getDuration("PICKER_WAIT", 1500*time.Millisecond),

		CacheBackend:       getEnv("CACHE_BACKEND", "memory"),
		CacheTTL:           getDuration("CACHE_TTL", 30*time.Second),
		CachePruneSchedule: getEnv("CACHE_PRUNE_SCHEDULE", "@every 1m"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPrefix:        getEnv("REDIS_PREFIX", "backoffice:q:"),

		KafkaBrokers:     getEnv("KAFKA_BROKERS", ""),
		TopicAudit:       getEnv("KAFKA_TOPIC_AUDIT", ctopics.BackofficeAudit),
		AuditPostgresDSN: getEnv("AUDIT_POSTGRES_DSN", ""),

		HTTPPort:    getEnv("HTTP_PORT", "8090"),
		MetricsPort: getEnv("METRICS_PORT", "9100"),
	}
}

// getEnv retorna o valor da variável de ambiente ou o default
func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

// getInt ignora valores inválidos ou não positivos
func getInt(key string, def int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// getDuration aceita "30s", "1500ms" etc.
func getDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
