package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	LogLevel string

	MongoURI string
	MongoDB  string

	// Postgres DSN of the hosted relational backend (Supabase) that owns
	// the Applications table.
	PostgresURI string

	// Optional; analytics caching is disabled when empty.
	RedisAddr string

	GCSBucket          string
	GCSCredentialsFile string
	GCSPublicRead      bool
	UploadFolder       string
	MaxUploadBytes     int64

	WorkflowBaseURL        string
	WorkflowRetries        int
	WorkflowTimeout        time.Duration
	WorkflowNotifyOnSubmit bool

	AnalyticsCacheTTL      time.Duration
	StrictSubmissionFields bool

	CORSAllowedOrigins []string
}

// Load reads configuration from the environment. A .env file is honoured
// when present and ignored otherwise.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "4000"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		MongoURI: getEnv("MONGODB_URI", getEnv("MONGO_URI", "")),
		MongoDB:  getEnv("MONGODB_DB_NAME", getEnv("MONGO_DB", "hireflow")),

		PostgresURI: getEnv("SUPABASE_DB_URL", getEnv("POSTGRES_URI", "")),

		RedisAddr: getEnv("REDIS_ADDR", getEnv("REDIS_URL", "")),

		GCSBucket:          getEnv("GCS_BUCKET", ""),
		GCSCredentialsFile: getEnv("GCS_CREDENTIALS_FILE", ""),
		GCSPublicRead:      getEnvBool("GCS_PUBLIC_READ", true),
		UploadFolder:       strings.Trim(getEnv("UPLOAD_FOLDER", "resumes"), "/"),
		MaxUploadBytes:     int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),

		WorkflowBaseURL:        strings.TrimRight(getEnv("WORKFLOW_BASE_URL", ""), "/"),
		WorkflowRetries:        getEnvInt("WORKFLOW_RETRIES", 2),
		WorkflowTimeout:        getEnvDuration("WORKFLOW_TIMEOUT", 15*time.Second),
		WorkflowNotifyOnSubmit: getEnvBool("WORKFLOW_NOTIFY_ON_SUBMIT", false),

		AnalyticsCacheTTL:      getEnvDuration("ANALYTICS_CACHE_TTL", time.Minute),
		StrictSubmissionFields: getEnvBool("SUBMISSION_STRICT_FIELDS", false),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go duration strings ("30s") or plain seconds ("30").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
