package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Keys   APIKeys
	Ai     AIConfig
	Export ExportConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	LandingPage        string
	UploadDir          string
	BodyLimitMB        int
	MaxParallelFiles   int
	NatsURL            string
	EventsTopic        string
}

type APIKeys struct {
	Anthropic   string
	HuggingFace string
}

type AIConfig struct {
	LLMProvider    string // "anthropic", "ollama" or "huggingface"
	LLMModel       string // only used by providers without a candidate list
	BaseURL        string
	CandidatesFile string
	AttemptTimeout time.Duration
	UnavailableTTL time.Duration
	RedisURL       string
}

type ExportConfig struct {
	PDFCompress bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}
	return FromEnv()
}

// FromEnv reads the configuration without touching .env files.
func FromEnv() *Config {
	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			LandingPage:        getEnv("APP_LANDING_PAGE", "./frontend/index.html"),
			UploadDir:          getEnv("APP_UPLOAD_DIR", os.TempDir()),
			BodyLimitMB:        getEnvAsInt("APP_BODY_LIMIT_MB", 50),
			MaxParallelFiles:   getEnvAsInt("APP_MAX_PARALLEL_FILES", 4),
			NatsURL:            getEnv("NATS_URL", ""),
			EventsTopic:        getEnv("EVENTS_TOPIC_NAME", "DOCUMENT_EVENTS"),
		},
		Keys: APIKeys{
			Anthropic:   getEnv("ANTHROPIC_API_KEY", ""),
			HuggingFace: getEnv("HUGGINGFACE_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:    strings.ToLower(getEnv("LLM_PROVIDER", "anthropic")),
			LLMModel:       getEnv("LLM_MODEL", ""),
			BaseURL:        getEnv("LLM_BASE_URL", ""),
			CandidatesFile: getEnv("AI_CANDIDATES_FILE", ""),
			AttemptTimeout: getEnvAsDuration("AI_ATTEMPT_TIMEOUT", 120*time.Second),
			UnavailableTTL: getEnvAsDuration("AI_UNAVAILABLE_TTL", 10*time.Minute),
			RedisURL:       getEnv("REDIS_URL", ""),
		},
		Export: ExportConfig{
			PDFCompress: getEnvAsBool("EXPORT_PDF_COMPRESS", true),
		},
	}
}

// APIKey returns the credential of the configured provider.
func (c AIConfig) APIKey(keys APIKeys) string {
	switch c.LLMProvider {
	case "huggingface":
		return keys.HuggingFace
	case "ollama":
		return ""
	default:
		return keys.Anthropic
	}
}

func (c AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("90s") or plain seconds ("90").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	if secs, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
