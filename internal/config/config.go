package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config is read once at startup and never mutated afterwards.
type Config struct {
	Port        string
	DatabaseDSN string
	LogLevel    string
	LogFormat   string

	AIProvider            string
	OpenAIAPIKey          string
	OpenAIModel           string
	OpenAIBaseURL         string
	GeminiAPIKey          string
	GeminiModel           string
	AICallTimeout         time.Duration
	RegenerateTemperature float32

	DefaultLanguage    string
	MaxSourceChars     int
	MinSourceChars     int
	RetainSourceText   bool
	StoreTransactional bool

	AllowedOrigins []string
	MaxUploadBytes int64

	GCPProjectID          string
	DocumentAILocation    string
	DocumentAIProcessorID string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is honoured when present.
func Load() (*Config, error) {
	cfg, err := LoadDatabase()
	if err != nil {
		return nil, err
	}

	switch cfg.AIProvider {
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, errors.New("OPENAI_API_KEY environment variable is required")
		}
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, errors.New("GEMINI_API_KEY environment variable is required")
		}
	default:
		return nil, errors.New("AI_PROVIDER must be one of: openai, gemini")
	}

	if cfg.AICallTimeout <= 0 {
		return nil, errors.New("AI_CALL_TIMEOUT must be positive")
	}

	return cfg, nil
}

// LoadDatabase reads the same configuration as Load but only insists on the
// database settings. The migration command uses it.
func LoadDatabase() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        envString("PORT", "8080"),
		DatabaseDSN: envString("DATABASE_DSN", ""),
		LogLevel:    envString("LOG_LEVEL", "info"),
		LogFormat:   envString("LOG_FORMAT", "json"),

		AIProvider:            strings.ToLower(envString("AI_PROVIDER", ProviderOpenAI)),
		OpenAIAPIKey:          envString("OPENAI_API_KEY", ""),
		OpenAIModel:           envString("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:         envString("OPENAI_BASE_URL", ""),
		GeminiAPIKey:          envString("GEMINI_API_KEY", ""),
		GeminiModel:           envString("GEMINI_MODEL", "gemini-2.0-flash"),
		AICallTimeout:         envDuration("AI_CALL_TIMEOUT", 90*time.Second),
		RegenerateTemperature: float32(envFloat("REGENERATE_TEMPERATURE", 0.9)),

		DefaultLanguage:    strings.ToLower(envString("DEFAULT_LANGUAGE", "en")),
		MaxSourceChars:     envInt("MAX_SOURCE_CHARS", 60000),
		MinSourceChars:     envInt("MIN_SOURCE_CHARS", 50),
		RetainSourceText:   envBool("RETAIN_SOURCE_TEXT", true),
		StoreTransactional: envBool("STORE_TRANSACTIONAL", true),

		AllowedOrigins: envList("ALLOWED_ORIGINS", []string{"*"}),
		MaxUploadBytes: int64(envInt("MAX_UPLOAD_BYTES", 20<<20)),

		GCPProjectID:          envString("GCP_PROJECT_ID", ""),
		DocumentAILocation:    envString("DOCUMENTAI_LOCATION", "us"),
		DocumentAIProcessorID: envString("DOCUMENTAI_PROCESSOR_ID", ""),
	}

	if cfg.DatabaseDSN == "" {
		return nil, errors.New("DATABASE_DSN environment variable is required")
	}
	return cfg, nil
}

// ExtractionEnabled reports whether the Google Cloud extractors are configured.
func (c *Config) ExtractionEnabled() bool {
	return c.GCPProjectID != ""
}

func envString(name, def string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	return v
}

func envInt(name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func envFloat(name string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func envBool(name string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}

func envDuration(name string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	// bare numbers are seconds
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}

func envList(name string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
