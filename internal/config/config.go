package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Client   ClientConfig
	Database DatabaseConfig
	Ai       AIConfig
	Tracing  TracingConfig
	Pdf      PdfConfig
}

// AppConfig configures the reference backend
type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	ExchangeTopic      string // watermill topic for recorded chat exchanges
}

// ClientConfig configures the terminal coach client
type ClientConfig struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	LogFilePath    string
}

type DatabaseConfig struct {
	Connection string // empty means in-memory chat history
}

type AIConfig struct {
	LLMProvider   string // "groq", "openai" or "ollama"
	LLMModel      string
	LLMBaseURL    string // empty means the provider default
	GroqAPIKey    string
	OllamaBaseURL string
}

type PdfConfig struct {
	UnicodeFontPath string // TTF for non-Latin roadmaps, e.g. Noto Sans Devanagari
	Compress        bool
}

type TracingConfig struct {
	Enabled      bool
	OtlpEndpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			ExchangeTopic:      getEnv("CHAT_EXCHANGE_TOPIC_NAME", "CHAT_EXCHANGE_RECORDED"),
		},
		Client: ClientConfig{
			APIBaseURL:     getEnv("COACH_API_URL", "http://localhost:8000"),
			RequestTimeout: time.Duration(getEnvAsInt("COACH_REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,
			LogFilePath:    getEnv("COACH_LOG_FILE_PATH", "logs/coach.log"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "groq"),
			LLMModel:      getEnv("LLM_MODEL", "llama-3.1-8b-instant"),
			LLMBaseURL:    getEnv("LLM_BASE_URL", ""),
			GroqAPIKey:    getEnv("GROQ_API_KEY", ""),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Tracing: TracingConfig{
			Enabled:      getEnv("OTEL_ENABLED", "") == "true",
			OtlpEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		},
		Pdf: PdfConfig{
			UnicodeFontPath: getEnv("PDF_UNICODE_FONT_PATH", ""),
			Compress:        getEnv("PDF_COMPRESS", "true") == "true",
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil && value > 0 {
		return value
	}
	return fallback
}
