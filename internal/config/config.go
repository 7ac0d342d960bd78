package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Ai        AIConfig
	Retrieval RetrievalConfig
	Routing   RoutingConfig
	Search    SearchConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	CorpusDir          string
	IngestTopic        string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	EmbeddingProvider string // "hashing" or "ollama"
	EmbeddingDim      int
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "ollama"
	LLMModel          string // e.g. "llama3.1:8b"
	LLMTimeoutSecs    int
}

type RetrievalConfig struct {
	ChunkStore     string // "memory" or "pgvector"
	ChunkSize      int
	ChunkOverlap   int
	TopK           int
	ScoreThreshold float64
}

// RoutingConfig carries the classifier keyword sets. They are data, not
// code: routing can be retuned without a rebuild.
type RoutingConfig struct {
	MedicalKeywords []string
	RecencyKeywords []string
}

type SearchConfig struct {
	Endpoint    string
	TimeoutSecs int
}

// Defaults for the routing keyword sets, overridable via env.
const (
	defaultMedicalKeywords = "symptom,pain,swelling,worried,concern,should i," +
		"is it normal,what does,why,medication,side effect,research,latest," +
		"treatment,therapy,diagnosis"
	defaultRecencyKeywords = "latest,recent,research,study,new,2024,2025"
)

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/assistant.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			CorpusDir:          getEnv("CORPUS_DIR", "data/corpus"),
			IngestTopic:        getEnv("INGEST_DOCUMENT_TOPIC_NAME", "INGEST_REFERENCE_DOCUMENT"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "hashing"),
			EmbeddingDim:      getEnvAsInt("EMBEDDING_DIM", 384),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3.1:8b"),
			LLMTimeoutSecs:    getEnvAsInt("LLM_TIMEOUT_SECS", 30),
		},
		Retrieval: RetrievalConfig{
			ChunkStore:     getEnv("CHUNK_STORE", "memory"),
			ChunkSize:      getEnvAsInt("CHUNK_SIZE", 1000),
			ChunkOverlap:   getEnvAsInt("CHUNK_OVERLAP", 200),
			TopK:           getEnvAsInt("RETRIEVAL_TOP_K", 5),
			ScoreThreshold: getEnvAsFloat("RETRIEVAL_SCORE_THRESHOLD", 0.35),
		},
		Routing: RoutingConfig{
			MedicalKeywords: getEnvAsList("MEDICAL_KEYWORDS", defaultMedicalKeywords),
			RecencyKeywords: getEnvAsList("RECENCY_KEYWORDS", defaultRecencyKeywords),
		},
		Search: SearchConfig{
			Endpoint:    getEnv("WEB_SEARCH_ENDPOINT", "https://api.duckduckgo.com/"),
			TimeoutSecs: getEnvAsInt("WEB_SEARCH_TIMEOUT_SECS", 5),
		},
	}
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(strings.ToLower(p)); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
