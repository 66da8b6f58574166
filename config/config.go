package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Placeholder values shipped in the sample .env. A key equal to one of these
// counts as "not configured".
const (
	OpenAIPlaceholderKey      = "your-openai-api-key"
	NutritionixPlaceholderID  = "your-nutritionix-app-id"
	NutritionixPlaceholderKey = "your-nutritionix-api-key"
)

const (
	DefaultMaxUploadBytes int64 = 16 << 20 // 16 MiB
	openAIKeyPrefix             = "sk-"
)

// Config is loaded once at startup and never mutated afterwards.
type Config struct {
	ServerPort     string
	UploadDir      string
	MaxUploadBytes int64
	GinMode        string
	LogLevel       string

	OpenAIAPIKey    string
	OpenAIModel     string
	OpenAIBaseURL   string
	OpenAITimeout   time.Duration
	OpenAIMaxTokens int

	NutritionixAppID   string
	NutritionixAPIKey  string
	NutritionixBaseURL string

	AWSRegion string // empty disables label recognition
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load .env file: %v", err)
	}

	timeoutSec, _ := strconv.Atoi(getEnv("OPENAI_TIMEOUT_SECONDS", "30"))
	if timeoutSec <= 0 {
		timeoutSec = 30
	}
	maxTokens, _ := strconv.Atoi(getEnv("OPENAI_MAX_TOKENS", "1500"))
	if maxTokens <= 0 {
		maxTokens = 1500
	}

	return &Config{
		ServerPort:     getEnv("PORT", "5000"),
		UploadDir:      getEnv("UPLOAD_FOLDER", "uploads"),
		MaxUploadBytes: DefaultMaxUploadBytes,
		GinMode:        getEnv("GIN_MODE", "release"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),

		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o"),
		OpenAIBaseURL:   strings.TrimRight(getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"), "/"),
		OpenAITimeout:   time.Duration(timeoutSec) * time.Second,
		OpenAIMaxTokens: maxTokens,

		NutritionixAppID:   getEnv("NUTRITIONIX_APP_ID", ""),
		NutritionixAPIKey:  getEnv("NUTRITIONIX_API_KEY", ""),
		NutritionixBaseURL: strings.TrimRight(getEnv("NUTRITIONIX_BASE_URL", "https://trackapi.nutritionix.com/v2"), "/"),

		AWSRegion: getEnv("AWS_REGION", ""),
	}
}

// HasOpenAIKey reports whether some inference key was supplied at all.
func (c *Config) HasOpenAIKey() bool {
	return c.OpenAIAPIKey != "" && c.OpenAIAPIKey != OpenAIPlaceholderKey
}

// OpenAIConfigured additionally requires the key to look like a real one.
func (c *Config) OpenAIConfigured() bool {
	return c.HasOpenAIKey() && strings.HasPrefix(c.OpenAIAPIKey, openAIKeyPrefix)
}

func (c *Config) NutritionixConfigured() bool {
	return c.NutritionixAppID != "" && c.NutritionixAppID != NutritionixPlaceholderID &&
		c.NutritionixAPIKey != "" && c.NutritionixAPIKey != NutritionixPlaceholderKey
}

func (c *Config) RecognitionConfigured() bool {
	return c.AWSRegion != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
