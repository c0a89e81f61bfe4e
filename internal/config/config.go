package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	GithubClientID      string
	GithubClientSecret  string
	GithubOAuthCallback string
	FrontendURL         string

	GithubAppID          string
	GithubInstallationID string
	GithubPrivateKeyPath string
	GithubWebhookSecret  string

	AIProvider  string
	GeminiKey   string
	GeminiModel string
	OpenAIKey   string
	OpenAIModel string

	QueueType string
	JobStore  string
	RedisAddr string

	BudgetEnabled    bool
	BudgetDailyUSD   float64
	BudgetPerJobUSD  float64
	AIRatePerSecond  int
	AIRateBurst      int
	MaxFileBytes     int
	PromptChunkChars int

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string
}

func Load() *Config {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "local"),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		GithubClientID:      getEnv("GITHUB_CLIENT_ID", ""),
		GithubClientSecret:  getEnv("GITHUB_CLIENT_SECRET", ""),
		GithubOAuthCallback: getEnv("GITHUB_OAUTH_CALLBACK", "http://localhost:8080/auth/callback"),
		FrontendURL:         getEnv("FRONTEND_URL", "http://localhost:3000"),

		GithubAppID:          getEnv("GITHUB_APP_ID", ""),
		GithubInstallationID: getEnv("GITHUB_APP_INSTALLATION_ID", ""),
		GithubPrivateKeyPath: getEnv("GITHUB_APP_PRIVATE_KEY_PATH", ""),
		GithubWebhookSecret:  getEnv("GITHUB_WEBHOOK_SECRET", ""),

		AIProvider:  getEnv("AI_PROVIDER", "gemini"),
		GeminiKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel: getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		OpenAIKey:   getEnv("OPENAI_KEY", ""),
		OpenAIModel: getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		QueueType: getEnv("QUEUE_TYPE", "memory"), // memory | redis
		JobStore:  getEnv("JOB_STORE", "memory"),  // memory | redis
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),

		BudgetEnabled:    getEnvBool("BUDGET_ENABLED", false),
		BudgetDailyUSD:   getEnvFloat("BUDGET_DAILY_USD", 5),
		BudgetPerJobUSD:  getEnvFloat("BUDGET_PER_JOB_USD", 0.5),
		AIRatePerSecond:  getEnvInt("AI_RATE_PER_SECOND", 1),
		AIRateBurst:      getEnvInt("AI_RATE_BURST", 2),
		MaxFileBytes:     getEnvInt("MAX_FILE_BYTES", 200_000),
		PromptChunkChars: getEnvInt("PROMPT_CHUNK_CHARS", 4000),

		SMTPHost: getEnv("SMTP_HOST", ""),
		SMTPPort: getEnvInt("SMTP_PORT", 587),
		SMTPUser: getEnv("SMTP_USER", ""),
		SMTPPass: getEnv("SMTP_PASS", ""),
		SMTPFrom: getEnv("SMTP_FROM", "audit@localhost"),
	}
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid env %s: %v", key, err)
	}
	return i
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("invalid env %s: %v", key, err)
	}
	return f
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Fatalf("invalid env %s: %v", key, err)
	}
	return b
}
