package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultGeminiTimeout = 15 * time.Second

// Config is the bot's startup configuration, read from the process
// environment (with optional .env overlay).
type Config struct {
	BotToken      string
	GeminiAPIKey  string
	GeminiTimeout time.Duration
	DBPath        string
	QuestionsFile string
	ShuffleQuiz   bool
}

// Load reads configuration from the environment. A missing bot token
// is a fatal configuration error; everything else has a usable default.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:      os.Getenv("BOT_TOKEN"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiTimeout: defaultGeminiTimeout,
		DBPath:        os.Getenv("CARDIOBUD_DB"),
		QuestionsFile: os.Getenv("QUESTIONS_FILE"),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN environment variable is required")
	}

	if v := os.Getenv("GEMINI_TIMEOUT_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("GEMINI_TIMEOUT_SECONDS must be a positive integer, got %q", v)
		}
		cfg.GeminiTimeout = time.Duration(n) * time.Second
	}

	if v := os.Getenv("QUIZ_SHUFFLE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("QUIZ_SHUFFLE must be a boolean, got %q", v)
		}
		cfg.ShuffleQuiz = b
	}

	return cfg, nil
}
