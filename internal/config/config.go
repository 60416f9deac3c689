package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Token         string  `env:"TOKEN,required,notEmpty"`
	AllowedUsers  []int64 `env:"ALLOWED_USERS"`
	DBPath        string  `env:"DB_PATH"        envDefault:"db.sqlite"`
	OpenAIAPIKey  string  `env:"OPENAI_API_KEY"`
	LocalAnalysis bool    `env:"LOCAL_ANALYSIS" envDefault:"false"`
	OCRLanguage   string  `env:"OCR_LANGUAGE"   envDefault:"eng"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}
