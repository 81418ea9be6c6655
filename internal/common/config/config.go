package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Addr       string `env:"HTTP_ADDR" envDefault:":8080"`
		Origin     string `env:"ORIGIN" envDefault:"*"`
		AdminToken string `env:"ADMIN_TOKEN" envDefault:""`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Telegram struct {
		BotToken string `env:"BOT_TOKEN,required"`
		Debug    bool   `env:"TELEGRAM_DEBUG" envDefault:"false"`
	}

	Ledger struct {
		Bucket    string `env:"LEDGER_BUCKET,required"`
		Region    string `env:"LEDGER_REGION" envDefault:"us-east-1"`
		KeyPrefix string `env:"LEDGER_KEY_PREFIX" envDefault:"ledgers"`
		// Base URL for anonymous read access to ledger objects. The bucket
		// must allow public GET under the key prefix.
		PublicBaseURL string `env:"LEDGER_PUBLIC_BASE_URL,required"`
	}

	Giveaway struct {
		DefaultWinnersCount  int    `env:"DEFAULT_WINNERS_COUNT" envDefault:"10"`
		DefaultWinnersFormat string `env:"DEFAULT_WINNERS_FORMAT" envDefault:"🎉 Congratulations {username}!"`
	}
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// Missing .env is fine, production sets variables directly.
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
