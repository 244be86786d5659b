package config

import (
	"github.com/caarlos0/env/v11"
)

type Config struct {
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:":8080"`
	PostgresConn  string `env:"POSTGRES_CONN,required"`
	PostgresDB    string `env:"POSTGRES_DATABASE" envDefault:"auction"`

	// Optional integrations; empty values disable them.
	RedisAddr string `env:"REDIS_ADDR"`
	NatsURL   string `env:"NATS_URL"`
}

func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
