package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort      string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL   string `env:"DATABASE_URL,required"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	CandidateCap    int `env:"MATCH_CANDIDATE_CAP" envDefault:"2000"`
	DefaultLimit    int `env:"MATCH_DEFAULT_LIMIT" envDefault:"10"`
	MaxLimit        int `env:"MATCH_MAX_LIMIT" envDefault:"50"`
	CacheTTLMinutes int `env:"MATCH_CACHE_TTL_MINUTES" envDefault:"10"`
	Workers         int `env:"MATCH_WORKERS" envDefault:"8"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
