package config

import (
	"github.com/caarlos0/env/v8"
	"log/slog"
	"time"
)

type Config struct {
	AppName  string `env:"APP_NAME" envDefault:"Dimensify"`
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"debug"`

	StdoutTrace bool `env:"STDOUT_TRACE" envDefault:"false"`

	BodyLimitMB int `env:"BODY_LIMIT_MB" envDefault:"10"`

	RateLimitMaxRequests   int `env:"RATE_LIMIT_MAX_REQUESTS" envDefault:"100"`
	RateLimitDurationInSec int `env:"RATE_LIMIT_DURATION_IN_SEC" envDefault:"5"`

	SwaggerFilePath string `env:"SWAGGER_FILE_PATH" envDefault:"./docs/swagger.json"`
}

func New() *Config {
	conf := &Config{}

	if err := env.Parse(conf); err != nil {
		slog.Error(err.Error())

		panic("Failed to parse config")
	}

	return conf
}

func (c *Config) BodyLimit() int {
	return c.BodyLimitMB << 20
}

func (c *Config) RateLimitDuration() time.Duration {
	return time.Duration(c.RateLimitDurationInSec) * time.Second
}
