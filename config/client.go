package config

import (
	"github.com/caarlos0/env/v8"
	"time"
)

type Client struct {
	Endpoint      string `env:"ENDPOINT" envDefault:"http://localhost:8080/api/resize"`
	MaxImages     int    `env:"MAX_IMAGES" envDefault:"10"`
	MaxFileSizeMB int    `env:"MAX_FILE_SIZE_MB" envDefault:"5"`
	TimeoutInSec  int    `env:"TIMEOUT_IN_SEC" envDefault:"0"`
	Quality       int    `env:"QUALITY" envDefault:"80"`
}

func NewClientConfig() *Client {
	conf := &Client{}

	if err := env.ParseWithOptions(conf, env.Options{Prefix: "DIMENSIFY_"}); err != nil {
		panic(err)
	}

	return conf
}

func (c *Client) MaxFileSize() int64 {
	return int64(c.MaxFileSizeMB) << 20
}

// Timeout is zero when the transport default applies.
func (c *Client) Timeout() time.Duration {
	return time.Duration(c.TimeoutInSec) * time.Second
}
