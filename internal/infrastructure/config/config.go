// Package config loads service configuration from environment variables.
package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret signs every session, verification and reset token. Required.
	JWTSecret string `env:"JWT_SECRET, required"`

	// AdminCredentials is the admin allow-list:
	// "email:bcrypt-hash:name" entries separated by commas. Required so the
	// service never boots with an empty admin surface by accident.
	AdminCredentials string `env:"ADMIN_CREDENTIALS, required"`

	// SiteURL is the frontend origin used in email links.
	SiteURL string `env:"SITE_URL, default=https://propamit.com"`

	Mongo MongoConfig
	Redis RedisConfig
	AWS   AWSConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=propamit"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type AWSConfig struct {
	Region   string `env:"AWS_REGION, default=us-east-1"`
	MailFrom string `env:"MAIL_FROM,  default=no-reply@propamit.com"`
	Bucket   string `env:"S3_BUCKET,  default=propamit-uploads"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return &cfg, nil
}
