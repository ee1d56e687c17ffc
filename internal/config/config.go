package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all process-wide configuration. It is built once in main
// and passed by reference into the components that need it; nothing reads
// the environment after startup.
type Config struct {
	Env  string `envconfig:"APP_ENV" default:"development"`
	Port string `envconfig:"PORT" default:"8080"`

	MongoURI string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDB  string `envconfig:"MONGO_DB" default:"shopkart"`

	// JWTSecret signs session tokens. The service refuses to start
	// without it rather than issue tokens with an empty key.
	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	MinioEndpoint  string `envconfig:"MINIO_ENDPOINT" default:"localhost:9000"`
	MinioAccessKey string `envconfig:"MINIO_ACCESS_KEY" required:"true"`
	MinioSecretKey string `envconfig:"MINIO_SECRET_KEY" required:"true"`
	MinioBucket    string `envconfig:"MINIO_BUCKET" default:"product-images"`
	MinioUseSSL    bool   `envconfig:"MINIO_USE_SSL" default:"false"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}
