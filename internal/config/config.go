package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all service configuration loaded from environment
// variables, or from a local .env file when one exists.
type Config struct {
	Port string `env:"PORT" env-default:"8080"`

	MongoURI string `env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	MongoDB  string `env:"MONGO_DB" env-default:"playlist_manager"`

	RedisAddr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" env-default:""`

	JWTSecret string        `env:"JWT_SECRET" env-required:"true"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" env-default:"168h"`

	SpotifyClientID  string `env:"SPOTIFY_CLIENT_ID"`
	SpotifySecretKey string `env:"SPOTIFY_SECRET_KEY"`
	SpotifyMarket    string `env:"SPOTIFY_MARKET" env-default:"IN"`

	MinioEndpoint  string `env:"MINIO_ENDPOINT" env-default:"localhost:9000"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY"`
	MinioBucket    string `env:"MINIO_BUCKET" env-default:"playlist-covers"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL" env-default:"false"`

	CORSOrigins []string `env:"CORS_ORIGINS" env-default:"http://localhost:5173,http://localhost:3000"`
}

// Load reads configuration from .env when present, falling back to the
// process environment.
func Load() (*Config, error) {
	var cfg Config
	if _, err := os.Stat(".env"); err == nil {
		if err := cleanenv.ReadConfig(".env", &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
