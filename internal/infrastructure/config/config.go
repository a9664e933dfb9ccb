package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	CORSOrigin string `env:"CORS_ORIGIN, default=http://localhost:5173"`
	UploadDir  string `env:"UPLOAD_DIR,  default=./public/uploads"`

	Mongo MongoConfig
	Redis RedisConfig
	Chat  ChatConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=eduskill"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type ChatConfig struct {
	// GeminiAPIKey enables live assistant replies; when empty the canned
	// fallback answers every request.
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	Model        string `env:"GEMINI_MODEL,     default=gemini-flash-latest"`
	DailyQuota   int    `env:"CHAT_DAILY_QUOTA, default=50"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
