package config

import "os"

// Load reads configuration from environment variables as raw strings
// Components handle validation and defaults during initialization
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         os.Getenv("SERVER_PORT"),
			Environment:  os.Getenv("SERVER_ENV"),
			ReadTimeout:  os.Getenv("SERVER_READ_TIMEOUT"),
			WriteTimeout: os.Getenv("SERVER_WRITE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   os.Getenv("DB_NAME"),
			SSLMode:  os.Getenv("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
		},
		Worker: WorkerConfig{
			ReloadInterval: os.Getenv("WORKER_RELOAD_INTERVAL"),
		},
		Logging: LoggingConfig{
			Level:       os.Getenv("LOG_LEVEL"),
			Format:      os.Getenv("LOG_FORMAT"),
			ServiceName: os.Getenv("SERVICE_NAME"),
		},
		Model: ModelConfig{
			Path:        os.Getenv("MODEL_PATH"),
			Backend:     os.Getenv("MODEL_BACKEND"),
			RemoteURL:   os.Getenv("MODEL_REMOTE_URL"),
			HTTPTimeout: os.Getenv("MODEL_HTTP_TIMEOUT"),
		},
		Categorizer: CategorizerConfig{
			DefaultTopK: os.Getenv("CATEGORIZER_DEFAULT_TOPK"),
			MaxTopK:     os.Getenv("CATEGORIZER_MAX_TOPK"),
			MinTopScore: os.Getenv("CATEGORIZER_MIN_TOP_SCORE"),
			MinGap:      os.Getenv("CATEGORIZER_MIN_GAP"),
		},
	}
}
