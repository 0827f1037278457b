package config

// Config contains all configuration grouped by domain
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Worker      WorkerConfig
	Logging     LoggingConfig
	Model       ModelConfig
	Categorizer CategorizerConfig
}

// All config structs use string fields only - packages handle conversion during initialization
type ServerConfig struct {
	Port         string
	Environment  string
	ReadTimeout  string
	WriteTimeout string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	Secret string
}

type WorkerConfig struct {
	ReloadInterval string
}

type LoggingConfig struct {
	Level       string
	Format      string
	ServiceName string
}

// ModelConfig selects where pipeline predictions come from
type ModelConfig struct {
	Path        string
	Backend     string
	RemoteURL   string
	HTTPTimeout string
}

type CategorizerConfig struct {
	DefaultTopK string
	MaxTopK     string
	MinTopScore string
	MinGap      string
}
