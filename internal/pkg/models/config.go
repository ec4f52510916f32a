package models

// Config holds all service configuration loaded from the environment
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	JWT      JWTConfig
	Dispatch DispatchConfig
	Location LocationConfig
	Logger   LoggerConfig
}

// AppConfig holds application metadata
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig holds PostgreSQL connection configuration
type DatabaseConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig holds NATS connection configuration
type NATSConfig struct {
	URL string
}

// JWTConfig holds JWT validation configuration
type JWTConfig struct {
	Secret string
	Issuer string
}

// DispatchConfig holds dispatch coordinator tuning
type DispatchConfig struct {
	SearchRadiusKm float64
	CandidateLimit int
	OfferWindowSec int
	MaxOfferRounds int
}

// LocationConfig holds location filter tuning
type LocationConfig struct {
	MinPublishIntervalSec int
	MinPublishDistanceM   float64
	MaxAccuracyM          float64
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}
