package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Generator GeneratorConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GeneratorConfig holds settings for the external text-generation (RAG) backend.
type GeneratorConfig struct {
	BaseURL          string `mapstructure:"base_url"`
	APIToken         string `mapstructure:"api_token"`
	TimeoutSecs      int    `mapstructure:"timeout_secs"`
	MaxResponseBytes int64  `mapstructure:"max_response_bytes"`
}

// Timeout returns the HTTP client timeout, defaulting to 120s when unset.
func (g *GeneratorConfig) Timeout() time.Duration {
	if g.TimeoutSecs <= 0 {
		return 120 * time.Second
	}
	return time.Duration(g.TimeoutSecs) * time.Second
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// IsProduction reports whether the server runs in production mode.
func (s *ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds the settings used to verify caller access tokens.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// Load reads configuration from environment variables with the VERDICTO_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("VERDICTO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "verdicto")
	v.SetDefault("db.password", "verdicto_secret")
	v.SetDefault("db.name", "verdicto_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "verdicto")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Generator defaults
	v.SetDefault("generator.base_url", "http://localhost:8000")
	v.SetDefault("generator.api_token", "")
	v.SetDefault("generator.timeout_secs", 120)
	v.SetDefault("generator.max_response_bytes", 4<<20)

	envBindings := map[string]string{
		"server.port":                  "VERDICTO_SERVER_PORT",
		"server.read_timeout":          "VERDICTO_SERVER_READ_TIMEOUT",
		"server.write_timeout":         "VERDICTO_SERVER_WRITE_TIMEOUT",
		"server.environment":           "VERDICTO_SERVER_ENVIRONMENT",
		"db.host":                      "VERDICTO_DB_HOST",
		"db.port":                      "VERDICTO_DB_PORT",
		"db.user":                      "VERDICTO_DB_USER",
		"db.password":                  "VERDICTO_DB_PASSWORD",
		"db.name":                      "VERDICTO_DB_NAME",
		"db.sslmode":                   "VERDICTO_DB_SSLMODE",
		"db.max_open":                  "VERDICTO_DB_MAX_OPEN",
		"db.max_idle":                  "VERDICTO_DB_MAX_IDLE",
		"jwt.secret":                   "VERDICTO_JWT_SECRET",
		"jwt.issuer":                   "VERDICTO_JWT_ISSUER",
		"cors.allowed_origins":         "VERDICTO_CORS_ALLOWED_ORIGINS",
		"generator.base_url":           "VERDICTO_GENERATOR_BASE_URL",
		"generator.api_token":          "VERDICTO_GENERATOR_API_TOKEN",
		"generator.timeout_secs":       "VERDICTO_GENERATOR_TIMEOUT_SECS",
		"generator.max_response_bytes": "VERDICTO_GENERATOR_MAX_RESPONSE_BYTES",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if VERDICTO_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("VERDICTO_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret: v.GetString("jwt.secret"),
		Issuer: v.GetString("jwt.issuer"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Generator = GeneratorConfig{
		BaseURL:          strings.TrimRight(v.GetString("generator.base_url"), "/"),
		APIToken:         v.GetString("generator.api_token"),
		TimeoutSecs:      v.GetInt("generator.timeout_secs"),
		MaxResponseBytes: v.GetInt64("generator.max_response_bytes"),
	}
	if cfg.Generator.BaseURL == "" {
		return nil, fmt.Errorf("generator.base_url must be set")
	}

	return cfg, nil
}
