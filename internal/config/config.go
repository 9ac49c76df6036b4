package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const defaultMySQLDSN = "user:password@tcp(localhost:3306)/joblit?charset=utf8mb4&parseTime=True&loc=UTC"

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string `yaml:"serverPort"`
	DBDriver    string `yaml:"dbDriver"`
	DatabaseDSN string `yaml:"databaseDSN"`
	RedisAddr   string `yaml:"redisAddr"`
	RedisDB     int    `yaml:"redisDB"`
	RedisPass   string `yaml:"redisPassword"`
	JWTSecret   string `yaml:"jwtSecret"`
	LogLevel    string `yaml:"logLevel"`
	ResetDB     bool   `yaml:"resetDB"`
	SwaggerHost string `yaml:"swaggerHost"`
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	cfg := defaults()
	applyEnv(cfg)
	return cfg
}

// LoadFile reads a YAML file and then applies environment overrides.
// Keys missing from the file keep their defaults.
func LoadFile(path string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyEnv(cfg)
	return cfg, nil
}

// FromEnvironment uses JOBLIT_CONFIG as a YAML file when set, otherwise Load.
func FromEnvironment() (*Config, error) {
	if path := os.Getenv("JOBLIT_CONFIG"); path != "" {
		return LoadFile(path)
	}
	return Load(), nil
}

func defaults() *Config {
	return &Config{
		ServerPort:  "8080",
		DBDriver:    "mysql",
		DatabaseDSN: defaultMySQLDSN,
		RedisAddr:   "localhost:6379",
		JWTSecret:   "change-me",
		LogLevel:    "info",
	}
}

func applyEnv(cfg *Config) {
	cfg.ServerPort = getEnv("SERVER_PORT", cfg.ServerPort)
	cfg.DBDriver = getEnv("DB_DRIVER", cfg.DBDriver)
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", getEnv("MYSQL_DSN", cfg.DatabaseDSN))
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisDB = getEnvInt("REDIS_DB", cfg.RedisDB)
	cfg.RedisPass = getEnv("REDIS_PASSWORD", cfg.RedisPass)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.ResetDB = getEnvBool("RESET_DB", cfg.ResetDB)
	cfg.SwaggerHost = getEnv("SWAGGER_HOST", cfg.SwaggerHost)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
