package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config aggregates configuration for the whole service.
type Config struct {
	Server ServerConfig
	Agent  AgentConfig
	Store  StoreConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	agent, err := loadAgentConfig()
	if err != nil {
		return nil, err
	}

	store, err := loadStoreConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Agent: agent, Store: store}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	origins := strings.Split(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	if strings.Contains(port, ":") {
		// Allow passing ":8080" or "127.0.0.1:8080" directly.
		return ServerConfig{Addr: port, AllowedOrigins: origins}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port, AllowedOrigins: origins}, nil
}

// AgentConfig tunes the conversation engine.
type AgentConfig struct {
	MaxSteps int
}

func loadAgentConfig() (AgentConfig, error) {
	maxSteps := 10
	if override, err := parseOptionalIntEnv("AGENT_MAX_STEPS"); err != nil {
		return AgentConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return AgentConfig{}, fmt.Errorf("AGENT_MAX_STEPS must be at least 1, got %d", *override)
		}
		maxSteps = *override
	}

	return AgentConfig{MaxSteps: maxSteps}, nil
}

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// StoreConfig selects and locates the account store backend.
type StoreConfig struct {
	Driver string
	// Path is the SQLite database file, used when Driver is "sqlite".
	Path string
	// AccountsFile optionally seeds the store from a JSON document.
	AccountsFile string
}

func loadStoreConfig() (StoreConfig, error) {
	driver := strings.ToLower(getEnvOrDefault("STORE_DRIVER", DriverMemory))
	switch driver {
	case DriverMemory, DriverSQLite:
	default:
		return StoreConfig{}, fmt.Errorf("invalid STORE_DRIVER value %q: want %q or %q", driver, DriverMemory, DriverSQLite)
	}

	return StoreConfig{
		Driver:       driver,
		Path:         getEnvOrDefault("STORE_PATH", "data/banking.db"),
		AccountsFile: strings.TrimSpace(os.Getenv("ACCOUNTS_FILE")),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
