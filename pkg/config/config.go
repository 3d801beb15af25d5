package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/arnavshah/troop-swap-api-go/pkg/generator"
	"github.com/arnavshah/troop-swap-api-go/pkg/models"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the server settings
type Config struct {
	Port          string
	GinMode       string
	DatabaseURL   string
	DataPath      string
	LogLevel      string
	JWTSecret     string
	MasterSecret  string
	AdminUsername string
	AdminPassword string
	MinMarches    int
	MaxMarches    int
	Seed          int64
	Generator     generator.Config
}

// LoadDotEnv loads the first .env found in the working directory or its parents
func LoadDotEnv() {
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getenv("PORT", "8000"),
		GinMode:       os.Getenv("GIN_MODE"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DataPath:      getenv("DATA_PATH", "troop_swap.db"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		MasterSecret:  os.Getenv("API_MASTER_SECRET"),
		AdminUsername: getenv("ADMIN_USERNAME", "admin"),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin123"),
		Generator:     generator.DefaultConfig(),
	}

	var err error
	if cfg.MinMarches, err = getint("MIN_MARCHES", 4); err != nil {
		return nil, err
	}
	if cfg.MaxMarches, err = getint("MAX_MARCHES", 6); err != nil {
		return nil, err
	}
	if cfg.MinMarches < 0 || cfg.MaxMarches < cfg.MinMarches {
		return nil, fmt.Errorf("invalid march bounds %d..%d", cfg.MinMarches, cfg.MaxMarches)
	}
	if v := os.Getenv("SWAP_SEED"); v != "" {
		if cfg.Seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, fmt.Errorf("SWAP_SEED: %w", err)
		}
	}

	if path := os.Getenv("LADDER_FILE"); path != "" {
		if cfg.Generator, err = LoadLadder(path); err != nil {
			return nil, err
		}
	}
	if v := os.Getenv("STRENGTH_DIRECTION"); v != "" {
		cfg.Generator.StrengthDirection = generator.Direction(strings.ToLower(v))
	}
	if v := os.Getenv("LEAD_GROUP"); v != "" {
		g, err := models.ParseGroup(v)
		if err != nil {
			return nil, fmt.Errorf("LEAD_GROUP: %w", err)
		}
		cfg.Generator.LeadGroup = g
	}
	if err := cfg.Generator.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadLadder reads a generator ladder from a YAML file. Fields left out of the
// file keep their default values.
func LoadLadder(path string) (generator.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return generator.Config{}, fmt.Errorf("failed to read ladder file: %w", err)
	}
	return ParseLadder(data)
}

// ParseLadder decodes a YAML ladder on top of the default one
func ParseLadder(data []byte) (generator.Config, error) {
	cfg := generator.DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return generator.Config{}, fmt.Errorf("failed to parse ladder: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return generator.Config{}, err
	}
	return cfg, nil
}

// ListenAddr is the address the HTTP server binds to
func (c *Config) ListenAddr() string {
	return ":" + c.Port
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}
