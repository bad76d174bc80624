package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Wallet WalletConfig `mapstructure:"wallet"`
	Gacha  GachaConfig  `mapstructure:"gacha"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// Addr returns the listen address string.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type WalletConfig struct {
	Currency string `mapstructure:"currency"`
}

type GachaConfig struct {
	// Seed fixes the process-wide random source for reproducible draws;
	// -1 means self-seed from system entropy.
	Seed        int64  `mapstructure:"seed"`
	MaxDraws    int    `mapstructure:"max_draws"`
	DefaultPool string `mapstructure:"default_pool"`
}

// SeedValue returns the configured seed, or nil when self-seeding.
func (g GachaConfig) SeedValue() *int64 {
	if g.Seed < 0 {
		return nil
	}
	seed := g.Seed
	return &seed
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: UMB_.
// Nested keys use underscore: UMB_SERVER_PORT, UMB_GACHA_SEED, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5003)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("wallet.currency", "UMBC")
	v.SetDefault("gacha.seed", -1)
	v.SetDefault("gacha.max_draws", 50)
	v.SetDefault("gacha.default_pool", "standard")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: UMB_GACHA_MAX_DRAWS -> gacha.max_draws
	v.SetEnvPrefix("UMB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
