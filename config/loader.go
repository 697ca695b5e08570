package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envBindings maps config keys to the environment variables that feed them.
// The AWS and Discord names match what the deployment has always exported.
var envBindings = map[string]string{
	"discord.token":         "DISCORD_BOT_TOKEN",
	"aws.region":            "AWS_REGION_NAME",
	"aws.access_key_id":     "AWS_ACCESS_KEY_ID",
	"aws.secret_access_key": "AWS_SECRET_ACCESS_KEY",
	"openai.api_key":        "OPENAI_API_KEY",
	"openai.base_url":       "OPENAI_BASE_URL",
	"logging.level":         "LOG_LEVEL",
	"logging.format":        "LOG_FORMAT",
}

// LoaderOption customizes Load.
type LoaderOption func(*loaderConfig)

type loaderConfig struct {
	configFile string
	envFile    string
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *loaderConfig) { lc.configFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *loaderConfig) { lc.envFile = path }
}

// Load reads the configuration, applies defaults, and validates it.
// Both the config file and the .env file are optional; the environment
// always wins over file values.
func Load(opts ...LoaderOption) (*Config, error) {
	var lc loaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.configFile == "" {
		lc.configFile = findFirst("./config.yml", "./config/config.yml")
	}
	if lc.envFile == "" {
		lc.envFile = findFirst("./.env")
	}

	if lc.envFile != "" {
		if err := godotenv.Load(lc.envFile); err != nil {
			fmt.Fprintf(os.Stderr, "[config] warning: failed to load %s: %v\n", lc.envFile, err)
		}
	}

	v := viper.New()
	v.SetDefault("transcript.drop_leading_self", true)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if lc.configFile != "" {
		v.SetConfigFile(lc.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", lc.configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func findFirst(paths ...string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
