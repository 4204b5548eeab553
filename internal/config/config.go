package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of the generic environment overrides (NEWS_AGENT_OPENAI_MODEL_NAME, ...)
const EnvPrefix = "NEWS_AGENT"

// envAliases maps configuration keys to the environment variable names the
// deployment secrets are published under. Listed names take precedence over
// the prefixed form.
var envAliases = map[string][]string{
	"openai.api_key":     {"GROQ_API_KEY"},
	"gemini.api_key":     {"GEMINI_API_KEY"},
	"delivery.api_key":   {"RESEND_API_KEY"},
	"delivery.from":      {"FROM_EMAIL"},
	"delivery.recipient": {"RECIPIENT_EMAIL"},
}

// Options controls where configuration is read from
type Options struct {
	// ConfigFile is an explicit YAML config path. When empty the default
	// locations are searched and a missing file is not an error.
	ConfigFile string
	// EnvFile is a dotenv file consulted for variables that are not set in
	// the process environment. A missing file is not an error.
	EnvFile string
}

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// MissingValueError reports a required configuration value that was not provided
type MissingValueError struct {
	Key string
	Env string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("%s not found in environment or .env file (config key %q)", e.Env, e.Key)
}

// New creates a new configuration instance
func New(opts Options) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("/etc/news-agent/")
		v.AddConfigPath("$HOME/.news-agent")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key := range envAliases {
		if err := v.BindEnv(append([]string{key}, envNames(key)...)...); err != nil {
			return nil, fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	if opts.EnvFile != "" {
		if err := applyEnvFile(v, opts.EnvFile); err != nil {
			return nil, err
		}
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// envNames returns the environment variables consulted for key, in precedence order
func envNames(key string) []string {
	prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	return append(append([]string{}, envAliases[key]...), prefixed)
}

// applyEnvFile copies values from a dotenv file for every known key whose
// environment variables are all unset.
func applyEnvFile(v *viper.Viper, path string) error {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read env file %s: %w", path, err)
	}

	for _, key := range v.AllKeys() {
		names := envNames(key)
		if anySet(names) {
			continue
		}
		for _, name := range names {
			if value, ok := values[name]; ok {
				v.Set(key, value)
				break
			}
		}
	}
	return nil
}

func anySet(names []string) bool {
	for _, name := range names {
		if _, ok := os.LookupEnv(name); ok {
			return true
		}
	}
	return false
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// LLM provider defaults
	v.SetDefault("llm.provider", "openai")

	// OpenAI-compatible endpoint defaults (Groq)
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("openai.model_name", "llama-3.3-70b-versatile")
	v.SetDefault("openai.max_tokens", 2000)
	v.SetDefault("openai.temperature", 0.3)

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model_name", "gemini-1.5-flash")
	v.SetDefault("gemini.max_tokens", 2000)
	v.SetDefault("gemini.temperature", 0.3)

	// Bedrock defaults
	v.SetDefault("bedrock.region", "us-east-1")
	v.SetDefault("bedrock.model_id", "anthropic.claude-3-haiku-20240307-v1:0")
	v.SetDefault("bedrock.max_tokens", 2000)
	v.SetDefault("bedrock.temperature", 0.3)

	// Delivery defaults
	v.SetDefault("delivery.provider", "resend")
	v.SetDefault("delivery.api_key", "")
	v.SetDefault("delivery.endpoint", "https://api.resend.com/emails")
	v.SetDefault("delivery.from", "")
	v.SetDefault("delivery.recipient", "")
	v.SetDefault("delivery.subject_prefix", "📊 Market News Briefing")

	// SMTP defaults
	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.starttls", true)

	// Feed defaults
	v.SetDefault("feeds.max_items", 10)
	v.SetDefault("feeds.summary_length", 250)
	v.SetDefault("feeds.timeout", "30s")
	v.SetDefault("feeds.user_agent", "news-agent/1.0")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Validate checks that every value required by the selected providers is present
func (c *Config) Validate() error {
	switch provider := c.GetString("llm.provider"); provider {
	case "openai":
		if err := c.require("openai.api_key"); err != nil {
			return err
		}
	case "gemini":
		if err := c.require("gemini.api_key"); err != nil {
			return err
		}
	case "bedrock":
		// credentials come from the AWS default chain
	default:
		return fmt.Errorf("unsupported LLM provider: %s", provider)
	}

	switch provider := c.GetString("delivery.provider"); provider {
	case "resend":
		if err := c.require("delivery.api_key"); err != nil {
			return err
		}
	case "smtp":
		if err := c.require("smtp.host"); err != nil {
			return err
		}
	case "preview":
	default:
		return fmt.Errorf("unsupported delivery provider: %s", provider)
	}

	if err := c.require("delivery.from"); err != nil {
		return err
	}
	return c.require("delivery.recipient")
}

func (c *Config) require(key string) error {
	if strings.TrimSpace(c.GetString(key)) != "" {
		return nil
	}
	return &MissingValueError{Key: key, Env: envNames(key)[0]}
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// Set overrides a configuration value, used for command line flags
func (c *Config) Set(key string, value any) {
	c.v.Set(key, value)
}
