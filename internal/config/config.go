package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Port           int               `yaml:"port"`
	Provider       string            `yaml:"provider"`
	Temperature    float32           `yaml:"temperature"`
	CredentialName string            `yaml:"credential_name"`
	Secrets        map[string]string `yaml:"secrets"`

	OpenAIModel   string `yaml:"openai_model"`
	OpenAIBaseURL string `yaml:"openai_base_url"`

	GeminiModel   string `yaml:"gemini_model"`
	GeminiKeyName string `yaml:"gemini_key_name"`

	ClaudeModel   string `yaml:"claude_model"`
	ClaudeKeyName string `yaml:"claude_key_name"`

	OllamaURL     string `yaml:"ollama_url"`
	OllamaModel   string `yaml:"ollama_model"`
	LlamaCppURL   string `yaml:"llamacpp_url"`
	LlamaCppModel string `yaml:"llamacpp_model"`

	APIKey         string        `yaml:"api_key"`
	RateLimit      int           `yaml:"rate_limit"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

func defaults() Config {
	return Config{
		Port:           8090,
		Provider:       "openai",
		Temperature:    0.4,
		CredentialName: "OPENAI_API_KEY",
		OpenAIModel:    "gpt-4o-mini",
		GeminiModel:    "gemini-2.0-flash",
		GeminiKeyName:  "GEMINI_API_KEY",
		ClaudeModel:    "claude-sonnet-4-5-20250929",
		ClaudeKeyName:  "ANTHROPIC_API_KEY",
		OllamaModel:    "qwen2.5:1.5b",
		RateLimit:      10,
		RequestTimeout: 65 * time.Second,
	}
}

// LoadDotEnv loads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// Load reads the YAML file at path (if non-empty), then applies ADVISOR_*
// environment overrides.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	strs := map[string]*string{
		"ADVISOR_PROVIDER":        &cfg.Provider,
		"ADVISOR_CREDENTIAL_NAME": &cfg.CredentialName,
		"ADVISOR_OPENAI_MODEL":    &cfg.OpenAIModel,
		"ADVISOR_OPENAI_BASE_URL": &cfg.OpenAIBaseURL,
		"ADVISOR_GEMINI_MODEL":    &cfg.GeminiModel,
		"ADVISOR_CLAUDE_MODEL":    &cfg.ClaudeModel,
		"ADVISOR_OLLAMA_URL":      &cfg.OllamaURL,
		"ADVISOR_OLLAMA_MODEL":    &cfg.OllamaModel,
		"ADVISOR_LLAMACPP_URL":    &cfg.LlamaCppURL,
		"ADVISOR_LLAMACPP_MODEL":  &cfg.LlamaCppModel,
		"ADVISOR_API_KEY":         &cfg.APIKey,
	}
	for name, dst := range strs {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("ADVISOR_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid ADVISOR_PORT %q: %w", v, err)
		}
		cfg.Port = p
	}
	if v := os.Getenv("ADVISOR_TEMPERATURE"); v != "" {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return fmt.Errorf("config: invalid ADVISOR_TEMPERATURE %q: %w", v, err)
		}
		cfg.Temperature = float32(f)
	}
	if v := os.Getenv("ADVISOR_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid ADVISOR_RATE_LIMIT %q: %w", v, err)
		}
		cfg.RateLimit = n
	}
	if v := os.Getenv("ADVISOR_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: invalid ADVISOR_REQUEST_TIMEOUT %q: %w", v, err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}

func (c Config) validate() error {
	switch c.Provider {
	case "openai", "gemini", "claude", "ollama", "llamacpp":
	default:
		return fmt.Errorf("config: unknown provider %q", c.Provider)
	}
	if c.Provider == "ollama" && c.OllamaURL == "" {
		return fmt.Errorf("config: provider ollama requires ollama_url")
	}
	if c.Provider == "llamacpp" && c.LlamaCppURL == "" {
		return fmt.Errorf("config: provider llamacpp requires llamacpp_url")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("config: temperature %.2f out of range [0, 2]", c.Temperature)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("config: rate_limit must be positive, got %d", c.RateLimit)
	}
	return nil
}
