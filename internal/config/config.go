package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported completion providers
const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
	ProviderGroq   = "groq"
)

var (
	ErrMissingAPIKey       = errors.New("API_KEY environment variable not set. Please check your .env file")
	ErrMissingGroqAPIKey   = errors.New("GROQ_API_KEY is required when using Groq provider")
	ErrMissingOllamaURL    = errors.New("OLLAMA_BASE_URL is required when using Ollama provider")
	ErrUnsupportedProvider = errors.New("unsupported LLM provider")
)

type Config struct {
	Server ServerConfig `json:"server"`
	LLM    LLMConfig    `json:"llm"`
	Debug  bool         `json:"debug"`
}

type ServerConfig struct {
	Port         string        `json:"port"`
	Host         string        `json:"host"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	BodyLimit    int           `json:"body_limit"`
}

type LLMConfig struct {
	Provider       string        `json:"provider"`
	APIKey         string        `json:"-"`
	GroqAPIKey     string        `json:"-"`
	GroqModel      string        `json:"groq_model,omitempty"`
	OllamaBaseURL  string        `json:"ollama_base_url,omitempty"`
	OllamaModel    string        `json:"ollama_model,omitempty"`
	RequestTimeout time.Duration `json:"request_timeout"`
}

// Load reads configuration from an optional .env file and the process
// environment, applying defaults, then validates it.
func Load() (*Config, error) {
	// a missing .env is fine, the environment may already be populated
	_ = godotenv.Load()

	v, err := NewViper()
	if err != nil {
		return nil, err
	}
	return FromViper(v)
}

// NewViper returns a viper instance with defaults and environment bindings.
func NewViper() (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}
	return v, nil
}

// FromViper builds and validates a Config from v.
func FromViper(v *viper.Viper) (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:         v.GetString("server.port"),
			Host:         v.GetString("server.host"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			BodyLimit:    v.GetInt("server.body_limit"),
		},
		LLM: LLMConfig{
			Provider:       v.GetString("llm.provider"),
			APIKey:         v.GetString("llm.api_key"),
			GroqAPIKey:     v.GetString("llm.groq_api_key"),
			GroqModel:      v.GetString("llm.groq_model"),
			OllamaBaseURL:  v.GetString("llm.ollama_base_url"),
			OllamaModel:    v.GetString("llm.ollama_model"),
			RequestTimeout: v.GetDuration("llm.request_timeout"),
		},
		Debug: v.GetBool("debug"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3001")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.body_limit", 4*1024*1024)

	v.SetDefault("llm.provider", ProviderGemini)
	v.SetDefault("llm.groq_model", "llama3-8b-8192")
	v.SetDefault("llm.ollama_base_url", "http://localhost:11434")
	v.SetDefault("llm.ollama_model", "llama3")
	v.SetDefault("llm.request_timeout", time.Duration(0))

	v.SetDefault("debug", false)
}

func bindEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"server.port":          {"PORT"},
		"server.host":          {"HOST"},
		"server.read_timeout":  {"READ_TIMEOUT"},
		"server.write_timeout": {"WRITE_TIMEOUT"},
		"server.body_limit":    {"BODY_LIMIT"},
		"llm.provider":         {"LLM_PROVIDER"},
		"llm.api_key":          {"API_KEY", "GEMINI_API_KEY"},
		"llm.groq_api_key":     {"GROQ_API_KEY"},
		"llm.groq_model":       {"GROQ_MODEL"},
		"llm.ollama_base_url":  {"OLLAMA_BASE_URL"},
		"llm.ollama_model":     {"OLLAMA_MODEL"},
		"llm.request_timeout":  {"LLM_REQUEST_TIMEOUT"},
		"debug":                {"DEBUG"},
	}

	for key, envs := range bindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validate() error {
	switch c.LLM.Provider {
	case ProviderGemini:
		if c.LLM.APIKey == "" {
			return ErrMissingAPIKey
		}
	case ProviderGroq:
		if c.LLM.GroqAPIKey == "" {
			return ErrMissingGroqAPIKey
		}
	case ProviderOllama:
		if c.LLM.OllamaBaseURL == "" {
			return ErrMissingOllamaURL
		}
	default:
		return fmt.Errorf("%w: %s (supported: gemini, ollama, groq)", ErrUnsupportedProvider, c.LLM.Provider)
	}

	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.LLM.RequestTimeout < 0 {
		return fmt.Errorf("LLM_REQUEST_TIMEOUT must not be negative")
	}

	return nil
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}
