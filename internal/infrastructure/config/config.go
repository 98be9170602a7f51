package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Model  ModelConfig  `mapstructure:"model"`
	Log    LogConfig    `mapstructure:"log"`
	Client ClientConfig `mapstructure:"client"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
	// StrictErrors answers predict failures with 5xx status codes instead of
	// a 200 carrying an error payload.
	StrictErrors bool `mapstructure:"strict_errors"`
}

// ModelConfig holds model artifact configuration
type ModelConfig struct {
	Dir               string `mapstructure:"dir"`
	Name              string `mapstructure:"name"`
	Device            string `mapstructure:"device"`
	OnnxLibraryPath   string `mapstructure:"onnx_library_path"`
	MaxSequenceLength int    `mapstructure:"max_sequence_length"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// ClientConfig holds chat client configuration
type ClientConfig struct {
	BackendURL     string        `mapstructure:"backend_url"`
	HealthTimeout  time.Duration `mapstructure:"health_timeout"`
	PredictTimeout time.Duration `mapstructure:"predict_timeout"`
	LogFile        string        `mapstructure:"log_file"`
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("verdict")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/verdict")

	v.SetEnvPrefix("VERDICT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// The backend URL is also accepted under its historical name.
	if err := v.BindEnv("client.backend_url", "VERDICT_CLIENT_BACKEND_URL", "BACKEND_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind backend url: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.strict_errors", false)

	// Model defaults
	v.SetDefault("model.dir", "/app/mounted_model")
	v.SetDefault("model.name", "sequence-classifier")
	v.SetDefault("model.device", "auto")
	v.SetDefault("model.onnx_library_path", "")
	v.SetDefault("model.max_sequence_length", 512)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")

	// Client defaults
	v.SetDefault("client.backend_url", "http://localhost:8000/")
	v.SetDefault("client.health_timeout", 5*time.Second)
	v.SetDefault("client.predict_timeout", 10*time.Second)
	v.SetDefault("client.log_file", "verdict-chat.log")
}

func (c *Config) validate() error {
	switch c.Model.Device {
	case "auto", "cpu", "cuda":
	default:
		return fmt.Errorf("invalid model.device %q: want auto, cpu or cuda", c.Model.Device)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid server.mode %q: want debug, release or test", c.Server.Mode)
	}
	if c.Model.MaxSequenceLength <= 0 {
		return fmt.Errorf("invalid model.max_sequence_length %d", c.Model.MaxSequenceLength)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.Client.HealthTimeout <= 0 || c.Client.PredictTimeout <= 0 {
		return errors.New("client timeouts must be positive")
	}
	c.Client.BackendURL = strings.TrimRight(c.Client.BackendURL, "/")
	return nil
}
