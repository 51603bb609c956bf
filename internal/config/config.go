package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the full runtime configuration, immutable after Load.
type Config struct {
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	DB struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"db"`

	Gemini     GeminiConfig    `mapstructure:"gemini"`
	SMS        SMSConfig       `mapstructure:"sms"`
	Thresholds ThresholdConfig `mapstructure:"thresholds"`

	Auth struct {
		SigningKey string        `mapstructure:"signing_key"`
		TokenTTL   time.Duration `mapstructure:"token_ttl"`
	} `mapstructure:"auth"`

	Simulator struct {
		Enabled bool          `mapstructure:"enabled"`
		Tick    time.Duration `mapstructure:"tick"`
	} `mapstructure:"simulator"`
}

// GeminiConfig configures the decision oracle client.
type GeminiConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	Model           string        `mapstructure:"model"`
	Temperature     float64       `mapstructure:"temperature"`
	MaxOutputTokens int           `mapstructure:"max_output_tokens"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// SMSConfig configures the Africa's Talking notifier and the alert layer.
type SMSConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Username    string        `mapstructure:"username"`
	APIKey      string        `mapstructure:"api_key"`
	SenderID    string        `mapstructure:"sender_id"`
	Recipient   string        `mapstructure:"recipient"`
	Sandbox     bool          `mapstructure:"sandbox"`
	Timeout     time.Duration `mapstructure:"timeout"`
	GasCooldown time.Duration `mapstructure:"gas_cooldown"`
}

// ThresholdConfig holds the rule-set parameters. Orderings are enforced at
// startup; the rest of the system may assume they hold.
type ThresholdConfig struct {
	TempHot      float64 `mapstructure:"temp_hot"`
	TempCold     float64 `mapstructure:"temp_cold"`
	GasAlert     int     `mapstructure:"gas_alert"`
	LightBright  int     `mapstructure:"light_bright"`
	LightDim     int     `mapstructure:"light_dim"`
	HumidityHigh float64 `mapstructure:"humidity_high"`
	HumidityLow  float64 `mapstructure:"humidity_low"`
}

var errMissingGeminiKey = errors.New("gemini.api_key is required (set GEMINI_API_KEY)")

// Load reads configs/config.yml, applies defaults and environment
// overrides, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	setDefaults(v)

	// Secrets come from the environment, never the file.
	v.AutomaticEnv()
	_ = v.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	_ = v.BindEnv("sms.username", "AT_USERNAME")
	_ = v.BindEnv("sms.api_key", "AT_API_KEY")
	_ = v.BindEnv("auth.signing_key", "JWT_SIGNING_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Missing file is fine; defaults + env carry the load.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("db.path", "farmwatch.db")

	v.SetDefault("gemini.model", "gemini-pro")
	v.SetDefault("gemini.temperature", 0.3)
	v.SetDefault("gemini.max_output_tokens", 256)
	v.SetDefault("gemini.timeout", "15s")

	v.SetDefault("sms.enabled", false)
	v.SetDefault("sms.sandbox", true)
	v.SetDefault("sms.timeout", "10s")
	v.SetDefault("sms.gas_cooldown", "300s")

	v.SetDefault("thresholds.temp_hot", 30.0)
	v.SetDefault("thresholds.temp_cold", 15.0)
	v.SetDefault("thresholds.gas_alert", 300)
	v.SetDefault("thresholds.light_bright", 700)
	v.SetDefault("thresholds.light_dim", 200)
	v.SetDefault("thresholds.humidity_high", 70.0)
	v.SetDefault("thresholds.humidity_low", 30.0)

	v.SetDefault("auth.token_ttl", "1h")

	v.SetDefault("simulator.enabled", false)
	v.SetDefault("simulator.tick", "5s")
}

// Validate enforces the startup-time invariants. A violated invariant is a
// configuration error and the process must refuse to start.
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return errMissingGeminiKey
	}
	if c.Gemini.Timeout <= 0 {
		return errors.New("gemini.timeout must be positive")
	}
	if err := c.Thresholds.Validate(); err != nil {
		return err
	}
	if c.SMS.Enabled {
		if c.SMS.Recipient == "" {
			return errors.New("sms.recipient is required when sms.enabled is true")
		}
		if c.SMS.Timeout <= 0 {
			return errors.New("sms.timeout must be positive")
		}
		if c.SMS.GasCooldown <= 0 {
			return errors.New("sms.gas_cooldown must be positive")
		}
	}
	if c.Auth.SigningKey == "" {
		return errors.New("auth.signing_key is required (set JWT_SIGNING_KEY)")
	}
	return nil
}

// Validate checks the threshold orderings.
func (t ThresholdConfig) Validate() error {
	if t.TempCold >= t.TempHot {
		return fmt.Errorf("thresholds: temp_cold (%.1f) must be less than temp_hot (%.1f)", t.TempCold, t.TempHot)
	}
	if t.LightDim >= t.LightBright {
		return fmt.Errorf("thresholds: light_dim (%d) must be less than light_bright (%d)", t.LightDim, t.LightBright)
	}
	if t.HumidityLow >= t.HumidityHigh {
		return fmt.Errorf("thresholds: humidity_low (%.1f) must be less than humidity_high (%.1f)", t.HumidityLow, t.HumidityHigh)
	}
	return nil
}
