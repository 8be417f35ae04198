package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	// Mode is "development" (tint, debug) or "production" (JSON, info).
	Mode   string `mapstructure:"mode"`
	Server struct {
		HTTPPort        string        `mapstructure:"HTTPPort"`
		Timeout         time.Duration `mapstructure:"HTTPTimeout"`
		ShutdownTimeout time.Duration `mapstructure:"ShutdownTimeout"`
	} `mapstructure:"server"`
	LLM struct {
		APIKey          string        `mapstructure:"apiKey"`
		Model           string        `mapstructure:"model"`
		ValidationModel string        `mapstructure:"validationModel"`
		Temperature     *float32      `mapstructure:"temperature"`
		Timeout         time.Duration `mapstructure:"timeout"`
	} `mapstructure:"llm"`
	Itinerary struct {
		SessionTTL          time.Duration `mapstructure:"sessionTTL"`
		ValidateDestination bool          `mapstructure:"validateDestination"`
	} `mapstructure:"itinerary"`
	Cache struct {
		CityCheckTTL    time.Duration `mapstructure:"cityCheckTTL"`
		CleanupInterval time.Duration `mapstructure:"cleanupInterval"`
	} `mapstructure:"cache"`
	RateLimit struct {
		Requests int           `mapstructure:"requests"`
		Window   time.Duration `mapstructure:"window"`
	} `mapstructure:"ratelimit"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowedOrigins"`
	} `mapstructure:"cors"`
	Handlers struct {
		Prometheus struct {
			Enabled bool   `mapstructure:"enabled"`
			Port    string `mapstructure:"port"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Repositories struct {
		Postgres struct {
			Enabled           bool   `mapstructure:"enabled"`
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// SERVER_HTTPPORT, LLM_MODEL, ... override the file values.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("llm.apiKey", "GOOGLE_GEMINI_API_KEY", "API_KEY"); err != nil {
		return Config{}, fmt.Errorf("failed to bind api key env: %w", err)
	}
	if err := v.BindEnv("mode", "APP_ENV", "MODE"); err != nil {
		return Config{}, fmt.Errorf("failed to bind mode env: %w", err)
	}

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return config, nil
}
