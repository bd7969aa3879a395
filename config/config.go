package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`

	// storage
	StorageDriver string        `mapstructure:"STORAGE_DRIVER"`
	MongoURL      string        `mapstructure:"MONGODB_URL"`
	DatabaseName  string        `mapstructure:"DATABASE_NAME"`
	SQLitePath    string        `mapstructure:"SQLITE_PATH"`
	DBTimeout     time.Duration `mapstructure:"DB_TIMEOUT"`

	// language model
	LLMProvider  string        `mapstructure:"LLM_PROVIDER"`
	LLMModel     string        `mapstructure:"LLM_MODEL"`
	LLMBaseURL   string        `mapstructure:"LLM_BASE_URL"`
	LLMTimeout   time.Duration `mapstructure:"LLM_TIMEOUT"`
	GeminiAPIKey string        `mapstructure:"GEMINI_API_KEY"`
	OpenAIAPIKey string        `mapstructure:"OPENAI_API_KEY"`
	LLMAPIKey    string        `mapstructure:"LLM_API_KEY"`

	// auth
	SecretKey                string `mapstructure:"SECRET_KEY"`
	AccessTokenExpireMinutes int    `mapstructure:"ACCESS_TOKEN_EXPIRE_MINUTES"`

	// redis backed rate limit, disabled when RedisAddr is empty
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	ChatRateLimit int    `mapstructure:"CHAT_RATE_LIMIT"`

	CORSOrigins string `mapstructure:"CORS_ORIGINS"`
	LogDir      string `mapstructure:"LOG_DIR"`
}

var defaults = map[string]any{
	"ENVIRONMENT":                 "development",
	"PORT":                        "8000",
	"STORAGE_DRIVER":              "mongo",
	"MONGODB_URL":                 "mongodb://localhost:27017",
	"DATABASE_NAME":               "mindscope_db",
	"SQLITE_PATH":                 filepath.FromSlash("data/mindscope.db"),
	"DB_TIMEOUT":                  "5s",
	"LLM_PROVIDER":                "gemini",
	"LLM_MODEL":                   "",
	"LLM_BASE_URL":                "",
	"LLM_TIMEOUT":                 "20s",
	"GEMINI_API_KEY":              "",
	"OPENAI_API_KEY":              "",
	"LLM_API_KEY":                 "",
	"SECRET_KEY":                  "",
	"ACCESS_TOKEN_EXPIRE_MINUTES": 60 * 24,
	"REDIS_ADDR":                  "",
	"REDIS_PASSWORD":              "",
	"REDIS_DB":                    0,
	"CHAT_RATE_LIMIT":             30,
	"CORS_ORIGINS":                "*",
	"LOG_DIR":                     "logs",
}

// devSecret is only accepted when ENVIRONMENT is development.
const devSecret = "dev-secret-change-this"

// LoadConfig reads <path>/.env when present and then the process environment.
// Environment variables win over the file.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	envFile := filepath.Join(path, ".env")
	// a missing .env is fine, everything can come from the environment
	_ = godotenv.Load(envFile)

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}

	if cfg.SecretKey == "" && cfg.IsDevelopment() {
		cfg.SecretKey = devSecret
	}
	return cfg, nil
}

func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("missing PORT")
	}
	switch c.StorageDriver {
	case "mongo":
		if c.MongoURL == "" {
			return errors.New("missing MONGODB_URL")
		}
		if c.DatabaseName == "" {
			return errors.New("missing DATABASE_NAME")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	switch c.LLMProvider {
	case "gemini", "openai":
	case "compatible":
		if c.LLMBaseURL == "" {
			return errors.New("LLM_PROVIDER=compatible needs LLM_BASE_URL")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider)
	}
	if c.SecretKey == "" {
		return errors.New("missing SECRET_KEY")
	}
	if !c.IsDevelopment() && c.SecretKey == devSecret {
		return errors.New("SECRET_KEY must be set outside development")
	}
	if c.AccessTokenExpireMinutes <= 0 {
		return errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be > 0")
	}
	if c.LLMTimeout <= 0 || c.DBTimeout <= 0 {
		return errors.New("LLM_TIMEOUT and DB_TIMEOUT must be > 0")
	}
	if c.ChatRateLimit < 0 {
		return errors.New("CHAT_RATE_LIMIT must be >= 0")
	}
	return nil
}

// APIKey picks the key that belongs to the configured provider.
func (c Config) APIKey() string {
	switch c.LLMProvider {
	case "openai":
		if c.OpenAIAPIKey != "" {
			return c.OpenAIAPIKey
		}
	case "gemini":
		if c.GeminiAPIKey != "" {
			return c.GeminiAPIKey
		}
	}
	return c.LLMAPIKey
}

func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

func (c Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
