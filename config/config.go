package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port     string `mapstructure:"port"`
	SiteURL  string `mapstructure:"site_url"`
	MongoURI string `mapstructure:"MONGODB_URI"`
	MongoDB  string `mapstructure:"mongo_db"`

	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"redis_db"`

	AIProvider   string `mapstructure:"ai_provider"`
	AIEndpoint   string `mapstructure:"ai_endpoint"`
	Model        string `mapstructure:"model"`
	OpenAIAPIKey string `mapstructure:"OPENAI_API_KEY"`
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Context   ContextConfig   `mapstructure:"ai_context"`
}

// RateLimitConfig controls the admission gate in front of the AI endpoint.
// Non-positive limits reject every request rather than disabling the check.
type RateLimitConfig struct {
	RequireLogin  bool `mapstructure:"require_login"`
	PerIPLimit    int  `mapstructure:"per_ip_limit"`
	WindowMinutes int  `mapstructure:"window_minutes"`
	DailyLimit    int  `mapstructure:"daily_limit"`
}

type CatalogConfig struct {
	ExcerptLength     int `mapstructure:"excerpt_length"`
	ContentLength     int `mapstructure:"content_length"`
	FullDumpThreshold int `mapstructure:"full_dump_threshold"`
}

// ContextConfig is the operator-authored site context injected into the
// system prompt. Empty fields are omitted from the prompt entirely.
type ContextConfig struct {
	Description        string `mapstructure:"description"`
	Audience           string `mapstructure:"audience"`
	Tone               string `mapstructure:"tone"`
	Notes              string `mapstructure:"notes"`
	SystemPrompt       string `mapstructure:"system_prompt"`
	IncludeUserContext bool   `mapstructure:"include_user_context"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.BindEnv("MONGODB_URI")
	v.BindEnv("REDIS_PASSWORD")
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("GEMINI_API_KEY")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("mongo_db", "hamelp")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("ai_provider", "openai")
	v.SetDefault("rate_limit.require_login", false)
	v.SetDefault("rate_limit.per_ip_limit", 5)
	v.SetDefault("rate_limit.window_minutes", 10)
	v.SetDefault("rate_limit.daily_limit", 100)
	v.SetDefault("catalog.excerpt_length", 300)
	v.SetDefault("catalog.content_length", 2000)
	v.SetDefault("catalog.full_dump_threshold", 30)
	v.SetDefault("ai_context.include_user_context", true)
}
