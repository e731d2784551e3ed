package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

// ErrJWTSecretRequired is returned by LoadConfig when JWT_SECRET is empty.
// An empty HMAC key would accept tokens anyone can sign.
var ErrJWTSecretRequired = errors.New("JWT_SECRET must be set")

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	AutoMigrate bool
}

type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	ViewCacheTTL time.Duration
}

type JWTConfig struct {
	Secret string
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// .env is optional, plain environment variables are enough
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)

	if viper.GetString("JWT_SECRET") == "" {
		return nil, ErrJWTSecretRequired
	}

	viewCacheTTL, err := time.ParseDuration(viper.GetString("VIEW_CACHE_TTL"))
	if err != nil {
		viewCacheTTL = 5 * time.Minute
	}

	rateLimitWindow, err := time.ParseDuration(viper.GetString("RATE_LIMIT_WINDOW"))
	if err != nil {
		rateLimitWindow = time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetString("DB_PORT"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASSWORD"),
			Name:        viper.GetString("DB_NAME"),
			AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:         viper.GetString("REDIS_HOST"),
			Port:         viper.GetString("REDIS_PORT"),
			Password:     viper.GetString("REDIS_PASSWORD"),
			DB:           viper.GetInt("REDIS_DB"),
			ViewCacheTTL: viewCacheTTL,
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Window:   rateLimitWindow,
		},
	}

	return config, nil
}

// AdminEmail returns the configured admin email address. It is looked up on
// every call so a changed environment is picked up without a restart.
// An empty string means no admin is configured.
func AdminEmail() string {
	return viper.GetString("ADMIN_EMAIL")
}
