package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL        string
	HTTPAddress        string
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	PasswordPepper     string
	CookieDomain       string
	AllowedOrigins     []string
	AllowCredentials   bool
	LogLevel           string
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	for _, key := range []string{
		"DATABASE_URL",
		"HTTP_ADDRESS",
		"ACCESS_TOKEN_SECRET",
		"REFRESH_TOKEN_SECRET",
		"ACCESS_TOKEN_TTL",
		"REFRESH_TOKEN_TTL",
		"PASSWORD_PEPPER",
		"COOKIE_DOMAIN",
		"ALLOWED_ORIGINS",
		"ALLOW_CREDENTIALS",
		"LOG_LEVEL",
	} {
		if err := viper.BindEnv(key); err != nil {
			return nil, err
		}
	}

	viper.SetDefault("HTTP_ADDRESS", ":5000")
	viper.SetDefault("ACCESS_TOKEN_TTL", "3h")
	viper.SetDefault("REFRESH_TOKEN_TTL", "24h")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file, %w", err)
		}
	}

	cfg := &Config{
		DatabaseURL:        viper.GetString("DATABASE_URL"),
		HTTPAddress:        viper.GetString("HTTP_ADDRESS"),
		AccessTokenSecret:  viper.GetString("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: viper.GetString("REFRESH_TOKEN_SECRET"),
		AccessTokenTTL:     viper.GetDuration("ACCESS_TOKEN_TTL"),
		RefreshTokenTTL:    viper.GetDuration("REFRESH_TOKEN_TTL"),
		PasswordPepper:     viper.GetString("PASSWORD_PEPPER"),
		CookieDomain:       viper.GetString("COOKIE_DOMAIN"),
		AllowedOrigins:     viper.GetStringSlice("ALLOWED_ORIGINS"),
		AllowCredentials:   viper.GetBool("ALLOW_CREDENTIALS"),
		LogLevel:           viper.GetString("LOG_LEVEL"),
	}

	for key, val := range map[string]string{
		"DATABASE_URL":         cfg.DatabaseURL,
		"ACCESS_TOKEN_SECRET":  cfg.AccessTokenSecret,
		"REFRESH_TOKEN_SECRET": cfg.RefreshTokenSecret,
	} {
		if val == "" {
			return nil, fmt.Errorf("%s is required", key)
		}
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}

	return cfg, nil
}
