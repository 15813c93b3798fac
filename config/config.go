package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	StoreType   string `mapstructure:"STORE_TYPE"` // mongo, sqlite
	DSN         string `mapstructure:"DSN"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	FrontendURL string `mapstructure:"FRONTEND_URL"`
	Port        int    `mapstructure:"PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	BcryptCost  int    `mapstructure:"BCRYPT_COST"`
}

// LoadConfig reads the environment once at startup. JWT_SECRET has no
// default on purpose: signing tokens with an empty key is a deployment
// error, so startup fails instead.
func LoadConfig() (*Config, error) {
	viper.SetDefault("STORE_TYPE", "mongo")
	viper.SetDefault("DSN", "mongodb://localhost:27017")
	viper.SetDefault("FRONTEND_URL", "http://localhost:3000")
	viper.SetDefault("PORT", 5000)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("BCRYPT_COST", 10)

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.BindEnv("JWT_SECRET")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("config: JWT_SECRET must be set")
	}

	return &cfg, nil
}
