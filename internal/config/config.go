package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the runtime settings for the admin backend. Values come from
// an optional config.yaml and are overridable through environment variables
// (SERVER_ADDR, DATABASE_URL, REDIS_ADDR, UPLOADS_DIR, AUTH_JWT_SECRET).
type Config struct {
	Addr        string
	DatabaseURL string
	RedisAddr   string
	UploadDir   string
	JWTSecret   string
}

func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("uploads.dir", "wwwroot/images")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return Config{
		Addr:        v.GetString("server.addr"),
		DatabaseURL: v.GetString("database.url"),
		RedisAddr:   v.GetString("redis.addr"),
		UploadDir:   v.GetString("uploads.dir"),
		JWTSecret:   v.GetString("auth.jwt_secret"),
	}, nil
}
