package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server         ServerConfig
	Mongo          MongoConfig
	Auth           AuthConfig
	Payment        PaymentConfig
	Notify         NotifyConfig
	PublicAppURL   string
	AllowedOrigins []string
	Log            LogConfig
}

type ServerConfig struct {
	Port int
}

type MongoConfig struct {
	URI      string
	Database string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type PaymentConfig struct {
	KeyID     string
	KeySecret string
}

type NotifyConfig struct {
	// RedisAddr is optional; when empty, events fan out in-process only.
	RedisAddr string
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("MONGO_URI", "mongodb://127.0.0.1:27017")
	viper.SetDefault("MONGO_DB", "restaurant")
	viper.SetDefault("JWT_SECRET", "dev_secret")
	viper.SetDefault("JWT_TTL", "12h")
	viper.SetDefault("RAZORPAY_KEY_ID", "")
	viper.SetDefault("RAZORPAY_KEY_SECRET", "")
	viper.SetDefault("PUBLIC_APP_URL", "http://localhost:5173")
	viper.SetDefault("ALLOWED_ORIGINS", "*")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("LOG_LEVEL", "info")

	tokenTTL, err := time.ParseDuration(viper.GetString("JWT_TTL"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("SERVER_PORT"),
		},
		Mongo: MongoConfig{
			URI:      viper.GetString("MONGO_URI"),
			Database: viper.GetString("MONGO_DB"),
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("JWT_SECRET"),
			TokenTTL:  tokenTTL,
		},
		Payment: PaymentConfig{
			KeyID:     viper.GetString("RAZORPAY_KEY_ID"),
			KeySecret: viper.GetString("RAZORPAY_KEY_SECRET"),
		},
		Notify: NotifyConfig{
			RedisAddr: viper.GetString("REDIS_ADDR"),
		},
		PublicAppURL:   viper.GetString("PUBLIC_APP_URL"),
		AllowedOrigins: splitCSV(viper.GetString("ALLOWED_ORIGINS")),
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	return cfg, nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
