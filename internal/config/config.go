// Package config loads the environment-driven settings via viper.
package config

import "github.com/spf13/viper"

type Config struct {
	Port        string
	DatabaseURL string
	RedisAddr   string
	JWTSecret   string

	RateLimit       int
	RateWindowSecs  int
	ImageWorkers    int
	UploadDir       string
	PublicURL       string
	ServiceDueAhead int // days

	SMTPServer   string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	AlertFrom    string
	AlertTo      string

	LogLevel string
}

// Load reads configuration from the environment with sane defaults.
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("RATE_LIMIT", 100)
	v.SetDefault("RATE_WINDOW_SECS", 60)
	v.SetDefault("IMAGE_WORKERS", 2)
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("PUBLIC_URL", "http://localhost:8080")
	v.SetDefault("SERVICE_DUE_AHEAD_DAYS", 7)
	v.SetDefault("LOG_LEVEL", "info")

	return Config{
		Port:            v.GetString("PORT"),
		DatabaseURL:     v.GetString("DATABASE_URL"),
		RedisAddr:       v.GetString("REDIS_ADDR"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		RateLimit:       v.GetInt("RATE_LIMIT"),
		RateWindowSecs:  v.GetInt("RATE_WINDOW_SECS"),
		ImageWorkers:    v.GetInt("IMAGE_WORKERS"),
		UploadDir:       v.GetString("UPLOAD_DIR"),
		PublicURL:       v.GetString("PUBLIC_URL"),
		ServiceDueAhead: v.GetInt("SERVICE_DUE_AHEAD_DAYS"),
		SMTPServer:      v.GetString("SMTP_SERVER"),
		SMTPPort:        v.GetString("SMTP_PORT"),
		SMTPUser:        v.GetString("SMTP_USER"),
		SMTPPassword:    v.GetString("SMTP_PASS"),
		AlertFrom:       v.GetString("ALERT_FROM"),
		AlertTo:         v.GetString("ALERT_TO"),
		LogLevel:        v.GetString("LOG_LEVEL"),
	}
}
