package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config fields from environment variables. This is the
// primary configuration path in container deployments.
//
// Recognized variables:
//
//	ADDRESS              HTTP bind address (e.g., ":5000")
//	DATABASE_DSN         PostgreSQL DSN
//	JWT_SECRET           token signing secret
//	JWT_EXPIRE           token lifetime as a Go duration (e.g., "720h")
//	RATE_LIMIT_WINDOW    rate limit window as a Go duration
//	RATE_LIMIT_MAX       max requests per window per IP
//	FRONTEND_URL         origin allowed by CORS
//	ENVIRONMENT          "development" or "production"
//	SMTP_ADDR            SMTP host:port
//	SMTP_USER            SMTP username
//	SMTP_PASSWORD        SMTP password
//	EMAIL_FROM           From address for outbound mail
func parseEnv(config *Config) {
	if v := os.Getenv("ADDRESS"); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.SecretKey = v
	}
	if d, ok := getEnvDuration("JWT_EXPIRE"); ok {
		config.TokenValidityDuration = d
	}
	if d, ok := getEnvDuration("RATE_LIMIT_WINDOW"); ok {
		config.RateLimitWindow = d
	}
	if v := os.Getenv("RATE_LIMIT_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.RateLimitMax = n
		}
	}
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		config.FrontendURL = v
	}
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		config.Environment = v
	}
	if v := os.Getenv("SMTP_ADDR"); v != "" {
		config.SMTPAddr = v
	}
	if v := os.Getenv("SMTP_USER"); v != "" {
		config.SMTPUser = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		config.SMTPPassword = v
	}
	if v := os.Getenv("EMAIL_FROM"); v != "" {
		config.EmailFrom = v
	}
}

func getEnvDuration(key string) (time.Duration, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, false
	}
	return d, true
}
