package config

import (
	"os"
	"strconv"
	"strings"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	JWTSecret string
	UploadDir string

	// ServiceFeePercent seeds the settings table on first run.
	ServiceFeePercent float64
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))

	fee := 0.15
	if raw := strings.TrimSpace(os.Getenv("SERVICE_FEE_PERCENT")); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 && v < 1 {
			fee = v
		}
	}

	return Env{
		AppAddr:           appAddr,
		GinMode:           ginMode,
		DBUser:            envOr("DB_USER", "root"),
		DBPass:            os.Getenv("DB_PASS"),
		DBHost:            envOr("DB_HOST", "127.0.0.1:3306"),
		DBName:            envOr("DB_NAME", "les_privat"),
		JWTSecret:         envOr("JWT_SECRET", "super-secret-key-change-me"),
		UploadDir:         envOr("UPLOAD_DIR", "uploads"),
		ServiceFeePercent: fee,
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
