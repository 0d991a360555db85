package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DatabaseURL     string
	MigrationsPath  string
	JWTSecret       string
	SessionTTL      time.Duration
	GoogleAudience  string
	AllowOrigins    []string
	LogstashTCPAddr string

	MinIOEndpoint      string
	MinIOAccessKey     string
	MinIOSecretKey     string
	MinIOUseSSL        bool
	MinIOBucketProfile string
	MinIOPublicURL     string

	FFMPEGPath               string
	ProfileImageMaxBytes     int64
	ProfileImageMaxDimension int
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	sessionTTL := 24 * time.Hour
	if v, err := time.ParseDuration(getenv("SESSION_TTL", "24h")); err == nil && v > 0 {
		sessionTTL = v
	}

	imageMax := int64(5 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("PROFILE_IMAGE_MAX_BYTES", "5242880"), 10, 64); err == nil && v > 0 {
		imageMax = v
	}

	imageMaxDim := 1600
	if v, err := strconv.Atoi(getenv("PROFILE_IMAGE_MAX_DIMENSION", "1600")); err == nil && v > 0 {
		imageMaxDim = v
	}

	return Config{
		Port:            getenv("PORT", "8080"),
		DatabaseURL:     must("DATABASE_URL"),
		MigrationsPath:  getenv("MIGRATIONS_PATH", "file://migrations"),
		JWTSecret:       must("JWT_SECRET"),
		SessionTTL:      sessionTTL,
		GoogleAudience:  getenv("GOOGLE_AUDIENCE", ""),
		AllowOrigins:    splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		LogstashTCPAddr: getenv("LOGSTASH_TCP_ADDR", ""),

		MinIOEndpoint:      must("MINIO_ENDPOINT"),
		MinIOAccessKey:     must("MINIO_ACCESS_KEY"),
		MinIOSecretKey:     must("MINIO_SECRET_KEY"),
		MinIOUseSSL:        getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucketProfile: getenv("MINIO_BUCKET_PROFILE", "globetrotter-profiles"),
		MinIOPublicURL:     getenv("MINIO_PUBLIC_URL", ""),

		FFMPEGPath:               getenv("FFMPEG_PATH", "ffmpeg"),
		ProfileImageMaxBytes:     imageMax,
		ProfileImageMaxDimension: imageMaxDim,
	}
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
