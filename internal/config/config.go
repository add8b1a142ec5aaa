package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPass     string
	DBName     string
	ServerPort string
	Env        string

	RedisURL string
	RedisTTL time.Duration

	PlatformAPIURL string
	PlatformToken  string
	PrimaryGuildID string
	DefaultLocale  string

	MinioURL          string
	MinioPublicURL    string
	MinioUser         string
	MinioPassword     string
	MinioBucket       string
	MaxAttachmentSize int64

	KafkaBrokers    []string
	KafkaAuditTopic string
}

func LoadConfig() Config {
	ttlStr := getEnv("REDIS_TTL", "5m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		ttl = 5 * time.Minute
	}

	var brokers []string
	if raw := getEnv("KAFKA_BROKERS", ""); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return Config{
		DBHost:     getEnv("DB_HOST", "postgres"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPass:     getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "db_modmail"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		Env:        getEnv("ENV", "dev"),

		RedisURL: getEnv("REDIS_URL", "redis:6379"),
		RedisTTL: ttl,

		PlatformAPIURL: getEnv("PLATFORM_API_URL", "http://localhost:9090/api"),
		PlatformToken:  getEnv("PLATFORM_TOKEN", ""),
		PrimaryGuildID: getEnv("PLATFORM_GUILD_ID", ""),
		DefaultLocale:  getEnv("DEFAULT_LOCALE", "en"),

		MinioURL:          getEnv("MINIO_URL", "localhost:9000"),
		MinioPublicURL:    getEnv("MINIO_PUBLIC_URL", ""),
		MinioUser:         getEnv("MINIO_USER", "minioadmin"),
		MinioPassword:     getEnv("MINIO_PASSWORD", "minioadmin"),
		MinioBucket:       getEnv("MINIO_BUCKET", "modmail-attachments"),
		MaxAttachmentSize: getEnvAsInt64("MAX_ATTACHMENT_SIZE", 25*1024*1024),

		KafkaBrokers:    brokers,
		KafkaAuditTopic: getEnv("KAFKA_AUDIT_TOPIC", "modmail.audit"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := strconv.ParseInt(value, 10, 64); err == nil {
			return v
		}
	}
	return fallback
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPass, c.DBName, c.DBPort,
	)
}
