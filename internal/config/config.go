package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port string

	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret string
	TokenTTL  time.Duration

	// CountryCode is prepended to local phone numbers for WhatsApp links.
	CountryCode string

	ResendAPIKey  string
	ResendBaseURL string
	MailFrom      string

	Storage StorageConfig

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	NotificationTTL time.Duration
	// CacheMaxBytes sizes the in-process cache used without redis.
	CacheMaxBytes int

	FollowUpCron string

	LogLevel  string
	LogOutput string
	LogPath   string
}

type StorageConfig struct {
	Provider  string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseTLS    bool
	PublicURL string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file")
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return &Config{
		Port: v.GetString("PORT"),

		DBDriver:   v.GetString("DB_DRIVER"),
		DBPath:     v.GetString("DB_PATH"),
		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBSSLMode:  v.GetString("DB_SSLMODE"),

		JWTSecret: v.GetString("JWT_SECRET"),
		TokenTTL:  v.GetDuration("TOKEN_TTL"),

		CountryCode: v.GetString("COUNTRY_CODE"),

		ResendAPIKey:  v.GetString("RESEND_API_KEY"),
		ResendBaseURL: v.GetString("RESEND_BASE_URL"),
		MailFrom:      v.GetString("MAIL_FROM"),

		Storage: StorageConfig{
			Provider:  v.GetString("STORAGE_PROVIDER"),
			Endpoint:  v.GetString("STORAGE_ENDPOINT"),
			AccessKey: v.GetString("STORAGE_ACCESS_KEY"),
			SecretKey: v.GetString("STORAGE_SECRET_KEY"),
			Bucket:    v.GetString("STORAGE_BUCKET"),
			Region:    v.GetString("STORAGE_REGION"),
			UseTLS:    v.GetBool("STORAGE_USE_TLS"),
			PublicURL: v.GetString("STORAGE_PUBLIC_URL"),
		},

		RedisAddr:       v.GetString("REDIS_ADDR"),
		RedisPassword:   v.GetString("REDIS_PASSWORD"),
		RedisDB:         v.GetInt("REDIS_DB"),
		NotificationTTL: v.GetDuration("NOTIFICATION_TTL"),
		CacheMaxBytes:   v.GetInt("CACHE_MAX_BYTES"),

		FollowUpCron: v.GetString("FOLLOWUP_CRON"),

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogOutput: v.GetString("LOG_OUTPUT"),
		LogPath:   v.GetString("LOG_PATH"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_PATH", "./crm.db")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "crm")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_SECRET", "dev-secret")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("COUNTRY_CODE", "20")
	v.SetDefault("RESEND_BASE_URL", "https://api.resend.com")
	v.SetDefault("MAIL_FROM", "Smart Fuel CRM <onboarding@resend.dev>")
	v.SetDefault("STORAGE_PROVIDER", "none")
	v.SetDefault("STORAGE_BUCKET", "template-attachments")
	v.SetDefault("STORAGE_REGION", "us-east-1")
	v.SetDefault("NOTIFICATION_TTL", "5m")
	v.SetDefault("CACHE_MAX_BYTES", 16*1024*1024)
	v.SetDefault("FOLLOWUP_CRON", "0 0 8 * * *")
	v.SetDefault("LOG_LEVEL", "INFO")
	v.SetDefault("LOG_OUTPUT", "stdout")
	v.SetDefault("LOG_PATH", "./logs")
}
