package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	AppEnv string

	DatabaseURL string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	DBSSLMode   string

	JWTKey       string
	JWTExpiresIn time.Duration
	SaltRound    int

	ClientURL     string
	AdminEmail    string
	AdminPassword string

	PaymentGateway     string // razorpay, midtrans or dev
	PaymentCurrency    string
	RazorpayKeyID      string
	RazorpayKeySecret  string
	RazorpayAPIURL     string
	MidtransServerKey  string
	MidtransClientKey  string
	MidtransProduction bool

	SendGridAPIKey  string
	EmailSender     string
	EmailSenderName string

	RedisAddr       string
	RedisPassword   string
	CatalogCacheTTL time.Duration

	GCSBucket          string
	GCSCredentialsFile string
	VideoURLTTL        time.Duration

	CompletionPolicy      string
	LogMode               string
	ResetTokenCleanupCron string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:   getEnv("PORT", "5000"),
		AppEnv: getEnv("APP_ENV", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBName:      getEnv("DB_NAME", "learnhub"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),

		JWTKey:       getEnv("JWT_SECRET_KEY", "change_this_secret"),
		JWTExpiresIn: getEnvDuration("JWT_EXPIRES_IN", 7*24*time.Hour),
		SaltRound:    getEnvInt("SALT_ROUND", 10),

		ClientURL:     getEnv("CLIENT_URL", "http://localhost:5173"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@learnhub.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),

		PaymentGateway:     strings.ToLower(getEnv("PAYMENT_GATEWAY", "razorpay")),
		PaymentCurrency:    getEnv("PAYMENT_CURRENCY", "INR"),
		RazorpayKeyID:      getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret:  getEnv("RAZORPAY_KEY_SECRET", ""),
		RazorpayAPIURL:     getEnv("RAZORPAY_API_URL", "https://api.razorpay.com"),
		MidtransServerKey:  getEnv("MIDTRANS_SERVER_KEY", ""),
		MidtransClientKey:  getEnv("MIDTRANS_CLIENT_KEY", ""),
		MidtransProduction: getEnvBool("MIDTRANS_PRODUCTION", false),

		SendGridAPIKey:  getEnv("SENDGRID_API_KEY", ""),
		EmailSender:     getEnv("EMAIL_SENDER", "no-reply@learnhub.com"),
		EmailSenderName: getEnv("EMAIL_SENDER_NAME", "LearnHub LMS"),

		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		CatalogCacheTTL: getEnvDuration("CATALOG_CACHE_TTL", 5*time.Minute),

		GCSBucket:          getEnv("GCS_BUCKET", ""),
		GCSCredentialsFile: getEnv("GCS_CREDENTIALS_FILE", ""),
		VideoURLTTL:        getEnvDuration("VIDEO_URL_TTL", 2*time.Hour),

		CompletionPolicy:      strings.ToLower(getEnv("COMPLETION_POLICY", "containment")),
		LogMode:               getEnv("LOG_MODE", "development"),
		ResetTokenCleanupCron: getEnv("RESET_TOKEN_CLEANUP_CRON", "@every 1h"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "change_this_secret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.AdminPassword == "admin123" {
		log.Println("Warning: Using default ADMIN_PASSWORD. Update it in your environment.")
	}
}

// IsDevelopment reports whether the service runs with APP_ENV=development.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := ParseDuration(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to duration: %v", key, err)
		return defaultValue
	}
	return d
}

// ParseDuration accepts Go durations ("90m", "24h") and day counts ("7d").
func ParseDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, err
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(value)
}
