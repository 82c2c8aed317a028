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
	ServiceName  string
	ServerPort   int
	AllowOrigins []string

	DatabaseURL string

	JWTSecret []byte
	JWTTTL    time.Duration

	LogLevel string
	LogFile  string

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	S3Bucket           string
	CDNDomain          string
	UploadTmpDir       string

	SMTPHost   string
	SMTPPort   int
	EmailUser  string
	EmailPass  string
	EmailFrom  string
	OwnerEmail string

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	WorkerPoolSize int

	EnquiryStrictPhone bool
	EnquiryStrictEmail bool
	EnquiryMaxQuantity int

	TrustedProxies []string

	DefaultAdminPassword string
	AdminEmail           string
}

func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	return Config{
		ServiceName:  EnvDefault("SERVICE_NAME", "catalog"),
		ServerPort:   EnvIntDefault("SERVER_PORT", 8080),
		AllowOrigins: CSV(os.Getenv("CORS_ORIGINS")),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret: []byte(os.Getenv("JWT_SECRET")),
		JWTTTL:    time.Duration(EnvIntDefault("JWT_TTL_HOURS", 7*24)) * time.Hour,

		LogLevel: EnvDefault("LOG_LEVEL", "info"),
		LogFile:  os.Getenv("LOG_FILE"),

		AWSRegion:          EnvDefault("AWS_REGION", "ap-south-1"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		S3Bucket:           os.Getenv("S3_BUCKET_NAME"),
		CDNDomain:          os.Getenv("CLOUDFRONT_DOMAIN"),
		UploadTmpDir:       EnvDefault("UPLOAD_TMP_DIR", "uploads/temp"),

		SMTPHost:   EnvDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:   EnvIntDefault("SMTP_PORT", 465),
		EmailUser:  os.Getenv("EMAIL_USER"),
		EmailPass:  os.Getenv("EMAIL_PASS"),
		EmailFrom:  EnvDefault("EMAIL_FROM", os.Getenv("EMAIL_USER")),
		OwnerEmail: EnvDefault("OWNER_EMAIL", os.Getenv("EMAIL_USER")),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "products"),

		WorkerPoolSize: EnvIntDefault("WORKER_POOL_SIZE", 16),

		EnquiryStrictPhone: EnvBool("ENQUIRY_STRICT_PHONE"),
		EnquiryStrictEmail: EnvBool("ENQUIRY_STRICT_EMAIL"),
		EnquiryMaxQuantity: EnvIntDefault("ENQUIRY_MAX_QUANTITY", 0),

		TrustedProxies: CSV(os.Getenv("TRUSTED_PROXIES")),

		DefaultAdminPassword: EnvDefault("DEFAULT_ADMIN_PASSWORD", "Admin@123"),
		AdminEmail:           EnvDefault("ADMIN_EMAIL", "admin@example.com"),
	}
}

func (c Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.EmailUser != "" && c.OwnerEmail != ""
}

func (c Config) StorageEnabled() bool {
	return c.S3Bucket != ""
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}
