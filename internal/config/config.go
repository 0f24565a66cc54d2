package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/questify-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort        string
	AppEnv         string
	LogLevel       string
	PublicBaseURL  string // prefix for links embedded in outbound email
	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	JWTSecret      string
	JWTExpiry      time.Duration
	BcryptCost     int
	Notifier       string // "smtp" | "sns"
	SMTPHost       string
	SMTPPort       string
	SMTPFrom       string
	SMTPFromName   string
	SMTPUsername   string
	SMTPPassword   string
	SNSRegion      string
	SNSTopicARN    string
	// NotifyFailurePolicy decides what happens to a freshly registered
	// account whose verification email could not be sent.
	NotifyFailurePolicy string
	NotifyAttempts      int
	AllowedOrigins      []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Accounts    string
	AccountKeys string // uniqueness markers for email and username
	Todos       string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:        getEnv("APP_PORT", "3000"),
		AppEnv:         getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		PublicBaseURL:  strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:3000"), "/"),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Accounts:    getEnv("DYNAMO_TABLE_ACCOUNTS", "accounts"),
			AccountKeys: getEnv("DYNAMO_TABLE_ACCOUNT_KEYS", "account_keys"),
			Todos:       getEnv("DYNAMO_TABLE_TODOS", "todos"),
		},
		JWTSecret:           getEnv("JWT_SECRET", ""),
		JWTExpiry:           getEnvDuration("JWT_EXPIRY", 48*time.Hour),
		BcryptCost:          getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
		Notifier:            getEnv("NOTIFIER", "smtp"),
		SMTPHost:            getEnv("SMTP_HOST", "localhost"),
		SMTPPort:            getEnv("SMTP_PORT", "1025"),
		SMTPFrom:            getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPFromName:        getEnv("SMTP_FROM_NAME", "Questify Team"),
		SMTPUsername:        getEnv("SMTP_USERNAME", ""),
		SMTPPassword:        getEnv("SMTP_PASSWORD", ""),
		SNSRegion:           getEnv("SNS_REGION", "us-east-1"),
		SNSTopicARN:         getEnv("SNS_TOPIC_ARN", ""),
		NotifyFailurePolicy: getEnv("NOTIFY_FAILURE_POLICY", domain.NotifyFailureKeep),
		NotifyAttempts:      getEnvInt("NOTIFY_ATTEMPTS", 1),
		AllowedOrigins:      strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

// Validate reports settings the service cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.JWTExpiry <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRY must be positive"))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	switch c.Notifier {
	case "smtp":
	case "sns":
		if c.SNSTopicARN == "" {
			errs = append(errs, errors.New("SNS_TOPIC_ARN is required when NOTIFIER=sns"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown NOTIFIER %q", c.Notifier))
	}
	switch c.NotifyFailurePolicy {
	case domain.NotifyFailureKeep, domain.NotifyFailureDelete:
	default:
		errs = append(errs, fmt.Errorf("unknown NOTIFY_FAILURE_POLICY %q", c.NotifyFailurePolicy))
	}
	if c.NotifyAttempts < 1 {
		errs = append(errs, errors.New("NOTIFY_ATTEMPTS must be at least 1"))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
