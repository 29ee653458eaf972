package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// SigningDomain names an independent token signing key.
type SigningDomain string

const (
	DomainAdmin    SigningDomain = "admin"
	DomainEmployee SigningDomain = "employee"
)

type Config struct {
	Port    string
	AppEnv  string
	BaseURL string

	DatabaseDSN     string
	DatabaseRetries int
	// ProvisioningTx runs multi-record provisioning writes in one transaction.
	ProvisioningTx bool

	RedisAddr      string
	IdempotencyTTL time.Duration
	KafkaBroker    string
	KafkaGroupID   string
	OutboxPoll     time.Duration

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string

	SigningKeys map[SigningDomain][]byte
	TokenTTL    time.Duration
	BcryptCost  int

	SuperAdminEmail    string
	SuperAdminPassword string

	StaticDir string
}

// Load reads the process environment. Call godotenv.Load first to pick up .env.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "3000"),
		AppEnv:             getEnv("APP_ENV", "development"),
		BaseURL:            strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:3000"), "/"),
		DatabaseDSN:        os.Getenv("DATABASE_DSN"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		KafkaBroker:        os.Getenv("KAFKA_BROKER"),
		KafkaGroupID:       getEnv("KAFKA_GROUP_ID", "go-directory-audit"),
		S3Bucket:           getEnv("S3_BUCKET", "directory-assets"),
		S3Region:           getEnv("S3_REGION", "us-east-1"),
		S3BaseEndpoint:     os.Getenv("S3_BASE_ENDPOINT"),
		S3AccessKey:        os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:        os.Getenv("S3_SECRET_KEY"),
		SuperAdminEmail:    os.Getenv("SUPERADMIN_EMAIL"),
		SuperAdminPassword: os.Getenv("SUPERADMIN_PASSWORD"),
		StaticDir:          getEnv("STATIC_DIR", "./uploads"),
		SigningKeys: map[SigningDomain][]byte{
			DomainAdmin:    []byte(os.Getenv("JWT_ADMIN_SECRET")),
			DomainEmployee: []byte(os.Getenv("JWT_EMPLOYEE_SECRET")),
		},
	}

	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_USER", "postgres"),
			os.Getenv("DB_PASSWORD"),
			getEnv("DB_NAME", "directory"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_SSLMODE", "disable"),
		)
	}

	var err error
	if cfg.DatabaseRetries, err = getInt("DB_MAX_RETRIES", 5); err != nil {
		return nil, err
	}
	if cfg.BcryptCost, err = getInt("BCRYPT_COST", bcrypt.DefaultCost); err != nil {
		return nil, err
	}
	if cfg.ProvisioningTx, err = getBool("PROVISIONING_TX", true); err != nil {
		return nil, err
	}
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.IdempotencyTTL, err = getDuration("IDEMPOTENCY_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.OutboxPoll, err = getDuration("OUTBOX_POLL_INTERVAL", 3*time.Second); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	for _, d := range []SigningDomain{DomainAdmin, DomainEmployee} {
		if len(c.SigningKeys[d]) == 0 {
			errs = append(errs, fmt.Errorf("signing key for %q domain is required", d))
		}
	}
	if len(errs) == 0 && string(c.SigningKeys[DomainAdmin]) == string(c.SigningKeys[DomainEmployee]) {
		errs = append(errs, errors.New("admin and employee signing keys must differ"))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
