package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	aws_pkg "storefront-service/pkg/aws"

	"go.uber.org/zap"
)

const (
	dbCredentialsSecret = "storefront/DB_CREDENTIALS"
	stripeKeySecret     = "storefront/STRIPE_SECRET_KEY"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port   string
	AppEnv string

	MongoURI                 string
	MongoDB                  string
	DBUser                   string
	DBPass                   string
	DBCluster                string
	MongoCheckoutTransaction bool

	StripeSecretKey string
	StripeCurrency  string

	RedisURL string

	S3Bucket          string
	S3Prefix          string
	CloudFrontDomain  string
	S3ForcePathStyle  bool
	CheckoutTopicARN  string
	CloudWatchEnabled bool
	CloudWatchNS      string
	AllowedOrigins    string
	UseSecretsManager bool
}

// secretGetter reads secrets by name.
type secretGetter interface {
	GetSecret(ctx context.Context, name string) (string, error)
	GetSecretMap(ctx context.Context, name string) (map[string]string, error)
}

// LoadConfig reads configuration from environment variables with optional
// Secrets Manager override.
func LoadConfig() (*Config, error) {
	cfg := configFromEnv()

	if cfg.UseSecretsManager {
		awsCfg, err := aws_pkg.LoadAWSConfig(context.Background())
		if err != nil {
			zap.L().Warn("Secrets Manager unavailable, using environment", zap.Error(err))
		} else {
			applySecrets(context.Background(), cfg, aws_pkg.NewSecretsClient(awsCfg))
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configFromEnv() *Config {
	return &Config{
		Port:                     getEnv("PORT", "5000"),
		AppEnv:                   getEnv("APP_ENV", "development"),
		MongoURI:                 os.Getenv("MONGO_URI"),
		MongoDB:                  getEnv("MONGO_DB", "sujuBotanica"),
		DBUser:                   os.Getenv("DB_USER"),
		DBPass:                   os.Getenv("DB_PASS"),
		DBCluster:                getEnv("DB_CLUSTER", "cluster0.example.mongodb.net"),
		MongoCheckoutTransaction: os.Getenv("MONGO_CHECKOUT_TRANSACTIONS") == "true",
		StripeSecretKey:          os.Getenv("STRIPE_SECRET_KEY"),
		StripeCurrency:           strings.ToLower(getEnv("STRIPE_CURRENCY", "usd")),
		RedisURL:                 os.Getenv("REDIS_URL"),
		S3Bucket:                 os.Getenv("AWS_S3_BUCKET"),
		S3Prefix:                 os.Getenv("AWS_S3_PREFIX"),
		CloudFrontDomain:         os.Getenv("AWS_CLOUDFRONT_DOMAIN"),
		S3ForcePathStyle:         os.Getenv("AWS_S3_FORCE_PATH_STYLE") == "true",
		CheckoutTopicARN:         os.Getenv("CHECKOUT_SNS_TOPIC_ARN"),
		CloudWatchEnabled:        os.Getenv("CLOUDWATCH_ENABLED") == "true",
		CloudWatchNS:             getEnv("CLOUDWATCH_NAMESPACE", "Storefront"),
		AllowedOrigins:           os.Getenv("ALLOWED_ORIGINS"),
		UseSecretsManager:        os.Getenv("AWS_USE_SECRETS") == "true",
	}
}

// applySecrets overrides credentials with values from Secrets Manager. A
// secret that cannot be read leaves the environment value in place.
func applySecrets(ctx context.Context, cfg *Config, sm secretGetter) {
	if m, err := sm.GetSecretMap(ctx, dbCredentialsSecret); err == nil {
		if v := m["MONGO_URI"]; v != "" {
			cfg.MongoURI = v
		}
		if v := m["DB_USER"]; v != "" {
			cfg.DBUser = v
		}
		if v := m["DB_PASS"]; v != "" {
			cfg.DBPass = v
		}
		if v := m["DB_CLUSTER"]; v != "" {
			cfg.DBCluster = v
		}
	} else {
		zap.L().Warn("Failed to read DB credentials secret", zap.Error(err))
	}

	if v, err := sm.GetSecret(ctx, stripeKeySecret); err == nil && v != "" {
		cfg.StripeSecretKey = strings.TrimSpace(v)
	} else if err != nil {
		zap.L().Warn("Failed to read Stripe key secret", zap.Error(err))
	}
}

// MongoConnectionURI returns MONGO_URI when set, otherwise an Atlas SRV URI
// built from the DB_* credentials.
func (c *Config) MongoConnectionURI() string {
	if c.MongoURI != "" {
		return c.MongoURI
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority",
		url.QueryEscape(c.DBUser), url.QueryEscape(c.DBPass), c.DBCluster)
}

func (c *Config) validate() error {
	var errs []error
	if c.MongoURI == "" && (c.DBUser == "" || c.DBPass == "") {
		errs = append(errs, errors.New("MONGO_URI or DB_USER and DB_PASS must be set"))
	}
	if c.StripeSecretKey == "" {
		errs = append(errs, errors.New("STRIPE_SECRET_KEY must be set"))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
