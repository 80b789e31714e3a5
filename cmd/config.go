package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaBrokers           []string
	KafkaOrderChangedTopic string

	TrackingAdvanceInterval time.Duration
	CartNotifyDebounce      time.Duration

	Pricing services.PricingPolicy

	BreakerFailureThreshold uint32
	BreakerTimeout          time.Duration
}

// DSN renders the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads the environment, after loading envFile when it exists.
// Unset variables take their defaults; malformed ones are reported together.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	var errList []error
	collect := func(err error) {
		if err != nil {
			errList = append(errList, err)
		}
	}

	cfg := Config{
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		DBHost:                 getEnv("DB_HOST", "localhost"),
		DBPort:                 getEnv("DB_PORT", "5432"),
		DBUser:                 getEnv("DB_USER", "storefront"),
		DBPassword:             getEnv("DB_PASSWORD", "storefront"),
		DBName:                 getEnv("DB_NAME", "storefront"),
		DBSslMode:              getEnv("DB_SSLMODE", "disable"),
		KafkaBrokers:           splitList(getEnv("KAFKA_HOST", "localhost:9092")),
		KafkaOrderChangedTopic: getEnv("KAFKA_ORDER_CHANGED_TOPIC", "order.changed"),
	}

	var err error
	cfg.TrackingAdvanceInterval, err = getDuration("TRACKING_ADVANCE_INTERVAL", 7*time.Second)
	collect(err)
	cfg.CartNotifyDebounce, err = getDuration("CART_NOTIFY_DEBOUNCE", 100*time.Millisecond)
	collect(err)
	cfg.BreakerTimeout, err = getDuration("BREAKER_TIMEOUT", 30*time.Second)
	collect(err)

	threshold, err := strconv.ParseUint(getEnv("BREAKER_FAILURE_THRESHOLD", "5"), 10, 32)
	if err != nil {
		collect(fmt.Errorf("BREAKER_FAILURE_THRESHOLD: %w", err))
	}
	cfg.BreakerFailureThreshold = uint32(threshold)

	cfg.Pricing.Discount, err = kernel.MoneyFromString(getEnv("PRICING_DISCOUNT", "5.00"))
	collect(wrapKey("PRICING_DISCOUNT", err))
	cfg.Pricing.DeliveryFee, err = kernel.MoneyFromString(getEnv("PRICING_DELIVERY_FEE", "3.99"))
	collect(wrapKey("PRICING_DELIVERY_FEE", err))
	cfg.Pricing.TaxRate, err = kernel.TaxRateFromString(getEnv("PRICING_TAX_RATE", "0.10"))
	collect(wrapKey("PRICING_TAX_RATE", err))

	if cfg.TrackingAdvanceInterval <= 0 {
		collect(errors.New("TRACKING_ADVANCE_INTERVAL must be positive"))
	}
	if len(cfg.KafkaBrokers) == 0 {
		collect(errors.New("KAFKA_HOST must name at least one broker"))
	}

	if err = errors.Join(errList...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func wrapKey(key string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", key, err)
}
