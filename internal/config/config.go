package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/minimall/minimall/internal/types"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig
	Pricing    PricingConfig    `validate:"required"`
	Commission CommissionConfig `validate:"required"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// PricingConfig holds the knobs of the pricing engine that are deployment
// configuration rather than per-order data.
type PricingConfig struct {
	// PointConversionRate is the cash value of a single loyalty point
	PointConversionRate decimal.Decimal `validate:"required"`
	// MaxPointDiscountRate caps point redemption at this share of the base amount (0..1)
	MaxPointDiscountRate decimal.Decimal `validate:"required"`
	// MaxPercentageCouponDiscount optionally caps the discount of a single
	// percentage coupon; zero means no ceiling
	MaxPercentageCouponDiscount decimal.Decimal
	// MaxCouponsPerOrder bounds how many coupons one quote may apply
	MaxCouponsPerOrder int `validate:"required,gte=1"`
	// ReservationTTL is how long a quote may hold coupon stock before an
	// unconfirmed reservation is reclaimed
	ReservationTTL time.Duration `validate:"required"`
	// ReservationSweepInterval is how often expired reservations are swept
	ReservationSweepInterval time.Duration `validate:"required"`
}

// CommissionConfig holds distribution-wide knobs
type CommissionConfig struct {
	// MaxTierDepth is the hard cap on referral chain traversal
	MaxTierDepth int `validate:"required,gte=1"`
	// RetryAttempts bounds the idempotent re-distribution retries after the
	// order is durable
	RetryAttempts int `validate:"required,gte=1"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/minimall")

	v.SetEnvPrefix("MINIMALL")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config, viper.DecodeHook(configDecodeHook())); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.ModeLocal))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("pricing.pointconversionrate", "0.01")
	v.SetDefault("pricing.maxpointdiscountrate", "0.5")
	v.SetDefault("pricing.maxpercentagecoupondiscount", "0")
	v.SetDefault("pricing.maxcouponsperorder", 3)
	v.SetDefault("pricing.reservationttl", "15m")
	v.SetDefault("pricing.reservationsweepinterval", "1m")
	v.SetDefault("commission.maxtierdepth", 3)
	v.SetDefault("commission.retryattempts", 3)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development and tests
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Pricing: PricingConfig{
			PointConversionRate:      decimal.NewFromFloat(0.01),
			MaxPointDiscountRate:     decimal.NewFromFloat(0.5),
			MaxCouponsPerOrder:       3,
			ReservationTTL:           15 * time.Minute,
			ReservationSweepInterval: time.Minute,
		},
		Commission: CommissionConfig{
			MaxTierDepth:  3,
			RetryAttempts: 3,
		},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
