package config

import (
	"flag"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Addr             string   `env:"RUN_ADDRESS" env-default:"localhost:8080"`
	DatabaseURL      string   `env:"DATABASE_URI"`
	PrivateKey       string   `env:"PRIVATE_KEY" env-default:"privatekey"`
	AuthDisabledURLs []string `env:"AUTH_DISABLED_URLS" env-default:"/api/user/login,/api/user/register,/api/products,/api/brands,/api/shops,/metrics" env-separator:","`

	// Order lifecycle knobs. The return window defaults to 30 days after
	// delivery; product copy elsewhere says 7 days, so it stays configurable
	// until that is settled.
	DeliveryLeadDays int `env:"DELIVERY_LEAD_DAYS" env-default:"7"`
	ReturnWindowDays int `env:"RETURN_WINDOW_DAYS" env-default:"30"`

	// RefundPerUnit switches the return refund from the unit price snapshot
	// to price*quantity. Off by default to match current behavior.
	RefundPerUnit bool `env:"REFUND_PER_UNIT" env-default:"false"`

	KafkaBrokers     string `env:"KAFKA_BROKERS"`
	OrderEventsTopic string `env:"ORDER_EVENTS_TOPIC" env-default:"order-events"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	flag.StringVar(&cfg.Addr, "a", "localhost:8080", "HTTP server address")
	flag.StringVar(&cfg.DatabaseURL, "d", "", "database URL (empty runs the in-memory store)")
	flag.StringVar(&cfg.KafkaBrokers, "b", "", "kafka brokers for order events")

	flag.Parse()

	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, fmt.Errorf("couldn't read environment variables: %w", err)
	}

	return cfg, nil
}
