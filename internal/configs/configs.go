package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8081"`

	// memory | postgres
	StoreDriver string `env:"STORE_DRIVER" envDefault:"memory"`

	DatabaseURL     string `env:"DATABASE_URL" envDefault:""`
	PostgresHost    string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort    string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser    string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPass    string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	PostgresDB      string `env:"POSTGRES_DB" envDefault:"lensflow"`
	PostgresSSLMode string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	KafkaBrokers     string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaIntakeTopic string `env:"KAFKA_INTAKE_TOPIC" envDefault:"partner-orders"`
	KafkaIntakeDLQ   string `env:"KAFKA_INTAKE_DLQ" envDefault:"partner-orders-dlq"`
	KafkaEventsTopic string `env:"KAFKA_EVENTS_TOPIC" envDefault:"order-events"`
	KafkaGroupID     string `env:"KAFKA_GROUP_ID" envDefault:"lensflow-crm"`
	KafkaEnabled     bool   `env:"KAFKA_ENABLED" envDefault:"false"`

	PartnerBaseURL string `env:"PARTNER_BASE_URL" envDefault:""`
	PartnerAPIKey  string `env:"PARTNER_API_KEY" envDefault:""`

	// Shared secret the partner presents when pulling the counterparty
	// export; empty means the export is unconfigured and answers 500.
	ExportKey string `env:"EXPORT_KEY" envDefault:""`

	// How long after creation the ordering doctor may still edit an order
	// that has not entered production.
	EditWindow time.Duration `env:"EDIT_WINDOW" envDefault:"24h"`

	// When true the state machine enforces the adjacency graph instead of
	// accepting any enum-valid status.
	StrictTransitions bool `env:"STRICT_TRANSITIONS" envDefault:"false"`
}

func LoadConfig(_ string) (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("config parse: %w", err)
	}
	return c, nil
}

func (c Config) KafkaBrokersSlice() []string {
	parts := strings.Split(c.KafkaBrokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c Config) PgDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.PostgresUser,
		c.PostgresPass,
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresDB,
		c.PostgresSSLMode,
	)
}
