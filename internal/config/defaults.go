package config

import (
	"strings"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverDynamoDB = "dynamodb"

	ProviderStripe      = "stripe"
	ProviderMercadoPago = "mercadopago"
)

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:                 8080,
			Mode:                 "debug",
			CORSOrigins:          []string{"*"},
			SlowRequestThreshold: 500 * time.Millisecond,
		},
		Storage: StorageConfig{
			Driver:     DriverSQLite,
			SQLitePath: "invoicing.db",
			DynamoDB: DynamoDBConfig{
				Region:          "us-east-1",
				AccessKeyID:     "local",
				SecretAccessKey: "local",
				JobsTable:       "invoicing_jobs",
				ClientsTable:    "invoicing_clients",
				SettingsTable:   "invoicing_settings",
				CountersTable:   "invoicing_counters",
			},
		},
		Payments: PaymentsConfig{
			Provider: ProviderStripe,
			Currency: "usd",
			Timeout:  10 * time.Second,
		},
		Documents: DocumentsConfig{
			Compress: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// MockEnabled reports whether payment links are minted locally instead of
// calling the processor.
func (p PaymentsConfig) MockEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(p.Mock)) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
