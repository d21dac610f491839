package config

import "time"

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Payments  PaymentsConfig  `mapstructure:"payments"`
	Documents DocumentsConfig `mapstructure:"documents"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
	// Mode is the gin mode: debug, release or test.
	Mode                 string        `mapstructure:"mode"`
	CORSOrigins          []string      `mapstructure:"cors_origins"`
	SlowRequestThreshold time.Duration `mapstructure:"slow_request_threshold"`
}

// StorageConfig selects the persistence driver: sqlite, postgres or dynamodb.
type StorageConfig struct {
	Driver      string         `mapstructure:"driver"`
	SQLitePath  string         `mapstructure:"sqlite_path"`
	PostgresDSN string         `mapstructure:"postgres_dsn"`
	DynamoDB    DynamoDBConfig `mapstructure:"dynamodb"`
}

type DynamoDBConfig struct {
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	JobsTable       string `mapstructure:"jobs_table"`
	ClientsTable    string `mapstructure:"clients_table"`
	SettingsTable   string `mapstructure:"settings_table"`
	CountersTable   string `mapstructure:"counters_table"`
}

// PaymentsConfig selects the payment processor. Credentials are not here:
// they live in the company settings and are read per request.
type PaymentsConfig struct {
	Provider string        `mapstructure:"provider"`
	Mock     string        `mapstructure:"mock"`
	Currency string        `mapstructure:"currency"`
	Timeout  time.Duration `mapstructure:"timeout"`
	// StripeAPIURL overrides the Stripe API base, e.g. for stripe-mock.
	StripeAPIURL string `mapstructure:"stripe_api_url"`
}

type DocumentsConfig struct {
	// Compress deflates PDF content streams.
	Compress bool `mapstructure:"compress"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
