package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// envAliases keeps the environment names used by existing deployments.
var envAliases = map[string][]string{
	"server.port":                        {"SERVER_PORT", "PORT"},
	"server.mode":                        {"SERVER_MODE", "GIN_MODE"},
	"storage.postgres_dsn":               {"STORAGE_POSTGRES_DSN", "DATABASE_URL"},
	"storage.dynamodb.region":            {"STORAGE_DYNAMODB_REGION", "AWS_REGION"},
	"storage.dynamodb.endpoint":          {"STORAGE_DYNAMODB_ENDPOINT", "DYNAMODB_ENDPOINT"},
	"storage.dynamodb.access_key_id":     {"STORAGE_DYNAMODB_ACCESS_KEY_ID", "AWS_ACCESS_KEY_ID"},
	"storage.dynamodb.secret_access_key": {"STORAGE_DYNAMODB_SECRET_ACCESS_KEY", "AWS_SECRET_ACCESS_KEY"},
	"payments.mock":                      {"PAYMENTS_MOCK", "PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"},
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in increasing precedence. An empty path skips the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envAliases {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("server.cors_origins", d.Server.CORSOrigins)
	v.SetDefault("server.slow_request_threshold", d.Server.SlowRequestThreshold)

	v.SetDefault("storage.driver", d.Storage.Driver)
	v.SetDefault("storage.sqlite_path", d.Storage.SQLitePath)
	v.SetDefault("storage.postgres_dsn", d.Storage.PostgresDSN)
	v.SetDefault("storage.dynamodb.region", d.Storage.DynamoDB.Region)
	v.SetDefault("storage.dynamodb.endpoint", d.Storage.DynamoDB.Endpoint)
	v.SetDefault("storage.dynamodb.access_key_id", d.Storage.DynamoDB.AccessKeyID)
	v.SetDefault("storage.dynamodb.secret_access_key", d.Storage.DynamoDB.SecretAccessKey)
	v.SetDefault("storage.dynamodb.jobs_table", d.Storage.DynamoDB.JobsTable)
	v.SetDefault("storage.dynamodb.clients_table", d.Storage.DynamoDB.ClientsTable)
	v.SetDefault("storage.dynamodb.settings_table", d.Storage.DynamoDB.SettingsTable)
	v.SetDefault("storage.dynamodb.counters_table", d.Storage.DynamoDB.CountersTable)

	v.SetDefault("payments.provider", d.Payments.Provider)
	v.SetDefault("payments.mock", d.Payments.Mock)
	v.SetDefault("payments.currency", d.Payments.Currency)
	v.SetDefault("payments.timeout", d.Payments.Timeout)
	v.SetDefault("payments.stripe_api_url", d.Payments.StripeAPIURL)

	v.SetDefault("documents.compress", d.Documents.Compress)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Validate rejects values the wiring cannot act on.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverPostgres, DriverDynamoDB:
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == DriverPostgres && strings.TrimSpace(c.Storage.PostgresDSN) == "" {
		return fmt.Errorf("storage.postgres_dsn is required for the postgres driver")
	}
	switch c.Payments.Provider {
	case ProviderStripe, ProviderMercadoPago:
	default:
		return fmt.Errorf("unsupported payment provider %q", c.Payments.Provider)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unsupported server mode %q", c.Server.Mode)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}
