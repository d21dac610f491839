package app

import (
	"context"
	"fmt"
	"invoicing/internal/adapter/persistence/repository"
	"invoicing/internal/config"
	"invoicing/internal/infrastructure/database"
	"invoicing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Store bundles the repositories of one storage driver.
type Store struct {
	Jobs     interfaces.IJobRepository
	Clients  interfaces.IClientRepository
	Settings interfaces.ISettingsRepository

	migrate func(ctx context.Context) error
	close   func() error
}

// OpenStore connects to the driver selected in cfg. Nothing is created until
// Migrate runs.
func OpenStore(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (*Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite, config.DriverPostgres:
		db, err := database.OpenGorm(cfg, logger)
		if err != nil {
			return nil, err
		}
		return gormStore(db), nil
	case config.DriverDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
		if err != nil {
			return nil, err
		}
		return dynamoStore(ddb, cfg.DynamoDB, logger), nil
	}
	return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
}

func gormStore(db *gorm.DB) *Store {
	return &Store{
		Jobs:     repository.NewJobGormRepository(db),
		Clients:  repository.NewClientGormRepository(db),
		Settings: repository.NewSettingsGormRepository(db),
		migrate: func(ctx context.Context) error {
			return repository.Migrate(db.WithContext(ctx))
		},
		close: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

func dynamoStore(ddb *dynamodb.Client, cfg config.DynamoDBConfig, logger *zap.Logger) *Store {
	return &Store{
		Jobs:     repository.NewJobDynamoRepository(ddb, cfg),
		Clients:  repository.NewClientDynamoRepository(ddb, cfg),
		Settings: repository.NewSettingsDynamoRepository(ddb, cfg),
		migrate: func(ctx context.Context) error {
			return database.EnsureDynamoTables(ctx, ddb, cfg, logger.Named("dynamodb"))
		},
		close: func() error { return nil },
	}
}

// Migrate creates missing tables and seeds the singleton rows. It is safe to
// run on every start.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.migrate(ctx); err != nil {
		return fmt.Errorf("migrate store: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.close()
}
