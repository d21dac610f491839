package repository

import (
	"context"
	"invoicing/internal/config"
	"invoicing/internal/domain/entities"
	"invoicing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const settingsItemID = "company"

type settingsItem struct {
	ID                   string `dynamodbav:"id"`
	CompanyName          string `dynamodbav:"company_name"`
	OwnerName            string `dynamodbav:"owner_name"`
	Address              string `dynamodbav:"address"`
	Phone                string `dynamodbav:"phone"`
	Email                string `dynamodbav:"email"`
	Tagline              string `dynamodbav:"tagline"`
	DefaultHourlyRate    string `dynamodbav:"default_hourly_rate"`
	PaymentSecretKey     string `dynamodbav:"payment_secret_key"`
	WebhookSigningSecret string `dynamodbav:"webhook_signing_secret"`
	UpdatedAt            string `dynamodbav:"updated_at"`
}

// SettingsDynamoRepository keeps the settings singleton under a fixed key.
type SettingsDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.ISettingsRepository = (*SettingsDynamoRepository)(nil)

func NewSettingsDynamoRepository(ddb DynamoDBAPI, cfg config.DynamoDBConfig) *SettingsDynamoRepository {
	return &SettingsDynamoRepository{ddb: ddb, tableName: cfg.SettingsTable}
}

func (r *SettingsDynamoRepository) Get(ctx context.Context) (entities.CompanySettings, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: settingsItemID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.CompanySettings{}, err
	}
	if len(out.Item) == 0 {
		return entities.DefaultCompanySettings(), nil
	}
	var it settingsItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.CompanySettings{}, err
	}
	return fromSettingsItem(it), nil
}

func (r *SettingsDynamoRepository) Save(ctx context.Context, s entities.CompanySettings) (entities.CompanySettings, error) {
	av, err := attributevalue.MarshalMap(toSettingsItem(s))
	if err != nil {
		return entities.CompanySettings{}, err
	}
	if _, err := r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		return entities.CompanySettings{}, err
	}
	return s, nil
}

func toSettingsItem(s entities.CompanySettings) settingsItem {
	return settingsItem{
		ID:                   settingsItemID,
		CompanyName:          s.CompanyName,
		OwnerName:            s.OwnerName,
		Address:              s.Address,
		Phone:                s.Phone,
		Email:                s.Email,
		Tagline:              s.Tagline,
		DefaultHourlyRate:    floatToString(s.DefaultHourlyRate),
		PaymentSecretKey:     s.PaymentSecretKey,
		WebhookSigningSecret: s.WebhookSigningSecret,
		UpdatedAt:            formatTimestamp(s.UpdatedAt),
	}
}

func fromSettingsItem(it settingsItem) entities.CompanySettings {
	return entities.CompanySettings{
		CompanyName:          it.CompanyName,
		OwnerName:            it.OwnerName,
		Address:              it.Address,
		Phone:                it.Phone,
		Email:                it.Email,
		Tagline:              it.Tagline,
		DefaultHourlyRate:    parseFloat(it.DefaultHourlyRate),
		PaymentSecretKey:     it.PaymentSecretKey,
		WebhookSigningSecret: it.WebhookSigningSecret,
		UpdatedAt:            parseTimestamp(it.UpdatedAt),
	}
}
