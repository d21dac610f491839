package repository

import (
	"context"
	"errors"
	"invoicing/internal/config"
	"invoicing/internal/domain/entities"
	"invoicing/internal/usecase/interfaces"
	"sort"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type clientItem struct {
	ID         string `dynamodbav:"id"`
	Name       string `dynamodbav:"name"`
	Email      string `dynamodbav:"email"`
	Phone      string `dynamodbav:"phone"`
	Address    string `dynamodbav:"address"`
	HourlyRate string `dynamodbav:"hourly_rate"`
	Notes      string `dynamodbav:"notes"`
	CreatedAt  string `dynamodbav:"created_at"`
	UpdatedAt  string `dynamodbav:"updated_at"`
}

type ClientDynamoRepository struct {
	ddb           DynamoDBAPI
	tableName     string
	countersTable string
}

var _ interfaces.IClientRepository = (*ClientDynamoRepository)(nil)

func NewClientDynamoRepository(ddb DynamoDBAPI, cfg config.DynamoDBConfig) *ClientDynamoRepository {
	return &ClientDynamoRepository{ddb: ddb, tableName: cfg.ClientsTable, countersTable: cfg.CountersTable}
}

func (r *ClientDynamoRepository) Create(ctx context.Context, c entities.Client) (entities.Client, error) {
	id, err := nextSequenceValue(ctx, r.ddb, r.countersTable, clientIDCounter)
	if err != nil {
		return entities.Client{}, err
	}
	c.ID = id
	if err := r.put(ctx, c, "attribute_not_exists(#id)"); err != nil {
		return entities.Client{}, err
	}
	return c, nil
}

func (r *ClientDynamoRepository) GetByID(ctx context.Context, id int64) (entities.Client, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: strconv.FormatInt(id, 10)},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Client{}, err
	}
	if len(out.Item) == 0 {
		return entities.Client{}, nil
	}
	var it clientItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Client{}, err
	}
	return fromClientItem(it), nil
}

func (r *ClientDynamoRepository) Update(ctx context.Context, c entities.Client) (entities.Client, error) {
	err := r.put(ctx, c, "attribute_exists(#id)")
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Client{}, nil
		}
		return entities.Client{}, err
	}
	return c, nil
}

func (r *ClientDynamoRepository) List(ctx context.Context) ([]entities.Client, error) {
	var out []entities.Client
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []clientItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			out = append(out, fromClientItem(it))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *ClientDynamoRepository) put(ctx context.Context, c entities.Client, condition string) error {
	av, err := attributevalue.MarshalMap(toClientItem(c))
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String(condition),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	return err
}

func toClientItem(c entities.Client) clientItem {
	return clientItem{
		ID:         strconv.FormatInt(c.ID, 10),
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		HourlyRate: floatToString(c.HourlyRate),
		Notes:      c.Notes,
		CreatedAt:  formatTimestamp(c.CreatedAt),
		UpdatedAt:  formatTimestamp(c.UpdatedAt),
	}
}

func fromClientItem(it clientItem) entities.Client {
	id, _ := strconv.ParseInt(it.ID, 10, 64)
	return entities.Client{
		ID:         id,
		Name:       it.Name,
		Email:      it.Email,
		Phone:      it.Phone,
		Address:    it.Address,
		HourlyRate: parseFloat(it.HourlyRate),
		Notes:      it.Notes,
		CreatedAt:  parseTimestamp(it.CreatedAt),
		UpdatedAt:  parseTimestamp(it.UpdatedAt),
	}
}
