package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	jobIDCounter    = "job_id"
	clientIDCounter = "client_id"

	// maxWriteAttempts bounds optimistic retries on contended writes.
	maxWriteAttempts = 5
)

// ErrWriteConflict is returned when a contended DynamoDB write keeps losing
// its condition check.
var ErrWriteConflict = errors.New("dynamodb write conflict")

// DynamoDBAPI is the slice of the DynamoDB client the repositories call.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, in *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

var _ DynamoDBAPI = (*dynamodb.Client)(nil)

type counterItem struct {
	ID    string `dynamodbav:"id"`
	Value int64  `dynamodbav:"value"`
}

// nextSequenceValue atomically increments the named counter and returns the
// new value.
func nextSequenceValue(ctx context.Context, ddb DynamoDBAPI, table, name string) (int64, error) {
	out, err := ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: name},
		},
		UpdateExpression:         aws.String("ADD #value :one"),
		ExpressionAttributeNames: map[string]string{"#value": "value"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, fmt.Errorf("increment %s: %w", name, err)
	}
	var c counterItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &c); err != nil {
		return 0, err
	}
	return c.Value, nil
}

// invoiceClaimKey names the counters-table item that reserves an invoice
// number. The claim's attribute_not_exists condition is what makes two
// concurrent allocations of the same number impossible.
func invoiceClaimKey(number int64) string {
	return "invoice#" + strconv.FormatInt(number, 10)
}

func isWriteConflict(err error) bool {
	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) {
		return true
	}
	var cfe *types.ConditionalCheckFailedException
	return errors.As(err, &cfe)
}
