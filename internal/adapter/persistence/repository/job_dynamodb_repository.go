package repository

import (
	"context"
	"fmt"
	"invoicing/internal/config"
	"invoicing/internal/domain/entities"
	"invoicing/internal/usecase/interfaces"
	"sort"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type jobItem struct {
	ID            string `dynamodbav:"id"`
	ClientID      int64  `dynamodbav:"client_id"`
	JobDate       string `dynamodbav:"job_date"`
	Description   string `dynamodbav:"description"`
	Hours         string `dynamodbav:"hours"`
	HourlyRate    string `dynamodbav:"hourly_rate"`
	Total         string `dynamodbav:"total"`
	Notes         string `dynamodbav:"notes"`
	Status        string `dynamodbav:"status"`
	InvoiceNumber int64  `dynamodbav:"invoice_number,omitempty"`
	InvoiceStatus string `dynamodbav:"invoice_status"`
	SentDate      string `dynamodbav:"invoice_sent_date,omitempty"`
	PaidDate      string `dynamodbav:"invoice_paid_date,omitempty"`
	CreatedAt     string `dynamodbav:"created_at"`
	UpdatedAt     string `dynamodbav:"updated_at"`
	Version       int64  `dynamodbav:"version"`
}

// JobDynamoRepository persists jobs in DynamoDB.
//
// Table requirements:
//   - jobs: PK id (string)
//   - counters: PK id (string); holds the id sequences and one
//     invoice#<n> claim per assigned invoice number
//
// Every job write is conditioned on the version it read, and a write that
// assigns a number also puts the claim in the same transaction.
type JobDynamoRepository struct {
	ddb           DynamoDBAPI
	tableName     string
	countersTable string
	now           func() time.Time
}

var _ interfaces.IJobRepository = (*JobDynamoRepository)(nil)

func NewJobDynamoRepository(ddb DynamoDBAPI, cfg config.DynamoDBConfig) *JobDynamoRepository {
	return &JobDynamoRepository{
		ddb:           ddb,
		tableName:     cfg.JobsTable,
		countersTable: cfg.CountersTable,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (r *JobDynamoRepository) Create(ctx context.Context, job entities.Job, assignInvoiceNumber bool) (entities.Job, error) {
	id, err := nextSequenceValue(ctx, r.ddb, r.countersTable, jobIDCounter)
	if err != nil {
		return entities.Job{}, err
	}
	job.ID = id

	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		var claim *int64
		if assignInvoiceNumber && !job.HasInvoiceNumber() {
			highest, err := r.maxInvoiceNumber(ctx)
			if err != nil {
				return entities.Job{}, err
			}
			n := highest + 1
			claim = &n
		}

		candidate := job
		if claim != nil {
			candidate.InvoiceNumber = claim
		}
		err := r.write(ctx, candidate, 0, claim, true)
		if err == nil {
			return candidate, nil
		}
		if !isWriteConflict(err) {
			return entities.Job{}, err
		}
	}
	return entities.Job{}, fmt.Errorf("create job %d: %w", id, ErrWriteConflict)
}

func (r *JobDynamoRepository) GetByID(ctx context.Context, id int64) (entities.Job, error) {
	it, found, err := r.get(ctx, id)
	if err != nil || !found {
		return entities.Job{}, err
	}
	return fromJobItem(it), nil
}

func (r *JobDynamoRepository) List(ctx context.Context, clientID int64) ([]entities.Job, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}
	if clientID > 0 {
		input.FilterExpression = aws.String("#client_id = :client_id")
		input.ExpressionAttributeNames = map[string]string{"#client_id": "client_id"}
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":client_id": &types.AttributeValueMemberN{Value: strconv.FormatInt(clientID, 10)},
		}
	}

	var out []entities.Job
	p := dynamodb.NewScanPaginator(r.ddb, input)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []jobItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			out = append(out, fromJobItem(it))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].JobDate.Equal(out[j].JobDate) {
			return out[i].JobDate.After(out[j].JobDate)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *JobDynamoRepository) Update(ctx context.Context, id int64, assignInvoiceNumber bool, mutate interfaces.JobMutation) (entities.Job, error) {
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		it, found, err := r.get(ctx, id)
		if err != nil || !found {
			return entities.Job{}, err
		}

		job := fromJobItem(it)
		dirty := false
		var claim *int64
		if assignInvoiceNumber && !job.HasInvoiceNumber() {
			highest, err := r.maxInvoiceNumber(ctx)
			if err != nil {
				return entities.Job{}, err
			}
			n := highest + 1
			claim = &n
			job.InvoiceNumber = claim
			job.UpdatedAt = r.now()
			dirty = true
		}
		if mutate != nil {
			changed, err := mutate(&job)
			if err != nil {
				return entities.Job{}, err
			}
			dirty = dirty || changed
		}
		if !dirty {
			return job, nil
		}

		err = r.write(ctx, job, it.Version, claim, false)
		if err == nil {
			return job, nil
		}
		if !isWriteConflict(err) {
			return entities.Job{}, err
		}
	}
	return entities.Job{}, fmt.Errorf("update job %d: %w", id, ErrWriteConflict)
}

func (r *JobDynamoRepository) Delete(ctx context.Context, id int64) (bool, error) {
	it, found, err := r.get(ctx, id)
	if err != nil || !found {
		return false, err
	}

	items := []types.TransactWriteItem{{
		Delete: &types.Delete{
			TableName:                 aws.String(r.tableName),
			Key:                       jobKey(id),
			ConditionExpression:       aws.String("#version = :version"),
			ExpressionAttributeNames:  map[string]string{"#version": "version"},
			ExpressionAttributeValues: versionValue(it.Version),
		},
	}}
	if it.Version == 0 {
		items[0].Delete.ConditionExpression = aws.String("attribute_not_exists(#version)")
		items[0].Delete.ExpressionAttributeValues = nil
	}
	if it.InvoiceNumber > 0 {
		items = append(items, types.TransactWriteItem{
			Delete: &types.Delete{
				TableName: aws.String(r.countersTable),
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: invoiceClaimKey(it.InvoiceNumber)},
				},
			},
		})
	}

	if _, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items}); err != nil {
		if isWriteConflict(err) {
			return false, fmt.Errorf("delete job %d: %w", id, ErrWriteConflict)
		}
		return false, err
	}
	return true, nil
}

func (r *JobDynamoRepository) NextInvoiceNumber(ctx context.Context) (int64, error) {
	highest, err := r.maxInvoiceNumber(ctx)
	if err != nil {
		return 0, err
	}
	return highest + 1, nil
}

func (r *JobDynamoRepository) get(ctx context.Context, id int64) (jobItem, bool, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            jobKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return jobItem{}, false, err
	}
	if len(out.Item) == 0 {
		return jobItem{}, false, nil
	}
	var it jobItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return jobItem{}, false, err
	}
	return it, true, nil
}

// write puts the job at version+1, plus the invoice number claim when one
// is being assigned. A create requires the id to be free; anything else
// requires the stored version to be unchanged since it was read.
func (r *JobDynamoRepository) write(ctx context.Context, job entities.Job, version int64, claim *int64, create bool) error {
	it := toJobItem(job)
	it.Version = version + 1
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return err
	}

	put := &types.Put{TableName: aws.String(r.tableName), Item: av}
	switch {
	case create:
		put.ConditionExpression = aws.String("attribute_not_exists(#id)")
		put.ExpressionAttributeNames = map[string]string{"#id": "id"}
	case version == 0:
		put.ConditionExpression = aws.String("attribute_not_exists(#version)")
		put.ExpressionAttributeNames = map[string]string{"#version": "version"}
	default:
		put.ConditionExpression = aws.String("#version = :version")
		put.ExpressionAttributeNames = map[string]string{"#version": "version"}
		put.ExpressionAttributeValues = versionValue(version)
	}

	items := []types.TransactWriteItem{{Put: put}}
	if claim != nil {
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName: aws.String(r.countersTable),
				Item: map[string]types.AttributeValue{
					"id":     &types.AttributeValueMemberS{Value: invoiceClaimKey(*claim)},
					"job_id": &types.AttributeValueMemberN{Value: strconv.FormatInt(job.ID, 10)},
				},
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			},
		})
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	return err
}

func (r *JobDynamoRepository) maxInvoiceNumber(ctx context.Context) (int64, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:                aws.String(r.tableName),
		ProjectionExpression:     aws.String("#n"),
		FilterExpression:         aws.String("attribute_exists(#n)"),
		ExpressionAttributeNames: map[string]string{"#n": "invoice_number"},
		ConsistentRead:           aws.Bool(true),
	})

	var highest int64
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return 0, err
		}
		var items []struct {
			InvoiceNumber int64 `dynamodbav:"invoice_number"`
		}
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return 0, err
		}
		for _, it := range items {
			if it.InvoiceNumber > highest {
				highest = it.InvoiceNumber
			}
		}
	}
	return highest, nil
}

func jobKey(id int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: strconv.FormatInt(id, 10)},
	}
}

func versionValue(v int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		":version": &types.AttributeValueMemberN{Value: strconv.FormatInt(v, 10)},
	}
}

func toJobItem(j entities.Job) jobItem {
	it := jobItem{
		ID:            strconv.FormatInt(j.ID, 10),
		ClientID:      j.ClientID,
		JobDate:       j.JobDate.Format(dateLayout),
		Description:   j.Description,
		Hours:         floatToString(j.Hours),
		HourlyRate:    floatToString(j.HourlyRate),
		Total:         floatToString(j.Total),
		Notes:         j.Notes,
		Status:        string(j.Status),
		InvoiceStatus: string(j.InvoiceStatus),
		SentDate:      formatDatePtr(j.SentDate),
		PaidDate:      formatDatePtr(j.PaidDate),
		CreatedAt:     formatTimestamp(j.CreatedAt),
		UpdatedAt:     formatTimestamp(j.UpdatedAt),
	}
	if j.HasInvoiceNumber() {
		it.InvoiceNumber = *j.InvoiceNumber
	}
	return it
}

func fromJobItem(it jobItem) entities.Job {
	id, _ := strconv.ParseInt(it.ID, 10, 64)
	jobDate, _ := time.Parse(dateLayout, it.JobDate)
	j := entities.Job{
		ID:            id,
		ClientID:      it.ClientID,
		JobDate:       jobDate,
		Description:   it.Description,
		Hours:         parseFloat(it.Hours),
		HourlyRate:    parseFloat(it.HourlyRate),
		Total:         parseFloat(it.Total),
		Notes:         it.Notes,
		Status:        entities.WorkStatus(it.Status),
		InvoiceStatus: entities.InvoiceStatus(it.InvoiceStatus),
		SentDate:      parseDatePtr(it.SentDate),
		PaidDate:      parseDatePtr(it.PaidDate),
		CreatedAt:     parseTimestamp(it.CreatedAt),
		UpdatedAt:     parseTimestamp(it.UpdatedAt),
	}
	if it.InvoiceNumber > 0 {
		n := it.InvoiceNumber
		j.InvoiceNumber = &n
	}
	return j
}
