package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"invoicing/internal/config"
	"invoicing/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type item = map[string]types.AttributeValue

// fakeDynamo keeps tables in memory and evaluates the handful of condition
// expressions the repositories emit.
type fakeDynamo struct {
	mu       sync.Mutex
	tables   map[string]map[string]item
	transact int
	// beforeTransact runs before each TransactWriteItems is evaluated.
	beforeTransact func(f *fakeDynamo, call int)
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{tables: map[string]map[string]item{}}
}

func (f *fakeDynamo) table(name string) map[string]item {
	t, ok := f.tables[name]
	if !ok {
		t = map[string]item{}
		f.tables[name] = t
	}
	return t
}

func keyOf(av item) string {
	return av["id"].(*types.AttributeValueMemberS).Value
}

func (f *fakeDynamo) putJob(t *testing.T, job entities.Job, version int64) {
	t.Helper()
	it := toJobItem(job)
	it.Version = version
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		t.Fatalf("marshal job: %v", err)
	}
	f.table("jobs")[it.ID] = av
	if job.HasInvoiceNumber() {
		f.table("counters")[invoiceClaimKey(*job.InvoiceNumber)] = item{
			"id": &types.AttributeValueMemberS{Value: invoiceClaimKey(*job.InvoiceNumber)},
		}
	}
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &dynamodb.GetItemOutput{Item: f.table(aws.ToString(in.TableName))[keyOf(in.Key)]}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.table(aws.ToString(in.TableName))[keyOf(in.Item)] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.table(aws.ToString(in.TableName))
	key := keyOf(in.Key)
	var value int64
	if cur, ok := t[key]["value"].(*types.AttributeValueMemberN); ok {
		value, _ = strconv.ParseInt(cur.Value, 10, 64)
	}
	value++
	t[key] = item{
		"id":    &types.AttributeValueMemberS{Value: key},
		"value": &types.AttributeValueMemberN{Value: strconv.FormatInt(value, 10)},
	}
	return &dynamodb.UpdateItemOutput{Attributes: t[key]}, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []item
	for _, it := range f.table(aws.ToString(in.TableName)) {
		items = append(items, it)
	}
	return &dynamodb.ScanOutput{Items: items}, nil
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transact++
	if f.beforeTransact != nil {
		f.beforeTransact(f, f.transact)
	}

	for _, w := range in.TransactItems {
		var (
			table, cond string
			key         string
			values      item
		)
		switch {
		case w.Put != nil:
			table, cond, key, values = aws.ToString(w.Put.TableName), aws.ToString(w.Put.ConditionExpression), keyOf(w.Put.Item), w.Put.ExpressionAttributeValues
		case w.Delete != nil:
			table, cond, key, values = aws.ToString(w.Delete.TableName), aws.ToString(w.Delete.ConditionExpression), keyOf(w.Delete.Key), w.Delete.ExpressionAttributeValues
		}
		if !conditionHolds(f.table(table)[key], cond, values) {
			return nil, &types.TransactionCanceledException{Message: aws.String("ConditionalCheckFailed")}
		}
	}

	for _, w := range in.TransactItems {
		switch {
		case w.Put != nil:
			f.table(aws.ToString(w.Put.TableName))[keyOf(w.Put.Item)] = w.Put.Item
		case w.Delete != nil:
			delete(f.table(aws.ToString(w.Delete.TableName)), keyOf(w.Delete.Key))
		}
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

func conditionHolds(current item, cond string, values item) bool {
	switch {
	case cond == "":
		return true
	case cond == "attribute_not_exists(#id)":
		return current == nil
	case cond == "attribute_not_exists(#version)":
		_, ok := current["version"]
		return !ok
	case strings.HasPrefix(cond, "#version = "):
		cur, ok := current["version"].(*types.AttributeValueMemberN)
		want := values[":version"].(*types.AttributeValueMemberN)
		return ok && cur.Value == want.Value
	}
	return false
}

func newTestJobDynamoRepository(f *fakeDynamo) *JobDynamoRepository {
	repo := NewJobDynamoRepository(f, config.DynamoDBConfig{JobsTable: "jobs", CountersTable: "counters"})
	repo.now = func() time.Time { return time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC) }
	return repo
}

func numbered(id, n int64) entities.Job {
	return entities.Job{
		ID: id, ClientID: 1, JobDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		InvoiceNumber: &n, InvoiceStatus: entities.InvoiceStatusSent, Status: entities.WorkStatusComplete,
	}
}

func TestJobDynamoRepository_Allocation(t *testing.T) {
	t.Run("lost claim retries to a fresh number", func(t *testing.T) {
		f := newFakeDynamo()
		f.putJob(t, numbered(1, 2), 1)
		f.table("counters")[jobIDCounter] = item{
			"id":    &types.AttributeValueMemberS{Value: jobIDCounter},
			"value": &types.AttributeValueMemberN{Value: "1"},
		}
		// a concurrent writer takes number 3 between our scan and our write
		f.beforeTransact = func(f *fakeDynamo, call int) {
			if call == 1 {
				f.putJob(t, numbered(99, 3), 1)
			}
		}
		repo := newTestJobDynamoRepository(f)

		job, err := repo.Create(context.Background(), entities.Job{ClientID: 1, InvoiceStatus: entities.InvoiceStatusDraft}, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if job.ID != 2 || job.InvoiceNumber == nil || *job.InvoiceNumber != 4 {
			t.Fatalf("expected job 2 with number 4, got %+v", job)
		}
		if f.transact != 2 {
			t.Fatalf("expected one retry, got %d transactions", f.transact)
		}
		claim, ok := f.table("counters")[invoiceClaimKey(4)]
		if !ok {
			t.Fatalf("expected a claim for number 4")
		}
		if owner := claim["job_id"].(*types.AttributeValueMemberN).Value; owner != "2" {
			t.Fatalf("expected claim owned by job 2, got %s", owner)
		}
	})

	t.Run("update assigns and keeps the mutation", func(t *testing.T) {
		f := newFakeDynamo()
		f.putJob(t, numbered(1, 5), 1)
		f.putJob(t, entities.Job{ID: 2, ClientID: 1, InvoiceStatus: entities.InvoiceStatusDraft}, 1)
		repo := newTestJobDynamoRepository(f)

		job, err := repo.Update(context.Background(), 2, true, func(j *entities.Job) (bool, error) {
			j.InvoiceStatus = entities.InvoiceStatusSent
			return true, nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *job.InvoiceNumber != 6 || job.InvoiceStatus != entities.InvoiceStatusSent {
			t.Fatalf("unexpected job: %+v", job)
		}
		stored, err := repo.GetByID(context.Background(), 2)
		if err != nil || stored.InvoiceNumber == nil || *stored.InvoiceNumber != 6 {
			t.Fatalf("expected number 6 stored, got %+v err=%v", stored, err)
		}
		if _, ok := f.table("counters")[invoiceClaimKey(6)]; !ok {
			t.Fatalf("expected a claim for number 6")
		}
	})

	t.Run("contention past the attempt limit", func(t *testing.T) {
		f := newFakeDynamo()
		f.putJob(t, entities.Job{ID: 1, ClientID: 1, InvoiceStatus: entities.InvoiceStatusDraft}, 1)
		f.beforeTransact = func(f *fakeDynamo, call int) {
			f.putJob(t, numbered(int64(100+call), int64(call)), 1)
		}
		repo := newTestJobDynamoRepository(f)

		_, err := repo.Update(context.Background(), 1, true, nil)
		if !errors.Is(err, ErrWriteConflict) {
			t.Fatalf("expected ErrWriteConflict, got %v", err)
		}
		if f.transact != maxWriteAttempts {
			t.Fatalf("expected %d attempts, got %d", maxWriteAttempts, f.transact)
		}
	})

	t.Run("delete releases the claim", func(t *testing.T) {
		f := newFakeDynamo()
		f.putJob(t, numbered(1, 3), 2)
		repo := newTestJobDynamoRepository(f)

		deleted, err := repo.Delete(context.Background(), 1)
		if err != nil || !deleted {
			t.Fatalf("expected deletion, got %v err=%v", deleted, err)
		}
		if _, ok := f.table("jobs")["1"]; ok {
			t.Fatalf("job still stored")
		}
		if _, ok := f.table("counters")[invoiceClaimKey(3)]; ok {
			t.Fatalf("claim still stored")
		}

		deleted, err = repo.Delete(context.Background(), 1)
		if err != nil || deleted {
			t.Fatalf("expected missing job, got %v err=%v", deleted, err)
		}
	})
}
