package interfaces

import (
	"context"
	"invoicing/internal/domain/entities"
)

// JobMutation edits a loaded job in place and reports whether anything
// changed. Returning an error aborts the write.
type JobMutation func(job *entities.Job) (changed bool, err error)

// IJobRepository abstracts persistence for Job and owns invoice numbering.
//
// Every method that may assign an invoice number does it in the same atomic
// unit as the write that persists it: the next number is max(existing)+1 and
// two concurrent writers never observe the same maximum.
//
// Lookups return a zero Job (ID == 0) and a nil error when the job does not exist.
type IJobRepository interface {
	Create(ctx context.Context, job entities.Job, assignInvoiceNumber bool) (entities.Job, error)
	GetByID(ctx context.Context, id int64) (entities.Job, error)
	// List returns every job when clientID is 0.
	List(ctx context.Context, clientID int64) ([]entities.Job, error)
	// Update loads the job, assigns a number first when assignInvoiceNumber is
	// set and the job has none, then runs mutate. The job is written back only
	// when a number was assigned or mutate reported a change.
	Update(ctx context.Context, id int64, assignInvoiceNumber bool, mutate JobMutation) (entities.Job, error)
	Delete(ctx context.Context, id int64) (bool, error)
	// NextInvoiceNumber previews the number the next allocation would use.
	NextInvoiceNumber(ctx context.Context) (int64, error)
}
