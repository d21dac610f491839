package interfaces

import (
	"context"
	"invoicing/internal/domain/entities"
)

// IInvoiceRenderer turns a snapshot into a finished document.
type IInvoiceRenderer interface {
	Render(ctx context.Context, snapshot entities.InvoiceSnapshot) ([]byte, error)
}
