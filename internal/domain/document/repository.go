package document

import "context"

// DocumentRepository - interface for documents table
type DocumentRepository interface {
	Create(ctx context.Context, doc Document) (Document, error)
	GetByID(ctx context.Context, id string) (Document, error)
	List(ctx context.Context, filter DocumentFilter) ([]Document, int64, error)
	Delete(ctx context.Context, id string) error
}
