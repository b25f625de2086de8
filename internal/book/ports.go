package book

import (
	"context"
)

// Repository defines the contract for catalogue storage.
type Repository interface {
	UpsertPublisher(ctx context.Context, name string) (int64, error)
	UpsertAuthor(ctx context.Context, forename, surname string) (int64, error)
	SaveBook(ctx context.Context, b *Book) (int64, error)
	GetByID(ctx context.Context, id int64) (Book, error)
	List(ctx context.Context) ([]Book, error)
}
