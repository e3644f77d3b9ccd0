package outbound

import (
	"context"
	"errors"

	"github.com/jonny/ranobe-bot/internal/domain/model"
)

var ErrBookNotFound = errors.New("book not found")

// Catalog performs read-only lookups against the book catalog.
type Catalog interface {
	// Search returns at most limit summary records matching query.
	Search(ctx context.Context, query string, limit int) ([]model.Book, error)
	// Fetch returns the full record for id, or ErrBookNotFound.
	Fetch(ctx context.Context, id int) (model.Book, error)
}
