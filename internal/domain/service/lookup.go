package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jonny/ranobe-bot/internal/domain/model"
	"github.com/jonny/ranobe-bot/internal/domain/port/outbound"
)

// Continuation results, used as metric labels.
const (
	resultNoMatches   = "no_matches"
	resultSingle      = "single"
	resultChoices     = "choices"
	resultSelected    = "selected"
	resultFetchFailed = "fetch_failed"
	resultNotFound    = "not_found"
)

// searchFollowUp turns a query into the reply for a deferred channel message.
// A failed search reads as an empty one.
func (d *Dispatcher) searchFollowUp(ctx context.Context, logger *slog.Logger, query string) (model.FollowUp, string) {
	books, err := d.catalog.Search(ctx, query, d.searchLimit)
	if err != nil {
		logger.Warn("catalog search failed", "query", query, "error", err)
		books = nil
	}
	if len(books) > d.searchLimit {
		books = books[:d.searchLimit]
	}

	switch len(books) {
	case 0:
		return model.NoMatches(query), resultNoMatches
	case 1:
		// Search results are summaries; the card needs the full record.
		book, err := d.catalog.Fetch(ctx, books[0].ID)
		if err != nil {
			logger.Warn("catalog fetch failed", "book_id", books[0].ID, "error", err)
			return model.DetailsUnavailable(model.FollowUpCreate), fetchResult(err)
		}
		return model.SingleBook(book), resultSingle
	default:
		return model.BookChoices(books), resultChoices
	}
}

// selectFollowUp resolves a selected option by id alone.
func (d *Dispatcher) selectFollowUp(ctx context.Context, logger *slog.Logger, id int) (model.FollowUp, string) {
	book, err := d.catalog.Fetch(ctx, id)
	if err != nil {
		logger.Warn("catalog fetch failed", "book_id", id, "error", err)
		return model.DetailsUnavailable(model.FollowUpUpdateOriginal), fetchResult(err)
	}
	return model.SelectedBook(book), resultSelected
}

func fetchResult(err error) string {
	if errors.Is(err, outbound.ErrBookNotFound) {
		return resultNotFound
	}
	return resultFetchFailed
}
