package repository

import (
	"errors"
	"log/slog"
)

const (
	CategoryField QueryField = "category"
)

// Query narrows a List call. A zero Limit returns every matching product.
type Query struct {
	Values map[QueryField]string

	Limit int

	Paginator *Paginator
}

type QueryField string

func NewQuery() *Query {
	return &Query{
		Values: map[QueryField]string{},
	}
}

func (q *Query) With(field QueryField, val string) *Query {
	q.Values[field] = val
	return q
}

// ApplyPagination sets the page size and cursor. Without a limit and a token
// the query keeps returning the whole collection.
func (q *Query) ApplyPagination(limit int32, token string) error {
	if limit > 0 {
		q.Limit = min(maxPaginationLimit, int(limit))
	} else if token != "" {
		q.Limit = DefaultPaginationLimit
	}

	if token == "" {
		return nil
	}

	paginator, err := DecodePageToken(token)
	if err != nil {
		slog.Error("failed to decode page token", slog.Any("err", err), slog.String("token", token))
		return errors.New("invalid page token")
	}
	q.Paginator = paginator
	return nil
}
